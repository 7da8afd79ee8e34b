// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the Ready To
// Go TUI. All colors use Lip Gloss AdaptiveColor for automatic
// light/dark detection.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// =============================================================================
// PALETTE
// =============================================================================

// Cyan - brand color, user highlights
var Cyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}

// Purple - assistant messages, selections
var Purple = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}

// Emerald - success states, online indicator
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// Amber - warnings, offline indicator
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// Rose - errors
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// TextPrimary - main body text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}

// TextSecondary - labels, less prominent text
var TextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A6ADC8"}

// TextMuted - hints, timestamps
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}

// Overlay - borders, separators
var Overlay = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#313244"}

// =============================================================================
// THEME
// =============================================================================

// Theme holds the styled components for the application.
type Theme struct {
	ColorProfile termenv.Profile
	HasTrueColor bool

	Header      lipgloss.Style
	HeaderBrand lipgloss.Style

	UserLabel lipgloss.Style
	BotLabel  lipgloss.Style
	Reference lipgloss.Style
	Timestamp lipgloss.Style

	Sidebar         lipgloss.Style
	SidebarTitle    lipgloss.Style
	SessionActive   lipgloss.Style
	SessionInactive lipgloss.Style
	OfflineBadge    lipgloss.Style

	InputContainer lipgloss.Style
	StatusBar      lipgloss.Style
	StatusKey      lipgloss.Style
	StatusValue    lipgloss.Style
	Warning        lipgloss.Style
	ErrorText      lipgloss.Style
}

// NewTheme builds the theme, detecting terminal color capability.
func NewTheme() *Theme {
	profile := termenv.ColorProfile()

	return &Theme{
		ColorProfile: profile,
		HasTrueColor: profile == termenv.TrueColor,

		Header: lipgloss.NewStyle().
			Foreground(TextSecondary).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(Overlay),
		HeaderBrand: lipgloss.NewStyle().
			Foreground(Cyan).
			Bold(true),

		UserLabel: lipgloss.NewStyle().
			Foreground(Cyan).
			Bold(true),
		BotLabel: lipgloss.NewStyle().
			Foreground(Purple).
			Bold(true),
		Reference: lipgloss.NewStyle().
			Foreground(TextMuted).
			Underline(true),
		Timestamp: lipgloss.NewStyle().
			Foreground(TextMuted),

		Sidebar: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(Overlay).
			PaddingRight(1),
		SidebarTitle: lipgloss.NewStyle().
			Foreground(TextSecondary).
			Bold(true),
		SessionActive: lipgloss.NewStyle().
			Foreground(Cyan).
			Bold(true),
		SessionInactive: lipgloss.NewStyle().
			Foreground(TextSecondary),
		OfflineBadge: lipgloss.NewStyle().
			Foreground(Amber).
			Bold(true),

		InputContainer: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Overlay),
		StatusBar: lipgloss.NewStyle().
			Foreground(TextMuted),
		StatusKey: lipgloss.NewStyle().
			Foreground(TextSecondary).
			Bold(true),
		StatusValue: lipgloss.NewStyle().
			Foreground(TextPrimary),
		Warning: lipgloss.NewStyle().
			Foreground(Amber),
		ErrorText: lipgloss.NewStyle().
			Foreground(Rose).
			Bold(true),
	}
}
