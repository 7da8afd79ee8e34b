// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/SKN-4rdPJT-6Team/Ready-To-Go/internal/catalog"
	"github.com/SKN-4rdPJT-6Team/Ready-To-Go/internal/model"
	"github.com/SKN-4rdPJT-6Team/Ready-To-Go/internal/util"
)

const (
	sidebarWidth = 28
	headerHeight = 2
	inputHeight  = 2
	statusHeight = 1
)

// =============================================================================
// LAYOUT
// =============================================================================

func (a *App) resize(width, height int) {
	a.width = width
	a.height = height

	chatWidth := width
	if a.showExamples {
		chatWidth = width - sidebarWidth
	}
	chatHeight := height - headerHeight - inputHeight - statusHeight
	if chatHeight < 1 {
		chatHeight = 1
	}
	if chatWidth < 20 {
		chatWidth = 20
	}

	if !a.ready {
		a.viewport = viewport.New(chatWidth, chatHeight)
		a.ready = true
	} else {
		a.viewport.Width = chatWidth
		a.viewport.Height = chatHeight
	}
	a.input.Width = width - 6

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(chatWidth-2),
	)
	if err == nil {
		a.renderer = renderer
	}

	if a.picking != pickerNone {
		a.picker.SetSize(a.pickerWidth(), a.pickerHeight())
	}

	a.refreshViewport()
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

// rebuildTranscript re-renders the whole transcript from a snapshot.
// Rebuilding is idempotent, so it is safe however notification
// delivery interleaves with store mutations.
func (a *App) rebuildTranscript(messages []*model.Message) {
	a.transcript = a.transcript[:0]
	for _, msg := range messages {
		a.transcript = append(a.transcript, a.renderMessage(msg))
	}
	a.refreshViewport()
}

func (a *App) renderMessage(msg *model.Message) string {
	var b strings.Builder

	label := a.theme.UserLabel
	if msg.Role == model.RoleBot {
		label = a.theme.BotLabel
	}
	b.WriteString(label.Render(msg.Role.DisplayName()))
	b.WriteString("  ")
	b.WriteString(a.theme.Timestamp.Render(msg.Timestamp.Format("15:04")))
	b.WriteString("\n")

	body := msg.Text
	if msg.Role == model.RoleBot && a.renderer != nil {
		if rendered, err := a.renderer.Render(msg.Text); err == nil {
			body = strings.TrimRight(rendered, "\n")
		}
	}
	b.WriteString(body)

	if len(msg.References) > 0 {
		b.WriteString("\n")
		for _, ref := range msg.References {
			b.WriteString(a.theme.Reference.Render("  → "+ref) + "\n")
		}
	}
	return b.String()
}

func (a *App) refreshViewport() {
	if !a.ready {
		return
	}
	a.viewport.SetContent(strings.Join(a.transcript, "\n\n"))
	a.viewport.GotoBottom()
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the whole screen.
func (a *App) View() string {
	if !a.ready {
		return "Loading..."
	}

	if a.picking != pickerNone {
		return lipgloss.Place(a.width, a.height,
			lipgloss.Center, lipgloss.Center, a.picker.View())
	}

	sections := []string{
		a.renderHeader(),
		a.renderBody(),
		a.renderInput(),
		a.renderStatus(),
	}
	return strings.Join(sections, "\n")
}

func (a *App) renderHeader() string {
	brand := a.theme.HeaderBrand.Render("Ready To Go")

	parts := []string{}
	if a.selection.Country != "" {
		parts = append(parts, catalog.CountryLabel(a.selection.Country))
	}
	if a.selection.Topic != "" {
		parts = append(parts, catalog.TopicLabel(a.selection.Topic))
	}
	if a.selection.Model != "" {
		parts = append(parts, model.ModelName(a.models, a.selection.Model))
	}
	summary := "no selection"
	if len(parts) > 0 {
		summary = strings.Join(parts, " / ")
	}

	line := brand + "  " + a.theme.StatusValue.Render(summary)
	return a.theme.Header.Width(a.width).Render(line)
}

func (a *App) renderBody() string {
	if !a.showExamples {
		return a.viewport.View()
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, a.renderSidebar(), a.viewport.View())
}

func (a *App) renderSidebar() string {
	var b strings.Builder

	b.WriteString(a.theme.SidebarTitle.Render("Sessions") + "\n")
	if len(a.sessions) == 0 {
		b.WriteString(a.theme.StatusBar.Render("  none yet") + "\n")
	}
	for _, s := range a.sessions {
		style := a.theme.SessionInactive
		marker := "  "
		if a.hasActive && s.ID == a.activeID {
			style = a.theme.SessionActive
			marker = "> "
		}
		title := util.TruncateWidth(s.Title, sidebarWidth-4)
		b.WriteString(style.Render(marker+title) + "\n")
	}

	if len(a.examples) > 0 {
		b.WriteString("\n" + a.theme.SidebarTitle.Render("Try asking") + "\n")
		for _, ex := range a.examples {
			b.WriteString(a.theme.StatusBar.Render("  "+util.TruncateWidth(ex, sidebarWidth-4)) + "\n")
		}
	}
	if len(a.sources) > 0 {
		b.WriteString("\n" + a.theme.SidebarTitle.Render("Sources") + "\n")
		for _, src := range a.sources {
			b.WriteString(a.theme.StatusBar.Render("  "+util.TruncateWidth(src, sidebarWidth-4)) + "\n")
		}
	}

	return a.theme.Sidebar.
		Width(sidebarWidth - 1).
		Height(a.viewport.Height).
		Render(b.String())
}

func (a *App) renderInput() string {
	prompt := "> " + a.input.View()
	if a.loading {
		prompt = a.spinner.View() + " thinking..."
	}
	return a.theme.InputContainer.Width(a.width).Render(prompt)
}

func (a *App) renderStatus() string {
	if a.statusMsg != "" {
		return a.theme.ErrorText.Render(util.TruncateWidth(a.statusMsg, a.width))
	}

	hints := []string{
		"ctrl+n new chat",
		"ctrl+k country",
		"ctrl+t topic",
		"ctrl+o model",
		"ctrl+l sessions",
		"ctrl+e panel",
		"ctrl+c quit",
	}
	left := a.theme.StatusBar.Render(strings.Join(hints, "  "))

	right := ""
	if a.hasActive {
		right = a.theme.StatusBar.Render(fmt.Sprintf("%d session(s)", len(a.sessions)))
	}
	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return util.TruncateWidth(left, a.width)
	}
	return left + strings.Repeat(" ", gap) + right
}
