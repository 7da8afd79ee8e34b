// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/SKN-4rdPJT-6Team/Ready-To-Go/internal/model"
)

// =============================================================================
// STORE NOTIFICATION MESSAGES
// =============================================================================

// Store notifications arrive as Bubble Tea messages through the
// Forwarder, so the UI updates on the program goroutine only.

// SelectionChangedMsg reports a new selection.
type SelectionChangedMsg struct {
	Selection model.Selection
}

// SessionListChangedMsg reports a changed session list.
type SessionListChangedMsg struct {
	Sessions []*model.ChatSession
}

// ActiveSessionChangedMsg reports a newly active session.
type ActiveSessionChangedMsg struct {
	Session *model.ChatSession
}

// LoadingChangedMsg reports the loading flag.
type LoadingChangedMsg struct {
	Loading bool
}

// MessageAppendedMsg reports a message appended to a session. It
// carries the session's full transcript as of the append; the UI
// rebuilds from this snapshot, so delivery order cannot double-render
// a message.
type MessageAppendedMsg struct {
	SessionID  int64
	Message    *model.Message
	Transcript []*model.Message
}

// ContextChangedMsg reports refreshed examples and sources.
type ContextChangedMsg struct {
	Examples []string
	Sources  []string
}

// =============================================================================
// COMMAND RESULT MESSAGES
// =============================================================================

// MetadataLoadedMsg carries the initial country/topic lists.
type MetadataLoadedMsg struct {
	Countries []string
	Topics    []string
	Models    []model.Info
}

// ChatCreatedMsg reports the outcome of a create-chat command.
type ChatCreatedMsg struct {
	Session *model.ChatSession
	Err     error
}

// ExchangeDoneMsg reports a completed send-message round trip.
type ExchangeDoneMsg struct {
	User *model.Message
	Bot  *model.Message
}

// ModelsRefreshedMsg carries a re-filtered model list.
type ModelsRefreshedMsg struct {
	Models []model.Info
}

// =============================================================================
// FORWARDER
// =============================================================================

// Forwarder implements store.Listener by forwarding every notification
// into the Bubble Tea program. Send is program.Send; it is safe to
// call from any goroutine.
type Forwarder struct {
	Send func(tea.Msg)
}

func (f *Forwarder) SelectionChanged(sel model.Selection) {
	f.Send(SelectionChangedMsg{Selection: sel})
}

func (f *Forwarder) SessionListChanged(sessions []*model.ChatSession) {
	f.Send(SessionListChangedMsg{Sessions: sessions})
}

func (f *Forwarder) ActiveSessionChanged(session *model.ChatSession) {
	f.Send(ActiveSessionChangedMsg{Session: session})
}

func (f *Forwarder) LoadingChanged(loading bool) {
	f.Send(LoadingChangedMsg{Loading: loading})
}

func (f *Forwarder) MessageAppended(sessionID int64, msg *model.Message, transcript []*model.Message) {
	f.Send(MessageAppendedMsg{SessionID: sessionID, Message: msg, Transcript: transcript})
}

func (f *Forwarder) ContextChanged(examples, sources []string) {
	f.Send(ContextChangedMsg{Examples: examples, Sources: sources})
}
