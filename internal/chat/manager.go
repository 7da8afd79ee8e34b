// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/SKN-4rdPJT-6Team/Ready-To-Go/internal/catalog"
	"github.com/SKN-4rdPJT-6Team/Ready-To-Go/internal/eligibility"
	"github.com/SKN-4rdPJT-6Team/Ready-To-Go/internal/gateway"
	"github.com/SKN-4rdPJT-6Team/Ready-To-Go/internal/model"
	"github.com/SKN-4rdPJT-6Team/Ready-To-Go/internal/store"
)

// =============================================================================
// ERRORS AND FIXED TEXT
// =============================================================================

// ErrIncompleteSelection is returned by CreateNewChat when country,
// topic or model is still unset. No network call is made.
var ErrIncompleteSelection = errors.New("country, topic and model must all be selected")

const (
	greetingText        = "Hello! I'm the Ready To Go travel assistant. What would you like to know?"
	offlineGreetingText = "Hello! The backend is unreachable right now, so this chat runs in offline mode."
	apologyText         = "Sorry, there was a problem reaching the server. Please try again."
	unavailableText     = "No answer could be generated."

	// offlineMarker is appended to the title of sessions created
	// without backend confirmation.
	offlineMarker = " (offline)"
)

// =============================================================================
// COLLABORATOR CONTRACTS
// =============================================================================

// Gateway is the slice of the backend contract the lifecycle manager
// needs. *gateway.Client satisfies it; tests inject fakes.
type Gateway interface {
	GetModels(ctx context.Context) []model.Info
	GetExamples(ctx context.Context, country, topic string) []string
	GetSources(ctx context.Context, country, topic string) []string
	CreateConversation(ctx context.Context, sessionID, country, topic, modelID string) (*gateway.Conversation, error)
	SendMessage(ctx context.Context, req gateway.SendMessageRequest) (*gateway.SendMessageResponse, error)
}

// Recorder receives sessions and messages for local archival.
// Archival is best effort and never blocks the conversation.
type Recorder interface {
	RecordSession(session *model.ChatSession) error
	RecordMessage(sessionID int64, msg *model.Message) error
}

// =============================================================================
// MANAGER
// =============================================================================

// Manager drives chat sessions against the backend through the store.
// Safe for concurrent use; the UI invokes it from command goroutines.
type Manager struct {
	store    *store.Store
	gw       Gateway
	recorder Recorder

	// mu guards models. The filtered list is replaced wholesale and
	// never mutated in place.
	mu     sync.Mutex
	models []model.Info
}

// NewManager creates a lifecycle manager. Both collaborators are
// explicit dependencies; there is no ambient gateway.
func NewManager(st *store.Store, gw Gateway) *Manager {
	return &Manager{store: st, gw: gw}
}

// SetRecorder attaches a transcript recorder. Pass nil to detach.
func (m *Manager) SetRecorder(r Recorder) {
	m.recorder = r
}

// Store returns the state store the manager mutates.
func (m *Manager) Store() *store.Store {
	return m.store
}

// =============================================================================
// SELECTION ORCHESTRATION
// =============================================================================

// UpdateCountry sets the country, clears the topic (store invariant),
// re-filters the model list and refreshes examples and sources.
func (m *Manager) UpdateCountry(ctx context.Context, country string) {
	m.store.UpdateCountry(country)
	m.RefreshModels(ctx)
	m.RefreshContext(ctx)
}

// UpdateTopic sets the topic, re-filters the model list (the selected
// model may no longer be eligible) and refreshes examples and sources.
func (m *Manager) UpdateTopic(ctx context.Context, topic string) {
	m.store.UpdateTopic(topic)
	m.RefreshModels(ctx)
	m.RefreshContext(ctx)
}

// UpdateModel sets the selected model.
func (m *Manager) UpdateModel(modelID string) {
	m.store.UpdateModel(modelID)
}

// Models returns the current eligibility-filtered model list.
func (m *Manager) Models() []model.Info {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.models
}

// RefreshModels fetches the model list and applies eligibility
// filtering for the current country and topic. If the selected model
// drops out of the filtered list the selection is cleared.
func (m *Manager) RefreshModels(ctx context.Context) []model.Info {
	sel := m.store.Selection()
	filtered := eligibility.FilterModels(m.gw.GetModels(ctx), sel.Country, sel.Topic)

	m.mu.Lock()
	m.models = filtered
	m.mu.Unlock()

	if sel.Model != "" {
		if _, ok := model.FindModel(filtered, sel.Model); !ok {
			m.store.UpdateModel("")
		}
	}
	return filtered
}

// RefreshContext fetches example questions and document sources for
// the current country+topic. With either unset the bundle is empty.
func (m *Manager) RefreshContext(ctx context.Context) {
	sel := m.store.Selection()
	if sel.Country == "" || sel.Topic == "" {
		m.store.SetContext([]string{}, []string{})
		return
	}
	examples := m.gw.GetExamples(ctx, sel.Country, sel.Topic)
	sources := m.gw.GetSources(ctx, sel.Country, sel.Topic)
	m.store.SetContext(examples, sources)
}

// =============================================================================
// CHAT CREATION
// =============================================================================

// CreateNewChat creates a conversation against the backend and
// registers the resulting session as active. When the backend call
// fails the session is still created in offline mode with a locally
// generated conversation id: the user must always be able to converse.
func (m *Manager) CreateNewChat(ctx context.Context) (*model.ChatSession, error) {
	sel := m.store.Selection()
	if !sel.IsComplete() {
		return nil, ErrIncompleteSelection
	}

	m.store.SetLoading(true)
	defer m.store.SetLoading(false)

	title := m.ChatTitle()

	var session *model.ChatSession
	conv, err := m.gw.CreateConversation(ctx, m.store.SessionID(), sel.Country, sel.Topic, sel.Model)
	if err == nil {
		session = model.NewChatSession(title, conv.ID, sel)
		session.Append(model.NewBotMessage(greetingText))
	} else {
		session = model.NewChatSession(title+offlineMarker, model.LocalConversationID(), sel)
		session.Offline = true
		session.Append(model.NewBotMessage(offlineGreetingText))
	}

	m.store.AddChat(session)
	m.record(session)
	return session, nil
}

// ChatTitle composes the session title from the current selection:
// "<country> - <topic> (<model name>)" in display labels.
func (m *Manager) ChatTitle() string {
	sel := m.store.Selection()
	return catalog.CountryLabel(sel.Country) + " - " +
		catalog.TopicLabel(sel.Topic) +
		" (" + model.ModelName(m.Models(), sel.Model) + ")"
}

// =============================================================================
// MESSAGE EXCHANGE
// =============================================================================

// SendMessage runs one user/bot exchange on the active session.
//
// The user message is appended optimistically before the network call;
// the bot message reconciles afterwards, from the response payload on
// success or as a fixed apology on failure. Blank input, a missing
// active session or a send already in flight are silent no-ops.
// The in-flight gate is an atomic test-and-set on the store, so two
// concurrent sends can never both pass it.
// Returns the appended user and bot messages for rendering.
func (m *Manager) SendMessage(ctx context.Context, text string) (userMsg, botMsg *model.Message, err error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil, nil
	}
	active := m.store.GetActiveChat()
	if active == nil {
		return nil, nil, nil
	}
	if !m.store.TrySetLoading() {
		return nil, nil, nil
	}
	defer m.store.SetLoading(false)

	userMsg = model.NewUserMessage(text)
	m.store.AppendMessage(active.ID, userMsg)
	m.recordMessage(active.ID, userMsg)

	sel := m.store.Selection()
	resp, sendErr := m.gw.SendMessage(ctx, gateway.SendMessageRequest{
		Message:        text,
		ConversationID: active.ConversationID,
		SessionID:      m.store.SessionID(),
		Country:        sel.Country,
		Topic:          sel.Topic,
		ModelID:        sel.Model,
		Stream:         false,
	})

	if sendErr != nil {
		botMsg = model.NewBotMessage(apologyText)
	} else if resp.Message.Content == "" {
		botMsg = model.NewBotMessage(unavailableText)
	} else {
		botMsg = model.NewBotMessageWithReferences(resp.Message.Content, resp.Message.References)
	}

	m.store.AppendMessage(active.ID, botMsg)
	m.recordMessage(active.ID, botMsg)
	return userMsg, botMsg, nil
}

// =============================================================================
// SESSION SWITCHING
// =============================================================================

// SelectChat makes the session with the given id active and restores
// the selection it was created under from its structured Selection
// field. Returns false and changes nothing for an unknown id.
func (m *Manager) SelectChat(ctx context.Context, id int64) bool {
	if !m.store.SetActiveChat(id) {
		return false
	}

	session := m.store.GetActiveChat()
	m.store.RestoreSelection(session.Selection)
	m.RefreshModels(ctx)
	m.RefreshContext(ctx)
	return true
}

// =============================================================================
// ARCHIVAL
// =============================================================================

// record archives a session and its seed messages. Best effort.
func (m *Manager) record(session *model.ChatSession) {
	if m.recorder == nil {
		return
	}
	if err := m.recorder.RecordSession(session); err != nil {
		return
	}
	for _, msg := range session.Messages {
		m.recorder.RecordMessage(session.ID, msg)
	}
}

func (m *Manager) recordMessage(sessionID int64, msg *model.Message) {
	if m.recorder == nil {
		return
	}
	m.recorder.RecordMessage(sessionID, msg)
}
