// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"sync"
	"time"
)

// =============================================================================
// SELECTION TYPE
// =============================================================================

// Selection is the (country, topic, model) triple driving conversation
// context. Country and topic are canonical keys, model is a model ID.
// Empty fields mean "not chosen yet".
type Selection struct {
	Country string `json:"country"`
	Topic   string `json:"topic"`
	Model   string `json:"model"`
}

// IsComplete returns true if all three fields are set.
func (s Selection) IsComplete() bool {
	return s.Country != "" && s.Topic != "" && s.Model != ""
}

// =============================================================================
// CHAT SESSION TYPE
// =============================================================================

// ChatSession holds one chat thread with its message history.
//
// The session stores the Selection it was created under as a structured
// field. Switching back to an old session restores context from here,
// never by parsing the display title.
type ChatSession struct {
	// Identity
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`

	// ConversationID correlates the session with a backend
	// conversation. For offline sessions it is generated locally and
	// has no backend meaning.
	ConversationID int64 `json:"conversation_id"`

	// Offline marks a session created without backend confirmation.
	Offline bool `json:"offline"`

	// Selection the session was created under.
	Selection Selection `json:"selection"`

	// Messages in insertion order. Append-only.
	Messages []*Message `json:"messages"`
}

// NewChatSession creates a session with a monotonic time-derived ID.
func NewChatSession(title string, conversationID int64, sel Selection) *ChatSession {
	return &ChatSession{
		ID:             nextSessionID(),
		Title:          title,
		CreatedAt:      time.Now(),
		ConversationID: conversationID,
		Selection:      sel,
		Messages:       make([]*Message, 0),
	}
}

// Append adds a message to the session.
func (c *ChatSession) Append(msg *Message) {
	c.Messages = append(c.Messages, msg)
}

// Clone returns a copy of the session with an independent message
// slice. Messages themselves are immutable after creation, so the
// clone is safe to read from any goroutine.
func (c *ChatSession) Clone() *ChatSession {
	out := *c
	out.Messages = make([]*Message, len(c.Messages))
	copy(out.Messages, c.Messages)
	return &out
}

// LastMessage returns the most recent message, or nil if empty.
func (c *ChatSession) LastMessage() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return c.Messages[len(c.Messages)-1]
}

// MessageCount returns the number of messages.
func (c *ChatSession) MessageCount() int {
	return len(c.Messages)
}

// IsEmpty returns true if there are no messages.
func (c *ChatSession) IsEmpty() bool {
	return len(c.Messages) == 0
}

// =============================================================================
// SESSION ID GENERATION
// =============================================================================

var (
	sessionIDMu sync.Mutex
	lastID      int64
)

// nextSessionID returns a millisecond timestamp, bumped when two
// sessions are created within the same millisecond so IDs stay
// strictly monotonic.
func nextSessionID() int64 {
	sessionIDMu.Lock()
	defer sessionIDMu.Unlock()

	id := time.Now().UnixMilli()
	if id <= lastID {
		id = lastID + 1
	}
	lastID = id
	return id
}

// LocalConversationID generates a conversation id for offline sessions.
// It shares the session id sequence so it never collides with it.
func LocalConversationID() int64 {
	return nextSessionID()
}
