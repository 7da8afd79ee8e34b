// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"sync"

	"github.com/google/uuid"

	"github.com/SKN-4rdPJT-6Team/Ready-To-Go/internal/model"
)

// =============================================================================
// LISTENER
// =============================================================================

// Listener receives state-change notifications. The render layer
// implements this; the store never touches visual elements directly.
//
// Every session or message slice handed to a listener is a snapshot
// taken under the store lock. Notifications are delivered
// asynchronously, so listeners must never be given pointers into live
// store state.
type Listener interface {
	SelectionChanged(sel model.Selection)
	SessionListChanged(sessions []*model.ChatSession)
	ActiveSessionChanged(session *model.ChatSession)
	LoadingChanged(loading bool)
	// MessageAppended carries the appended message and the full
	// transcript of the session at the moment of the append. Renderers
	// rebuild from the transcript rather than appending incrementally,
	// so a stale rebuild can never double-render a message.
	MessageAppended(sessionID int64, msg *model.Message, transcript []*model.Message)
	ContextChanged(examples []string, sources []string)
}

// =============================================================================
// STORE
// =============================================================================

// Store holds the session state. Safe for concurrent use.
type Store struct {
	mu sync.Mutex

	sessionID string

	selection model.Selection
	sessions  []*model.ChatSession
	activeID  int64
	hasActive bool
	loading   bool

	// Example/source bundle for the current country+topic.
	examples []string
	sources  []string

	listener Listener
}

// New creates an empty store with a fresh session identifier.
func New() *Store {
	return &Store{
		sessionID: "sess_" + uuid.NewString(),
		sessions:  make([]*model.ChatSession, 0),
	}
}

// SetListener registers the render listener. Pass nil to detach.
func (s *Store) SetListener(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listener = l
}

// SessionID returns the process-wide chat session identifier sent to
// the backend on conversation creation.
func (s *Store) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID
}

// =============================================================================
// SELECTION
// =============================================================================

// Selection returns a copy of the current selection.
func (s *Store) Selection() model.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection
}

// UpdateCountry sets the country and clears the topic: a topic chosen
// for one country is meaningless for another.
func (s *Store) UpdateCountry(country string) {
	s.mu.Lock()
	s.selection.Country = country
	s.selection.Topic = ""
	sel := s.selection
	l := s.listener
	s.mu.Unlock()

	if l != nil {
		l.SelectionChanged(sel)
	}
}

// UpdateTopic sets the topic.
func (s *Store) UpdateTopic(topic string) {
	s.mu.Lock()
	s.selection.Topic = topic
	sel := s.selection
	l := s.listener
	s.mu.Unlock()

	if l != nil {
		l.SelectionChanged(sel)
	}
}

// UpdateModel sets the model.
func (s *Store) UpdateModel(modelID string) {
	s.mu.Lock()
	s.selection.Model = modelID
	sel := s.selection
	l := s.listener
	s.mu.Unlock()

	if l != nil {
		l.SelectionChanged(sel)
	}
}

// RestoreSelection replaces the whole selection at once, used when
// switching back to an old session.
func (s *Store) RestoreSelection(sel model.Selection) {
	s.mu.Lock()
	s.selection = sel
	l := s.listener
	s.mu.Unlock()

	if l != nil {
		l.SelectionChanged(sel)
	}
}

// =============================================================================
// SESSIONS
// =============================================================================

// AddChat registers a session and makes it active.
func (s *Store) AddChat(session *model.ChatSession) {
	s.mu.Lock()
	s.sessions = append(s.sessions, session)
	s.activeID = session.ID
	s.hasActive = true
	sessions := s.snapshotLocked()
	active := session.Clone()
	l := s.listener
	s.mu.Unlock()

	if l != nil {
		l.SessionListChanged(sessions)
		l.ActiveSessionChanged(active)
	}
}

// SetActiveChat points the store at an existing session. Returns false
// and leaves state untouched when the id does not resolve, so the
// active pointer always references a real session.
func (s *Store) SetActiveChat(id int64) bool {
	s.mu.Lock()
	session := s.findLocked(id)
	if session == nil {
		s.mu.Unlock()
		return false
	}
	s.activeID = id
	s.hasActive = true
	active := session.Clone()
	l := s.listener
	s.mu.Unlock()

	if l != nil {
		l.ActiveSessionChanged(active)
	}
	return true
}

// GetActiveChat returns the active session, or nil if none is set.
func (s *Store) GetActiveChat() *model.ChatSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasActive {
		return nil
	}
	return s.findLocked(s.activeID)
}

// Chats returns the sessions in insertion order.
func (s *Store) Chats() []*model.ChatSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// ChatCount returns the number of sessions.
func (s *Store) ChatCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// AppendMessage appends a message to a session by id. Returns false if
// the session does not exist.
func (s *Store) AppendMessage(sessionID int64, msg *model.Message) bool {
	s.mu.Lock()
	session := s.findLocked(sessionID)
	if session == nil {
		s.mu.Unlock()
		return false
	}
	session.Append(msg)
	transcript := make([]*model.Message, len(session.Messages))
	copy(transcript, session.Messages)
	l := s.listener
	s.mu.Unlock()

	if l != nil {
		l.MessageAppended(sessionID, msg, transcript)
	}
	return true
}

// =============================================================================
// LOADING FLAG
// =============================================================================

// TrySetLoading atomically sets the loading flag if no request is in
// flight. Returns false without changing state when one already is,
// so at most one caller can hold the gate at a time.
func (s *Store) TrySetLoading() bool {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return false
	}
	s.loading = true
	l := s.listener
	s.mu.Unlock()

	if l != nil {
		l.LoadingChanged(true)
	}
	return true
}

// SetLoading sets the loading flag. While loading is true a request is
// in flight and message submission is disabled.
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	changed := s.loading != loading
	s.loading = loading
	l := s.listener
	s.mu.Unlock()

	if changed && l != nil {
		l.LoadingChanged(loading)
	}
}

// Loading returns the loading flag.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// =============================================================================
// EXAMPLE/SOURCE BUNDLE
// =============================================================================

// SetContext replaces the example questions and document sources for
// the current country+topic. The bundle is not persisted across
// selection changes; callers refresh it whenever country or topic
// change.
func (s *Store) SetContext(examples, sources []string) {
	s.mu.Lock()
	s.examples = examples
	s.sources = sources
	l := s.listener
	s.mu.Unlock()

	if l != nil {
		l.ContextChanged(examples, sources)
	}
}

// Context returns the current example questions and document sources.
func (s *Store) Context() (examples []string, sources []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.examples, s.sources
}

// =============================================================================
// INTERNAL
// =============================================================================

func (s *Store) findLocked(id int64) *model.ChatSession {
	for _, session := range s.sessions {
		if session.ID == id {
			return session
		}
	}
	return nil
}

// snapshotLocked clones every session so the returned list is safe to
// read while the store keeps mutating the originals.
func (s *Store) snapshotLocked() []*model.ChatSession {
	out := make([]*model.ChatSession, len(s.sessions))
	for i, session := range s.sessions {
		out[i] = session.Clone()
	}
	return out
}
