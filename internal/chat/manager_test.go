// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/SKN-4rdPJT-6Team/Ready-To-Go/internal/gateway"
	"github.com/SKN-4rdPJT-6Team/Ready-To-Go/internal/model"
	"github.com/SKN-4rdPJT-6Team/Ready-To-Go/internal/store"
)

// fakeGateway implements Gateway for tests.
type fakeGateway struct {
	models      []model.Info
	examples    []string
	sources     []string
	failCreate  bool
	failSend    bool
	sendContent string
	sendRefs    []string

	createCalls int
	sendCalls   int
	lastSendReq gateway.SendMessageRequest
}

func (f *fakeGateway) GetModels(context.Context) []model.Info {
	if f.models == nil {
		return model.DefaultModels
	}
	return f.models
}

func (f *fakeGateway) GetExamples(context.Context, string, string) []string {
	return f.examples
}

func (f *fakeGateway) GetSources(context.Context, string, string) []string {
	return f.sources
}

func (f *fakeGateway) CreateConversation(_ context.Context, _, _, _, _ string) (*gateway.Conversation, error) {
	f.createCalls++
	if f.failCreate {
		return nil, errors.New("connection refused")
	}
	return &gateway.Conversation{ID: 42}, nil
}

func (f *fakeGateway) SendMessage(_ context.Context, req gateway.SendMessageRequest) (*gateway.SendMessageResponse, error) {
	f.sendCalls++
	f.lastSendReq = req
	if f.failSend {
		return nil, errors.New("connection refused")
	}
	return &gateway.SendMessageResponse{
		Message: gateway.MessagePayload{Content: f.sendContent, References: f.sendRefs},
	}, nil
}

func newTestManager(gw Gateway) (*Manager, *store.Store) {
	st := store.New()
	return NewManager(st, gw), st
}

func selectAll(ctx context.Context, m *Manager, country, topic, modelID string) {
	m.UpdateCountry(ctx, country)
	m.UpdateTopic(ctx, topic)
	m.UpdateModel(modelID)
}

// =============================================================================
// CHAT CREATION
// =============================================================================

func TestCreateNewChatRequiresCompleteSelection(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{}
	m, _ := newTestManager(gw)

	m.UpdateCountry(ctx, "Japan")
	m.UpdateTopic(ctx, "visa")
	// model still unset

	if _, err := m.CreateNewChat(ctx); !errors.Is(err, ErrIncompleteSelection) {
		t.Fatalf("err = %v, want ErrIncompleteSelection", err)
	}
	if gw.createCalls != 0 {
		t.Error("no backend call may happen for an incomplete selection")
	}
}

func TestCreateNewChatSuccess(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{}
	m, st := newTestManager(gw)

	selectAll(ctx, m, "America", "visa", "gpt-4")

	session, err := m.CreateNewChat(ctx)
	if err != nil {
		t.Fatal(err)
	}

	if session.Title != "America - visa (GPT-4)" {
		t.Errorf("title = %q, want %q", session.Title, "America - visa (GPT-4)")
	}
	if session.ConversationID != 42 {
		t.Errorf("conversation id = %d, want 42", session.ConversationID)
	}
	if session.Offline {
		t.Error("session should not be offline")
	}
	if st.GetActiveChat() != session {
		t.Error("new session should be active")
	}
	if session.MessageCount() != 1 || session.Messages[0].Role != model.RoleBot {
		t.Fatal("session must open with one bot greeting")
	}
	if session.Messages[0].Text != greetingText {
		t.Errorf("greeting = %q", session.Messages[0].Text)
	}
	if st.Loading() {
		t.Error("loading must be reset after creation")
	}
}

func TestCreateNewChatOfflineFallback(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{failCreate: true}
	m, st := newTestManager(gw)

	selectAll(ctx, m, "America", "visa", "gpt-4")

	session, err := m.CreateNewChat(ctx)
	if err != nil {
		t.Fatalf("offline fallback must not surface an error, got %v", err)
	}

	if !session.Offline {
		t.Error("session should be marked offline")
	}
	if !strings.HasSuffix(session.Title, offlineMarker) {
		t.Errorf("title %q missing offline marker", session.Title)
	}
	if session.ConversationID == 0 {
		t.Error("offline session needs a locally generated conversation id")
	}
	if session.MessageCount() != 1 || session.Messages[0].Text != offlineGreetingText {
		t.Error("offline session must open with the offline greeting")
	}
	if st.GetActiveChat() != session {
		t.Error("offline session should still become active")
	}
}

func TestChatTitleUsesDisplayLabels(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{}
	m, _ := newTestManager(gw)

	selectAll(ctx, m, "UK", "safety", "phi-2")
	m.RefreshModels(ctx)

	if got := m.ChatTitle(); got != "United Kingdom - safety information (Phi-2)" {
		t.Errorf("ChatTitle() = %q", got)
	}
}

// =============================================================================
// MESSAGE EXCHANGE
// =============================================================================

func TestSendMessageNoOps(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{sendContent: "answer"}
	m, st := newTestManager(gw)
	selectAll(ctx, m, "America", "visa", "gpt-4")

	// No active session yet.
	if u, b, err := m.SendMessage(ctx, "hello"); u != nil || b != nil || err != nil {
		t.Error("send without an active session must be a silent no-op")
	}

	if _, err := m.CreateNewChat(ctx); err != nil {
		t.Fatal(err)
	}

	// Blank input.
	if u, _, _ := m.SendMessage(ctx, "   \t"); u != nil {
		t.Error("blank input must be a silent no-op")
	}

	// Send already in flight.
	st.SetLoading(true)
	if u, _, _ := m.SendMessage(ctx, "hello"); u != nil {
		t.Error("send while loading must be a silent no-op")
	}
	st.SetLoading(false)

	if gw.sendCalls != 0 {
		t.Errorf("gateway saw %d sends, want 0", gw.sendCalls)
	}
}

func TestSendMessageSuccess(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{sendContent: "You need a visa.", sendRefs: []string{"https://example.gov"}}
	m, st := newTestManager(gw)
	selectAll(ctx, m, "America", "visa", "gpt-4")
	session, _ := m.CreateNewChat(ctx)

	user, bot, err := m.SendMessage(ctx, "Do I need a visa?")
	if err != nil {
		t.Fatal(err)
	}

	if user.Role != model.RoleUser || user.Text != "Do I need a visa?" {
		t.Errorf("user message = %+v", user)
	}
	if bot.Text != "You need a visa." || len(bot.References) != 1 {
		t.Errorf("bot message = %+v", bot)
	}

	// greeting + user + bot, in order
	if session.MessageCount() != 3 {
		t.Fatalf("message count = %d, want 3", session.MessageCount())
	}
	if session.Messages[1] != user || session.Messages[2] != bot {
		t.Error("user message must precede the bot message")
	}

	if gw.lastSendReq.ConversationID != session.ConversationID {
		t.Error("send request must carry the session's conversation id")
	}
	if gw.lastSendReq.Country != "America" || gw.lastSendReq.Topic != "visa" || gw.lastSendReq.ModelID != "gpt-4" {
		t.Errorf("send request selection = %+v", gw.lastSendReq)
	}
	if st.Loading() {
		t.Error("loading must be reset after the exchange")
	}
}

func TestSendMessageFailureKeepsUserMessage(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{failSend: true}
	m, _ := newTestManager(gw)
	selectAll(ctx, m, "America", "visa", "gpt-4")
	session, _ := m.CreateNewChat(ctx)

	user, bot, err := m.SendMessage(ctx, "hello?")
	if err != nil {
		t.Fatal(err)
	}

	if bot.Text != apologyText {
		t.Errorf("bot text = %q, want apology", bot.Text)
	}
	// The optimistic user message stays in the transcript.
	if session.Messages[1] != user {
		t.Error("user message must survive a failed send")
	}
}

func TestSendMessageEmptyAnswer(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{sendContent: ""}
	m, _ := newTestManager(gw)
	selectAll(ctx, m, "America", "visa", "gpt-4")
	m.CreateNewChat(ctx)

	_, bot, err := m.SendMessage(ctx, "hello?")
	if err != nil {
		t.Fatal(err)
	}
	if bot.Text != unavailableText {
		t.Errorf("bot text = %q, want unavailable notice", bot.Text)
	}
}

// blockingGateway parks SendMessage until released so a second send can
// be attempted while the first is still in flight.
type blockingGateway struct {
	fakeGateway
	entered chan struct{}
	release chan struct{}
	sends   int32
}

func (b *blockingGateway) SendMessage(_ context.Context, _ gateway.SendMessageRequest) (*gateway.SendMessageResponse, error) {
	atomic.AddInt32(&b.sends, 1)
	b.entered <- struct{}{}
	<-b.release
	return &gateway.SendMessageResponse{
		Message: gateway.MessagePayload{Content: "answer"},
	}, nil
}

func TestConcurrentSendsSingleFlight(t *testing.T) {
	ctx := context.Background()
	gw := &blockingGateway{
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	m, _ := newTestManager(gw)
	selectAll(ctx, m, "America", "visa", "gpt-4")
	session, _ := m.CreateNewChat(ctx)

	done := make(chan struct{})
	go func() {
		m.SendMessage(ctx, "first")
		close(done)
	}()
	<-gw.entered // first send is now inside the gateway call

	// A second send while the first is in flight must no-op without
	// touching the transcript or the gateway.
	if u, b, err := m.SendMessage(ctx, "second"); u != nil || b != nil || err != nil {
		t.Error("overlapping send must be a silent no-op")
	}

	close(gw.release)
	<-done

	if got := atomic.LoadInt32(&gw.sends); got != 1 {
		t.Errorf("gateway saw %d sends, want 1", got)
	}
	// greeting + first user + first bot only
	if session.MessageCount() != 3 {
		t.Errorf("message count = %d, want 3", session.MessageCount())
	}
}

// =============================================================================
// MODEL FILTERING
// =============================================================================

func TestRefreshModelsClearsIneligibleSelection(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{}
	m, st := newTestManager(gw)

	// Japan/visa allows restricted models.
	selectAll(ctx, m, "Japan", "visa", "phi-2")
	m.RefreshModels(ctx)
	if st.Selection().Model != "phi-2" {
		t.Fatal("phi-2 must stay selected for Japan/visa")
	}

	// France/visa does not; the selection must clear.
	m.UpdateCountry(ctx, "France")
	m.UpdateTopic(ctx, "visa")
	if st.Selection().Model != "" {
		t.Errorf("model = %q, want cleared after losing eligibility", st.Selection().Model)
	}
	if _, ok := model.FindModel(m.Models(), "phi-2"); ok {
		t.Error("phi-2 must not be offered for France/visa")
	}
}

func TestModelsConcurrentWithRefresh(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{}
	m, _ := newTestManager(gw)
	selectAll(ctx, m, "Japan", "visa", "gpt-4")

	// Readers and refreshers race the filtered list the way command
	// goroutines do. Run under -race to verify the guard.
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				m.RefreshModels(ctx)
			}
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				for _, info := range m.Models() {
					_ = info.ID
				}
			}
		}()
	}
	wg.Wait()

	if len(m.Models()) == 0 {
		t.Error("filtered list must survive concurrent refreshes")
	}
}

// =============================================================================
// SESSION SWITCHING
// =============================================================================

func TestSelectChatRestoresSelection(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{}
	m, st := newTestManager(gw)

	selectAll(ctx, m, "Japan", "visa", "gpt-4")
	first, _ := m.CreateNewChat(ctx)

	selectAll(ctx, m, "Italy", "insurance", "gpt-3.5-turbo")
	second, _ := m.CreateNewChat(ctx)

	if st.GetActiveChat() != second {
		t.Fatal("second session should be active")
	}

	if !m.SelectChat(ctx, first.ID) {
		t.Fatal("switching to a known session failed")
	}
	want := model.Selection{Country: "Japan", Topic: "visa", Model: "gpt-4"}
	if got := st.Selection(); got != want {
		t.Errorf("restored selection = %+v, want %+v", got, want)
	}

	if m.SelectChat(ctx, first.ID+second.ID) {
		t.Error("switching to an unknown id must fail")
	}
	if st.GetActiveChat() != first {
		t.Error("failed switch must not change the active session")
	}
}

// =============================================================================
// CONTEXT BUNDLE
// =============================================================================

func TestRefreshContext(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{examples: []string{"Do I need a visa?"}, sources: []string{"https://example.gov"}}
	m, st := newTestManager(gw)

	// Incomplete selection yields an empty bundle.
	m.UpdateCountry(ctx, "Japan")
	examples, sources := st.Context()
	if len(examples) != 0 || len(sources) != 0 {
		t.Error("bundle must be empty while topic is unset")
	}

	m.UpdateTopic(ctx, "visa")
	examples, sources = st.Context()
	if len(examples) != 1 || len(sources) != 1 {
		t.Errorf("bundle = %v / %v, want fetched values", examples, sources)
	}
}

// =============================================================================
// ARCHIVAL
// =============================================================================

type recordingRecorder struct {
	sessions []int64
	messages []int64
}

func (r *recordingRecorder) RecordSession(s *model.ChatSession) error {
	r.sessions = append(r.sessions, s.ID)
	return nil
}

func (r *recordingRecorder) RecordMessage(id int64, _ *model.Message) error {
	r.messages = append(r.messages, id)
	return nil
}

func TestRecorderReceivesSessionAndMessages(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{sendContent: "answer"}
	m, _ := newTestManager(gw)
	rec := &recordingRecorder{}
	m.SetRecorder(rec)

	selectAll(ctx, m, "America", "visa", "gpt-4")
	session, _ := m.CreateNewChat(ctx)
	m.SendMessage(ctx, "question")

	if len(rec.sessions) != 1 || rec.sessions[0] != session.ID {
		t.Errorf("recorded sessions = %v", rec.sessions)
	}
	// greeting + user + bot
	if len(rec.messages) != 3 {
		t.Errorf("recorded %d messages, want 3", len(rec.messages))
	}
}
