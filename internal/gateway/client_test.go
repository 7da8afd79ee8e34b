// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SKN-4rdPJT-6Team/Ready-To-Go/internal/catalog"
	"github.com/SKN-4rdPJT-6Team/Ready-To-Go/internal/model"
)

func testClient(baseURL string) *Client {
	return NewClientWithConfig(&Config{
		BaseURL:       baseURL,
		Timeout:       2 * time.Second,
		WriteInterval: time.Millisecond,
		Warnf:         func(string, ...any) {},
	})
}

// deadClient points at a server that has already been shut down.
func deadClient(t *testing.T) *Client {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	return testClient(url)
}

// =============================================================================
// SOFT-FAIL READS
// =============================================================================

func TestReadsFallBackToDefaults(t *testing.T) {
	c := deadClient(t)
	ctx := context.Background()

	assert.Equal(t, catalog.DefaultCountries, c.GetCountries(ctx))
	assert.Equal(t, catalog.DefaultTopics, c.GetTopics(ctx))
	assert.Equal(t, model.DefaultModels, c.GetModels(ctx))
	assert.Empty(t, c.GetExamples(ctx, "Japan", "visa"))
	assert.Empty(t, c.GetSources(ctx, "Japan", "visa"))
}

func TestGetCountriesFromBackend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/countries/", r.URL.Path)
		json.NewEncoder(w).Encode([]string{"Japan", "France"})
	}))
	defer srv.Close()

	got := testClient(srv.URL).GetCountries(context.Background())
	assert.Equal(t, []string{"Japan", "France"}, got)
}

func TestGetModelsAcceptsBothShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bare array", `[{"id":"gpt-4","name":"GPT-4"}]`},
		{"wrapped object", `{"available_models":[{"id":"gpt-4","name":"GPT-4"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			got := testClient(srv.URL).GetModels(context.Background())
			require.Len(t, got, 1)
			assert.Equal(t, "gpt-4", got[0].ID)
		})
	}
}

func TestGetExamplesSendsContextQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/examples/", r.URL.Path)
		assert.Equal(t, "Japan", r.URL.Query().Get("country"))
		assert.Equal(t, "visa", r.URL.Query().Get("topic"))
		json.NewEncoder(w).Encode(examplesResponse{Examples: []string{"Do I need a visa?"}})
	}))
	defer srv.Close()

	got := testClient(srv.URL).GetExamples(context.Background(), "Japan", "visa")
	assert.Equal(t, []string{"Do I need a visa?"}, got)
}

// =============================================================================
// HARD-FAIL WRITES
// =============================================================================

func TestCreateConversation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/chat/conversation/", r.URL.Path)

		var req CreateConversationRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "sess_abc", req.SessionID)
		assert.Equal(t, "Japan", req.CountryID)
		assert.Equal(t, "visa", req.TopicID)
		assert.Equal(t, "gpt-4", req.ModelID)

		json.NewEncoder(w).Encode(Conversation{ID: 7})
	}))
	defer srv.Close()

	conv, err := testClient(srv.URL).CreateConversation(context.Background(), "sess_abc", "Japan", "visa", "gpt-4")
	require.NoError(t, err)
	assert.Equal(t, int64(7), conv.ID)
}

func TestCreateConversationUnreachable(t *testing.T) {
	_, err := deadClient(t).CreateConversation(context.Background(), "s", "Japan", "visa", "gpt-4")
	require.Error(t, err)
	assert.True(t, IsUnreachable(err))
}

func TestSendMessagePayloadShapes(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantText string
		wantRefs int
	}{
		{"object payload", `{"message":{"content":"hi","references":["https://a"]}}`, "hi", 1},
		{"bare string payload", `{"message":"hi"}`, "hi", 0},
		{"empty content", `{"message":{"content":""}}`, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			resp, err := testClient(srv.URL).SendMessage(context.Background(), SendMessageRequest{
				Message:        "question",
				ConversationID: 7,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantText, resp.Message.Content)
			assert.Len(t, resp.Message.References, tt.wantRefs)
		})
	}
}

func TestNon2xxIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"looks fine but is not"}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).SendMessage(context.Background(), SendMessageRequest{Message: "q"})
	require.Error(t, err)

	var clientErr *ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, ErrTypeStatus, clientErr.Type)
}

func TestGetHistory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/history/7/", r.URL.Path)
		json.NewEncoder(w).Encode(History{Messages: []HistoryMessage{
			{Role: "user", Content: "q"},
			{Role: "bot", Content: "a"},
		}})
	}))
	defer srv.Close()

	hist, err := testClient(srv.URL).GetHistory(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), hist.ConversationID)
	require.Len(t, hist.Messages, 2)
}

func TestCheckRunning(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]string{"Japan"})
	}))
	defer srv.Close()

	assert.NoError(t, testClient(srv.URL).CheckRunning(context.Background()))
	assert.Error(t, deadClient(t).CheckRunning(context.Background()))
}
