// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gateway

import (
	"encoding/json"

	"github.com/SKN-4rdPJT-6Team/Ready-To-Go/internal/model"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// CreateConversationRequest is the body for POST /chat/conversation/.
type CreateConversationRequest struct {
	SessionID string `json:"session_id"`
	CountryID string `json:"country_id"`
	TopicID   string `json:"topic_id"`
	ModelID   string `json:"model_id"`
}

// SendMessageRequest is the body for POST /chat/message/.
type SendMessageRequest struct {
	Message        string `json:"message"`
	ConversationID int64  `json:"conversation_id"`
	SessionID      string `json:"session_id"`
	Country        string `json:"country"`
	Topic          string `json:"topic"`
	ModelID        string `json:"model_id"`
	Stream         bool   `json:"stream"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// Conversation is the backend's record of a created conversation.
type Conversation struct {
	ID        int64  `json:"id"`
	SessionID string `json:"session_id,omitempty"`
	CountryID string `json:"country_id,omitempty"`
	TopicID   string `json:"topic_id,omitempty"`
	ModelID   string `json:"model_id,omitempty"`
}

// modelsResponse accepts both shapes the backend has served for
// GET /chat/settings/models/: a bare array of models, or an object
// with an available_models field.
type modelsResponse struct {
	Models []model.Info
}

func (r *modelsResponse) UnmarshalJSON(data []byte) error {
	var plain []model.Info
	if err := json.Unmarshal(data, &plain); err == nil {
		r.Models = plain
		return nil
	}

	var wrapped struct {
		AvailableModels []model.Info `json:"available_models"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	r.Models = wrapped.AvailableModels
	return nil
}

// examplesResponse is the body of GET /chat/examples/.
type examplesResponse struct {
	Examples []string `json:"examples"`
}

// sourcesResponse is the body of GET /chat/sources/.
type sourcesResponse struct {
	Sources []string `json:"sources"`
}

// MessagePayload is the message field of a send-message response. The
// backend has served two shapes: an object with content and optional
// references, and a bare string. This decodes both into one explicit
// schema so callers get a single fallback branch instead of chained
// shape probing.
type MessagePayload struct {
	Content    string   `json:"content"`
	References []string `json:"references,omitempty"`
}

func (p *MessagePayload) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		p.Content = raw
		p.References = nil
		return nil
	}

	type alias MessagePayload
	var obj alias
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*p = MessagePayload(obj)
	return nil
}

// SendMessageResponse is the body of POST /chat/message/.
type SendMessageResponse struct {
	Message MessagePayload `json:"message"`
}

// HistoryMessage is one transcript entry from GET /chat/history/{id}/.
type HistoryMessage struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at,omitempty"`
}

// History is a conversation transcript.
type History struct {
	ConversationID int64            `json:"conversation_id"`
	Messages       []HistoryMessage `json:"messages"`
}
