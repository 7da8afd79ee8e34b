// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat sessions and messages.
//
// A ChatSession is one chat thread: an ordered, append-only message
// history plus the Selection (country, topic, model) it was created
// under and the backend conversation id it correlates with. Sessions
// live in memory only and are destroyed when the process exits.
//
// The package also carries the model catalog: the descriptors for the
// language models the backend can serve, used for selection and for
// eligibility filtering.
package model
