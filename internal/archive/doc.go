// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package archive keeps an append-only local record of chat sessions
// and messages in SQLite.
//
// The archive is a record, not a session store: in-memory sessions
// still die with the process and are never restored from here. The
// history command reads the archive to show past transcripts.
package archive
