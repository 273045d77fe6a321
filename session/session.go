// File: session.go
// Title: Chat Session Model
// Description: Defines the session a chat input belongs to. A session ties
//              together the user, the channel the message arrived on and
//              the locale used for user-facing text.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-08
// Modified: 2025-02-08

package session

import (
	"time"

	"github.com/google/uuid"
)

// Session identifies one conversation between a user and the service
type Session struct {
	// ID is the unique session identifier
	ID string

	// UserID identifies the user the session belongs to
	UserID string

	// Channel names the transport the session arrived on
	// (e.g. "repl", "websocket")
	Channel string

	// Locale is the preferred locale for user-facing text
	Locale string

	// CreatedAt is the session creation time
	CreatedAt time.Time
}

// New creates a session with a generated ID
func New(userID, channel string) *Session {
	return &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Channel:   channel,
		CreatedAt: time.Now(),
	}
}
