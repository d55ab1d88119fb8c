package session

import (
	sess "github.com/abhisek/toeicz/internal/session"
)

// sessionInitMsg is sent when question selection is complete.
type sessionInitMsg struct {
	State *sess.State
	Err   error
}

// sessionSavedMsg is sent once a finished run has been persisted.
type sessionSavedMsg struct {
	Summary *sess.Summary
	Err     error
}
