package models

import (
	"fmt"
	"time"
)

// DefaultUserName is used when a note is added without a user name.
const DefaultUserName = "Anonymous"

// Note is a free-text annotation attached to a document. The id and timestamp
// are assigned by the server at creation time; notes are never updated in place.
type Note struct {
	ID        string    `json:"_id"`
	Text      string    `json:"text"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Timestamp time.Time `json:"timestamp"`
}

// NoteInput is the request body for adding a note to a document.
type NoteInput struct {
	Text     string `json:"text"`
	UserID   string `json:"userId"`
	UserName string `json:"userName,omitempty"`
}

// Validate checks required fields and applies the default user name.
// Returns an error when text or userId is missing.
func (n *NoteInput) Validate() error {
	if n.Text == "" {
		return fmt.Errorf("note text is required")
	}
	if n.UserID == "" {
		return fmt.Errorf("note userId is required")
	}
	if n.UserName == "" {
		n.UserName = DefaultUserName
	}
	return nil
}
