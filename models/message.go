package models

import "time"

// Message is one entry in the flat chat log. The JSON keys match the chat
// API: "buddy" is the conversation the message belongs to, "sender" the
// user id of the author.
type Message struct {
	ID        string    `json:"id"`
	BuddyID   string    `json:"buddy"`
	SenderID  string    `json:"sender"`
	Name      string    `json:"name"`
	Text      string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
}
