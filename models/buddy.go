package models

import "time"

const (
	RequestPending  = "pending"
	RequestAccepted = "accepted"
	RequestDeclined = "declined"
)

type BuddyRequest struct {
	ID          string    `json:"id,omitempty"`
	RequesterID string    `json:"requester_id"`
	Status      string    `json:"status,omitempty"` // pending, accepted, declined
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

type Buddy struct {
	ID     string `json:"id,omitempty"`
	UserID string `json:"user_id"`
}

type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Text      string    `json:"text"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// ToBuddyCreate strips the server-assigned fields (id, status, created_at)
// from an accepted request, leaving the payload for the buddy record.
func (r *BuddyRequest) ToBuddyCreate() *Buddy {
	return &Buddy{
		UserID: r.RequesterID,
	}
}
