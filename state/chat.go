package state

import (
	"fmt"
	"iter"
	"sort"

	"buybuddysave/models"
	"buybuddysave/utils"
)

const (
	ItemLabel   = "label"
	ItemMessage = "message"
)

// ChatItem is one entry of the grouped conversation view: either a date
// label heading a calendar day, or a rendered message.
type ChatItem struct {
	Kind     string `json:"kind"`
	ID       string `json:"id"`
	BuddyID  string `json:"buddy,omitempty"`
	SenderID string `json:"sender,omitempty"`
	Name     string `json:"name,omitempty"`
	Text     string `json:"text"`
	TimeText string `json:"stamp,omitempty"`
	Sent     bool   `json:"sent,omitempty"`
}

// ChatItems returns the conversation with buddyID as a display sequence:
// messages in chronological order, each calendar day preceded by a single
// date label the first time it is encountered. The sequence is computed
// from a snapshot of the log taken at call time and is meant to be ranged
// over once per render.
//
// The log is sorted by timestamp (stable) before grouping, so correctness
// does not depend on the server returning messages in order.
func (s *BuddyStore) ChatItems(buddyID string) iter.Seq[ChatItem] {
	currentUserID := s.auth.UserID()

	s.mu.RLock()
	loc := s.loc
	var filtered []models.Message
	for _, m := range s.messages {
		if m.BuddyID == buddyID {
			filtered = append(filtered, m)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Timestamp.Before(filtered[j].Timestamp)
	})

	return func(yield func(ChatItem) bool) {
		currentLabel := ""
		labels := 0

		for _, m := range filtered {
			ts := m.Timestamp.In(loc)

			label := utils.DayLabel(ts)
			if label != currentLabel {
				labels++
				item := ChatItem{
					Kind: ItemLabel,
					ID:   fmt.Sprintf("label-%d", labels),
					Text: label,
				}
				if !yield(item) {
					return
				}
				currentLabel = label
			}

			item := ChatItem{
				Kind:     ItemMessage,
				ID:       m.ID,
				BuddyID:  m.BuddyID,
				SenderID: m.SenderID,
				Name:     m.Name,
				Text:     m.Text,
				TimeText: utils.ClockTime(ts),
				Sent:     m.SenderID == currentUserID,
			}
			if !yield(item) {
				return
			}
		}
	}
}
