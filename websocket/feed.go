package websocket

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/gorilla/websocket"
	"buybuddysave/models"
	"buybuddysave/state"
)

// Feed is the SDK side of the chat socket: it dials the hub and appends
// every pushed message into the buddy store, which is what keeps the
// message log live between fetches.
type Feed struct {
	conn  *websocket.Conn
	store *state.BuddyStore
	done  chan struct{}
}

type rawEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// DialFeed connects to the chat socket at wsURL (ws:// or wss://) using the
// session token and starts the read loop.
func DialFeed(wsURL, token string, store *state.BuddyStore) (*Feed, error) {
	conn, _, err := websocket.DefaultDialer.Dial(wsURL+"?token="+url.QueryEscape(token), nil)
	if err != nil {
		return nil, fmt.Errorf("dial chat feed: %w", err)
	}

	f := &Feed{
		conn:  conn,
		store: store,
		done:  make(chan struct{}),
	}
	go f.readPump()
	return f, nil
}

func (f *Feed) readPump() {
	defer close(f.done)

	for {
		var event rawEvent
		if err := f.conn.ReadJSON(&event); err != nil {
			return
		}

		if event.Event != "new_message" {
			continue
		}

		var message models.Message
		if err := json.Unmarshal(event.Data, &message); err != nil {
			continue
		}
		f.store.AddMessage(message)
	}
}

// Send pushes a chat message into the conversation identified by buddyID.
func (f *Feed) Send(buddyID, text string) error {
	msg := ClientMessage{Action: "send_message", BuddyID: buddyID, Text: text}
	if err := f.conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("send chat message: %w", err)
	}
	return nil
}

// Done is closed when the read loop exits.
func (f *Feed) Done() <-chan struct{} {
	return f.done
}

func (f *Feed) Close() error {
	return f.conn.Close()
}
