package state

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"buybuddysave/api"
	"buybuddysave/models"
)

// ErrNotPending is returned when accepting or declining a request that has
// already reached a terminal status.
var ErrNotPending = errors.New("buddy request is not pending")

// BuddyStore owns the buddy-request lifecycle, the accepted-buddy list and
// the flat message log.
type BuddyStore struct {
	mu            sync.RWMutex
	client        *api.Client
	auth          *AuthStore
	loc           *time.Location
	requests      []models.BuddyRequest
	buddies       []models.Buddy
	reviewBuddies []models.Buddy
	notifications []models.Notification
	messages      []models.Message
}

func NewBuddyStore(client *api.Client, auth *AuthStore) *BuddyStore {
	return &BuddyStore{
		client: client,
		auth:   auth,
		loc:    time.Local,
	}
}

// SetLocation sets the time zone used to render date labels and time
// stamps. Defaults to the local zone.
func (s *BuddyStore) SetLocation(loc *time.Location) {
	s.mu.Lock()
	s.loc = loc
	s.mu.Unlock()
}

func (s *BuddyStore) FetchRequests(ctx context.Context) error {
	var requests []models.BuddyRequest
	if err := s.client.Get(ctx, "buddy_requests/", &requests); err != nil {
		return fmt.Errorf("fetch buddy requests: %w", err)
	}

	s.mu.Lock()
	s.requests = requests
	s.mu.Unlock()
	return nil
}

func (s *BuddyStore) FetchBuddies(ctx context.Context) error {
	var buddies []models.Buddy
	if err := s.client.Get(ctx, "buddy_requests/buddy/", &buddies); err != nil {
		return fmt.Errorf("fetch buddies: %w", err)
	}

	s.mu.Lock()
	s.buddies = buddies
	s.mu.Unlock()
	return nil
}

func (s *BuddyStore) FetchReviewBuddies(ctx context.Context) error {
	var buddies []models.Buddy
	if err := s.client.Get(ctx, "buddy_requests/review/", &buddies); err != nil {
		return fmt.Errorf("fetch review buddies: %w", err)
	}

	s.mu.Lock()
	s.reviewBuddies = buddies
	s.mu.Unlock()
	return nil
}

func (s *BuddyStore) FetchNotifications(ctx context.Context) error {
	var notifications []models.Notification
	if err := s.client.Get(ctx, "buddy_requests/notification/", &notifications); err != nil {
		return fmt.Errorf("fetch notifications: %w", err)
	}

	s.mu.Lock()
	s.notifications = notifications
	s.mu.Unlock()
	return nil
}

func (s *BuddyStore) FetchMessages(ctx context.Context) error {
	var messages []models.Message
	if err := s.client.Get(ctx, "chat/", &messages); err != nil {
		return fmt.Errorf("fetch messages: %w", err)
	}

	s.mu.Lock()
	s.messages = messages
	s.mu.Unlock()
	return nil
}

func (s *BuddyStore) Requests() []models.BuddyRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.requests)
}

func (s *BuddyStore) Buddies() []models.Buddy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.buddies)
}

func (s *BuddyStore) ReviewBuddies() []models.Buddy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.reviewBuddies)
}

func (s *BuddyStore) Notifications() []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.notifications)
}

func (s *BuddyStore) Messages() []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.messages)
}

// SendRequest creates a new buddy request. The server response carries the
// assigned id, status and timestamp and is appended to the local list.
func (s *BuddyStore) SendRequest(ctx context.Context, request models.BuddyRequest) error {
	var created models.BuddyRequest
	if err := s.client.Post(ctx, "buddy_requests/", request, &created); err != nil {
		return fmt.Errorf("send buddy request: %w", err)
	}

	s.mu.Lock()
	s.requests = append(s.requests, created)
	s.mu.Unlock()
	return nil
}

// Accept transitions a pending request to accepted, then creates the buddy
// record derived from the request. The server response supersedes the local
// copy of the request; the buddy response is appended to the buddy list.
func (s *BuddyStore) Accept(ctx context.Context, request models.BuddyRequest) error {
	if request.Status != models.RequestPending {
		return fmt.Errorf("accept request %s: %w", request.ID, ErrNotPending)
	}

	payload := request
	payload.Status = models.RequestAccepted

	var updated models.BuddyRequest
	if err := s.client.Put(ctx, "buddy_requests/"+request.ID+"/", payload, &updated); err != nil {
		return fmt.Errorf("accept request %s: %w", request.ID, err)
	}
	s.replaceRequest(updated)

	return s.CreateBuddy(ctx, *request.ToBuddyCreate())
}

// Decline transitions a pending request to declined. No buddy is created.
func (s *BuddyStore) Decline(ctx context.Context, request models.BuddyRequest) error {
	if request.Status != models.RequestPending {
		return fmt.Errorf("decline request %s: %w", request.ID, ErrNotPending)
	}

	payload := request
	payload.Status = models.RequestDeclined

	var updated models.BuddyRequest
	if err := s.client.Put(ctx, "buddy_requests/"+request.ID+"/", payload, &updated); err != nil {
		return fmt.Errorf("decline request %s: %w", request.ID, err)
	}
	s.replaceRequest(updated)
	return nil
}

func (s *BuddyStore) CreateBuddy(ctx context.Context, buddy models.Buddy) error {
	var created models.Buddy
	if err := s.client.Post(ctx, "buddy_requests/buddy/", buddy, &created); err != nil {
		return fmt.Errorf("create buddy: %w", err)
	}

	s.mu.Lock()
	s.buddies = append(s.buddies, created)
	s.mu.Unlock()
	return nil
}

// AddMessage appends a message pushed by the chat feed.
func (s *BuddyStore) AddMessage(message models.Message) {
	s.mu.Lock()
	s.messages = append(s.messages, message)
	s.mu.Unlock()
}

// UnreadCount returns the number of unread messages in a conversation that
// were sent by someone other than the current user.
func (s *BuddyStore) UnreadCount(buddyID string) int {
	currentUserID := s.auth.UserID()

	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, m := range s.messages {
		if m.BuddyID == buddyID && m.SenderID != currentUserID && !m.Read {
			count++
		}
	}
	return count
}

// replaceRequest swaps in the server's copy of a request, keyed on id so a
// refetched instance of the same logical request still gets updated.
func (s *BuddyStore) replaceRequest(updated models.BuddyRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.requests {
		if r.ID == updated.ID {
			s.requests[i] = updated
			return
		}
	}
	s.requests = append(s.requests, updated)
}
