// Package database holds the development backend's dataset. It is a plain
// in-memory store: the app's non-goal of cross-session persistence means
// the dev backend starts from seed fixtures on every run.
package database

import (
	"errors"
	"log"
	"slices"
	"sync"
	"time"

	"buybuddysave/models"
)

var ErrDuplicateUsername = errors.New("username already exists")

type Dataset struct {
	mu            sync.RWMutex
	users         []models.User
	profiles      map[string]*models.UserProfile
	requests      []models.BuddyRequest
	buddies       []models.Buddy
	reviewBuddies []models.Buddy
	notifications []models.Notification
	messages      []models.Message
	stores        []models.Store
	deals         []models.Deal
	shoppingLists []models.ShoppingList
}

var DB *Dataset

func Init() {
	DB = NewDataset()
}

func NewDataset() *Dataset {
	return &Dataset{profiles: make(map[string]*models.UserProfile)}
}

func (d *Dataset) CreateUser(user models.User) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, u := range d.users {
		if u.Username == user.Username {
			return ErrDuplicateUsername
		}
	}
	d.users = append(d.users, user)
	return nil
}

func (d *Dataset) UserByUsername(username string) (models.User, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, u := range d.users {
		if u.Username == username {
			return u, true
		}
	}
	return models.User{}, false
}

func (d *Dataset) UserByID(id string) (models.User, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, u := range d.users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

func (d *Dataset) ProfileByUserID(userID string) *models.UserProfile {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.profiles[userID]
}

func (d *Dataset) SetProfile(profile models.UserProfile) {
	d.mu.Lock()
	d.profiles[profile.UserID] = &profile
	d.mu.Unlock()
}

func (d *Dataset) Requests() []models.BuddyRequest {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.requests)
}

func (d *Dataset) AddRequest(request models.BuddyRequest) {
	d.mu.Lock()
	d.requests = append(d.requests, request)
	d.mu.Unlock()
}

func (d *Dataset) UpdateRequestStatus(id, status string) (models.BuddyRequest, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i := range d.requests {
		if d.requests[i].ID == id {
			d.requests[i].Status = status
			return d.requests[i], true
		}
	}
	return models.BuddyRequest{}, false
}

func (d *Dataset) Buddies() []models.Buddy {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.buddies)
}

func (d *Dataset) BuddyByID(id string) (models.Buddy, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, b := range d.buddies {
		if b.ID == id {
			return b, true
		}
	}
	return models.Buddy{}, false
}

func (d *Dataset) AddBuddy(buddy models.Buddy) {
	d.mu.Lock()
	d.buddies = append(d.buddies, buddy)
	d.mu.Unlock()
}

func (d *Dataset) ReviewBuddies() []models.Buddy {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.reviewBuddies)
}

func (d *Dataset) Notifications(userID string) []models.Notification {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var out []models.Notification
	for _, n := range d.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

func (d *Dataset) AddNotification(notification models.Notification) {
	d.mu.Lock()
	d.notifications = append(d.notifications, notification)
	d.mu.Unlock()
}

func (d *Dataset) Messages() []models.Message {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.messages)
}

func (d *Dataset) AddMessage(message models.Message) {
	d.mu.Lock()
	d.messages = append(d.messages, message)
	d.mu.Unlock()
}

func (d *Dataset) Stores() []models.Store {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.stores)
}

func (d *Dataset) Deals() []models.Deal {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.deals)
}

func (d *Dataset) ShoppingLists() []models.ShoppingList {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.shoppingLists)
}

func (d *Dataset) AddShoppingList(list models.ShoppingList) {
	d.mu.Lock()
	d.shoppingLists = append(d.shoppingLists, list)
	d.mu.Unlock()
}

func (d *Dataset) ReplaceShoppingList(list models.ShoppingList) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i := range d.shoppingLists {
		if d.shoppingLists[i].ID == list.ID {
			d.shoppingLists[i] = list
			return true
		}
	}
	return false
}

// Seed loads the development fixtures: a few stores around Berlin (one
// without a location) and a deal catalog, including a deal whose store is
// deliberately missing so the unknown-distance path shows up in the UI.
func (d *Dataset) Seed() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stores = []models.Store{
		{
			ID:          "store-mitte",
			Name:        "Mitte Market",
			Address:     "Alexanderplatz 1, Berlin",
			PhoneNumber: "+49 30 1234567",
			Website:     "https://mitte-market.example",
			Location:    &models.Location{Type: "Point", Coordinates: []float64{13.4050, 52.5200}},
		},
		{
			ID:          "store-kreuzberg",
			Name:        "Kreuzberg Grocer",
			Address:     "Oranienstr. 10, Berlin",
			PhoneNumber: "+49 30 7654321",
			Website:     "https://kreuzberg-grocer.example",
			Location:    &models.Location{Type: "Point", Coordinates: []float64{13.4234, 52.4996}},
		},
		{
			ID:      "store-popup",
			Name:    "Pop-up Stand",
			Address: "changes weekly",
		},
	}

	d.deals = []models.Deal{
		{ID: "deal-1", StoreID: "store-mitte", Name: "Coffee beans 1kg", Description: "single origin", Price: "9.99"},
		{ID: "deal-2", StoreID: "store-kreuzberg", Name: "Olive oil 750ml", Description: "cold pressed", Price: "6.49"},
		{ID: "deal-3", StoreID: "store-popup", Name: "Mystery box", Description: "location unknown", Price: "4.00"},
		{ID: "deal-4", StoreID: "store-gone", Name: "Ghost deal", Description: "store closed down", Price: "1.00"},
	}

	now := time.Now()
	d.messages = []models.Message{
		{ID: "msg-seed-1", BuddyID: "buddy-demo", SenderID: "user-demo", Name: "Demo", Text: "welcome to buybuddysave", Timestamp: now},
	}

	log.Printf("Seeded dataset: %d stores, %d deals", len(d.stores), len(d.deals))
}
