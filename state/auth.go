// Package state holds the client-side stores: each store owns a slice of
// server-mirrored data and exposes pure projections over it. Stores are
// constructed at session start and passed explicitly to their consumers;
// there are no package-level instances. Collections are guarded by a
// read-write mutex so the websocket feed can append while the UI reads,
// and remote calls always happen outside the lock.
package state

import (
	"context"
	"fmt"
	"sync"

	"buybuddysave/api"
	"buybuddysave/models"
	"buybuddysave/utils"
)

type AuthResponse struct {
	Token   string              `json:"token"`
	User    models.UserResponse `json:"user"`
	Profile *models.UserProfile `json:"profile,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthStore owns the current session: token, identity and profile.
type AuthStore struct {
	mu      sync.RWMutex
	client  *api.Client
	token   string
	userID  string
	user    *models.UserResponse
	profile *models.UserProfile
}

func NewAuthStore(client *api.Client) *AuthStore {
	return &AuthStore{client: client}
}

func (s *AuthStore) Login(ctx context.Context, username, password string) error {
	var resp AuthResponse
	err := s.client.Post(ctx, "auth/login/", LoginRequest{Username: username, Password: password}, &resp)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	if err := s.SetToken(resp.Token); err != nil {
		return fmt.Errorf("login: %w", err)
	}

	s.mu.Lock()
	s.user = &resp.User
	s.profile = resp.Profile
	s.mu.Unlock()
	return nil
}

// SetToken installs a bearer token, deriving the current user id from its
// claims. Use an empty string to clear the session.
func (s *AuthStore) SetToken(token string) error {
	userID := ""
	if token != "" {
		claims, err := utils.ParseToken(token)
		if err != nil {
			return fmt.Errorf("parse token: %w", err)
		}
		userID = claims.UserID
	}

	s.mu.Lock()
	s.token = token
	s.userID = userID
	if token == "" {
		s.user = nil
		s.profile = nil
	}
	s.mu.Unlock()
	s.client.SetToken(token)
	return nil
}

func (s *AuthStore) Logout() {
	s.SetToken("")
}

func (s *AuthStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

func (s *AuthStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *AuthStore) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

func (s *AuthStore) User() *models.UserResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *AuthStore) Profile() *models.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

func (s *AuthStore) SetProfile(profile *models.UserProfile) {
	s.mu.Lock()
	s.profile = profile
	s.mu.Unlock()
}

// UpdateLocation stores the user's location remotely, then adopts the
// server's copy of the profile.
func (s *AuthStore) UpdateLocation(ctx context.Context, location *models.Location) error {
	var updated models.UserProfile
	payload := map[string]*models.Location{"location": location}
	if err := s.client.Put(ctx, "users/me/", payload, &updated); err != nil {
		return fmt.Errorf("update location: %w", err)
	}

	s.mu.Lock()
	s.profile = &updated
	s.mu.Unlock()
	return nil
}

type meResponse struct {
	User    models.UserResponse `json:"user"`
	Profile *models.UserProfile `json:"profile"`
}

func (s *AuthStore) FetchProfile(ctx context.Context) error {
	var resp meResponse
	if err := s.client.Get(ctx, "users/me/", &resp); err != nil {
		return fmt.Errorf("fetch profile: %w", err)
	}

	s.mu.Lock()
	s.user = &resp.User
	s.profile = resp.Profile
	s.mu.Unlock()
	return nil
}
