// Package session holds the bearer token for the storefront API.
// Nothing reads the token ambiently; it travels as an explicit input
// into every authenticated call via storefront.TokenFunc.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/avries/shopwatch/internal/storefront"
)

// Session tracks the logged-in user, if any. The zero token means
// anonymous.
type Session struct {
	client *storefront.Client

	mu       sync.RWMutex
	token    string
	username string
}

// New builds an anonymous session over client.
func New(client *storefront.Client) *Session {
	return &Session{client: client}
}

// Resume seeds the session from a previously saved token, e.g. from
// the prefs file. The token is trusted until the server rejects it.
func (s *Session) Resume(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// Token returns the current bearer token, empty when logged out.
// Token satisfies storefront.TokenFunc.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Username returns the logged-in username when known.
func (s *Session) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username
}

// LoggedIn reports whether a token is held.
func (s *Session) LoggedIn() bool {
	return s.Token() != ""
}

// Login exchanges credentials for a token. The identifier may be a
// username or an email address.
func (s *Session) Login(ctx context.Context, identifier, password string) error {
	if identifier == "" || password == "" {
		return fmt.Errorf("identifier and password required")
	}
	resp, err := s.client.Login(ctx, identifier, password)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = resp.Token
	s.username = resp.Username
	return nil
}

// Register creates an account. It does not log in; callers follow up
// with Login.
func (s *Session) Register(ctx context.Context, username, email, password string) error {
	if username == "" || email == "" || password == "" {
		return fmt.Errorf("username, email and password required")
	}
	return s.client.Register(ctx, username, email, password)
}

// Logout drops the token and username.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.username = ""
}
