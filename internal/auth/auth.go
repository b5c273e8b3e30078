// Package auth implements a local, in-memory account check. It accepts a
// single demo account and keeps registered profiles and sessions in process.
package auth

import (
	"errors"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/GustavoCaso/finbot/internal/util"
)

const (
	DemoEmail    = "demo@example.com"
	demoPassword = "password"
	demoUserID   = "1"
	demoUserName = "Demo User"
)

var (
	ErrInvalidCredentials = errors.New("Invalid email or password") //nolint:staticcheck // user facing
	ErrMissingFields      = errors.New("name, email and password are required")
	ErrUserNotFound       = errors.New("user not found")
)

type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

// ProfilePatch holds a partial profile update.
type ProfilePatch struct {
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty"`
	Avatar *string `json:"avatar,omitempty"`
}

type Service struct {
	mu       sync.RWMutex
	users    map[string]User
	demoHash []byte
	newID    func() string
}

func New() (*Service, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &Service{
		users: map[string]User{
			demoUserID: {ID: demoUserID, Name: demoUserName, Email: DemoEmail},
		},
		demoHash: hash,
		newID:    util.GenerateID,
	}, nil
}

// Login checks the credentials against the demo account.
func (s *Service) Login(email, password string) (User, error) {
	if !strings.EqualFold(strings.TrimSpace(email), DemoEmail) {
		return User{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(s.demoHash, []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}

	return s.User(demoUserID)
}

// Register creates a profile for a new user. The password is only checked
// for presence.
func (s *Service) Register(name, email, password string) (User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name == "" || email == "" || password == "" {
		return User{}, ErrMissingFields
	}

	user := User{ID: s.newID(), Name: name, Email: email}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[user.ID] = user
	return user, nil
}

func (s *Service) User(id string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return user, nil
}

func (s *Service) UpdateProfile(id string, patch ProfilePatch) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return User{}, ErrUserNotFound
	}

	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.Avatar != nil {
		user.Avatar = *patch.Avatar
	}

	s.users[id] = user
	return user, nil
}
