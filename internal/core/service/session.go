package service

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"golang.org/x/crypto/bcrypt"
)

// Sessions owns login, logout and registration against the user
// directory and exposes the current identity, if any.
//
// Passwords are stored as bcrypt hashes, not the plain strings the
// key/value layout would also admit.
type Sessions struct {
	users    port.UserDirectory
	sessions port.SessionStore
	ttl      time.Duration
}

func NewSessions(
	users port.UserDirectory, sessions port.SessionStore, ttl time.Duration,
) *Sessions {
	return &Sessions{users: users, sessions: sessions, ttl: ttl}
}

// Register validates the form, creates the user record and establishes
// a session. The email is the directory key and is matched case-sensitively.
func (s *Sessions) Register(name, email, password, confirm string) error {
	const op = "Sessions.Register"
	log := slog.With("op", op)

	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name == "" {
		return fmt.Errorf("%s: %w: name is required", op, domain.ErrValidation)
	}
	if email == "" {
		return fmt.Errorf("%s: %w: email is required", op, domain.ErrValidation)
	}
	if len(password) < 8 {
		return fmt.Errorf(
			"%s: %w: password must be at least 8 characters",
			op, domain.ErrValidation,
		)
	}
	if password != confirm {
		return fmt.Errorf(
			"%s: %w: passwords do not match", op, domain.ErrValidation,
		)
	}

	users, err := s.users.Users()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, ok := users[email]; ok {
		log.Warn("registration rejected", "reason", "email in use")
		return fmt.Errorf("%s: %w", op, domain.ErrEmailInUse)
	}

	hash, err := bcrypt.GenerateFromPassword(
		[]byte(password), bcrypt.DefaultCost,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	users[email] = domain.UserRecord{Name: name, PasswordHash: string(hash)}
	if err := s.users.SaveUsers(users); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.sessions.SetIdentity(email, time.Now().Add(s.ttl))
	log.Info("user registered", "email", email)
	return nil
}

// Login establishes a session on success and changes nothing on failure.
func (s *Sessions) Login(email, password string) error {
	const op = "Sessions.Login"
	log := slog.With("op", op)

	email = strings.TrimSpace(email)

	users, err := s.users.Users()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	user, ok := users[email]
	if !ok {
		log.Warn("login rejected", "reason", "unknown email")
		return fmt.Errorf("%s: %w", op, domain.ErrAuth)
	}
	err = bcrypt.CompareHashAndPassword(
		[]byte(user.PasswordHash), []byte(password),
	)
	if err != nil {
		log.Warn("login rejected", "reason", "password mismatch")
		return fmt.Errorf("%s: %w", op, domain.ErrAuth)
	}

	s.sessions.SetIdentity(email, time.Now().Add(s.ttl))
	log.Info("user logged in", "email", email)
	return nil
}

// Logout destroys the session immediately.
func (s *Sessions) Logout() {
	const op = "Sessions.Logout"

	s.sessions.ClearIdentity()
	slog.With("op", op).Info("user logged out")
}

// Current returns the authenticated identity, or false when there is no
// session, the session expired, or it no longer resolves to a user record.
func (s *Sessions) Current() (string, bool) {
	identity, ok := s.sessions.Identity()
	if !ok {
		return "", false
	}
	users, err := s.users.Users()
	if err != nil {
		return "", false
	}
	if _, ok := users[identity]; !ok {
		return "", false
	}
	return identity, true
}

// UserName resolves the display name for an identity.
func (s *Sessions) UserName(identity string) string {
	users, err := s.users.Users()
	if err != nil {
		return ""
	}
	return users[identity].Name
}
