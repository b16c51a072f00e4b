// Package auth implements registration, login and the OTP password-reset
// flow on top of a UserStore, a token issuer and a mail sender.
package auth

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"patentq/internal/apperr"
	"patentq/internal/mail"
	"patentq/internal/models"
	"patentq/internal/store"
	"patentq/internal/util"

	"go.uber.org/zap"
)

// Options tunes the service. Zero values take the defaults.
type Options struct {
	OTPTTL time.Duration // default 120s
	// RequireResetToken makes Reset demand the token returned by Verify.
	RequireResetToken bool
	BcryptCost        int
}

type Service struct {
	users  store.UserStore
	tokens *Tokens
	mailer mail.Sender
	log    *zap.SugaredLogger
	opts   Options

	now  func() time.Time
	rand io.Reader // nil means crypto/rand
}

func NewService(users store.UserStore, tokens *Tokens, mailer mail.Sender, log *zap.SugaredLogger, opts Options) *Service {
	if opts.OTPTTL <= 0 {
		opts.OTPTTL = 120 * time.Second
	}
	return &Service{
		users:  users,
		tokens: tokens,
		mailer: mailer,
		log:    log,
		opts:   opts,
		now:    time.Now,
	}
}

// Register creates a user with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, username, email, password string) error {
	username = strings.TrimSpace(username)
	email = util.NormalizeEmail(email)
	if username == "" || email == "" || password == "" {
		return ErrMissingFields
	}
	if !util.ValidateEmail(email) {
		return ErrInvalidEmail
	}
	if err := util.ValidatePassword(password); err != nil {
		return apperr.Validation("Password must be at least 6 characters")
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return ErrUserExists
	} else if !errors.Is(err, store.ErrNotFound) {
		return apperr.Dependency("check existing user", err)
	}

	hash, err := hashPassword(password, s.opts.BcryptCost)
	if err != nil {
		return apperr.Dependency("hash password", err)
	}
	u := &models.User{Username: username, Email: email, PasswordHash: hash}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return ErrUserExists
		}
		return apperr.Dependency("insert user", err)
	}
	s.log.Infow("user registered", "user_id", u.ID.Hex(), "email", email)
	return nil
}

// Login returns a session token. An unknown email and a wrong password are
// indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	email = util.NormalizeEmail(email)
	if email == "" || password == "" {
		return "", ErrInvalidCredentials
	}
	u, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", apperr.Dependency("look up user", err)
	}
	if !checkPassword(u.PasswordHash, password) {
		return "", ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(u.ID.Hex())
	if err != nil {
		return "", apperr.Dependency("sign token", err)
	}
	return token, nil
}

// Authenticate validates a session token and returns its user id.
func (s *Service) Authenticate(token string) (string, error) {
	return s.tokens.Verify(token)
}

// CurrentUser returns the profile of userID.
func (s *Service) CurrentUser(ctx context.Context, userID string) (*models.Profile, error) {
	u, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, apperr.Dependency("look up user", err)
	}
	return &models.Profile{Username: u.Username, Email: u.Email}, nil
}
