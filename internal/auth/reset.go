package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"patentq/internal/apperr"
	"patentq/internal/models"
	"patentq/internal/store"
	"patentq/internal/util"
)

// A user has at most one outstanding challenge: RequestReset overwrites
// it, Verify consumes it, Reset clears whatever is left.

// RequestReset issues a fresh code for email and mails it. If the mail
// cannot be sent the user's previous reset state is put back, so an
// undelivered code never stays valid.
func (s *Service) RequestReset(ctx context.Context, email string) error {
	email = util.NormalizeEmail(email)
	if email == "" {
		return ErrEmailRequired
	}
	u, err := s.findForReset(ctx, email)
	if err != nil {
		return err
	}

	code, err := generateCode(s.rand)
	if err != nil {
		return apperr.Dependency("generate reset code", err)
	}
	expiry := s.now().UTC().Add(s.opts.OTPTTL)
	if err := s.users.SetResetOTP(ctx, email, code, expiry); err != nil {
		return apperr.Dependency("store reset code", err)
	}

	subject := "Your password reset code"
	body := fmt.Sprintf("Dear %s,\n\nYour password reset code is: %s\nIt expires in %s.\n\nIf you did not ask for a reset you can ignore this email.",
		u.Username, code, s.opts.OTPTTL)
	if err := s.mailer.Send(ctx, email, subject, body); err != nil {
		s.restoreChallenge(ctx, u)
		s.log.Errorw("sending reset code failed", "email", email, "error", err)
		return apperr.Dependency("send reset code", err)
	}
	s.log.Infow("reset code sent", "email", email, "expires_at", expiry)
	return nil
}

// ResendReset is RequestReset under another name: a new code, a new timer,
// and the old code stops working.
func (s *Service) ResendReset(ctx context.Context, email string) error {
	return s.RequestReset(ctx, email)
}

// Verify consumes the outstanding code for email. On success it returns a
// reset token that Reset accepts as proof of verification.
func (s *Service) Verify(ctx context.Context, email, code string) (string, error) {
	email = util.NormalizeEmail(email)
	if email == "" {
		return "", ErrEmailRequired
	}
	u, err := s.findForReset(ctx, email)
	if err != nil {
		return "", err
	}
	if !u.HasChallenge() {
		return "", ErrNoChallenge
	}
	if !codesEqual(*u.ResetOTP, strings.TrimSpace(code)) {
		return "", ErrInvalidOTP
	}
	if s.now().After(*u.ResetOTPExpiration) {
		return "", ErrExpiredOTP
	}

	if err := s.users.ClearResetOTP(ctx, email); err != nil {
		return "", apperr.Dependency("clear reset code", err)
	}
	token, err := s.tokens.IssueReset(u.ID.Hex())
	if err != nil {
		return "", apperr.Dependency("sign reset token", err)
	}
	s.log.Infow("reset code verified", "email", email)
	return token, nil
}

// Reset stores a new password for email. Unless RequireResetToken is set it
// does not check that Verify succeeded first.
func (s *Service) Reset(ctx context.Context, email, newPassword, resetToken string) error {
	email = util.NormalizeEmail(email)
	if email == "" {
		return ErrEmailRequired
	}
	if err := util.ValidatePassword(newPassword); err != nil {
		return apperr.Validation("Password must be at least 6 characters")
	}
	u, err := s.findForReset(ctx, email)
	if err != nil {
		return err
	}

	if s.opts.RequireResetToken {
		if resetToken == "" {
			return ErrResetTokenRequired
		}
		id, err := s.tokens.VerifyReset(resetToken)
		if err != nil || id != u.ID.Hex() {
			return ErrResetTokenInvalid
		}
	}

	hash, err := hashPassword(newPassword, s.opts.BcryptCost)
	if err != nil {
		return apperr.Dependency("hash password", err)
	}
	if err := s.users.UpdatePassword(ctx, email, hash); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrEmailNotFound
		}
		return apperr.Dependency("update password", err)
	}
	s.log.Infow("password reset", "email", email)
	return nil
}

func (s *Service) findForReset(ctx context.Context, email string) (*models.User, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrEmailNotFound
	}
	if err != nil {
		return nil, apperr.Dependency("look up user", err)
	}
	return u, nil
}

// restoreChallenge puts back the reset fields u had before a failed
// request. It runs even if ctx was cancelled.
func (s *Service) restoreChallenge(ctx context.Context, u *models.User) {
	ctx = context.WithoutCancel(ctx)
	var err error
	if u.HasChallenge() {
		err = s.users.SetResetOTP(ctx, u.Email, *u.ResetOTP, *u.ResetOTPExpiration)
	} else {
		err = s.users.ClearResetOTP(ctx, u.Email)
	}
	if err != nil {
		s.log.Errorw("restoring reset state failed", "email", u.Email, "error", err)
	}
}
