// Package store holds the persistence adapters for users and patents. Two
// implementations exist: MongoDB for deployments and an in-memory store for
// local runs and tests.
package store

import (
	"context"
	"errors"
	"time"

	"patentq/internal/models"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate key")
)

// UserStore persists user records keyed by email.
type UserStore interface {
	// Create inserts u, assigning ID and CreatedAt when unset. Returns
	// ErrDuplicate when the email is taken.
	Create(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	// SetResetOTP overwrites any outstanding challenge.
	SetResetOTP(ctx context.Context, email, code string, expiry time.Time) error
	ClearResetOTP(ctx context.Context, email string) error
	// UpdatePassword stores a new hash and clears the reset fields.
	UpdatePassword(ctx context.Context, email, hash string) error
}

// PatentStore persists patents keyed by patent number.
type PatentStore interface {
	// Upsert replaces the assignee and inventors of the patent with the
	// same number, or inserts it. CreatedAt survives a replace.
	Upsert(ctx context.Context, p *models.Patent) error
	FindByNumbers(ctx context.Context, numbers []string) ([]models.Patent, error)
	List(ctx context.Context) ([]models.Patent, error)
}

var (
	_ UserStore   = (*MemoryUserStore)(nil)
	_ UserStore   = (*MongoUserStore)(nil)
	_ PatentStore = (*MemoryPatentStore)(nil)
	_ PatentStore = (*MongoPatentStore)(nil)
)
