package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"patentq/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryUserStore is a UserStore backed by a map. Records are copied in and
// out so callers never share state with the store.
type MemoryUserStore struct {
	mu      sync.RWMutex
	byEmail map[string]*models.User
	now     func() time.Time
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{byEmail: make(map[string]*models.User), now: time.Now}
}

func (s *MemoryUserStore) Create(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byEmail[u.Email]; ok {
		return ErrDuplicate
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = s.now().UTC()
	}
	s.byEmail[u.Email] = cloneUser(u)
	return nil
}

func (s *MemoryUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneUser(u), nil
}

func (s *MemoryUserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.byEmail {
		if u.ID == oid {
			return cloneUser(u), nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryUserStore) SetResetOTP(ctx context.Context, email, code string, expiry time.Time) error {
	return s.update(email, func(u *models.User) {
		u.ResetOTP = &code
		u.ResetOTPExpiration = &expiry
	})
}

func (s *MemoryUserStore) ClearResetOTP(ctx context.Context, email string) error {
	return s.update(email, func(u *models.User) {
		u.ResetOTP = nil
		u.ResetOTPExpiration = nil
	})
}

func (s *MemoryUserStore) UpdatePassword(ctx context.Context, email, hash string) error {
	return s.update(email, func(u *models.User) {
		u.PasswordHash = hash
		u.ResetOTP = nil
		u.ResetOTPExpiration = nil
	})
}

func (s *MemoryUserStore) update(email string, fn func(u *models.User)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byEmail[email]
	if !ok {
		return ErrNotFound
	}
	fn(u)
	return nil
}

func cloneUser(u *models.User) *models.User {
	c := *u
	if u.ResetOTP != nil {
		code := *u.ResetOTP
		c.ResetOTP = &code
	}
	if u.ResetOTPExpiration != nil {
		exp := *u.ResetOTPExpiration
		c.ResetOTPExpiration = &exp
	}
	return &c
}

// MemoryPatentStore is a PatentStore backed by a map.
type MemoryPatentStore struct {
	mu       sync.RWMutex
	byNumber map[string]*models.Patent
	now      func() time.Time
}

func NewMemoryPatentStore() *MemoryPatentStore {
	return &MemoryPatentStore{byNumber: make(map[string]*models.Patent), now: time.Now}
}

func (s *MemoryPatentStore) Upsert(ctx context.Context, p *models.Patent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now().UTC()
	stored := clonePatent(p)
	if prev, ok := s.byNumber[p.PatentNumber]; ok {
		stored.ID = prev.ID
		stored.CreatedAt = prev.CreatedAt
	} else {
		stored.ID = primitive.NewObjectID()
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now
	s.byNumber[p.PatentNumber] = stored
	return nil
}

func (s *MemoryPatentStore) FindByNumbers(ctx context.Context, numbers []string) ([]models.Patent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Patent, 0, len(numbers))
	for _, n := range numbers {
		if p, ok := s.byNumber[n]; ok {
			out = append(out, *clonePatent(p))
		}
	}
	return out, nil
}

func (s *MemoryPatentStore) List(ctx context.Context) ([]models.Patent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Patent, 0, len(s.byNumber))
	for _, p := range s.byNumber {
		out = append(out, *clonePatent(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PatentNumber < out[j].PatentNumber })
	return out, nil
}

func clonePatent(p *models.Patent) *models.Patent {
	c := *p
	if p.Assignee != nil {
		a := *p.Assignee
		a.City = cloneString(a.City)
		a.State = cloneString(a.State)
		c.Assignee = &a
	}
	c.Inventors = make([]models.Inventor, len(p.Inventors))
	for i, inv := range p.Inventors {
		inv.City = cloneString(inv.City)
		inv.State = cloneString(inv.State)
		c.Inventors[i] = inv
	}
	return &c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
