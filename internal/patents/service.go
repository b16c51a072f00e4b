// Package patents serves read access to the patent collection.
package patents

import (
	"context"
	"strings"

	"patentq/internal/apperr"
	"patentq/internal/models"
	"patentq/internal/store"
	"patentq/internal/util"

	"go.uber.org/zap"
)

var (
	ErrNumbersRequired = apperr.Validation("Patent numbers are required")
	ErrNoValidNumbers  = apperr.Validation("No valid patent numbers provided")
	ErrNoPatents       = apperr.NotFound("No patents found")
)

type Service struct {
	patents store.PatentStore
	log     *zap.SugaredLogger
}

func NewService(patents store.PatentStore, log *zap.SugaredLogger) *Service {
	return &Service{patents: patents, log: log}
}

// Search looks up every number in the comma separated list raw. Results
// follow the order of first appearance in raw; numbers with no record are
// left out. It returns ErrNoPatents when nothing matches.
func (s *Service) Search(ctx context.Context, raw string) ([]models.Patent, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrNumbersRequired
	}
	numbers := util.SplitList(raw)
	if len(numbers) == 0 {
		return nil, ErrNoValidNumbers
	}

	found, err := s.patents.FindByNumbers(ctx, numbers)
	if err != nil {
		return nil, apperr.Dependency("find patents", err)
	}
	if len(found) == 0 {
		return nil, ErrNoPatents
	}

	byNumber := make(map[string]models.Patent, len(found))
	for _, p := range found {
		byNumber[p.PatentNumber] = p
	}
	out := make([]models.Patent, 0, len(found))
	for _, n := range numbers {
		if p, ok := byNumber[n]; ok {
			out = append(out, p)
		}
	}
	s.log.Debugw("patent search", "requested", len(numbers), "found", len(out))
	return out, nil
}

// List returns the whole collection ordered by patent number.
func (s *Service) List(ctx context.Context) ([]models.Patent, error) {
	all, err := s.patents.List(ctx)
	if err != nil {
		return nil, apperr.Dependency("list patents", err)
	}
	return all, nil
}
