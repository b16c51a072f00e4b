package patents

import (
	"context"
	"errors"
	"testing"

	"patentq/internal/apperr"
	"patentq/internal/logger"
	"patentq/internal/models"
	"patentq/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(t *testing.T, numbers ...string) *Service {
	t.Helper()
	st := store.NewMemoryPatentStore()
	for _, n := range numbers {
		require.NoError(t, st.Upsert(context.Background(), &models.Patent{
			PatentNumber: n,
			Inventors:    []models.Inventor{{FirstName: "Ada", LastName: "Lovelace", Country: "GB"}},
		}))
	}
	return NewService(st, logger.Nop())
}

func numbersOf(ps []models.Patent) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.PatentNumber
	}
	return out
}

func TestSearch(t *testing.T) {
	t.Parallel()
	svc := seeded(t, "US100", "US200", "US300")
	ctx := context.Background()

	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"single", "US200", []string{"US200"}},
		{"input order", "US300, US100", []string{"US300", "US100"}},
		{"duplicates collapse", "US100,US100, US100", []string{"US100"}},
		{"partial hit", "US100,NOPE,US300", []string{"US100", "US300"}},
		{"blank entries", " ,US200,, ", []string{"US200"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Search(ctx, tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, numbersOf(got))
		})
	}
}

func TestSearch_Errors(t *testing.T) {
	t.Parallel()
	svc := seeded(t, "US100")
	ctx := context.Background()

	_, err := svc.Search(ctx, "")
	assert.ErrorIs(t, err, ErrNumbersRequired)

	_, err = svc.Search(ctx, " , ,")
	assert.ErrorIs(t, err, ErrNoValidNumbers)

	_, err = svc.Search(ctx, "US999,US998")
	assert.ErrorIs(t, err, ErrNoPatents)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

type brokenStore struct{ store.PatentStore }

func (brokenStore) FindByNumbers(context.Context, []string) ([]models.Patent, error) {
	return nil, errors.New("connection reset")
}

func (brokenStore) List(context.Context) ([]models.Patent, error) {
	return nil, errors.New("connection reset")
}

func TestSearch_StoreFailure(t *testing.T) {
	t.Parallel()
	svc := NewService(brokenStore{}, logger.Nop())

	_, err := svc.Search(context.Background(), "US100")
	assert.Equal(t, apperr.KindDependency, apperr.KindOf(err))

	_, err = svc.List(context.Background())
	assert.Equal(t, apperr.KindDependency, apperr.KindOf(err))
}

func TestList(t *testing.T) {
	t.Parallel()
	svc := seeded(t, "US300", "US100", "US200")

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"US100", "US200", "US300"}, numbersOf(all))
}
