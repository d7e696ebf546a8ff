package memory_test

import (
	"context"
	"testing"
	"time"

	domain "github.com/Zhima-Mochi/customer-events/internal/domain/customer"
	"github.com/Zhima-Mochi/customer-events/internal/infrastructure/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerRepository_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewCustomerRepository()

	c, err := domain.New("c-1", "John")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, c))

	got, err := repo.Get(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, *c, *got)

	// stored values are isolated from callers
	got.Name = "mutated"
	again, err := repo.Get(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, "John", again.Name)

	require.NoError(t, repo.Delete(ctx, "c-1"))
	_, err = repo.Get(ctx, "c-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "c-1"), domain.ErrNotFound)
}

func TestCustomerRepository_SaveKeepsCreatedAt(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewCustomerRepository()

	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(ctx, &domain.Customer{ID: "c-1", Name: "John", CreatedAt: created}))
	require.NoError(t, repo.Save(ctx, &domain.Customer{ID: "c-1", Name: "Jane", CreatedAt: time.Now()}))

	got, err := repo.Get(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, "Jane", got.Name)
	assert.Equal(t, created, got.CreatedAt)
	assert.Equal(t, 1, repo.Len())
}

func TestCustomerRepository_SaveRequiresID(t *testing.T) {
	repo := memory.NewCustomerRepository()

	assert.Error(t, repo.Save(context.Background(), nil))
	assert.Error(t, repo.Save(context.Background(), &domain.Customer{Name: "John"}))
	assert.Zero(t, repo.Len())
}
