// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/mindtrack/internal/core"
	"github.com/carterperez-dev/mindtrack/internal/habit"
	"github.com/carterperez-dev/mindtrack/internal/testdb"
)

func TestCreateAndLookup(t *testing.T) {
	svc := NewService(NewRepository(testdb.New(t)))
	ctx := context.Background()

	created, err := svc.Create(ctx, "  Alice@Example.COM ", "hash")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", created.Email)
	assert.Equal(t, RoleUser, created.Role)

	byEmail, err := svc.GetByEmail(ctx, "ALICE@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	byID, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "hash", byID.PasswordHash)

	_, err = svc.Create(ctx, "alice@example.com", "other")
	assert.ErrorIs(t, err, core.ErrDuplicateKey)

	require.NoError(t, svc.UpdatePassword(ctx, created.ID, "rehashed"))
	byID, err = svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "rehashed", byID.PasswordHash)

	n, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestDeleteMeCascades(t *testing.T) {
	db := testdb.New(t)
	svc := NewService(NewRepository(db))
	habits := habit.NewService(habit.NewRepository(db))
	ctx := context.Background()

	u, err := svc.Create(ctx, "bob@example.com", "hash")
	require.NoError(t, err)

	h, err := habits.Create(ctx, u.ID, habit.CreateHabitRequest{Name: "Walk", Category: "exercise"})
	require.NoError(t, err)

	_, err = svc.GetMe(ctx, "")
	assert.ErrorIs(t, err, core.ErrUnauthorized)

	require.NoError(t, svc.DeleteMe(ctx, u.ID))

	_, err = svc.GetMe(ctx, u.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = habits.Get(ctx, u.ID, h.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)

	assert.ErrorIs(t, svc.DeleteMe(ctx, u.ID), core.ErrNotFound)
}
