package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"choreboard/internal/models"
	"choreboard/internal/storage"
)

func TestCreateUserDuplicate(t *testing.T) {
	store := New()
	ctx := context.Background()

	_, err := store.CreateUser(ctx, models.User{Username: "bob", PasswordHash: "x", Role: models.RoleOrganizer})
	require.NoError(t, err)

	_, err = store.CreateUser(ctx, models.User{Username: "bob", PasswordHash: "y", Role: models.RoleMember})
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)
}

func TestFindUser(t *testing.T) {
	store := New()
	ctx := context.Background()

	_, err := store.FindUser(ctx, "nobody")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	created, err := store.CreateUser(ctx, models.User{Username: "alice", PasswordHash: "h", Role: models.RoleMember})
	require.NoError(t, err)
	assert.False(t, created.CreatedAt.IsZero())

	found, err := store.FindUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", found.Username)
	assert.Equal(t, models.RoleMember, found.Role)
}

func TestCreateChoreAssignsSequentialIDs(t *testing.T) {
	store := New()
	ctx := context.Background()

	first, err := store.CreateChore(ctx, models.Chore{Title: "Dishes", AssignedTo: "Alice", CreatedBy: "bob"})
	require.NoError(t, err)
	second, err := store.CreateChore(ctx, models.Chore{Title: "Laundry", AssignedTo: "Bob", CreatedBy: "bob"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	assert.False(t, first.Completed)

	chores, err := store.ListChores(ctx)
	require.NoError(t, err)
	require.Len(t, chores, 2)
	assert.Equal(t, "Dishes", chores[0].Title)
	assert.Equal(t, "Laundry", chores[1].Title)
}

func TestCompleteChore(t *testing.T) {
	store := New()
	ctx := context.Background()

	_, err := store.CompleteChore(ctx, 42)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	created, err := store.CreateChore(ctx, models.Chore{Title: "Trash", AssignedTo: "Carl"})
	require.NoError(t, err)

	completed, err := store.CompleteChore(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, completed.Completed)

	// Completing again is harmless.
	again, err := store.CompleteChore(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, again.Completed)
}

func TestDeleteChore(t *testing.T) {
	store := New()
	ctx := context.Background()

	created, err := store.CreateChore(ctx, models.Chore{Title: "Vacuum", AssignedTo: "Dana"})
	require.NoError(t, err)

	err = store.DeleteChore(ctx, created.ID)
	assert.ErrorIs(t, err, storage.ErrNotCompleted)

	_, err = store.CompleteChore(ctx, created.ID)
	require.NoError(t, err)

	require.NoError(t, store.DeleteChore(ctx, created.ID))

	err = store.DeleteChore(ctx, created.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	chores, err := store.ListChores(ctx)
	require.NoError(t, err)
	assert.Empty(t, chores)
}

func TestIDsNotReusedAfterDelete(t *testing.T) {
	store := New()
	ctx := context.Background()

	first, err := store.CreateChore(ctx, models.Chore{Title: "Mop", AssignedTo: "Eve"})
	require.NoError(t, err)
	_, err = store.CompleteChore(ctx, first.ID)
	require.NoError(t, err)
	require.NoError(t, store.DeleteChore(ctx, first.ID))

	second, err := store.CreateChore(ctx, models.Chore{Title: "Dust", AssignedTo: "Eve"})
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)
}
