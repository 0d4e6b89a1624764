package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"choreboard/internal/models"
	"choreboard/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("users are unique by username", func(t *testing.T) {
		_, err := store.CreateUser(ctx, models.User{Username: "bob", PasswordHash: "h", Role: models.RoleOrganizer})
		if err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}

		_, err = store.CreateUser(ctx, models.User{Username: "bob", PasswordHash: "h2", Role: models.RoleMember})
		if !errors.Is(err, storage.ErrAlreadyExists) {
			t.Errorf("duplicate CreateUser: got %v, want ErrAlreadyExists", err)
		}

		found, err := store.FindUser(ctx, "bob")
		if err != nil {
			t.Fatalf("FindUser failed: %v", err)
		}
		if found.Role != models.RoleOrganizer {
			t.Errorf("Role mismatch: got %s, want %s", found.Role, models.RoleOrganizer)
		}

		if _, err := store.FindUser(ctx, "nobody"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("FindUser unknown: got %v, want ErrNotFound", err)
		}
	})

	t.Run("chore lifecycle", func(t *testing.T) {
		chore, err := store.CreateChore(ctx, models.Chore{Title: "Dishes", AssignedTo: "Alice", CreatedBy: "bob"})
		if err != nil {
			t.Fatalf("CreateChore failed: %v", err)
		}
		if chore.ID == 0 {
			t.Error("Expected chore ID to be assigned")
		}
		if chore.Completed {
			t.Error("Expected new chore to be pending")
		}

		if err := store.DeleteChore(ctx, chore.ID); !errors.Is(err, storage.ErrNotCompleted) {
			t.Errorf("delete pending chore: got %v, want ErrNotCompleted", err)
		}

		completed, err := store.CompleteChore(ctx, chore.ID)
		if err != nil {
			t.Fatalf("CompleteChore failed: %v", err)
		}
		if !completed.Completed {
			t.Error("Expected chore to be completed")
		}

		if err := store.DeleteChore(ctx, chore.ID); err != nil {
			t.Fatalf("DeleteChore failed: %v", err)
		}
		if err := store.DeleteChore(ctx, chore.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("delete deleted chore: got %v, want ErrNotFound", err)
		}
	})

	t.Run("ids are not reused after delete", func(t *testing.T) {
		first, err := store.CreateChore(ctx, models.Chore{Title: "Mop", AssignedTo: "Eve", CreatedBy: "bob"})
		if err != nil {
			t.Fatalf("CreateChore failed: %v", err)
		}
		if _, err := store.CompleteChore(ctx, first.ID); err != nil {
			t.Fatalf("CompleteChore failed: %v", err)
		}
		if err := store.DeleteChore(ctx, first.ID); err != nil {
			t.Fatalf("DeleteChore failed: %v", err)
		}

		second, err := store.CreateChore(ctx, models.Chore{Title: "Dust", AssignedTo: "Eve", CreatedBy: "bob"})
		if err != nil {
			t.Fatalf("CreateChore failed: %v", err)
		}
		if second.ID <= first.ID {
			t.Errorf("id reused: got %d after deleting %d", second.ID, first.ID)
		}
	})

	t.Run("list preserves insertion order", func(t *testing.T) {
		listStore := newTestStore(t)

		titles := []string{"One", "Two", "Three"}
		for _, title := range titles {
			if _, err := listStore.CreateChore(ctx, models.Chore{Title: title, AssignedTo: "x", CreatedBy: "bob"}); err != nil {
				t.Fatalf("CreateChore failed: %v", err)
			}
		}

		chores, err := listStore.ListChores(ctx)
		if err != nil {
			t.Fatalf("ListChores failed: %v", err)
		}
		if len(chores) != len(titles) {
			t.Fatalf("chore count mismatch: got %d, want %d", len(chores), len(titles))
		}
		for i, title := range titles {
			if chores[i].Title != title {
				t.Errorf("order mismatch at %d: got %s, want %s", i, chores[i].Title, title)
			}
		}
	})
}
