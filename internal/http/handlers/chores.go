package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"choreboard/internal/http/respond"
	"choreboard/internal/middleware"
	"choreboard/internal/models"
	"choreboard/internal/storage"
)

// ChoreHandler owns the chore CRUD endpoints.
type ChoreHandler struct {
	store storage.ChoreStore
	guard *middleware.Auth
}

// NewChoreHandler constructs the handler.
func NewChoreHandler(store storage.ChoreStore, guard *middleware.Auth) *ChoreHandler {
	return &ChoreHandler{store: store, guard: guard}
}

// Register attaches chore routes to the mux. Creation is organizer-only;
// the auth guard runs first so an anonymous request never reaches the
// role check.
func (h *ChoreHandler) Register(mux *http.ServeMux) {
	mux.Handle("GET /api/chores", h.guard.RequireAuth(http.HandlerFunc(h.handleList)))
	mux.Handle("POST /api/chores", h.guard.RequireAuth(h.guard.RequireOrganizer(http.HandlerFunc(h.handleCreate))))
	mux.Handle("POST /api/chores/{id}/complete", h.guard.RequireAuth(http.HandlerFunc(h.handleComplete)))
	mux.Handle("POST /api/chores/{id}/delete", h.guard.RequireAuth(http.HandlerFunc(h.handleDelete)))
}

func (h *ChoreHandler) handleList(w http.ResponseWriter, r *http.Request) {
	chores, err := h.store.ListChores(r.Context())
	if err != nil {
		slog.Error("list chores failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "failed to list chores")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"chores": chores})
}

func (h *ChoreHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid form payload")
		return
	}
	title := strings.TrimSpace(r.PostFormValue("title"))
	assignedTo := strings.TrimSpace(r.PostFormValue("assignedTo"))
	if title == "" || assignedTo == "" {
		respond.Error(w, http.StatusBadRequest, "title and assignedTo required")
		return
	}

	identity, _ := middleware.IdentityFrom(r.Context())
	chore, err := h.store.CreateChore(r.Context(), models.Chore{
		Title:      title,
		AssignedTo: assignedTo,
		CreatedBy:  identity.Username,
	})
	if err != nil {
		slog.Error("create chore failed", "title", title, "error", err)
		respond.Error(w, http.StatusInternalServerError, "failed to create chore")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"message": "Chore created", "chore": chore})
}

func (h *ChoreHandler) handleComplete(w http.ResponseWriter, r *http.Request) {
	id, ok := choreID(r)
	if !ok {
		respond.Error(w, http.StatusNotFound, "Chore not found")
		return
	}
	chore, err := h.store.CompleteChore(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "Chore not found")
			return
		}
		slog.Error("complete chore failed", "id", id, "error", err)
		respond.Error(w, http.StatusInternalServerError, "failed to complete chore")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"message": "Chore marked as completed", "chore": chore})
}

func (h *ChoreHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := choreID(r)
	if !ok {
		respond.Error(w, http.StatusNotFound, "Chore not found.")
		return
	}
	if err := h.store.DeleteChore(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			respond.Error(w, http.StatusNotFound, "Chore not found.")
		case errors.Is(err, storage.ErrNotCompleted):
			respond.Error(w, http.StatusBadRequest, "Only completed chores can be deleted.")
		default:
			slog.Error("delete chore failed", "id", id, "error", err)
			respond.Error(w, http.StatusInternalServerError, "failed to delete chore")
		}
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"message": "Chore deleted successfully."})
}

// choreID parses the {id} path segment. A non-numeric id behaves like a
// missing chore.
func choreID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
