package handlers

import (
	"net/http"

	"taskd/internal/models"
)

// CreateTask stores the task from the request body under its own ID.
func (h *Handlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var task models.Task
	if err := decodeJSON(w, r, &task); err != nil {
		respondDecodeError(w, err)
		return
	}

	logSaveError("create", task.ID, h.store.Insert(ctx, task))

	w.WriteHeader(http.StatusOK)
}

// ListTasks returns every task as a JSON array.
func (h *Handlers) ListTasks(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, h.store.List(r.Context()))
}

// GetTask returns a single task, or 404 with an empty body.
func (h *Handlers) GetTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseID(r, "id")
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	task, ok := h.store.Get(ctx, id)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	respondJSON(w, task)
}

// UpdateTask replaces the task at the path ID, creating it if absent.
func (h *Handlers) UpdateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseID(r, "id")
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	var task models.Task
	if err := decodeJSON(w, r, &task); err != nil {
		respondDecodeError(w, err)
		return
	}

	logSaveError("update", id, h.store.Update(ctx, id, task))

	w.WriteHeader(http.StatusOK)
}

// DeleteTask removes a task. Deleting a missing task still succeeds.
func (h *Handlers) DeleteTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseID(r, "id")
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	logSaveError("delete", id, h.store.Delete(ctx, id))

	w.WriteHeader(http.StatusOK)
}
