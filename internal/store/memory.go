package store

import (
	"taskd/internal/models"
)

// Memory is the in-memory task collection keyed by task ID.
// It is not safe for concurrent use; Persistent serializes access to it.
type Memory struct {
	tasks map[uint64]models.Task
}

// NewMemory returns an empty task collection.
func NewMemory() *Memory {
	return &Memory{tasks: make(map[uint64]models.Task)}
}

// newMemoryFrom takes ownership of tasks, keying every record by its map key.
func newMemoryFrom(tasks map[uint64]models.Task) *Memory {
	m := NewMemory()
	for id, task := range tasks {
		task.ID = id
		m.tasks[id] = task
	}
	return m
}

// Insert stores the task under its own ID, replacing any existing record.
func (m *Memory) Insert(task models.Task) {
	m.tasks[task.ID] = task
}

// Get returns the task with the given ID and whether it exists.
func (m *Memory) Get(id uint64) (models.Task, bool) {
	task, ok := m.tasks[id]
	return task, ok
}

// List returns every task in no particular order.
func (m *Memory) List() []models.Task {
	tasks := make([]models.Task, 0, len(m.tasks))
	for _, task := range m.tasks {
		tasks = append(tasks, task)
	}
	return tasks
}

// Update replaces or inserts the task at id. The payload's own ID is
// overwritten with id.
func (m *Memory) Update(id uint64, task models.Task) {
	task.ID = id
	m.tasks[id] = task
}

// Delete removes the task at id. Deleting a missing task is a no-op.
func (m *Memory) Delete(id uint64) {
	delete(m.tasks, id)
}

// Len returns the number of stored tasks.
func (m *Memory) Len() int {
	return len(m.tasks)
}

// Snapshot returns a copy of the id -> task mapping.
func (m *Memory) Snapshot() map[uint64]models.Task {
	out := make(map[uint64]models.Task, len(m.tasks))
	for id, task := range m.tasks {
		out[id] = task
	}
	return out
}
