package store

import (
	"context"
	"sync"

	"taskd/internal/models"
)

// Store defines the task operations used by the HTTP layer.
// Mutating operations only fail when persisting; the in-memory change
// is kept either way.
type Store interface {
	Insert(ctx context.Context, task models.Task) error
	Get(ctx context.Context, id uint64) (models.Task, bool)
	List(ctx context.Context) []models.Task
	Update(ctx context.Context, id uint64, task models.Task) error
	Delete(ctx context.Context, id uint64) error

	// Lifecycle
	Close() error
}

// Persister writes and restores the full task collection.
type Persister interface {
	Save(m *Memory) error
	Load() (*Memory, error)
	Close() error
}

// Persistent is a Store that rewrites its persister after every mutation.
// The lock covers both the mutation and the save, so no caller observes a
// change before it has been handed to the persister.
type Persistent struct {
	mu        sync.Mutex
	tasks     *Memory
	persister Persister
}

// Open loads the initial collection from p.
func Open(p Persister) (*Persistent, error) {
	m, err := p.Load()
	if err != nil {
		return nil, err
	}
	return New(m, p), nil
}

// New wraps an existing collection. A nil m starts empty.
func New(m *Memory, p Persister) *Persistent {
	if m == nil {
		m = NewMemory()
	}
	return &Persistent{tasks: m, persister: p}
}

func (s *Persistent) Insert(ctx context.Context, task models.Task) error {
	return s.mutate(func(m *Memory) { m.Insert(task) })
}

func (s *Persistent) Get(ctx context.Context, id uint64) (models.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks.Get(id)
}

func (s *Persistent) List(ctx context.Context) []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks.List()
}

func (s *Persistent) Update(ctx context.Context, id uint64, task models.Task) error {
	return s.mutate(func(m *Memory) { m.Update(id, task) })
}

func (s *Persistent) Delete(ctx context.Context, id uint64) error {
	return s.mutate(func(m *Memory) { m.Delete(id) })
}

// Close releases the persister.
func (s *Persistent) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persister.Close()
}

func (s *Persistent) mutate(fn func(m *Memory)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(s.tasks)
	return s.persister.Save(s.tasks)
}

var (
	_ Store     = (*Persistent)(nil)
	_ Persister = (*JSONFile)(nil)
	_ Persister = (*SQLiteSnapshot)(nil)
)
