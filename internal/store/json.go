package store

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"taskd/internal/models"
)

// JSONFile persists the whole task collection as one JSON object mapping
// decimal task IDs to tasks.
type JSONFile struct {
	Path string
}

// NewJSONFile returns a persister writing to path.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{Path: path}
}

// Save rewrites the file with the current contents of m.
func (f *JSONFile) Save(m *Memory) error {
	return SaveJSON(m, f.Path)
}

// Load reads the file, creating it if it does not exist.
func (f *JSONFile) Load() (*Memory, error) {
	return LoadJSON(f.Path)
}

// Close is a no-op; the file is only open during Save and Load.
func (f *JSONFile) Close() error {
	return nil
}

// SaveJSON serializes every task in m and writes it to path, truncating any
// previous content. The write is not atomic with respect to crashes.
func SaveJSON(m *Memory, path string) error {
	data, err := json.Marshal(m.tasks)
	if err != nil {
		return fmt.Errorf("failed to encode tasks: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}

	w := bufio.NewWriter(file)
	if _, err := w.Write(data); err != nil {
		file.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

// LoadJSON reads a task collection from path. A missing file is created empty
// and a zero-length file yields an empty collection without parsing.
func LoadJSON(path string) (*Memory, error) {
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.Size() == 0 {
		return NewMemory(), nil
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var tasks map[uint64]models.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if tasks == nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, errNotObject)
	}

	return newMemoryFrom(tasks), nil
}

var errNotObject = errors.New("expected a JSON object of tasks")
