package models

import (
	"encoding/json"
	"errors"
)

// Task represents a single task record.
type Task struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

// UnmarshalJSON decodes a task, requiring all of id, name and completed to be
// present. Unknown fields are ignored.
func (t *Task) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID        *uint64 `json:"id"`
		Name      *string `json:"name"`
		Completed *bool   `json:"completed"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if raw.ID == nil {
		return errors.New("id is required")
	}
	if raw.Name == nil {
		return errors.New("name is required")
	}
	if raw.Completed == nil {
		return errors.New("completed is required")
	}

	t.ID = *raw.ID
	t.Name = *raw.Name
	t.Completed = *raw.Completed
	return nil
}
