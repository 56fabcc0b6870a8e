package store

import (
	"database/sql"
	"fmt"
	"strconv"

	_ "github.com/mattn/go-sqlite3"

	"taskd/internal/models"
)

// SQLiteSnapshot persists the task collection into a SQLite database.
// Every save replaces the whole table inside one transaction.
type SQLiteSnapshot struct {
	db *sql.DB
}

// NewSQLiteSnapshot opens (or creates) the database at dbPath.
func NewSQLiteSnapshot(dbPath string) (*SQLiteSnapshot, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Serialize writers; saves already happen under the store lock.
	db.SetMaxOpenConns(1)

	s := &SQLiteSnapshot{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return s, nil
}

func (s *SQLiteSnapshot) migrate() error {
	// id is stored as text: go-sqlite3 cannot bind uint64 values above MaxInt64.
	schema := `
	CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		completed BOOLEAN NOT NULL DEFAULT FALSE
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteSnapshot) Close() error {
	return s.db.Close()
}

// Save replaces the stored tasks with the contents of m.
func (s *SQLiteSnapshot) Save(m *Memory) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM tasks`); err != nil {
		return fmt.Errorf("failed to clear tasks: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO tasks (id, name, completed) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for id, task := range m.tasks {
		if _, err := stmt.Exec(strconv.FormatUint(id, 10), task.Name, task.Completed); err != nil {
			return fmt.Errorf("failed to save task %d: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tasks: %w", err)
	}
	return nil
}

// Load reads every stored task.
func (s *SQLiteSnapshot) Load() (*Memory, error) {
	rows, err := s.db.Query(`SELECT id, name, completed FROM tasks`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make(map[uint64]models.Task)
	for rows.Next() {
		var (
			rawID string
			task  models.Task
		)
		if err := rows.Scan(&rawID, &task.Name, &task.Completed); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}

		id, err := strconv.ParseUint(rawID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid task id %q: %w", rawID, err)
		}
		tasks[id] = task
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}

	return newMemoryFrom(tasks), nil
}
