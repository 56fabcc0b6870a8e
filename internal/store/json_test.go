package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskd/internal/models"
)

func TestLoadJSON_MissingFileCreatesIt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")

	m, err := LoadJSON(path)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Len())

	info, err := os.Stat(path)
	require.NoError(t, err, "expected file to be created")
	assert.Equal(t, int64(0), info.Size())
}

func TestLoadJSON_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	m, err := LoadJSON(path)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Len())
}

func TestLoadJSON_InvalidContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed json", `{"1":`},
		{"wrong shape", `[{"id":1,"name":"a","completed":false}]`},
		{"null document", `null`},
		{"missing field", `{"1":{"id":1,"name":"a"}}`},
		{"non numeric key", `{"one":{"id":1,"name":"a","completed":false}}`},
		{"trailing data", `{} {}`},
		{"whitespace only", "  \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "db.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := LoadJSON(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadJSON_KeysWinOverEmbeddedIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	content := `{"5":{"id":9,"name":"five","completed":true}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	m, err := LoadJSON(path)
	require.NoError(t, err)

	got, ok := m.Get(5)
	require.True(t, ok)
	assert.Equal(t, models.Task{ID: 5, Name: "five", Completed: true}, got)
}

func TestSaveJSON_Format(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	m := NewMemory()
	m.Insert(models.Task{ID: 1, Name: "buy milk"})
	m.Insert(models.Task{ID: 2, Name: "walk dog", Completed: true})

	require.NoError(t, SaveJSON(m, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"1": {"id": 1, "name": "buy milk", "completed": false},
		"2": {"id": 2, "name": "walk dog", "completed": true}
	}`, string(data))
}

func TestSaveJSON_Truncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	m := NewMemory()
	for i := uint64(1); i <= 20; i++ {
		m.Insert(models.Task{ID: i, Name: "a fairly long task name to grow the file"})
	}
	require.NoError(t, SaveJSON(m, path))

	small := NewMemory()
	small.Insert(models.Task{ID: 1, Name: "x"})
	require.NoError(t, SaveJSON(small, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Len(t, decoded, 1)
}

func TestSaveJSON_UnwritablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "db.json")

	err := SaveJSON(NewMemory(), path)
	assert.Error(t, err)
}

func TestJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")

	m := NewMemory()
	m.Insert(models.Task{ID: 1, Name: "a"})
	m.Insert(models.Task{ID: 2, Name: "b"})
	m.Insert(models.Task{ID: 18446744073709551615, Name: "max"})
	m.Update(2, models.Task{Name: "b2", Completed: true})
	m.Update(3, models.Task{ID: 3, Name: "c"})
	m.Delete(1)
	m.Delete(100)

	require.NoError(t, SaveJSON(m, path))

	loaded, err := LoadJSON(path)
	require.NoError(t, err)
	assert.ElementsMatch(t, m.List(), loaded.List())
}

func TestJSONRoundTrip_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")

	require.NoError(t, SaveJSON(NewMemory(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))

	loaded, err := LoadJSON(path)
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.Len())
}
