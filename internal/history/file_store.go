package history

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"probpick/internal/models"
	"sync"

	json "github.com/goccy/go-json"
)

// FileStore keeps the history as a single JSON document. A missing file is an
// empty history; a malformed one is an error and is never overwritten by Load.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Load(_ context.Context) (*models.SelectionHistory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.read()
}

func (f *FileStore) Append(_ context.Context, record models.SelectionRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	h, err := f.read()
	if err != nil {
		return err
	}
	if _, ok := h.IDs()[record.ProblemID]; ok {
		return &models.PersistenceError{Op: "append", Err: fmt.Errorf("%w, problem %d", models.ErrAlreadySelected, record.ProblemID)}
	}
	h.Problems = append(h.Problems, record)
	return f.write(h)
}

func (f *FileStore) Clear(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	h, err := f.read()
	if err != nil {
		return 0, err
	}
	if err := f.write(models.NewSelectionHistory()); err != nil {
		return 0, err
	}
	return h.Len(), nil
}

func (f *FileStore) Close() error {
	return nil
}

func (f *FileStore) read() (*models.SelectionHistory, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.NewSelectionHistory(), nil
		}
		return nil, &models.PersistenceError{Op: "read", Err: err}
	}

	var h models.SelectionHistory
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, &models.PersistenceError{Op: "decode", Err: fmt.Errorf("%s: %w", f.path, err)}
	}
	if h.Problems == nil {
		h.Problems = make([]models.SelectionRecord, 0)
	}
	return &h, nil
}

func (f *FileStore) write(h *models.SelectionHistory) error {
	jsonData, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return &models.PersistenceError{Op: "encode", Err: err}
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return &models.PersistenceError{Op: "write", Err: err}
	}

	tmpFile := f.path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return &models.PersistenceError{Op: "write", Err: err}
	}

	_, err = file.Write(jsonData)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return &models.PersistenceError{Op: "write", Err: err}
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return &models.PersistenceError{Op: "write", Err: err}
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return &models.PersistenceError{Op: "write", Err: err}
	}

	if err = os.Rename(tmpFile, f.path); err != nil {
		return &models.PersistenceError{Op: "write", Err: err}
	}
	return nil
}
