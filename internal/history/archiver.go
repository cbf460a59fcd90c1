package history

import (
	"fmt"
	"os"
	"path/filepath"
	"probpick/internal/history/interfaces"
	"probpick/internal/models"
	"probpick/internal/providers"
	"probpick/internal/structures"
	"sort"
	"time"

	json "github.com/goccy/go-json"
)

const archiveSuffix = ".json.zst"

// Archiver keeps compressed copies of histories removed by a reset.
type Archiver struct {
	dir        string
	compressor interfaces.CompressorInterface
	logger     providers.Logger
	now        func() time.Time
}

// NewConfiguredArchiver builds the archiver for history.archiveDir. It returns
// a nil archiver when archiving is off; a nil archiver lists and opens nothing.
func NewConfiguredArchiver(conf *structures.Config, logger providers.Logger) (*Archiver, func(), error) {
	if conf.History.ArchiveDir == "" {
		return nil, func() {}, nil
	}
	compressor, err := NewZstdCompressor()
	if err != nil {
		return nil, nil, err
	}
	a := NewArchiver(conf.History.ArchiveDir, compressor, logger)
	logger.Infof(providers.TypeApp, "History archives: %s", conf.History.ArchiveDir)
	return a, a.Close, nil
}

func NewArchiver(dir string, compressor interfaces.CompressorInterface, logger providers.Logger) *Archiver {
	return &Archiver{
		dir:        dir,
		compressor: compressor,
		logger:     logger,
		now:        time.Now,
	}
}

// Archive writes h to "<dir>/history-<utc timestamp>.json.zst" and returns the path.
func (a *Archiver) Archive(h *models.SelectionHistory) (string, error) {
	jsonData, err := json.Marshal(h)
	if err != nil {
		return "", &models.PersistenceError{Op: "archive", Err: err}
	}
	compressed, err := a.compressor.Compress(jsonData)
	if err != nil {
		return "", &models.PersistenceError{Op: "archive", Err: err}
	}

	if err := os.MkdirAll(a.dir, 0755); err != nil {
		return "", &models.PersistenceError{Op: "archive", Err: err}
	}

	name := fmt.Sprintf("history-%s%s", a.now().UTC().Format("20060102T150405.000000000Z"), archiveSuffix)
	path := filepath.Join(a.dir, name)
	tmpFile := path + ".tmp"
	if err := os.WriteFile(tmpFile, compressed, 0644); err != nil {
		return "", &models.PersistenceError{Op: "archive", Err: err}
	}
	if err := os.Rename(tmpFile, path); err != nil {
		os.Remove(tmpFile)
		return "", &models.PersistenceError{Op: "archive", Err: err}
	}

	a.logger.Infof(providers.TypeApp, "Archived %d selections to %s", h.Len(), path)
	return path, nil
}

func (a *Archiver) ReadArchive(path string) (*models.SelectionHistory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &models.PersistenceError{Op: "read archive", Err: err}
	}
	decompressed, err := a.compressor.Decompress(data)
	if err != nil {
		return nil, &models.PersistenceError{Op: "read archive", Err: err}
	}
	var h models.SelectionHistory
	if err := json.Unmarshal(decompressed, &h); err != nil {
		return nil, &models.PersistenceError{Op: "read archive", Err: err}
	}
	return &h, nil
}

// List returns archive paths, oldest first.
func (a *Archiver) List() ([]string, error) {
	if a == nil {
		return nil, models.ErrArchivesDisabled
	}
	files, err := filepath.Glob(filepath.Join(a.dir, "history-*"+archiveSuffix))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// Open reads the index-th most recent archive, 1 being the newest.
func (a *Archiver) Open(index int) (*models.SelectionHistory, string, error) {
	files, err := a.List()
	if err != nil {
		return nil, "", err
	}
	if index < 1 || index > len(files) {
		return nil, "", fmt.Errorf("%w, archive %d does not exist (%d available)", models.ErrInvalidInput, index, len(files))
	}
	path := files[len(files)-index]
	h, err := a.ReadArchive(path)
	if err != nil {
		return nil, "", err
	}
	return h, path, nil
}

func (a *Archiver) Close() {
	a.compressor.Close()
}
