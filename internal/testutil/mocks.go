package testutil

import (
	"context"
	"fmt"
	"probpick/internal/catalog"
	"probpick/internal/models"
	"probpick/internal/providers"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns how many entries were logged at the given level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, l := range m.Logs {
		if l.Level == level {
			n++
		}
	}
	return n
}

// MockCatalog implements catalog.ClientInterface over in-memory data.
type MockCatalog struct {
	mu sync.Mutex

	// Candidates is returned by FetchAll regardless of the query.
	Candidates  []models.CatalogProblem
	FetchAllErr error

	// Solved maps a user to the ids returned by FetchSolvedIDs.
	Solved    map[string][]int
	SolvedErr map[string]error

	Queries     []string
	SolvedCalls map[string]int
}

func (m *MockCatalog) FetchPage(_ context.Context, req catalog.SearchRequest, page int) (*models.SearchPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if page != 1 {
		return &models.SearchPage{Count: len(m.Candidates)}, nil
	}
	return &models.SearchPage{Count: len(m.Candidates), Items: append([]models.CatalogProblem(nil), m.Candidates...)}, nil
}

func (m *MockCatalog) FetchAll(_ context.Context, query string) ([]models.CatalogProblem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Queries = append(m.Queries, query)
	if m.FetchAllErr != nil {
		return nil, m.FetchAllErr
	}
	return append([]models.CatalogProblem(nil), m.Candidates...), nil
}

func (m *MockCatalog) FetchSolvedIDs(_ context.Context, userID string) ([]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SolvedCalls == nil {
		m.SolvedCalls = make(map[string]int)
	}
	m.SolvedCalls[userID]++
	return append([]int(nil), m.Solved[userID]...), m.SolvedErr[userID]
}

func (m *MockCatalog) FetchAllCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Queries)
}

// MemoryStore implements interfaces.StoreInterface in memory.
type MemoryStore struct {
	mu        sync.Mutex
	Records   []models.SelectionRecord
	LoadErr   error
	AppendErr error
	ClearErr  error
	Appends   int
	Closed    bool
}

func (m *MemoryStore) Load(_ context.Context) (*models.SelectionHistory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	h := models.NewSelectionHistory()
	h.Problems = append(h.Problems, m.Records...)
	return h, nil
}

func (m *MemoryStore) Append(_ context.Context, record models.SelectionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AppendErr != nil {
		return m.AppendErr
	}
	for _, r := range m.Records {
		if r.ProblemID == record.ProblemID {
			return &models.PersistenceError{Op: "append", Err: fmt.Errorf("%w, problem %d", models.ErrAlreadySelected, record.ProblemID)}
		}
	}
	m.Appends++
	m.Records = append(m.Records, record)
	return nil
}

func (m *MemoryStore) Clear(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ClearErr != nil {
		return 0, m.ClearErr
	}
	n := len(m.Records)
	m.Records = nil
	return n, nil
}

func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return nil
}

// Seed appends records with sequential ids starting at firstID.
func (m *MemoryStore) Seed(firstID, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := 0; i < n; i++ {
		id := firstID + i
		m.Records = append(m.Records, models.SelectionRecord{
			ProblemID:  id,
			Title:      fmt.Sprintf("Problem %d", id),
			Tier:       models.TierLabel(21),
			SelectedAt: time.Date(2024, 1, 1, 0, 0, i, 0, time.UTC),
			URL:        models.ProblemURL("https://www.acmicpc.net", id),
		})
	}
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
	Closed       bool
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {
	m.Closed = true
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu          sync.Mutex
	Requests    map[string]int
	CacheHits   int
	CacheMisses int
	Persistence map[string]int
	HistorySize int
	Selections  map[string]int // key: "tier:outcome"
	Catalog     map[string]int // key: "kind:status"
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		Requests:    make(map[string]int),
		Persistence: make(map[string]int),
		Selections:  make(map[string]int),
		Catalog:     make(map[string]int),
	}
}

func (m *MockMetrics) IncRequestsTotal(endpoint string, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests[fmt.Sprintf("%s:%d", endpoint, status)]++
}

func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MockMetrics) ObservePersistenceDuration(op string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Persistence[op]++
}

func (m *MockMetrics) SetHistorySize(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.HistorySize = count
}

func (m *MockMetrics) IncSelections(tier, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Selections[tier+":"+outcome]++
}

func (m *MockMetrics) IncCatalogRequests(kind string, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Catalog[fmt.Sprintf("%s:%d", kind, status)]++
}

func (m *MockMetrics) ObserveCatalogDuration(_ string, _ time.Duration) {}
