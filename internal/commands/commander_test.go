package commands

import (
	"context"
	"errors"
	"fmt"
	"probpick/internal/models"
	"probpick/internal/providers"
	"probpick/internal/testutil"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTiers = []models.TierSpec{
	{Name: "standard", MinLevel: 11, MaxLevel: 12, MinSolvers: 5000},
	{Name: "hard", MinLevel: 13, MaxLevel: 15, MinSolvers: 2000},
	{Name: "plat-low_5", MinLevel: 16, MaxLevel: 16, MinSolvers: 500},
}

type mockSelector struct {
	mu       sync.Mutex
	outcome  *models.SelectionOutcome
	err      error
	panicMsg string
	selected []models.TierSpec
	active   int
	overlap  bool
}

func (m *mockSelector) Select(_ context.Context, tier models.TierSpec) (*models.SelectionOutcome, error) {
	m.mu.Lock()
	m.active++
	if m.active > 1 {
		m.overlap = true
	}
	m.selected = append(m.selected, tier)
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.active--
		m.mu.Unlock()
	}()

	if m.panicMsg != "" {
		panic(m.panicMsg)
	}
	time.Sleep(time.Millisecond)
	return m.outcome, m.err
}

func (m *mockSelector) ResolveTier(name string) (models.TierSpec, error) {
	if name == "" {
		return testTiers[0], nil
	}
	for _, t := range testTiers {
		if strings.EqualFold(t.Name, name) {
			return t, nil
		}
	}
	return models.TierSpec{}, fmt.Errorf("%w %q", models.ErrUnknownTier, name)
}

func (m *mockSelector) Tiers() []models.TierSpec {
	return testTiers
}

type mockStats struct {
	stats []models.UserStat
	err   error
}

func (m *mockStats) ComputeAll(_ context.Context) ([]models.UserStat, error) {
	return m.stats, m.err
}

// mockArchives holds archived histories oldest first, like the archiver's listing.
type mockArchives struct {
	paths     []string
	histories []*models.SelectionHistory
	err       error
}

func (m *mockArchives) List() ([]string, error) {
	return m.paths, m.err
}

func (m *mockArchives) Open(index int) (*models.SelectionHistory, string, error) {
	if m.err != nil {
		return nil, "", m.err
	}
	if index < 1 || index > len(m.paths) {
		return nil, "", fmt.Errorf("%w, archive %d does not exist (%d available)", models.ErrInvalidInput, index, len(m.paths))
	}
	i := len(m.paths) - index
	return m.histories[i], m.paths[i], nil
}

type commanderFixture struct {
	commander *Commander
	selector  *mockSelector
	stats     *mockStats
	store     *testutil.MemoryStore
	archives  *mockArchives
	logger    *testutil.MockLogger
}

func newCommanderFixture() *commanderFixture {
	f := &commanderFixture{
		selector: &mockSelector{},
		stats:    &mockStats{},
		store:    &testutil.MemoryStore{},
		archives: &mockArchives{},
		logger:   &testutil.MockLogger{},
	}
	f.commander = NewCommander(f.selector, f.stats, f.store, f.archives, providers.NewInputValidator(), f.logger)
	return f
}

func sampleOutcome() *models.SelectionOutcome {
	return &models.SelectionOutcome{
		Problem: models.CatalogProblem{ID: 1000, Title: "A+B", Level: 11, SolverCount: 250000, AverageAttempts: 2.456},
		Record: models.SelectionRecord{
			ProblemID: 1000,
			Title:     "A+B",
			Tier:      "💛 Gold 5",
			URL:       "https://www.acmicpc.net/problem/1000",
		},
		Remaining:       119,
		TotalCandidates: 120,
	}
}

func TestSelect_RendersProblem(t *testing.T) {
	f := newCommanderFixture()
	f.selector.outcome = sampleOutcome()

	reply := f.commander.Select(context.Background(), "")
	require.True(t, reply.OK)

	assert.Contains(t, reply.Message, "#1000 A+B")
	assert.Contains(t, reply.Message, "💛 Gold 5")
	assert.Contains(t, reply.Message, "250000 solvers")
	assert.Contains(t, reply.Message, "2.46 average tries")
	assert.Contains(t, reply.Message, "https://www.acmicpc.net/problem/1000")
	assert.Contains(t, reply.Message, "Remaining in tier standard: 119 of 120")
	assert.Equal(t, f.selector.outcome, reply.Data)
	assert.Equal(t, "standard", f.selector.selected[0].Name)
}

func TestSelect_NamedTier(t *testing.T) {
	f := newCommanderFixture()
	f.selector.outcome = sampleOutcome()

	reply := f.commander.Select(context.Background(), " Hard ")
	require.True(t, reply.OK)
	assert.Equal(t, "hard", f.selector.selected[0].Name)
}

func TestSelect_TierNameWithDashAndUnderscore(t *testing.T) {
	f := newCommanderFixture()
	f.selector.outcome = sampleOutcome()

	reply := f.commander.Select(context.Background(), "plat-low_5")
	require.True(t, reply.OK, reply.Message)
	assert.Equal(t, "plat-low_5", f.selector.selected[0].Name)
}

func TestSelect_UnknownTierListsTiers(t *testing.T) {
	f := newCommanderFixture()

	reply := f.commander.Select(context.Background(), "legendary")
	assert.False(t, reply.OK)
	assert.Contains(t, reply.Message, "standard (g5..g4, 5000+ solvers)")
	assert.Contains(t, reply.Message, "hard (g3..g1, 2000+ solvers)")
	assert.Empty(t, f.selector.selected)
}

func TestSelect_InvalidTierInput(t *testing.T) {
	f := newCommanderFixture()

	reply := f.commander.Select(context.Background(), "g5; DROP")
	assert.False(t, reply.OK)
	assert.True(t, strings.HasPrefix(reply.Message, "❓"))
	assert.Empty(t, f.selector.selected)
}

func TestSelect_Exhausted(t *testing.T) {
	f := newCommanderFixture()
	f.selector.err = fmt.Errorf("%w, tier standard", models.ErrNoCandidates)

	reply := f.commander.Select(context.Background(), "")
	assert.False(t, reply.OK)
	assert.Contains(t, reply.Message, "reset")
}

func TestSelect_CatalogFailureIsGeneric(t *testing.T) {
	f := newCommanderFixture()
	f.selector.err = &models.CatalogError{StatusCode: 500, Status: "500 Internal Server Error"}

	reply := f.commander.Select(context.Background(), "")
	assert.False(t, reply.OK)
	assert.Equal(t, msgTryAgain, reply.Message)
	assert.NotContains(t, reply.Message, "500")
	assert.Equal(t, 1, f.logger.Count("error"))
}

func TestSelect_PanicIsRecovered(t *testing.T) {
	f := newCommanderFixture()
	f.selector.panicMsg = "boom"

	reply := f.commander.Select(context.Background(), "")
	assert.False(t, reply.OK)
	assert.Equal(t, msgTryAgain, reply.Message)

	// the lock is released after a panic
	f.selector.panicMsg = ""
	f.selector.outcome = sampleOutcome()
	assert.True(t, f.commander.Select(context.Background(), "").OK)
}

func TestCommander_SerializesCommands(t *testing.T) {
	f := newCommanderFixture()
	f.selector.outcome = sampleOutcome()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.commander.Select(context.Background(), "")
		}()
	}
	wg.Wait()

	assert.False(t, f.selector.overlap)
	assert.Len(t, f.selector.selected, 20)
}

func TestHistory_NewestFirst(t *testing.T) {
	f := newCommanderFixture()
	f.store.Seed(1000, 15)

	reply := f.commander.History(context.Background(), 0)
	require.True(t, reply.OK)

	data := reply.Data.(historyData)
	assert.Equal(t, 15, data.Total)
	require.Len(t, data.Problems, DefaultHistoryCount)
	assert.Equal(t, 1014, data.Problems[0].ProblemID)
	assert.Equal(t, 1005, data.Problems[9].ProblemID)

	lines := strings.Split(reply.Message, "\n")
	assert.Equal(t, "📜 Last 10 of 15 selected problems", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "1. #1014 Problem 1014"))
}

func TestHistory_Count(t *testing.T) {
	f := newCommanderFixture()
	f.store.Seed(1000, 3)

	reply := f.commander.History(context.Background(), 50)
	require.True(t, reply.OK)
	assert.Len(t, reply.Data.(historyData).Problems, 3)
}

func TestHistory_CountOutOfRange(t *testing.T) {
	f := newCommanderFixture()

	for _, count := range []int{-1, 51} {
		reply := f.commander.History(context.Background(), count)
		assert.False(t, reply.OK)
		assert.True(t, strings.HasPrefix(reply.Message, "❓"), reply.Message)
	}
}

func TestHistory_Empty(t *testing.T) {
	f := newCommanderFixture()

	reply := f.commander.History(context.Background(), 5)
	assert.True(t, reply.OK)
	assert.Equal(t, msgEmpty, reply.Message)
}

func TestHistory_StorageFailure(t *testing.T) {
	f := newCommanderFixture()
	f.store.LoadErr = &models.PersistenceError{Op: "decode", Err: errors.New("bad json")}

	reply := f.commander.History(context.Background(), 5)
	assert.False(t, reply.OK)
	assert.Equal(t, msgTryAgain, reply.Message)
}

func TestStats_Renders(t *testing.T) {
	f := newCommanderFixture()
	f.stats.stats = []models.UserStat{
		{UserID: "alice", Solved: 3, Unsolved: 2, Total: 5},
		{UserID: "bob", Solved: 1, Unsolved: 4, Total: 5, Partial: true},
	}

	reply := f.commander.Stats(context.Background())
	require.True(t, reply.OK)
	assert.Equal(t, "📊 Solved among 5 selected problems\nalice: 3/5 solved, 2 unsolved\nbob: 1/5 solved, 4 unsolved (incomplete data)", reply.Message)
}

func TestStats_RendersStaleFill(t *testing.T) {
	f := newCommanderFixture()
	f.stats.stats = []models.UserStat{
		{UserID: "carol", Solved: 4, Unsolved: 1, Total: 5, Partial: true, Stale: true},
	}

	reply := f.commander.Stats(context.Background())
	require.True(t, reply.OK)
	assert.Equal(t, "📊 Solved among 5 selected problems\ncarol: 4/5 solved, 1 unsolved (incomplete data, filled from an earlier fetch)", reply.Message)
}

func TestStats_EmptyHistory(t *testing.T) {
	f := newCommanderFixture()
	f.stats.stats = []models.UserStat{{UserID: "alice"}}

	reply := f.commander.Stats(context.Background())
	assert.True(t, reply.OK)
	assert.Equal(t, msgEmpty, reply.Message)
}

func TestStats_NoUsers(t *testing.T) {
	f := newCommanderFixture()

	reply := f.commander.Stats(context.Background())
	assert.True(t, reply.OK)
	assert.Contains(t, reply.Message, "No users")
}

func TestStats_Failure(t *testing.T) {
	f := newCommanderFixture()
	f.stats.err = &models.PersistenceError{Op: "read", Err: errors.New("disk")}

	reply := f.commander.Stats(context.Background())
	assert.False(t, reply.OK)
	assert.Equal(t, msgTryAgain, reply.Message)
}

func TestReset_ClearsHistory(t *testing.T) {
	f := newCommanderFixture()
	f.store.Seed(1000, 7)

	reply := f.commander.Reset(context.Background())
	require.True(t, reply.OK)
	assert.Equal(t, "🗑️ Cleared 7 selected problems.", reply.Message)
	assert.Equal(t, resetData{Removed: 7}, reply.Data)
	assert.Empty(t, f.store.Records)

	reply = f.commander.Reset(context.Background())
	assert.Equal(t, "🗑️ Cleared 0 selected problems.", reply.Message)
}

func TestReset_Failure(t *testing.T) {
	f := newCommanderFixture()
	f.store.ClearErr = &models.PersistenceError{Op: "clear", Err: errors.New("readonly")}

	reply := f.commander.Reset(context.Background())
	assert.False(t, reply.OK)
	assert.Equal(t, msgTryAgain, reply.Message)
}

func TestArchives_ListsNewestFirst(t *testing.T) {
	f := newCommanderFixture()
	f.archives.paths = []string{"/a/history-20240501T000000.000000000Z.json.zst", "/a/history-20240601T000000.000000000Z.json.zst"}

	reply := f.commander.Archives(context.Background(), 0)
	require.True(t, reply.OK)
	assert.Equal(t, "🗄️ 2 archived histories, newest first\n1. history-20240601T000000.000000000Z.json.zst\n2. history-20240501T000000.000000000Z.json.zst", reply.Message)
	assert.Equal(t, []string{"history-20240601T000000.000000000Z.json.zst", "history-20240501T000000.000000000Z.json.zst"}, reply.Data)
}

func TestArchives_Empty(t *testing.T) {
	f := newCommanderFixture()

	reply := f.commander.Archives(context.Background(), 0)
	require.True(t, reply.OK)
	assert.Equal(t, "🗄️ No archived histories yet.", reply.Message)
}

func TestArchives_OpensArchive(t *testing.T) {
	f := newCommanderFixture()
	old := &testutil.MemoryStore{}
	old.Seed(1000, 3)
	h, err := old.Load(context.Background())
	require.NoError(t, err)
	f.archives.paths = []string{"/a/history-20240501T000000.000000000Z.json.zst"}
	f.archives.histories = []*models.SelectionHistory{h}

	reply := f.commander.Archives(context.Background(), 1)
	require.True(t, reply.OK)
	assert.True(t, strings.HasPrefix(reply.Message, "🗄️ history-20240501T000000.000000000Z.json.zst: last 3 of 3 selected problems\n1. #1002"))
	data := reply.Data.(archiveData)
	assert.Equal(t, 3, data.Total)
	assert.Equal(t, 1002, data.Problems[0].ProblemID)
}

func TestArchives_IndexOutOfRange(t *testing.T) {
	f := newCommanderFixture()

	reply := f.commander.Archives(context.Background(), 4)
	assert.False(t, reply.OK)
	assert.True(t, strings.HasPrefix(reply.Message, "❓"))

	reply = f.commander.Archives(context.Background(), -1)
	assert.False(t, reply.OK)
	assert.True(t, strings.HasPrefix(reply.Message, "❓"))
}

func TestArchives_Disabled(t *testing.T) {
	f := newCommanderFixture()
	f.archives.err = models.ErrArchivesDisabled

	reply := f.commander.Archives(context.Background(), 0)
	assert.False(t, reply.OK)
	assert.Contains(t, reply.Message, "history.archiveDir")
}
