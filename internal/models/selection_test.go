package models

import (
	"errors"
	"fmt"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func historyOf(ids ...int) *SelectionHistory {
	h := NewSelectionHistory()
	for i, id := range ids {
		h.Problems = append(h.Problems, SelectionRecord{
			ProblemID:  id,
			Title:      fmt.Sprintf("Problem %d", id),
			Tier:       TierLabel(11),
			SelectedAt: time.Date(2024, 3, 1, 12, 0, i, 0, time.UTC),
			URL:        ProblemURL("https://www.acmicpc.net", id),
		})
	}
	return h
}

func TestSelectionHistory_Recent(t *testing.T) {
	h := historyOf(1000, 1001, 1002, 1003)

	recent := h.Recent(2)
	require.Len(t, recent, 2)
	assert.Equal(t, 1003, recent[0].ProblemID)
	assert.Equal(t, 1002, recent[1].ProblemID)

	assert.Len(t, h.Recent(10), 4)
	assert.Empty(t, h.Recent(0))
	assert.Empty(t, h.Recent(-1))
	assert.Empty(t, NewSelectionHistory().Recent(5))
}

func TestSelectionHistory_NilSafe(t *testing.T) {
	var h *SelectionHistory
	assert.Equal(t, 0, h.Len())
	assert.Empty(t, h.IDs())
	assert.Empty(t, h.Recent(3))
}

func TestSelectionHistory_IDs(t *testing.T) {
	ids := historyOf(1000, 2000).IDs()
	assert.Len(t, ids, 2)
	assert.Contains(t, ids, 1000)
	assert.Contains(t, ids, 2000)
}

func TestSelectionHistory_JsonShape(t *testing.T) {
	data, err := json.Marshal(historyOf(1000))
	require.NoError(t, err)

	var raw map[string][]map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw["problems"], 1)

	rec := raw["problems"][0]
	assert.Equal(t, float64(1000), rec["problemId"])
	assert.Equal(t, "Problem 1000", rec["title"])
	assert.Equal(t, "💛 Gold 5", rec["tier"])
	assert.Equal(t, "2024-03-01T12:00:00Z", rec["selectedAt"])
	assert.Equal(t, "https://www.acmicpc.net/problem/1000", rec["url"])

	data, err = json.Marshal(NewSelectionHistory())
	require.NoError(t, err)
	assert.JSONEq(t, `{"problems":[]}`, string(data))
}

func TestCatalogProblem_DecodesSearchItem(t *testing.T) {
	payload := `{"count":1,"items":[{"problemId":1000,"titleKo":"A+B","level":1,"acceptedUserCount":250000,"averageTries":2.5,"isSolvable":true}]}`

	var page SearchPage
	require.NoError(t, json.Unmarshal([]byte(payload), &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, 1, page.Count)
	assert.Equal(t, CatalogProblem{ID: 1000, Title: "A+B", Level: 1, SolverCount: 250000, AverageAttempts: 2.5}, page.Items[0])
}

func TestProblemURL(t *testing.T) {
	assert.Equal(t, "https://www.acmicpc.net/problem/1000", ProblemURL("https://www.acmicpc.net/", 1000))
}

func TestErrors_Is(t *testing.T) {
	catalogErr := fmt.Errorf("select: %w", &CatalogError{StatusCode: 503, Status: "503 Service Unavailable"})
	assert.True(t, errors.Is(catalogErr, ErrCatalogUnavailable))
	assert.False(t, errors.Is(catalogErr, ErrPersistence))
	assert.Contains(t, catalogErr.Error(), "503 Service Unavailable")

	var ce *CatalogError
	require.True(t, errors.As(catalogErr, &ce))
	assert.Equal(t, 503, ce.StatusCode)

	inner := errors.New("connection reset")
	transportErr := &CatalogError{Err: inner}
	assert.True(t, errors.Is(transportErr, inner))
	assert.Contains(t, transportErr.Error(), "connection reset")

	persistErr := &PersistenceError{Op: "append", Err: fmt.Errorf("%w, problem 1000", ErrAlreadySelected)}
	assert.True(t, errors.Is(persistErr, ErrPersistence))
	assert.True(t, errors.Is(persistErr, ErrAlreadySelected))
	assert.False(t, errors.Is(persistErr, ErrCatalogUnavailable))
}
