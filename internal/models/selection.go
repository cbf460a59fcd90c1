package models

import "time"

// SelectionRecord is one persisted pick. Records are never edited once stored.
type SelectionRecord struct {
	ProblemID  int       `json:"problemId"`
	Title      string    `json:"title"`
	Tier       string    `json:"tier"`
	SelectedAt time.Time `json:"selectedAt"`
	URL        string    `json:"url"`
}

// SelectionHistory is the on-disk document; insertion order is selection order.
type SelectionHistory struct {
	Problems []SelectionRecord `json:"problems"`
}

func NewSelectionHistory() *SelectionHistory {
	return &SelectionHistory{Problems: make([]SelectionRecord, 0)}
}

func (h *SelectionHistory) Len() int {
	if h == nil {
		return 0
	}
	return len(h.Problems)
}

func (h *SelectionHistory) IDs() map[int]struct{} {
	ids := make(map[int]struct{}, h.Len())
	if h == nil {
		return ids
	}
	for _, p := range h.Problems {
		ids[p.ProblemID] = struct{}{}
	}
	return ids
}

// Recent returns up to n records, newest first.
func (h *SelectionHistory) Recent(n int) []SelectionRecord {
	total := h.Len()
	if n > total {
		n = total
	}
	out := make([]SelectionRecord, 0, max(n, 0))
	for i := total - 1; i >= total-n; i-- {
		out = append(out, h.Problems[i])
	}
	return out
}

type SelectionOutcome struct {
	Problem         CatalogProblem  `json:"problem"`
	Record          SelectionRecord `json:"record"`
	Remaining       int             `json:"remaining"`
	TotalCandidates int             `json:"total_candidates"`
}

// UserStat is computed fresh per request and never persisted.
type UserStat struct {
	UserID   string `json:"user_id"`
	Solved   int    `json:"solved"`
	Unsolved int    `json:"unsolved"`
	Total    int    `json:"total"`
	// Partial is set when the user's solved set could not be fetched completely.
	Partial bool `json:"partial"`
	// Stale is set when a partial fetch was topped up from the last complete set.
	Stale bool `json:"stale"`
}
