package models

import (
	"fmt"
	"strings"
)

// CatalogProblem is a single entry of a catalog search page.
type CatalogProblem struct {
	ID              int     `json:"problemId"`
	Title           string  `json:"titleKo"`
	Level           int     `json:"level"`
	SolverCount     int     `json:"acceptedUserCount"`
	AverageAttempts float64 `json:"averageTries"`
}

// SearchPage is one page of a catalog search response. Count is the
// server-reported total over all pages.
type SearchPage struct {
	Count int              `json:"count"`
	Items []CatalogProblem `json:"items"`
}

func ProblemURL(judgeURL string, problemID int) string {
	return fmt.Sprintf("%s/problem/%d", strings.TrimSuffix(judgeURL, "/"), problemID)
}
