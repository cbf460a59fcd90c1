package controllers

import (
	"context"
	"fmt"
	"net/http"
	"probpick/internal/history/interfaces"
	"time"

	json "github.com/goccy/go-json"
)

const historyProbeTimeout = 2 * time.Second

type HealthController struct {
	store   interfaces.StoreInterface
	started time.Time
}

type historyProbe struct {
	State        string     `json:"state"`
	Size         int        `json:"size"`
	LastSelected *time.Time `json:"last_selected_at,omitempty"`
}

type healthReport struct {
	Status        string       `json:"status"`
	Uptime        string       `json:"uptime"`
	UptimeSeconds float64      `json:"uptime_seconds"`
	History       historyProbe `json:"history"`
}

func NewHealthController(store interfaces.StoreInterface) *HealthController {
	return &HealthController{store: store, started: time.Now()}
}

// Health is a liveness probe. An unreachable history store shows up in the
// report only; the process itself is still alive and answers 200.
func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	up := time.Since(hc.started)
	body, err := json.Marshal(healthReport{
		Status:        "ok",
		Uptime:        formatDuration(up),
		UptimeSeconds: up.Seconds(),
		History:       hc.probeHistory(r.Context()),
	})
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

func (hc *HealthController) probeHistory(ctx context.Context) historyProbe {
	ctx, cancel := context.WithTimeout(ctx, historyProbeTimeout)
	defer cancel()

	h, err := hc.store.Load(ctx)
	if err != nil {
		return historyProbe{State: "unavailable"}
	}
	probe := historyProbe{State: "ok", Size: h.Len()}
	if recent := h.Recent(1); len(recent) == 1 {
		at := recent[0].SelectedAt
		probe.LastSelected = &at
	}
	return probe
}

func formatDuration(d time.Duration) string {
	d = d.Truncate(time.Second)
	return fmt.Sprintf("%dh%dm%ds", int(d.Hours()), int(d.Minutes())%60, int(d.Seconds())%60)
}
