package commands

import (
	"context"
	"fmt"
	"probpick/internal/models"
	"strings"
)

type HistoryRequest struct {
	Count int `json:"count" validate:"gte=1,lte=50"`
}

type historyData struct {
	Total    int                      `json:"total"`
	Problems []models.SelectionRecord `json:"problems"`
}

// History lists the most recent selections, newest first. A zero count means
// the default. It never touches the catalog.
func (c *Commander) History(ctx context.Context, count int) Reply {
	return c.run(ctx, "history", func(ctx context.Context) (Reply, error) {
		if count == 0 {
			count = DefaultHistoryCount
		}
		if err := c.validator.Validate(HistoryRequest{Count: count}); err != nil {
			return Reply{}, err
		}

		h, err := c.store.Load(ctx)
		if err != nil {
			return Reply{}, err
		}
		recent := h.Recent(count)
		data := historyData{Total: h.Len(), Problems: recent}
		if len(recent) == 0 {
			return Reply{Message: msgEmpty, Data: data}, nil
		}

		var b strings.Builder
		fmt.Fprintf(&b, "📜 Last %d of %d selected problems\n", len(recent), h.Len())
		for i, rec := range recent {
			fmt.Fprintf(&b, "%d. #%d %s (%s) · %s\n", i+1, rec.ProblemID, rec.Title, rec.Tier, rec.SelectedAt.Format("2006-01-02"))
		}
		return Reply{Message: strings.TrimSuffix(b.String(), "\n"), Data: data}, nil
	})
}
