package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"probpick/internal/models"
	"strings"
)

type ArchivesRequest struct {
	Index int `json:"index" validate:"gte=0"`
}

type archiveData struct {
	Archive  string                   `json:"archive"`
	Total    int                      `json:"total"`
	Problems []models.SelectionRecord `json:"problems"`
}

// Archives lists the histories archived by reset, newest first. A positive
// index opens that archive and shows its most recent selections.
func (c *Commander) Archives(ctx context.Context, index int) Reply {
	return c.run(ctx, "archives", func(ctx context.Context) (Reply, error) {
		if err := c.validator.Validate(ArchivesRequest{Index: index}); err != nil {
			return Reply{}, err
		}
		if index > 0 {
			return c.openArchive(index)
		}

		files, err := c.archives.List()
		if err != nil {
			return Reply{}, err
		}
		if len(files) == 0 {
			return Reply{Message: "🗄️ No archived histories yet.", Data: []string{}}, nil
		}

		names := make([]string, 0, len(files))
		var b strings.Builder
		fmt.Fprintf(&b, "🗄️ %d archived histories, newest first\n", len(files))
		for i := len(files) - 1; i >= 0; i-- {
			name := filepath.Base(files[i])
			names = append(names, name)
			fmt.Fprintf(&b, "%d. %s\n", len(names), name)
		}
		return Reply{Message: strings.TrimSuffix(b.String(), "\n"), Data: names}, nil
	})
}

func (c *Commander) openArchive(index int) (Reply, error) {
	h, path, err := c.archives.Open(index)
	if err != nil {
		return Reply{}, err
	}
	recent := h.Recent(MaxHistoryCount)
	data := archiveData{Archive: filepath.Base(path), Total: h.Len(), Problems: recent}

	var b strings.Builder
	fmt.Fprintf(&b, "🗄️ %s: last %d of %d selected problems\n", data.Archive, len(recent), h.Len())
	for i, rec := range recent {
		fmt.Fprintf(&b, "%d. #%d %s (%s) · %s\n", i+1, rec.ProblemID, rec.Title, rec.Tier, rec.SelectedAt.Format("2006-01-02"))
	}
	return Reply{Message: strings.TrimSuffix(b.String(), "\n"), Data: data}, nil
}
