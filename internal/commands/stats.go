package commands

import (
	"context"
	"fmt"
	"strings"
)

func (c *Commander) Stats(ctx context.Context) Reply {
	return c.run(ctx, "stats", func(ctx context.Context) (Reply, error) {
		stats, err := c.stats.ComputeAll(ctx)
		if err != nil {
			return Reply{}, err
		}
		if len(stats) == 0 {
			return Reply{Message: "👤 No users are configured for tracking.", Data: stats}, nil
		}
		if stats[0].Total == 0 {
			return Reply{Message: msgEmpty, Data: stats}, nil
		}

		var b strings.Builder
		fmt.Fprintf(&b, "📊 Solved among %d selected problems\n", stats[0].Total)
		for _, s := range stats {
			fmt.Fprintf(&b, "%s: %d/%d solved, %d unsolved", s.UserID, s.Solved, s.Total, s.Unsolved)
			switch {
			case s.Stale:
				b.WriteString(" (incomplete data, filled from an earlier fetch)")
			case s.Partial:
				b.WriteString(" (incomplete data)")
			}
			b.WriteString("\n")
		}
		return Reply{Message: strings.TrimSuffix(b.String(), "\n"), Data: stats}, nil
	})
}
