package commands

import (
	"context"
	"fmt"
	"strings"
)

type SelectRequest struct {
	Tier string `json:"tier" validate:"omitempty,tiername"`
}

func (c *Commander) Select(ctx context.Context, tier string) Reply {
	return c.run(ctx, "select", func(ctx context.Context) (Reply, error) {
		req := SelectRequest{Tier: strings.TrimSpace(tier)}
		if err := c.validator.Validate(req); err != nil {
			return Reply{}, err
		}

		spec, err := c.selector.ResolveTier(req.Tier)
		if err != nil {
			return Reply{}, err
		}

		outcome, err := c.selector.Select(ctx, spec)
		if err != nil {
			return Reply{}, err
		}

		p := outcome.Problem
		var b strings.Builder
		b.WriteString("🎲 Selected problem\n")
		fmt.Fprintf(&b, "📌 #%d %s\n", p.ID, p.Title)
		fmt.Fprintf(&b, "🏆 %s\n", outcome.Record.Tier)
		fmt.Fprintf(&b, "👥 %d solvers · 📊 %.2f average tries\n", p.SolverCount, p.AverageAttempts)
		fmt.Fprintf(&b, "🔗 %s\n", outcome.Record.URL)
		fmt.Fprintf(&b, "Remaining in tier %s: %d of %d", spec.Name, outcome.Remaining, outcome.TotalCandidates)

		return Reply{Message: b.String(), Data: outcome}, nil
	})
}
