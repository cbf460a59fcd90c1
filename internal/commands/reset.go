package commands

import (
	"context"
	"fmt"
)

type resetData struct {
	Removed int `json:"removed"`
}

func (c *Commander) Reset(ctx context.Context) Reply {
	return c.run(ctx, "reset", func(ctx context.Context) (Reply, error) {
		n, err := c.store.Clear(ctx)
		if err != nil {
			return Reply{}, err
		}
		return Reply{Message: fmt.Sprintf("🗑️ Cleared %d selected problems.", n), Data: resetData{Removed: n}}, nil
	})
}
