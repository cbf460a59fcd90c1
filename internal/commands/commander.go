package commands

import (
	"context"
	"errors"
	"fmt"
	"probpick/internal/history/interfaces"
	"probpick/internal/models"
	"probpick/internal/providers"
	"probpick/internal/services"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultHistoryCount = 10
	MaxHistoryCount     = 50

	msgTryAgain = "⚠️ Something went wrong while talking to the problem catalog or the history storage. Please try again later."
	msgEmpty    = "📭 No problems have been selected yet."
)

// Reply is the rendered result of a command. Message is ready for a chat
// channel; Data carries the structured result for API clients.
type Reply struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type CommanderInterface interface {
	Select(ctx context.Context, tier string) Reply
	History(ctx context.Context, count int) Reply
	Stats(ctx context.Context) Reply
	Reset(ctx context.Context) Reply
	Archives(ctx context.Context, index int) Reply
}

// Commander runs one command at a time against the shared history.
type Commander struct {
	mu        sync.Mutex
	selector  services.SelectionServiceInterface
	stats     services.StatsServiceInterface
	store     interfaces.StoreInterface
	archives  interfaces.ArchiveReaderInterface
	validator providers.InputValidatorInterface
	logger    providers.Logger
}

func NewCommander(
	selector services.SelectionServiceInterface,
	stats services.StatsServiceInterface,
	store interfaces.StoreInterface,
	archives interfaces.ArchiveReaderInterface,
	validator providers.InputValidatorInterface,
	logger providers.Logger,
) *Commander {
	return &Commander{
		selector:  selector,
		stats:     stats,
		store:     store,
		archives:  archives,
		validator: validator,
		logger:    logger,
	}
}

func (c *Commander) run(ctx context.Context, name string, fn func(ctx context.Context) (Reply, error)) (reply Reply) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := uuid.NewString()
	start := time.Now()
	c.logger.Infof(providers.TypeCommand, "[%s] %s started", id, name)

	defer func() {
		if r := recover(); r != nil {
			c.logger.Errorf(providers.TypeCommand, "[%s] %s panicked: %v", id, name, r)
			reply = Reply{Message: msgTryAgain}
		}
	}()

	reply, err := fn(ctx)
	if err != nil {
		c.logger.Errorf(providers.TypeCommand, "[%s] %s failed after %s: %s", id, name, time.Since(start), err)
		return c.errorReply(err)
	}
	c.logger.Infof(providers.TypeCommand, "[%s] %s finished in %s", id, name, time.Since(start))
	reply.OK = true
	return reply
}

func (c *Commander) errorReply(err error) Reply {
	switch {
	case errors.Is(err, models.ErrNoCandidates):
		return Reply{Message: "🏁 Every problem of this tier has been selected already. Use reset to clear the history and start over."}
	case errors.Is(err, models.ErrUnknownTier):
		return Reply{Message: fmt.Sprintf("❓ Unknown tier. Available tiers: %s", c.tierNames())}
	case errors.Is(err, models.ErrArchivesDisabled):
		return Reply{Message: "🗄️ History archiving is disabled. Set history.archiveDir to keep histories on reset."}
	case errors.Is(err, models.ErrInvalidInput):
		return Reply{Message: "❓ " + err.Error()}
	default:
		return Reply{Message: msgTryAgain}
	}
}

func (c *Commander) tierNames() string {
	tiers := c.selector.Tiers()
	names := make([]string, 0, len(tiers))
	for _, t := range tiers {
		names = append(names, fmt.Sprintf("%s (%s..%s, %d+ solvers)", t.Name, models.TierCode(t.MinLevel), models.TierCode(t.MaxLevel), t.MinSolvers))
	}
	return strings.Join(names, ", ")
}
