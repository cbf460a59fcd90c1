package services

import (
	"context"
	"probpick/internal/catalog"
	"probpick/internal/history/interfaces"
	"probpick/internal/models"
	"probpick/internal/providers"
)

type StatsServiceInterface interface {
	ComputeAll(ctx context.Context) ([]models.UserStat, error)
}

type StatsService struct {
	catalog catalog.ClientInterface
	queries *catalog.QueryBuilder
	store   interfaces.StoreInterface
	cache   providers.CacheProviderInterface
	logger  providers.Logger
}

func NewStatsService(
	client catalog.ClientInterface,
	queries *catalog.QueryBuilder,
	store interfaces.StoreInterface,
	cache providers.CacheProviderInterface,
	logger providers.Logger,
) StatsServiceInterface {
	return &StatsService{
		catalog: client,
		queries: queries,
		store:   store,
		cache:   cache,
		logger:  logger,
	}
}

// ComputeAll reports, per excluded user in configured order, how many history
// problems the user has solved. Solved sets are fetched from the catalog on
// every call. When a fetch stops midway, the ids gathered so far are merged
// with the user's last complete set, if one is cached, and the stat is flagged
// Partial.
func (s *StatsService) ComputeAll(ctx context.Context) ([]models.UserStat, error) {
	h, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	users := s.queries.Exclusions()
	stats := make([]models.UserStat, 0, len(users))
	for _, user := range users {
		stat := models.UserStat{UserID: user, Total: h.Len()}
		if h.Len() == 0 {
			stats = append(stats, stat)
			continue
		}

		solved, complete, stale := s.solvedSet(ctx, user)
		stat.Partial = !complete
		stat.Stale = stale
		for _, p := range h.Problems {
			if solved.Contains(p.ProblemID) {
				stat.Solved++
			} else {
				stat.Unsolved++
			}
		}
		stats = append(stats, stat)
	}
	return stats, nil
}

func solvedKey(user string) string {
	return "solved:" + user
}

func (s *StatsService) solvedSet(ctx context.Context, user string) (set *models.SolvedSet, complete, stale bool) {
	ids, err := s.catalog.FetchSolvedIDs(ctx, user)
	set = models.NewSolvedSet(ids)
	if err == nil {
		if data, err := set.MarshalBinary(); err == nil {
			s.cache.Set(solvedKey(user), data)
		}
		return set, true, false
	}

	s.logger.Warnf(providers.TypeCatalog, "Solved set of %s is partial (%d ids): %s", user, set.Len(), err)
	data, ok := s.cache.Get(solvedKey(user))
	if !ok {
		return set, false, false
	}
	cached, cerr := models.UnmarshalSolvedSet(data)
	if cerr != nil {
		s.logger.Warnf(providers.TypeCatalog, "Cached solved set of %s unreadable: %s", user, cerr)
		return set, false, false
	}
	// solved sets only grow, so the last complete set is a lower bound
	set.Union(cached)
	s.logger.Infof(providers.TypeCatalog, "Solved set of %s topped up from cache to %d ids", user, set.Len())
	return set, false, true
}
