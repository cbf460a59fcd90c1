package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"probpick/internal/catalog"
	"probpick/internal/history/interfaces"
	"probpick/internal/models"
	"probpick/internal/providers"
	"probpick/internal/structures"
	"strings"
	"time"
)

// RandomSource yields uniform integers in [0, n).
type RandomSource interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

type SelectionServiceInterface interface {
	Select(ctx context.Context, tier models.TierSpec) (*models.SelectionOutcome, error)
	ResolveTier(name string) (models.TierSpec, error)
	Tiers() []models.TierSpec
}

type SelectionService struct {
	catalog     catalog.ClientInterface
	queries     *catalog.QueryBuilder
	store       interfaces.StoreInterface
	rnd         RandomSource
	now         func() time.Time
	judgeURL    string
	tiers       []models.TierSpec
	defaultTier string
	logger      providers.Logger
	metrics     providers.MetricsProviderInterface
}

func NewSelectionService(
	conf *structures.Config,
	client catalog.ClientInterface,
	queries *catalog.QueryBuilder,
	store interfaces.StoreInterface,
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
) SelectionServiceInterface {
	return newSelectionService(conf, client, queries, store, globalRand{}, logger, metrics)
}

func newSelectionService(
	conf *structures.Config,
	client catalog.ClientInterface,
	queries *catalog.QueryBuilder,
	store interfaces.StoreInterface,
	rnd RandomSource,
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
) *SelectionService {
	return &SelectionService{
		catalog:     client,
		queries:     queries,
		store:       store,
		rnd:         rnd,
		now:         time.Now,
		judgeURL:    conf.Catalog.JudgeUrl,
		tiers:       providers.TierSpecs(conf),
		defaultTier: conf.Selection.DefaultTier,
		logger:      logger,
		metrics:     metrics,
	}
}

// ResolveTier maps a tier name to its spec. An empty name selects the default tier.
func (s *SelectionService) ResolveTier(name string) (models.TierSpec, error) {
	if name == "" {
		name = s.defaultTier
	}
	for _, t := range s.tiers {
		if strings.EqualFold(t.Name, name) {
			return t, nil
		}
	}
	return models.TierSpec{}, fmt.Errorf("%w %q", models.ErrUnknownTier, name)
}

func (s *SelectionService) Tiers() []models.TierSpec {
	return append([]models.TierSpec(nil), s.tiers...)
}

// Select picks one problem of the tier that is neither solved by an excluded
// user nor already in the history, and appends it to the history. It returns
// models.ErrNoCandidates when the tier is exhausted. Nothing is written when
// the catalog or the store fails.
func (s *SelectionService) Select(ctx context.Context, tier models.TierSpec) (*models.SelectionOutcome, error) {
	h, err := s.store.Load(ctx)
	if err != nil {
		s.metrics.IncSelections(tier.Name, "error")
		return nil, err
	}
	selected := h.IDs()

	query := s.queries.Build(tier)
	candidates, err := s.catalog.FetchAll(ctx, query)
	if err != nil {
		s.metrics.IncSelections(tier.Name, "error")
		return nil, err
	}

	available := make([]models.CatalogProblem, 0, len(candidates))
	seen := make(map[int]struct{}, len(candidates))
	for _, p := range candidates {
		if _, ok := selected[p.ID]; ok {
			continue
		}
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		available = append(available, p)
	}

	s.logger.Infof(providers.TypeCommand, "Tier %s: %d candidates, %d previously selected, %d available",
		tier.Name, len(candidates), len(selected), len(available))

	if len(available) == 0 {
		s.metrics.IncSelections(tier.Name, "exhausted")
		return nil, fmt.Errorf("%w, tier %s", models.ErrNoCandidates, tier.Name)
	}

	picked := available[s.rnd.IntN(len(available))]
	record := models.SelectionRecord{
		ProblemID:  picked.ID,
		Title:      picked.Title,
		Tier:       models.TierLabel(picked.Level),
		SelectedAt: s.now().UTC(),
		URL:        models.ProblemURL(s.judgeURL, picked.ID),
	}
	if err := s.store.Append(ctx, record); err != nil {
		s.metrics.IncSelections(tier.Name, "error")
		return nil, err
	}

	s.metrics.IncSelections(tier.Name, "selected")
	s.metrics.SetHistorySize(h.Len() + 1)
	return &models.SelectionOutcome{
		Problem:         picked,
		Record:          record,
		Remaining:       len(available) - 1,
		TotalCandidates: len(candidates),
	}, nil
}
