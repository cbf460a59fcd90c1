package history

import (
	"context"
	"fmt"
	"probpick/internal/history/interfaces"
	"probpick/internal/models"
	"probpick/internal/providers"
	"probpick/internal/structures"
	"time"
)

const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// InstrumentedStore decorates a backend with metrics, logging and, when an
// archiver is configured, an archive of the history before every clear.
type InstrumentedStore struct {
	inner    interfaces.StoreInterface
	archiver *Archiver
	metrics  providers.MetricsProviderInterface
	logger   providers.Logger
}

func NewInstrumentedStore(inner interfaces.StoreInterface, archiver *Archiver, metrics providers.MetricsProviderInterface, logger providers.Logger) *InstrumentedStore {
	return &InstrumentedStore{
		inner:    inner,
		archiver: archiver,
		metrics:  metrics,
		logger:   logger,
	}
}

func (s *InstrumentedStore) Load(ctx context.Context) (*models.SelectionHistory, error) {
	start := time.Now()
	h, err := s.inner.Load(ctx)
	s.metrics.ObservePersistenceDuration("load", time.Since(start))
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "History load failed: %s", err)
		return nil, err
	}
	s.metrics.SetHistorySize(h.Len())
	return h, nil
}

func (s *InstrumentedStore) Append(ctx context.Context, record models.SelectionRecord) error {
	start := time.Now()
	err := s.inner.Append(ctx, record)
	s.metrics.ObservePersistenceDuration("append", time.Since(start))
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "History append of problem %d failed: %s", record.ProblemID, err)
		return err
	}
	return nil
}

func (s *InstrumentedStore) Clear(ctx context.Context) (int, error) {
	start := time.Now()
	defer func() {
		s.metrics.ObservePersistenceDuration("clear", time.Since(start))
	}()

	if s.archiver != nil {
		h, err := s.inner.Load(ctx)
		if err != nil {
			return 0, err
		}
		if h.Len() > 0 {
			if _, err := s.archiver.Archive(h); err != nil {
				s.logger.Errorf(providers.TypeApp, "History archive failed, keeping history: %s", err)
				return 0, err
			}
		}
	}

	n, err := s.inner.Clear(ctx)
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "History clear failed: %s", err)
		return 0, err
	}
	s.metrics.SetHistorySize(0)
	s.logger.Infof(providers.TypeApp, "History cleared, %d selections removed", n)
	return n, nil
}

// Close closes the backend only; the archiver has its own cleanup.
func (s *InstrumentedStore) Close() error {
	return s.inner.Close()
}

func openBackend(ctx context.Context, conf *structures.HistoryConfig) (interfaces.StoreInterface, error) {
	switch conf.Driver {
	case DriverFile, "":
		return NewFileStore(conf.Path), nil
	case DriverSQLite:
		return NewSQLiteStore(conf.Path)
	case DriverRedis:
		return NewRedisStore(ctx, conf.Dsn, conf.Key)
	case DriverPostgres:
		return NewPostgresStore(ctx, conf.Dsn)
	default:
		return nil, fmt.Errorf("unknown history driver %q", conf.Driver)
	}
}

// NewStore opens the configured backend, archiving to archiver on clear when
// it is not nil. The returned cleanup closes the backend.
func NewStore(conf *structures.Config, archiver *Archiver, logger providers.Logger, metrics providers.MetricsProviderInterface) (interfaces.StoreInterface, func(), error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	backend, err := openBackend(ctx, &conf.History)
	if err != nil {
		return nil, nil, err
	}

	logger.Infof(providers.TypeApp, "History store: %s", conf.History.Driver)
	store := NewInstrumentedStore(backend, archiver, metrics, logger)
	cleanup := func() {
		if err := store.Close(); err != nil {
			logger.Errorf(providers.TypeApp, "History store close error: %s", err)
		}
	}
	return store, cleanup, nil
}
