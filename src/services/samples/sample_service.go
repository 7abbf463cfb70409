// Package samples is the query and mutation layer over the sample
// collection: cached, cursor-paginated reads and auth-gated writes.
package samples

import (
	"log/slog"
	"time"

	"samplecatalog/src/domain"
	"samplecatalog/src/repositories"
	"samplecatalog/src/services/cache"
	"samplecatalog/src/services/events"
)

// Config is read once at startup and treated as immutable afterwards.
type Config struct {
	CacheCapacity  int
	CacheTTL       time.Duration
	DisableAuth    bool
	RequiredDomain string
}

// Caches holds one cache instance per cached query shape. They are built
// here, owned by the composition root, and passed to the service — lookups
// by id are deliberately not represented: those always hit the store.
type Caches struct {
	AllSamples      *cache.Cache[domain.SampleConnection]
	SearchSamples   *cache.Cache[domain.SampleConnection]
	SamplesByStatus *cache.Cache[domain.SampleConnection]
	SamplesByNames  *cache.Cache[domain.SampleConnection]
}

func NewCaches(logger *slog.Logger, cfg Config) *Caches {
	build := func(name string) *cache.Cache[domain.SampleConnection] {
		return cache.New[domain.SampleConnection](name, cfg.CacheCapacity, cfg.CacheTTL, logger)
	}
	return &Caches{
		AllSamples:      build("all_samples"),
		SearchSamples:   build("search_samples"),
		SamplesByStatus: build("samples_by_status"),
		SamplesByNames:  build("samples_by_names"),
	}
}

// Service composes the repository facade, the per-query caches, the auth
// gate and the event publisher behind the operations the transport exposes.
type Service struct {
	logger    *slog.Logger
	repo      repositories.SampleRepository
	caches    *Caches
	publisher events.Publisher
	cfg       Config

	// now feeds the status predicates and the audit stamps; injected so
	// time-dependent behavior is testable.
	now func() time.Time
}

// Option configures a Service at construction time.
type Option func(*Service)

// WithClock replaces the service's time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(
	logger *slog.Logger,
	repo repositories.SampleRepository,
	caches *Caches,
	publisher events.Publisher,
	cfg Config,
	opts ...Option,
) *Service {
	s := &Service{
		logger:    logger,
		repo:      repo,
		caches:    caches,
		publisher: publisher,
		cfg:       cfg,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
