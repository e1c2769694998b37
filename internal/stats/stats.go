// Package stats reports service counters and dependency status.
package stats

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/filevault/pkg/cache"
	"github.com/dmitrymomot/filevault/pkg/logger"
)

const (
	cacheKey        = "stats"
	DefaultCacheTTL = 5 * time.Second
)

// Counter counts records of one kind.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// Stats is the response of GET /stats.
type Stats struct {
	Users int64 `json:"users"`
	Files int64 `json:"files"`
}

// Service computes Stats, caching them for a short while.
type Service struct {
	users Counter
	files Counter
	cache cache.Cache[Stats]
	ttl   time.Duration
}

func NewService(users, files Counter, c cache.Cache[Stats], ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Service{users: users, files: files, cache: c, ttl: ttl}
}

// Get returns the counters. Concurrent misses share one computation.
func (s *Service) Get(ctx context.Context) (Stats, error) {
	return cache.GetOrSet(ctx, s.cache, cacheKey, func(ctx context.Context) (Stats, time.Duration, error) {
		st, err := s.count(ctx)
		return st, s.ttl, err
	})
}

func (s *Service) count(ctx context.Context) (Stats, error) {
	var st Stats
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		st.Users, err = s.users.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		st.Files, err = s.files.Count(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Stats{}, fmt.Errorf("stats: count: %w", err)
	}
	return st, nil
}

// ReportTask periodically logs the counters.
type ReportTask struct {
	svc      *Service
	schedule string
	logger   *slog.Logger
}

func NewReportTask(svc *Service, schedule string, log *slog.Logger) *ReportTask {
	if log == nil {
		log = logger.NewNope()
	}
	return &ReportTask{svc: svc, schedule: schedule, logger: log}
}

func (t *ReportTask) Name() string     { return "stats:report" }
func (t *ReportTask) Schedule() string { return t.schedule }

func (t *ReportTask) Handle(ctx context.Context) error {
	st, err := t.svc.count(ctx)
	if err != nil {
		return err
	}
	t.logger.InfoContext(ctx, "stats", slog.Int64("users", st.Users), slog.Int64("files", st.Files))
	return nil
}
