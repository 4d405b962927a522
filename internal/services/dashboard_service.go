package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"lonnstall/internal/cache"
	"lonnstall/internal/core"
	"lonnstall/internal/insights"
	"lonnstall/internal/log"
	"lonnstall/internal/source"
	"lonnstall/internal/table"
)

// ErrNotLoaded is returned by every read before Load has been called.
var ErrNotLoaded = errors.New("dataset not loaded")

// DatasetInfo describes the dataset currently served.
type DatasetInfo struct {
	Source   string    `json:"source"`
	Records  int       `json:"records"`
	Skipped  int       `json:"skipped"`
	LoadedAt time.Time `json:"loaded_at"`
}

// RecordsPage is one page of the records table for a filter.
type RecordsPage struct {
	table.Page
	Sort       string          `json:"sort"`
	Dir        table.Direction `json:"dir"`
	TotalCount int             `json:"total_count"`
	Filter     core.FilterSpec `json:"filter"`
}

// DashboardService owns the dataset for the lifetime of the process. It is
// loaded once; a failed load is kept and reported by every read.
type DashboardService struct {
	reader source.DatasetReader
	memo   *cache.LRUCache[insights.Dashboard]
	logger *log.Logger

	mu      sync.RWMutex
	loaded  bool
	dataset core.Dataset
	info    DatasetInfo
	loadErr error
}

func NewDashboardService(reader source.DatasetReader, memo *cache.LRUCache[insights.Dashboard], logger *log.Logger) *DashboardService {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &DashboardService{
		reader: reader,
		memo:   memo,
		logger: logger.WithComponent(log.ComponentDashboard),
	}
}

// Load reads the dataset from the configured source. The outcome, success or
// failure, is what later reads observe.
func (s *DashboardService) Load(ctx context.Context) error {
	start := time.Now()
	res, err := s.reader.ReadDataset(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = true
	if err != nil {
		s.loadErr = fmt.Errorf("load dataset: %w", err)
		s.dataset = core.Dataset{}
		s.info = DatasetInfo{}
		s.logger.ErrorContext(ctx, "Dataset load failed", log.FieldError, err.Error(), log.FieldOperation, log.OpLoad)
		return s.loadErr
	}
	s.loadErr = nil
	s.dataset = res.Dataset
	s.info = DatasetInfo{
		Source:   res.Source,
		Records:  res.Dataset.Len(),
		Skipped:  res.Skipped,
		LoadedAt: time.Now().UTC(),
	}
	if s.memo != nil {
		s.memo.Purge()
	}
	log.NewStructuredLogger(s.logger).LogDatasetLoaded(ctx, res.Source, res.Dataset.Len(), res.Skipped)
	s.logger.DebugContext(ctx, "Dataset ready", log.FieldDuration, time.Since(start).Milliseconds())
	return nil
}

// Ready returns nil once a load succeeded.
func (s *DashboardService) Ready() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.readyLocked()
}

func (s *DashboardService) readyLocked() error {
	if !s.loaded {
		return ErrNotLoaded
	}
	return s.loadErr
}

func (s *DashboardService) snapshot() (core.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.readyLocked(); err != nil {
		return core.Dataset{}, err
	}
	return s.dataset, nil
}

// Info describes the served dataset. It is the zero value until a load succeeds.
func (s *DashboardService) Info() DatasetInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.info
}

// Dashboard builds, or returns the memoised, dashboard for filter.
func (s *DashboardService) Dashboard(ctx context.Context, filter core.FilterSpec) (insights.Dashboard, error) {
	ds, err := s.snapshot()
	if err != nil {
		return insights.Dashboard{}, err
	}
	key := filter.Key()
	if s.memo != nil {
		if d, ok := s.memo.Get(key); ok {
			s.logger.DebugContext(ctx, "Dashboard cache hit", log.FieldFilter, key, log.FieldCacheHit, true)
			return d, nil
		}
	}
	matched := ds.Filter(filter)
	d := insights.Build(matched, filter)
	if s.memo != nil {
		s.memo.Set(key, d)
	}
	s.logger.DebugContext(ctx, "Dashboard built",
		log.FieldFilter, key,
		log.FieldRecords, ds.Len(),
		log.FieldMatched, len(matched),
		log.FieldCacheHit, false)
	return d, nil
}

// Records returns one sorted page of the records matching filter.
// TotalCount is the size of the whole dataset, Total the size of the subset.
func (s *DashboardService) Records(filter core.FilterSpec, column string, dir table.Direction, page, perPage int) (RecordsPage, error) {
	ds, err := s.snapshot()
	if err != nil {
		return RecordsPage{}, err
	}
	if !table.IsColumn(column) {
		column = ""
	}
	sorted := table.Sort(ds.Filter(filter), column, dir)
	return RecordsPage{
		Page:       table.Paginate(sorted, page, perPage),
		Sort:       column,
		Dir:        dir,
		TotalCount: ds.Len(),
		Filter:     filter,
	}, nil
}

// Options returns the distinct values available to the equality filters.
func (s *DashboardService) Options() (core.FilterOptions, error) {
	ds, err := s.snapshot()
	if err != nil {
		return core.FilterOptions{}, err
	}
	return ds.Options(), nil
}

// CacheStats reports dashboard memoisation usage.
func (s *DashboardService) CacheStats() cache.Stats {
	if s.memo == nil {
		return cache.Stats{}
	}
	return s.memo.Stats()
}
