package service

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strings"
	"sync/atomic"

	"restaurantscorer/internal/apperrors"
	"restaurantscorer/internal/cache"
	"restaurantscorer/internal/microservices/http-api/models"
	"restaurantscorer/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

const (
	DefaultListLimit    = 100
	DefaultHistoryLimit = 50

	MinRating = 0
	MaxRating = 10

	StatusHealthy = "healthy"
)

type ScoreEntryService interface {
	Submit(ctx context.Context, entry *models.ScoreEntry) (*models.ScoreEntry, error)
	List(ctx context.Context, limit int) ([]models.ScoreEntry, error)
	Get(ctx context.Context, id int64) (*models.ScoreEntry, error)
	History(ctx context.Context, sortBy models.HistorySort, limit int) ([]models.ScoreEntry, error)
	Health() string
	Ready(ctx context.Context) error
}

type scoreEntryService struct {
	repo   repository.ScoreEntryRepository
	cache  cache.EntryCache
	logger *slog.Logger

	// set when a Bump failed: cached listings may predate a committed write
	cacheStale atomic.Bool
}

// NewScoreEntryService builds the service. entryCache may be nil, in which
// case every list goes to the store.
func NewScoreEntryService(repo repository.ScoreEntryRepository, entryCache cache.EntryCache, logger *slog.Logger) ScoreEntryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &scoreEntryService{repo: repo, cache: entryCache, logger: logger}
}

// FinalScore is (taste + experience + value) / mood. Callers must reject a
// zero mood first.
func FinalScore(taste, experience, value int, mood float64) float64 {
	return float64(taste+experience+value) / mood
}

// Submit validates the entry, computes its final score and stores it.
// Any ID or FinalScore set by the caller is overwritten.
func (s *scoreEntryService) Submit(ctx context.Context, entry *models.ScoreEntry) (*models.ScoreEntry, error) {
	if entry == nil {
		return nil, apperrors.Validation("entry is required")
	}

	e := *entry
	e.ID = 0
	e.RestaurantName = strings.TrimSpace(e.RestaurantName)
	e.Link = strings.TrimSpace(e.Link)
	if e.Notes != nil {
		notes := strings.TrimSpace(*e.Notes)
		if notes == "" {
			e.Notes = nil
		} else {
			e.Notes = &notes
		}
	}

	if err := validateEntry(&e); err != nil {
		return nil, err
	}

	e.FinalScore = FinalScore(e.Taste, e.Experience, e.Value, e.Mood)
	if math.IsInf(e.FinalScore, 0) || math.IsNaN(e.FinalScore) {
		return nil, apperrors.Validationf("mood %g is too small to produce a finite score", e.Mood)
	}

	if err := s.repo.Create(ctx, &e); err != nil {
		s.logger.Error("Failed to store score entry", "restaurant", e.RestaurantName, "error", err)
		return nil, apperrors.StorageUnavailable("failed to save entry", err)
	}

	s.invalidateRecent(ctx)

	s.logger.Info("Score entry saved", "id", e.ID, "restaurant", e.RestaurantName, "final_score", e.FinalScore)
	return &e, nil
}

func validateEntry(e *models.ScoreEntry) error {
	if e.RestaurantName == "" {
		return apperrors.Validation("restaurant_name is required")
	}
	if e.Link == "" {
		return apperrors.Validation("link is required")
	}
	if e.DateVisited.IsZero() {
		return apperrors.Validation("date_visited is required")
	}

	ratings := []struct {
		name  string
		value int
	}{
		{"taste", e.Taste},
		{"experience", e.Experience},
		{"value", e.Value},
	}
	for _, r := range ratings {
		if r.value < MinRating || r.value > MaxRating {
			return apperrors.Validationf("%s must be between %d and %d, got %d", r.name, MinRating, MaxRating, r.value)
		}
	}

	switch {
	case math.IsNaN(e.Mood) || math.IsInf(e.Mood, 0):
		return apperrors.Validation("mood must be a finite number")
	case e.Mood == 0:
		return apperrors.Division("mood must not be zero")
	case e.Mood < 0:
		return apperrors.Validationf("mood must be positive, got %g", e.Mood)
	}
	return nil
}

// List returns up to limit entries, newest first. limit <= 0 means DefaultListLimit.
func (s *scoreEntryService) List(ctx context.Context, limit int) ([]models.ScoreEntry, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	var version int64
	cacheable := false
	if s.cacheUsable(ctx) {
		v, err := s.cache.Version(ctx)
		if err != nil {
			s.logger.Warn("Entry cache version lookup failed", "error", err)
		} else {
			version, cacheable = v, true
			entries, hit, err := s.cache.GetRecent(ctx, version, limit)
			if err != nil {
				s.logger.Warn("Entry cache read failed", "error", err)
			} else if hit {
				return entries, nil
			}
		}
	}

	entries, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		s.logger.Error("Failed to list score entries", "limit", limit, "error", err)
		return nil, apperrors.StorageUnavailable("failed to list entries", err)
	}

	// a submit that lands after Version was read bumps past this key
	if cacheable {
		if err := s.cache.SetRecent(ctx, version, limit, entries); err != nil {
			s.logger.Warn("Entry cache write failed", "error", err)
		}
	}
	return entries, nil
}

func (s *scoreEntryService) Get(ctx context.Context, id int64) (*models.ScoreEntry, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("entry not found")
		}
		s.logger.Error("Failed to get score entry", "id", id, "error", err)
		return nil, apperrors.StorageUnavailable("failed to get entry", err)
	}
	return entry, nil
}

// History lists entries by visit date or by score. An empty sortBy means by
// date; limit <= 0 means DefaultHistoryLimit.
func (s *scoreEntryService) History(ctx context.Context, sortBy models.HistorySort, limit int) ([]models.ScoreEntry, error) {
	if sortBy == "" {
		sortBy = models.SortByDate
	}
	if !sortBy.Valid() {
		return nil, apperrors.Validationf("sort_by must be %q or %q", models.SortByDate, models.SortByScore)
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	entries, err := s.repo.ListHistory(ctx, sortBy, limit)
	if err != nil {
		s.logger.Error("Failed to list score history", "sort_by", sortBy, "error", err)
		return nil, apperrors.StorageUnavailable("failed to list history", err)
	}
	return entries, nil
}

// Health is a liveness check and does not touch storage.
func (s *scoreEntryService) Health() string {
	return StatusHealthy
}

func (s *scoreEntryService) Ready(ctx context.Context) error {
	if err := s.repo.Ping(ctx); err != nil {
		s.logger.Error("Storage is not ready", "error", err)
		return apperrors.StorageUnavailable("storage is unavailable", err)
	}
	return nil
}

func (s *scoreEntryService) invalidateRecent(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Bump(ctx); err != nil {
		s.cacheStale.Store(true)
		s.logger.Warn("Entry cache invalidation failed, bypassing cache", "error", err)
	}
}

// cacheUsable reports whether List may read and write the cache. After a
// failed Bump the cache is skipped until a retried Bump succeeds.
func (s *scoreEntryService) cacheUsable(ctx context.Context) bool {
	if s.cache == nil {
		return false
	}
	if !s.cacheStale.Load() {
		return true
	}
	if err := s.cache.Bump(ctx); err != nil {
		s.logger.Warn("Entry cache still unavailable", "error", err)
		return false
	}
	s.cacheStale.Store(false)
	s.logger.Info("Entry cache invalidated, resuming cached listings")
	return true
}
