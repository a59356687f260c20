package recommendation

import (
	"context"

	"schemesathi/internal/common/logger"
	"schemesathi/internal/common/metrics"
	"schemesathi/internal/models"
	"schemesathi/internal/store/reccache"
)

type Recommender interface {
	Recommend(ctx context.Context, p models.Profile) ([]models.Recommendation, error)
}

type Cache interface {
	Get(ctx context.Context, userID string, p models.Profile) (*reccache.Entry, error)
	Put(ctx context.Context, userID string, p models.Profile, recs []models.Recommendation) error
	Invalidate(ctx context.Context, userID string) error
}

// Result is the outcome of a fetch. Recommendations is nil unless Status is succeeded or cached.
type Result struct {
	Recommendations []models.Recommendation
	Status          models.RecommendationStatus
	Notice          string
	Err             error
}

// Service puts the recommendation cache in front of a Recommender. It never fails: a
// recommendation failure comes back as a Result with status failed.
type Service struct {
	recommender Recommender
	cache       Cache
	logger      logger.Logger
}

// NewService accepts a nil cache, in which case every fetch goes to the model.
func NewService(rec Recommender, cache Cache, log logger.Logger) *Service {
	return &Service{recommender: rec, cache: cache, logger: log}
}

// Fetch serves a cached result for the same profile snapshot, or asks the model.
func (s *Service) Fetch(ctx context.Context, userID string, p models.Profile) Result {
	if recs := s.Cached(ctx, userID, p); recs != nil {
		metrics.RecommendationRequests.WithLabelValues(string(models.RecommendationCached)).Inc()
		return Result{Recommendations: recs, Status: models.RecommendationCached}
	}
	return s.fresh(ctx, userID, p)
}

// Refresh drops the user's cached results and asks the model. Used after a profile save.
func (s *Service) Refresh(ctx context.Context, userID string, p models.Profile) Result {
	s.Invalidate(ctx, userID)
	return s.fresh(ctx, userID, p)
}

// Invalidate is best effort; an unreachable cache is logged.
func (s *Service) Invalidate(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.logger.Warn("recommendation cache invalidation failed", map[string]interface{}{
			"userId": userID,
			"error":  err.Error(),
		})
	}
}

// Cached returns the cached recommendations for this exact profile, or nil.
func (s *Service) Cached(ctx context.Context, userID string, p models.Profile) []models.Recommendation {
	if s.cache == nil {
		return nil
	}
	entry, err := s.cache.Get(ctx, userID, p)
	if err != nil {
		s.logger.Warn("recommendation cache read failed", map[string]interface{}{
			"userId": userID,
			"error":  err.Error(),
		})
		metrics.RecommendationCache.WithLabelValues("error").Inc()
		return nil
	}
	if entry == nil {
		metrics.RecommendationCache.WithLabelValues("miss").Inc()
		return nil
	}
	metrics.RecommendationCache.WithLabelValues("hit").Inc()
	return entry.Recommendations
}

func (s *Service) fresh(ctx context.Context, userID string, p models.Profile) Result {
	if s.recommender == nil {
		metrics.RecommendationRequests.WithLabelValues(string(models.RecommendationSkipped)).Inc()
		return Result{Status: models.RecommendationSkipped}
	}

	recs, err := s.recommender.Recommend(ctx, p)
	if err != nil {
		s.logger.Warn("recommendation fetch failed", map[string]interface{}{
			"userId": userID,
			"error":  err.Error(),
		})
		metrics.RecommendationRequests.WithLabelValues(string(models.RecommendationFailed)).Inc()
		return Result{Status: models.RecommendationFailed, Notice: models.RecommendationFailedNotice, Err: err}
	}
	metrics.RecommendationRequests.WithLabelValues(string(models.RecommendationSucceeded)).Inc()

	if s.cache != nil {
		if err := s.cache.Put(ctx, userID, p, recs); err != nil {
			s.logger.Warn("recommendation cache write failed", map[string]interface{}{
				"userId": userID,
				"error":  err.Error(),
			})
		}
	}
	return Result{Recommendations: recs, Status: models.RecommendationSucceeded}
}
