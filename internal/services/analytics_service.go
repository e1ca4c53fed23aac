package services

import (
	"errors"
	"math"
	"time"

	"dormdesk_backend/internal/cache"
	"dormdesk_backend/internal/logger"
	"dormdesk_backend/internal/models"
	"dormdesk_backend/internal/repositories"
	"dormdesk_backend/internal/services/dto"
)

const (
	analyticsCacheKey = "analytics:overview"
	analyticsCacheTTL = 30 * time.Second
)

// AnalyticsService отдает сводку для админской панели.
// Результат кешируется в Redis на короткий TTL - цифры для дашборда
// могут отставать на полминуты.
type AnalyticsService interface {
	GetOverview() (*dto.AnalyticsOverview, error)
}

type analyticsService struct {
	analyticsRepo repositories.AnalyticsRepository
	cache         *cache.Cache
}

func NewAnalyticsService(analyticsRepo repositories.AnalyticsRepository, c *cache.Cache) AnalyticsService {
	return &analyticsService{analyticsRepo: analyticsRepo, cache: c}
}

func (s *analyticsService) GetOverview() (*dto.AnalyticsOverview, error) {
	var cached dto.AnalyticsOverview
	err := s.cache.GetJSON(analyticsCacheKey, &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		logger.WithError(err).Warn("analytics cache read failed")
	}

	overview, err := s.buildOverview()
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetJSON(analyticsCacheKey, overview, analyticsCacheTTL); err != nil {
		logger.WithError(err).Warn("analytics cache write failed")
	}
	return overview, nil
}

func (s *analyticsService) buildOverview() (*dto.AnalyticsOverview, error) {
	total, err := s.analyticsRepo.CountRepresentatives()
	if err != nil {
		return nil, err
	}
	resolved, err := s.analyticsRepo.CountByStatus(string(models.ComplaintStatusCompleted))
	if err != nil {
		return nil, err
	}
	inProgress, err := s.analyticsRepo.CountByStatus(
		string(models.ComplaintStatusAssigned),
		string(models.ComplaintStatusInProgress),
	)
	if err != nil {
		return nil, err
	}
	pending, err := s.analyticsRepo.CountByStatus(string(models.ComplaintStatusPending))
	if err != nil {
		return nil, err
	}
	activeWorkers, err := s.analyticsRepo.CountActiveWorkers()
	if err != nil {
		return nil, err
	}
	avgHours, err := s.analyticsRepo.AvgResolutionHours()
	if err != nil {
		return nil, err
	}

	return &dto.AnalyticsOverview{
		TotalComplaints:    total,
		ResolvedComplaints: resolved,
		InProgress:         inProgress,
		PendingComplaints:  pending,
		ActiveWorkers:      activeWorkers,
		AvgResolutionTime:  math.Round(avgHours*100) / 100,
	}, nil
}
