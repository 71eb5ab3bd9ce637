package services

import (
	"context"

	"scoreservice/internal/datastore"
	"scoreservice/internal/models"
	"scoreservice/internal/pkg/caching"

	"github.com/samber/do"
)

type ServiceScore struct {
	container *do.Injector
	scores    *datastore.ScoreCollection
	cache     caching.Cache
}

func NewServiceScore(container *do.Injector) (*ServiceScore, error) {
	scores, err := do.Invoke[*datastore.ScoreCollection](container)
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	return &ServiceScore{container, scores, cache}, nil
}

// GetUserScores returns every score of username in stored order.
func (service *ServiceScore) GetUserScores(ctx context.Context, username string) ([]models.ScoreRecord, error) {
	callback := func() ([]models.ScoreRecord, error) {
		scores := service.scores.Filter(func(record *models.ScoreRecord) bool {
			return record.Username == username
		})
		if len(scores) == 0 {
			return nil, ErrUserScoresNotFound(username)
		}
		return scores, nil
	}

	return caching.UseCache(ctx, service.cache, DBKeyUserScores(service.scores.Fingerprint(), username), CACHE_TTL_5_MINS, callback)
}

// GetUserScoresByMode returns the scores of username played in rawMode once
// rawMode is normalized.
func (service *ServiceScore) GetUserScoresByMode(ctx context.Context, username string, rawMode string) ([]models.ScoreRecord, error) {
	mode, ok := models.NormalizeMode(rawMode)
	if !ok {
		return nil, ErrInvalidMode(rawMode)
	}

	callback := func() ([]models.ScoreRecord, error) {
		scores := service.scores.Filter(func(record *models.ScoreRecord) bool {
			return record.Username == username && record.Mode == mode.String()
		})
		if len(scores) == 0 {
			return nil, ErrUserModeScoresNotFound(username, mode)
		}
		return scores, nil
	}

	return caching.UseCache(ctx, service.cache, DBKeyUserScoresByMode(service.scores.Fingerprint(), username, mode), CACHE_TTL_5_MINS, callback)
}

// GetScoreboard returns all scores, or only those of one mode when rawMode is
// not empty. An empty scoreboard is not an error.
func (service *ServiceScore) GetScoreboard(ctx context.Context, rawMode string) (*models.Scoreboard, error) {
	if rawMode == "" {
		callback := func() (*models.Scoreboard, error) {
			return &models.Scoreboard{Scores: service.scores.All()}, nil
		}
		return caching.UseCache(ctx, service.cache, DBKeyScoreboard(service.scores.Fingerprint(), ""), CACHE_TTL_5_MINS, callback)
	}

	mode, ok := models.NormalizeMode(rawMode)
	if !ok {
		return nil, ErrInvalidMode(rawMode)
	}

	callback := func() (*models.Scoreboard, error) {
		scores := service.scores.Filter(func(record *models.ScoreRecord) bool {
			return record.Mode == mode.String()
		})
		return &models.Scoreboard{Mode: &mode, Scores: scores}, nil
	}

	return caching.UseCache(ctx, service.cache, DBKeyScoreboard(service.scores.Fingerprint(), mode), CACHE_TTL_5_MINS, callback)
}
