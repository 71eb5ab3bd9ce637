package services

import (
	"fmt"
	"time"

	"scoreservice/internal/models"
)

const (
	SERVER_MODE_DEBUG      = "debug"
	SERVER_MODE_PRODUCTION = "production"

	DEFAULT_SCORES_FILE           = "scores.json"
	DEFAULT_RATE_LIMIT_PER_MINUTE = 600

	CACHE_TTL_5_MINS = 5 * time.Minute
)

// Cache keys are scoped by the fingerprint of the collection that answered, so
// instances with different data never read each other's results.

func DBKeyUserScores(collection string, username string) string {
	return fmt.Sprintf("scores:%s:scores_by_user:%s", collection, username)
}

func DBKeyUserScoresByMode(collection string, username string, mode models.Mode) string {
	return fmt.Sprintf("scores:%s:scores_by_mode:%s:%s", collection, mode, username)
}

func DBKeyScoreboard(collection string, mode models.Mode) string {
	if mode == "" {
		return fmt.Sprintf("scores:%s:scoreboard:all", collection)
	}
	return fmt.Sprintf("scores:%s:scoreboard:%s", collection, mode)
}
