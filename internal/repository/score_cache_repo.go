package repository

import (
	"context"
	"time"

	"github.com/user/audit-service/internal/entity"
)

// ScoreCacheRepository defines the interface for the optional cache of the
// most recent scores per (url, device), used to flag score regressions
// between batch runs.
type ScoreCacheRepository interface {
	// LastScores returns the cached scores for a url/device pair, or
	// (nil, nil) when nothing is cached.
	LastScores(ctx context.Context, url, device string) (*entity.Scores, error)
	// SaveScores caches the scores for a url/device pair with an expiry.
	SaveScores(ctx context.Context, url, device string, scores *entity.Scores, expiry time.Duration) error
}
