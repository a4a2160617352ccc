package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/user/audit-service/internal/entity"
	"github.com/user/audit-service/pkg/utils"
)

const lastScoresPrefix = "audit:last:"

// ScoreCacheImpl provides a concrete implementation for the
// ScoreCacheRepository interface using Redis.
type ScoreCacheImpl struct {
	client *redis.Client
}

// NewScoreCache creates a new instance of ScoreCacheImpl.
func NewScoreCache(client *redis.Client) *ScoreCacheImpl {
	return &ScoreCacheImpl{client: client}
}

// generateKey creates a consistent Redis key for a url/device pair by
// hashing the URL.
func (r *ScoreCacheImpl) generateKey(url, device string) string {
	return fmt.Sprintf("%s%s:%s", lastScoresPrefix, utils.HashURL(url), device)
}

// LastScores returns the most recently cached scores for a url/device
// pair, or (nil, nil) when nothing is cached.
func (r *ScoreCacheImpl) LastScores(ctx context.Context, url, device string) (*entity.Scores, error) {
	data, err := r.client.Get(ctx, r.generateKey(url, device)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var scores entity.Scores
	if err := json.Unmarshal(data, &scores); err != nil {
		return nil, fmt.Errorf("corrupt cached scores for %s/%s: %w", url, device, err)
	}
	return &scores, nil
}

// SaveScores caches the scores for a url/device pair with an expiry.
func (r *ScoreCacheImpl) SaveScores(ctx context.Context, url, device string, scores *entity.Scores, expiry time.Duration) error {
	data, err := json.Marshal(scores)
	if err != nil {
		return err
	}
	return r.client.SetEx(ctx, r.generateKey(url, device), data, expiry).Err()
}
