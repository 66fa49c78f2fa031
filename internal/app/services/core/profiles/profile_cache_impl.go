package profiles

import (
	"context"
	"neonatal-triage-service/internal/app/contracts"
	"neonatal-triage-service/internal/app/models"
	"neonatal-triage-service/internal/pkg/constvars"
	"neonatal-triage-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
)

type profileRedisCache struct {
	RedisRepository contracts.RedisRepository
}

// NewProfileRedisCache keeps the last known profile per subject with no expiry.
func NewProfileRedisCache(redisRepository contracts.RedisRepository) contracts.ProfileCache {
	return &profileRedisCache{RedisRepository: redisRepository}
}

func (c *profileRedisCache) Get(ctx context.Context, subjectID string) (*models.NeonatalProfile, error) {
	data, err := c.RedisRepository.Get(ctx, profileCacheKey(subjectID))
	if err != nil {
		return nil, err
	}
	if data == "" {
		return nil, nil
	}

	var profile models.NeonatalProfile
	err = json.Unmarshal([]byte(data), &profile)
	if err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	return &profile, nil
}

func (c *profileRedisCache) Set(ctx context.Context, subjectID string, profile models.NeonatalProfile) error {
	return c.RedisRepository.Set(ctx, profileCacheKey(subjectID), profile, 0)
}

func profileCacheKey(subjectID string) string {
	return constvars.RedisKeyProfileCachePrefix + subjectID
}
