package ratelimiter

import (
	"context"
	"fmt"
	"neonatal-triage-service/internal/app/contracts"
	"neonatal-triage-service/internal/pkg/constvars"
	"strings"
	"time"

	"go.uber.org/zap"
)

// QuotaLimiter is a fixed-window counter shared by every service replica through Redis.
type QuotaLimiter struct {
	redis contracts.RedisRepository
	log   *zap.Logger
}

func NewQuotaLimiter(redis contracts.RedisRepository, log *zap.Logger) *QuotaLimiter {
	return &QuotaLimiter{redis: redis, log: log}
}

type QuotaInput struct {
	// Group namespaces the counter, e.g. SUBMIT.
	Group string
	// Subject is the entity being limited.
	Subject    string
	WindowSecs int
	MaxQuota   int
	// NowUTC defaults to time.Now().UTC() when zero.
	NowUTC time.Time
}

type QuotaOutput struct {
	Allowed        bool
	RetryAfterSecs int
}

// Apply counts one hit for the subject in the current window. A non-positive
// MaxQuota disables the limit.
func (l *QuotaLimiter) Apply(ctx context.Context, in QuotaInput) (*QuotaOutput, error) {
	windowSecs := in.WindowSecs
	if windowSecs <= 0 {
		windowSecs = 60
	}
	if in.MaxQuota <= 0 {
		return &QuotaOutput{Allowed: true}, nil
	}

	subject := strings.TrimSpace(in.Subject)
	group := strings.ToUpper(strings.TrimSpace(in.Group))
	if subject == "" || group == "" {
		return &QuotaOutput{Allowed: false, RetryAfterSecs: windowSecs}, nil
	}

	now := in.NowUTC
	if now.IsZero() {
		now = time.Now().UTC()
	}

	windowID := now.Unix() / int64(windowSecs)
	key := fmt.Sprintf("%s%s:%s:%d", constvars.RedisKeyQuotaPrefix, group, subject, windowID)

	count, err := l.redis.IncrementWithTTL(ctx, key, time.Duration(windowSecs+1)*time.Second)
	if err != nil {
		l.log.Error("QuotaLimiter.Apply increment failed",
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return &QuotaOutput{Allowed: false}, err
	}

	if count > in.MaxQuota {
		nextWindowStart := (windowID + 1) * int64(windowSecs)
		return &QuotaOutput{Allowed: false, RetryAfterSecs: int(nextWindowStart-now.Unix()) + 1}, nil
	}
	return &QuotaOutput{Allowed: true}, nil
}
