package middlewares

import (
	"neonatal-triage-service/internal/pkg/constvars"
	"neonatal-triage-service/internal/pkg/exceptions"
	"neonatal-triage-service/internal/pkg/utils"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimiter throttles a single route per authenticated subject, falling
// back to the client IP, and blocks offenders for blockTime. Idle clients are
// dropped every sweepEvery so the maps stay bounded by recent traffic.
type RateLimiter struct {
	Log        *zap.Logger
	limiters   map[string]*rate.Limiter
	blocked    map[string]time.Time
	mu         sync.Mutex
	burst      int
	per        time.Duration
	blockTime  time.Duration
	sweepEvery time.Duration
	lastSweep  time.Time
	now        func() time.Time
}

func NewRateLimiter(logger *zap.Logger, burst int, per, blockTime time.Duration) *RateLimiter {
	sweepEvery := time.Duration(burst) * per
	if sweepEvery < time.Minute {
		sweepEvery = time.Minute
	}
	return &RateLimiter{
		Log:        logger,
		limiters:   make(map[string]*rate.Limiter),
		blocked:    make(map[string]time.Time),
		burst:      burst,
		per:        per,
		blockTime:  blockTime,
		sweepEvery: sweepEvery,
		now:        time.Now,
	}
}

// NewSubmitRateLimiter builds the limiter guarding assessment submission.
func (m *Middlewares) NewSubmitRateLimiter() *RateLimiter {
	perMinute := m.InternalConfig.App.SubmitRatePerMinute
	if perMinute <= 0 {
		perMinute = 1
	}
	burst := m.InternalConfig.App.SubmitBurst
	if burst <= 0 {
		burst = 1
	}
	per := time.Minute / time.Duration(perMinute)
	return NewRateLimiter(m.Log, burst, per, per)
}

func (r *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		key := clientKey(req)
		now := r.now()

		r.mu.Lock()
		r.sweep(now)

		if blockedUntil, found := r.blocked[key]; found {
			if now.Before(blockedUntil) {
				r.mu.Unlock()
				r.reject(w, req, blockedUntil.Sub(now))
				return
			}

			delete(r.blocked, key)
		}

		limiter, exists := r.limiters[key]
		if !exists {
			limiter = rate.NewLimiter(rate.Every(r.per), r.burst)
			r.limiters[key] = limiter
		}

		if !limiter.AllowN(now, 1) {
			r.blocked[key] = now.Add(r.blockTime)
			r.mu.Unlock()
			r.reject(w, req, r.blockTime)
			return
		}

		r.mu.Unlock()

		next.ServeHTTP(w, req)
	})
}

// sweep forgets clients whose block has ended and whose bucket has refilled,
// since a fresh limiter for them would behave identically. Callers hold r.mu.
func (r *RateLimiter) sweep(now time.Time) {
	if now.Sub(r.lastSweep) < r.sweepEvery {
		return
	}
	r.lastSweep = now

	for key, blockedUntil := range r.blocked {
		if !now.Before(blockedUntil) {
			delete(r.blocked, key)
		}
	}
	for key, limiter := range r.limiters {
		if _, isBlocked := r.blocked[key]; isBlocked {
			continue
		}
		if limiter.TokensAt(now) >= float64(r.burst) {
			delete(r.limiters, key)
		}
	}
}

func (r *RateLimiter) reject(w http.ResponseWriter, req *http.Request, retryAfter time.Duration) {
	secs := int(retryAfter.Round(time.Second) / time.Second)
	if secs < 1 {
		secs = 1
	}
	utils.LogSecurityEvent(r.Log, "rate_limited", utils.GetRequestID(req.Context()), "low",
		zap.String(constvars.LoggingEndpointKey, req.URL.Path),
		zap.Int("retry_after_secs", secs),
	)
	w.Header().Set(constvars.HeaderRetryAfter, strconv.Itoa(secs))
	utils.BuildErrorResponse(r.Log, w, exceptions.ErrTooManyRequests(nil))
}

func clientKey(req *http.Request) string {
	if subjectID := utils.GetSubjectID(req.Context()); subjectID != "" {
		return "subject:" + subjectID
	}
	ip, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		return "ip:" + req.RemoteAddr
	}
	return "ip:" + ip
}
