package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	redisClient "callbridge/internal/clients/redis"
	"callbridge/internal/observability"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// RateLimitResult represents the result of a rate limit check
type RateLimitResult struct {
	Allowed      bool      `json:"allowed"`
	Limit        int       `json:"limit"`
	Remaining    int       `json:"remaining"`
	ResetAt      time.Time `json:"reset_at"`
	RetryAfterMs int       `json:"retry_after_ms,omitempty"`
}

// Service limits how often one caller may start outbound calls
type Service struct {
	redis  *redisClient.Client
	limit  int
	window time.Duration
	logger *observability.Logger

	mu    sync.Mutex
	local map[string]*rate.Limiter
	now   func() time.Time
}

// NewService creates a rate limiter allowing limit requests per window per key.
// redis may be nil, in which case limits are tracked in process.
func NewService(redis *redisClient.Client, limit int, window time.Duration, logger *observability.Logger) *Service {
	if window <= 0 {
		window = time.Minute
	}
	return &Service{
		redis:  redis,
		limit:  limit,
		window: window,
		logger: logger,
		local:  make(map[string]*rate.Limiter),
		now:    time.Now,
	}
}

// Enabled reports whether requests are limited at all
func (s *Service) Enabled() bool {
	return s.limit > 0
}

// CheckRateLimit records one request for key and reports whether it is allowed.
// Uses Redis for distributed limiting, falls back to the in-process limiter.
func (s *Service) CheckRateLimit(ctx context.Context, key string) (RateLimitResult, error) {
	if !s.Enabled() {
		return RateLimitResult{Allowed: true}, nil
	}
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "rate_limit_key", Value: key},
		observability.Field{Key: "rate_limit", Value: s.limit},
	)

	if s.redis.IsEnabled() {
		result, err := s.checkRateLimitRedis(ctx, key)
		if err == nil {
			return result, nil
		}
		s.logger.InfoWithError(ctx, "Redis rate limit check failed, falling back to local limiter", err)
	}
	return s.checkRateLimitLocal(key), nil
}

// checkRateLimitRedis implements sliding window limiting with a sorted set
// per key. Members are unique per request, scores are timestamps in ms.
func (s *Service) checkRateLimitRedis(ctx context.Context, key string) (RateLimitResult, error) {
	rdb := s.redis.GetClient()
	redisKey := fmt.Sprintf("rl:calls:%s", key)
	now := s.now()
	windowStartMs := now.Add(-s.window).UnixMilli()

	// Remove old entries outside the window
	if err := rdb.ZRemRangeByScore(ctx, redisKey, "0", fmt.Sprintf("%d", windowStartMs)).Err(); err != nil {
		return RateLimitResult{}, fmt.Errorf("failed to remove old entries: %w", err)
	}

	// Count current requests in window
	count, err := rdb.ZCard(ctx, redisKey).Result()
	if err != nil {
		return RateLimitResult{}, fmt.Errorf("failed to count requests: %w", err)
	}

	if int(count) >= s.limit {
		resetAt := now.Add(s.window)
		oldest, err := rdb.ZRangeWithScores(ctx, redisKey, 0, 0).Result()
		if err == nil && len(oldest) > 0 {
			resetAt = time.UnixMilli(int64(oldest[0].Score)).Add(s.window)
		}
		retryAfter := resetAt.Sub(now)
		if retryAfter < 0 {
			retryAfter = 0
		}
		return RateLimitResult{
			Allowed:      false,
			Limit:        s.limit,
			Remaining:    0,
			ResetAt:      resetAt,
			RetryAfterMs: int(retryAfter.Milliseconds()),
		}, nil
	}

	// Add current request to the window
	member := redis.Z{Score: float64(now.UnixMilli()), Member: uuid.NewString()}
	if err := rdb.ZAdd(ctx, redisKey, member).Err(); err != nil {
		return RateLimitResult{}, fmt.Errorf("failed to add request: %w", err)
	}
	if err := rdb.Expire(ctx, redisKey, 2*s.window).Err(); err != nil {
		s.logger.InfoWithError(ctx, "failed to set expiration on rate limit key", err)
	}

	return RateLimitResult{
		Allowed:   true,
		Limit:     s.limit,
		Remaining: s.limit - int(count) - 1,
		ResetAt:   now.Add(s.window),
	}, nil
}

// checkRateLimitLocal uses a token bucket per key refilling limit tokens per window
func (s *Service) checkRateLimitLocal(key string) RateLimitResult {
	s.mu.Lock()
	limiter, ok := s.local[key]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(s.window/time.Duration(s.limit)), s.limit)
		s.local[key] = limiter
	}
	s.mu.Unlock()

	now := s.now()
	reservation := limiter.ReserveN(now, 1)
	delay := reservation.DelayFrom(now)
	if delay > 0 {
		reservation.CancelAt(now)
		return RateLimitResult{
			Allowed:      false,
			Limit:        s.limit,
			Remaining:    0,
			ResetAt:      now.Add(delay),
			RetryAfterMs: int(delay.Milliseconds()),
		}
	}

	remaining := int(limiter.TokensAt(now))
	if remaining < 0 {
		remaining = 0
	}
	return RateLimitResult{
		Allowed:   true,
		Limit:     s.limit,
		Remaining: remaining,
		ResetAt:   now.Add(s.window),
	}
}
