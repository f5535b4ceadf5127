package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/JNU-econovation/EATceed-AI/apperrors"
)

// quotaKeyPrefix namespaces the per-member daily counters in Redis.
const quotaKeyPrefix = "rate_limit:"

// consumeScript performs check-then-increment as one atomic unit. Returns -1
// when the member is already at the limit, otherwise the remaining count
// after the increment. The expiry is only attached when the INCR created the
// counter, so it is never re-applied within a window.
var consumeScript = redis.NewScript(`
local count = tonumber(redis.call("GET", KEYS[1]) or "0")
local limit = tonumber(ARGV[1])
if count >= limit then
  return -1
end
local new = redis.call("INCR", KEYS[1])
if new == 1 then
  redis.call("EXPIREAT", KEYS[1], tonumber(ARGV[2]))
end
return limit - new
`)

// QuotaService enforces the per-member daily budget for image analysis.
// Counters live in Redis and expire at the next local midnight after their
// first increment.
type QuotaService struct {
	redis redis.Cmdable
	limit int
	now   func() time.Time
}

func NewQuotaService(rdb redis.Cmdable, limit int) *QuotaService {
	return &QuotaService{
		redis: rdb,
		limit: limit,
		now:   time.Now,
	}
}

func (s *QuotaService) key(memberID uint) string {
	return fmt.Sprintf("%s%d", quotaKeyPrefix, memberID)
}

// nextMidnight returns the first local 00:00:00 after now.
func (s *QuotaService) nextMidnight() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
}

// Check returns the remaining budget without consuming any of it.
func (s *QuotaService) Check(ctx context.Context, memberID uint) (int, error) {
	count, err := s.redis.Get(ctx, s.key(memberID)).Int()
	if err != nil {
		if err == redis.Nil {
			return s.limit, nil
		}
		return 0, apperrors.NewServiceUnavailable(err)
	}
	if count >= s.limit {
		return 0, apperrors.NewRateLimitExceeded(s.limit)
	}
	return s.limit - count, nil
}

// Consume checks and increments the counter atomically, returning how many
// requests are left. The (limit+1)th call of a day fails without incrementing.
func (s *QuotaService) Consume(ctx context.Context, memberID uint) (int, error) {
	remaining, err := consumeScript.Run(ctx, s.redis,
		[]string{s.key(memberID)},
		s.limit,
		s.nextMidnight().Unix(),
	).Int()
	if err != nil {
		return 0, apperrors.NewServiceUnavailable(err)
	}
	if remaining < 0 {
		return 0, apperrors.NewRateLimitExceeded(s.limit)
	}
	return remaining, nil
}

// Remaining reports the unused budget, floored at zero. Side-effect free.
func (s *QuotaService) Remaining(ctx context.Context, memberID uint) (int, error) {
	count, err := s.redis.Get(ctx, s.key(memberID)).Int()
	if err != nil {
		if err == redis.Nil {
			return s.limit, nil
		}
		return 0, apperrors.NewServiceUnavailable(err)
	}
	remaining := s.limit - count
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}
