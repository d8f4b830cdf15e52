/* ratelimit.go
 * Contains the per-user command rate limiter used to stop a single user flooding the channel
 */

package bot

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// minSweepInterval bounds how often idle buckets are looked for when buckets refill quickly
const minSweepInterval = time.Minute

type userBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// UserLimiter hands out a token bucket per user. A bucket left alone long enough to refill is indistinguishable
// from a new one, so such buckets are dropped and the map only holds recently active users
type UserLimiter struct {
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	idleAfter time.Duration
	lastSweep time.Time
	now       func() time.Time
	buckets   map[string]*userBucket
}

// NewUserLimiter allows each user perSecond commands per second with bursts of up to burst commands.
// A non-positive rate disables limiting
func NewUserLimiter(perSecond float64, burst int) *UserLimiter {
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	l := &UserLimiter{
		limit:   limit,
		burst:   burst,
		now:     time.Now,
		buckets: make(map[string]*userBucket),
	}
	if limit != rate.Inf {
		l.idleAfter = time.Duration(float64(burst) / perSecond * float64(time.Second))
	}
	return l
}

// Allow reports whether userID may run a command now, consuming a token if so
func (l *UserLimiter) Allow(userID string) bool {
	if l.limit == rate.Inf {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.evictIdle(now)
	bucket, ok := l.buckets[userID]
	if !ok {
		bucket = &userBucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[userID] = bucket
	}
	bucket.lastSeen = now
	return bucket.limiter.AllowN(now, 1)
}

// evictIdle drops every bucket that has been idle for at least a full refill. Callers hold mu
func (l *UserLimiter) evictIdle(now time.Time) {
	if now.Sub(l.lastSweep) < max(l.idleAfter, minSweepInterval) {
		return
	}
	l.lastSweep = now
	for userID, bucket := range l.buckets {
		if now.Sub(bucket.lastSeen) >= l.idleAfter {
			delete(l.buckets, userID)
		}
	}
}

// tracked returns how many users currently hold a bucket
func (l *UserLimiter) tracked() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}
