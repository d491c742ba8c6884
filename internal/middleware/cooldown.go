package middle

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Cooldowns tracks per user and command invocation limits. Every (user, command)
// pair gets a limiter allowing one call per cooldown period.
type Cooldowns struct {
	mu       sync.Mutex
	limiters map[string]*cooldown
	now      func() time.Time
}

type cooldown struct {
	limiter  *rate.Limiter
	period   time.Duration
	lastSeen time.Time
}

func NewCooldowns() *Cooldowns {
	return &Cooldowns{
		limiters: make(map[string]*cooldown),
		now:      time.Now,
	}
}

// Allow reports whether the user may run the command now. When not, it returns how
// long is left to wait.
func (c *Cooldowns) Allow(userID int64, command string, period time.Duration) (bool, time.Duration) {
	if period <= 0 {
		return true, 0
	}
	key := fmt.Sprintf("%d:%s", userID, strings.ToLower(command))
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.limiters[key]
	if !ok || entry.period != period {
		entry = &cooldown{limiter: rate.NewLimiter(rate.Every(period), 1), period: period}
		c.limiters[key] = entry
	}
	entry.lastSeen = now

	r := entry.limiter.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// Prune forgets limiters idle for longer than maxIdle. An entry is kept at least
// for its own cooldown period, so pruning never lifts an active cooldown.
func (c *Cooldowns) Prune(maxIdle time.Duration) int {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	pruned := 0
	for key, entry := range c.limiters {
		if now.Sub(entry.lastSeen) > max(maxIdle, entry.period) {
			delete(c.limiters, key)
			pruned++
		}
	}
	return pruned
}
