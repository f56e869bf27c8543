package model

import (
	"sync"
	"time"
)

// Cooldowns is a keyed cooldown store owned by a single skill instance.
// Each key maps to an absolute expiry time; keys that were never set
// read as ready. Stale keys are not evicted — they simply stay ready.
type Cooldowns struct {
	mu     sync.Mutex
	expiry map[string]time.Time
	now    func() time.Time // replaceable in tests
}

// NewCooldowns creates an empty cooldown store.
func NewCooldowns() *Cooldowns {
	return &Cooldowns{
		expiry: make(map[string]time.Time, 4),
		now:    time.Now,
	}
}

// Remaining returns the time left until key is ready.
// Zero or negative means ready now.
func (c *Cooldowns) Remaining(key string) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.expiry[key].Sub(c.now())
}

// Set puts key on cooldown for exactly d from the call instant,
// overwriting any previous value for that key.
func (c *Cooldowns) Set(key string, d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expiry[key] = c.now().Add(d)
}

// Ready reports whether key is off cooldown.
func (c *Cooldowns) Ready(key string) bool {
	return c.Remaining(key) <= 0
}
