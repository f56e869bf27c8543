package model

import (
	"testing"
	"time"
)

// fakeClock drives a Cooldowns store deterministically.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestCooldowns() (*Cooldowns, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	cd := NewCooldowns()
	cd.now = clock.now
	return cd, clock
}

func TestCooldownsUnseenKeyIsReady(t *testing.T) {
	cd, _ := newTestCooldowns()

	if !cd.Ready("ultimate") {
		t.Error("Ready() = false for a key that was never set, want true")
	}
	if rem := cd.Remaining("ultimate"); rem > 0 {
		t.Errorf("Remaining() = %v for a key that was never set, want <= 0", rem)
	}
}

func TestCooldownsSetAndExpiry(t *testing.T) {
	cd, clock := newTestCooldowns()

	cd.Set("ultimate", 10*time.Second)

	if cd.Ready("ultimate") {
		t.Error("Ready() = true immediately after Set, want false")
	}
	if rem := cd.Remaining("ultimate"); rem != 10*time.Second {
		t.Errorf("Remaining() = %v, want 10s", rem)
	}

	clock.advance(4 * time.Second)
	if rem := cd.Remaining("ultimate"); rem != 6*time.Second {
		t.Errorf("Remaining() after 4s = %v, want 6s", rem)
	}

	clock.advance(6 * time.Second)
	if !cd.Ready("ultimate") {
		t.Error("Ready() = false at the exact expiry instant, want true")
	}
}

func TestCooldownsSetOverwrites(t *testing.T) {
	cd, clock := newTestCooldowns()

	cd.Set("poison", 10*time.Second)
	clock.advance(9 * time.Second)
	cd.Set("poison", 10*time.Second)

	if rem := cd.Remaining("poison"); rem != 10*time.Second {
		t.Errorf("Remaining() after re-Set = %v, want a fresh 10s", rem)
	}
}

func TestCooldownsKeysAreIndependent(t *testing.T) {
	cd, _ := newTestCooldowns()

	cd.Set("a", time.Minute)

	if cd.Ready("a") {
		t.Error("key a should be on cooldown")
	}
	if !cd.Ready("b") {
		t.Error("key b should be unaffected by key a")
	}
}
