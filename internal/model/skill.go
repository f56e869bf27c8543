package model

import (
	"log/slog"
	"sync"
	"time"
)

// tickInterval is the fixed cadence of repeating skills.
const tickInterval = time.Second

// Skill is a leveled ability instance bound to an owner hero.
// Level moves only through the owning hero (upgrade/downgrade/reset);
// handlers read it but never write it.
//
// Skill state is confined to the owning player's lock: the engine holds
// it for the duration of every event delivery and tick, so accessors
// here are deliberately lock-free.
type Skill struct {
	owner     *Hero
	typ       *SkillType
	level     int32
	cooldowns *Cooldowns
	repeat    *repeatTask // non-nil only for repeating types
}

func newSkill(owner *Hero, typ *SkillType) *Skill {
	s := &Skill{
		owner:     owner,
		typ:       typ,
		cooldowns: NewCooldowns(),
	}
	if typ.Repeating() {
		s.repeat = &repeatTask{}
	}
	return s
}

func (s *Skill) Type() *SkillType { return s.typ }
func (s *Skill) ID() string { return s.typ.id }
func (s *Skill) Name() string { return s.typ.name }
func (s *Skill) Level() int32 { return s.level }
func (s *Skill) MaxLevel() int32 { return s.typ.maxLevel }
func (s *Skill) RequiredLevel() int32 { return s.typ.requiredLevel }
func (s *Skill) Owner() *Hero { return s.owner }
func (s *Skill) Cooldowns() *Cooldowns { return s.cooldowns }

// OnMaxLevel reports whether the skill reached its level cap.
func (s *Skill) OnMaxLevel() bool {
	return s.typ.maxLevel > 0 && s.level >= s.typ.maxLevel
}

// Execute runs every handler the skill's type registered for the event,
// in registration order. Unknown event names are a no-op.
func (s *Skill) Execute(name string, ev *Event) {
	s.typ.execute(s, name, ev)
}

// setLevel is the single mutation path for level, used by the owning
// hero. Repeating skills stop their tick when delevelled to zero and
// start it when set to a nonzero level while stopped.
func (s *Skill) setLevel(v int32) {
	if v < 0 {
		v = 0
	}
	if s.typ.maxLevel > 0 && v > s.typ.maxLevel {
		v = s.typ.maxLevel
	}
	s.level = v
	if s.repeat == nil {
		return
	}
	if v == 0 {
		s.stopRepeat()
	} else {
		s.startRepeat()
	}
}

// repeatTask tracks the RUNNING/STOPPED state of a repeating skill's
// tick goroutine. Lock order is always player lock → task lock.
type repeatTask struct {
	mu      sync.Mutex
	running bool
	stop    chan struct{}
}

// Ticking reports whether the repeat task is RUNNING.
// Always false for non-repeating skills.
func (s *Skill) Ticking() bool {
	if s.repeat == nil {
		return false
	}
	s.repeat.mu.Lock()
	defer s.repeat.mu.Unlock()
	return s.repeat.running
}

// startRepeat transitions STOPPED → RUNNING. No-op while running.
func (s *Skill) startRepeat() {
	t := s.repeat
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return
	}
	t.running = true
	t.stop = make(chan struct{})
	go s.runTicks(t.stop)
}

// stopRepeat transitions RUNNING → STOPPED. Idempotent.
func (s *Skill) stopRepeat() {
	t := s.repeat
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return
	}
	t.running = false
	close(t.stop)
}

func (s *Skill) runTicks(stop <-chan struct{}) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.tickOnce()
		}
	}
}

// tickOnce runs one tick under the owning player's lock. The RUNNING
// state is re-checked under the lock so a tick that raced a stop never
// fires after the transition.
func (s *Skill) tickOnce() {
	p := s.owner.owner
	p.mu.Lock()
	defer p.mu.Unlock()

	s.repeat.mu.Lock()
	running := s.repeat.running
	s.repeat.mu.Unlock()
	if !running {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			slog.Error("skill tick panicked", "skill", s.typ.id, "panic", r)
		}
	}()
	s.typ.tick(s)
}
