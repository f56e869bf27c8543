package model

import (
	"testing"
)

// newTestRepeatHero builds a hero whose class carries one repeating
// skill; tick invocations are counted through the returned pointer.
func newTestRepeatHero(t *testing.T) (*Player, *Hero, *Skill, *int) {
	t.Helper()

	var ticks int
	regen := NewSkillType(SkillTypeConfig{
		ID:       "regen",
		MaxLevel: 3,
		Tick:     func(*Skill) { ticks++ },
	})
	class := NewHeroClass(HeroClassConfig{ID: "test_repeat"}).Skill(regen)

	p := NewPlayer("p1", nil, nil)
	h := p.AddHero(class, 5, 0)
	s := h.SkillByID("regen")
	t.Cleanup(p.StopTicks)
	return p, h, s, &ticks
}

func TestRepeatSkillStartsOnSpawnWhenLeveled(t *testing.T) {
	_, h, s, _ := newTestRepeatHero(t)

	h.SetSkillLevel("regen", 1)
	// Restoring a saved nonzero level already starts the tick; stop it
	// to exercise the spawn path in isolation.
	s.stopRepeat()
	if s.Ticking() {
		t.Fatal("precondition: skill must be stopped")
	}

	h.ExecuteSkills(EventPlayerSpawn, &Event{Name: EventPlayerSpawn})

	if !s.Ticking() {
		t.Error("repeating skill did not start on spawn")
	}
}

func TestRepeatSkillLevelZeroNeverStarts(t *testing.T) {
	_, h, s, _ := newTestRepeatHero(t)

	h.ExecuteSkills(EventPlayerSpawn, &Event{Name: EventPlayerSpawn})

	if s.Ticking() {
		t.Error("level-0 repeating skill started on spawn; it must stay inert")
	}
}

func TestRepeatSkillStopsOnDeath(t *testing.T) {
	_, h, s, _ := newTestRepeatHero(t)
	h.SetSkillLevel("regen", 1)

	h.ExecuteSkills(EventPlayerSpawn, &Event{Name: EventPlayerSpawn})
	if !s.Ticking() {
		t.Fatal("precondition: skill must be ticking after spawn")
	}

	h.ExecuteSkills(EventPlayerDeath, &Event{Name: EventPlayerDeath})

	if s.Ticking() {
		t.Error("repeating skill still ticking after death")
	}
}

func TestRepeatSkillRestartsOnRespawn(t *testing.T) {
	_, h, s, _ := newTestRepeatHero(t)
	h.SetSkillLevel("regen", 1)

	h.ExecuteSkills(EventPlayerSpawn, &Event{Name: EventPlayerSpawn})
	h.ExecuteSkills(EventPlayerDeath, &Event{Name: EventPlayerDeath})
	h.ExecuteSkills(EventPlayerSpawn, &Event{Name: EventPlayerSpawn})

	if !s.Ticking() {
		t.Error("repeating skill did not restart on respawn")
	}
}

func TestRepeatSkillStartIsIdempotent(t *testing.T) {
	_, h, s, _ := newTestRepeatHero(t)
	h.SetSkillLevel("regen", 1)

	// Two spawns in a row (host respawn without a death between).
	h.ExecuteSkills(EventPlayerSpawn, &Event{Name: EventPlayerSpawn})
	h.ExecuteSkills(EventPlayerSpawn, &Event{Name: EventPlayerSpawn})

	if !s.Ticking() {
		t.Fatal("skill must be ticking")
	}

	// A single stop must fully stop it; a second start would leak.
	s.stopRepeat()
	if s.Ticking() {
		t.Error("double start leaked a second tick goroutine")
	}
}

func TestDowngradeToZeroStopsTick(t *testing.T) {
	_, h, s, _ := newTestRepeatHero(t)

	h.GrantExperience(100000) // points to spare
	if err := h.UpgradeSkill(s); err != nil {
		t.Fatal(err)
	}
	if !s.Ticking() {
		t.Fatal("upgrade to level 1 must start the tick")
	}

	if err := h.DowngradeSkill(s); err != nil {
		t.Fatal(err)
	}
	if s.Ticking() {
		t.Error("downgrade to level 0 must stop the tick")
	}
}

func TestResetSkillsStopsTicks(t *testing.T) {
	_, h, s, _ := newTestRepeatHero(t)
	h.GrantExperience(100000)
	if err := h.UpgradeSkill(s); err != nil {
		t.Fatal(err)
	}

	h.ResetSkills()

	if s.Ticking() {
		t.Error("reset must stop repeating skills")
	}
}

func TestTickOnceSkipsAfterStop(t *testing.T) {
	_, h, s, ticks := newTestRepeatHero(t)
	h.SetSkillLevel("regen", 1)

	// A tick that raced the stop must see STOPPED under the lock and fire nothing.
	s.stopRepeat()
	s.tickOnce()

	if *ticks != 0 {
		t.Errorf("tick fired %d times after stop, want 0", *ticks)
	}
}

func TestTickOnceRunsWhileRunning(t *testing.T) {
	_, h, s, ticks := newTestRepeatHero(t)
	h.SetSkillLevel("regen", 1)

	if !s.Ticking() {
		t.Fatal("precondition: restoring a nonzero level must start the tick")
	}
	s.tickOnce()

	if *ticks != 1 {
		t.Errorf("tick ran %d times, want 1", *ticks)
	}
}

func TestNonRepeatingSkillNeverTicks(t *testing.T) {
	strike := NewSkillType(SkillTypeConfig{ID: "strike", MaxLevel: 3})
	class := NewHeroClass(HeroClassConfig{ID: "test_nonrepeat"}).Skill(strike)
	p := NewPlayer("p1", nil, nil)
	h := p.AddHero(class, 5, 0)
	s := h.SkillByID("strike")

	h.SetSkillLevel("strike", 2)

	if s.Ticking() {
		t.Error("non-repeating skill reports Ticking()")
	}
	// Lifecycle no-ops must be safe on non-repeating skills.
	s.startRepeat()
	s.stopRepeat()
}

func TestStopTicksStopsAllHeroes(t *testing.T) {
	p, h, s, _ := newTestRepeatHero(t)
	h.SetSkillLevel("regen", 1)
	if !s.Ticking() {
		t.Fatal("precondition: skill must be ticking")
	}

	p.StopTicks()

	if s.Ticking() {
		t.Error("StopTicks left a skill running")
	}
}
