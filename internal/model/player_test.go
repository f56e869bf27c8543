package model

import (
	"errors"
	"testing"
)

func newTestClass(id string, requiredLevel int32) *HeroClass {
	strike := NewSkillType(SkillTypeConfig{ID: "strike", MaxLevel: 3})
	return NewHeroClass(HeroClassConfig{ID: id, RequiredLevel: requiredLevel}).Skill(strike)
}

func TestFirstHeroBecomesActive(t *testing.T) {
	p := NewPlayer("p1", nil, nil)

	if p.Hero() != nil {
		t.Fatal("a fresh player must have no active hero")
	}

	first := p.AddHero(newTestClass("test_first", 0), 0, 0)
	p.AddHero(newTestClass("test_second", 0), 0, 0)

	if p.Hero() != first {
		t.Error("the first added hero must be the active one")
	}
}

func TestAddHeroIsIdempotent(t *testing.T) {
	p := NewPlayer("p1", nil, nil)
	class := newTestClass("test_idem", 0)

	a := p.AddHero(class, 3, 10)
	b := p.AddHero(class, 99, 99)

	if a != b {
		t.Error("adding the same class twice must return the existing hero")
	}
	if a.Level() != 3 {
		t.Errorf("Level() = %d, the second add must not overwrite state", a.Level())
	}
	if len(p.Heroes()) != 1 {
		t.Errorf("Heroes() has %d entries, want 1", len(p.Heroes()))
	}
}

func TestSelectHero(t *testing.T) {
	p := NewPlayer("p1", nil, nil)
	p.AddHero(newTestClass("test_a", 0), 0, 0)
	b := p.AddHero(newTestClass("test_b", 0), 0, 0)

	if err := p.SelectHero("test_b"); err != nil {
		t.Fatalf("SelectHero: %v", err)
	}
	if p.Hero() != b {
		t.Error("active hero did not switch")
	}

	if err := p.SelectHero("test_missing"); !errors.Is(err, ErrUnknownHero) {
		t.Errorf("selecting an unowned hero: err = %v, want ErrUnknownHero", err)
	}
	if p.Hero() != b {
		t.Error("failed select must not change the active hero")
	}
}

func TestHeroesKeepInsertionOrder(t *testing.T) {
	p := NewPlayer("p1", nil, nil)
	ids := []string{"test_c", "test_a", "test_b"}
	for _, id := range ids {
		p.AddHero(newTestClass(id, 0), 0, 0)
	}

	heroes := p.Heroes()
	if len(heroes) != len(ids) {
		t.Fatalf("Heroes() has %d entries, want %d", len(heroes), len(ids))
	}
	for i, id := range ids {
		if heroes[i].ClassID() != id {
			t.Errorf("Heroes()[%d] = %q, want %q", i, heroes[i].ClassID(), id)
		}
	}
}

func TestTotalLevelSumsAllHeroes(t *testing.T) {
	p := NewPlayer("p1", nil, nil)
	p.AddHero(newTestClass("test_a", 0), 12, 0)
	p.AddHero(newTestClass("test_b", 0), 7, 0)

	if got := p.TotalLevel(); got != 19 {
		t.Errorf("TotalLevel() = %d, want 19", got)
	}
}

func TestNilActorAndNotifierAreSafe(t *testing.T) {
	p := NewPlayer("p1", nil, nil)

	// Must not panic.
	p.Actor().SendMessage("hi")
	p.Actor().SetHealth(50)
	p.SetActor(nil)
	p.Actor().Slay()
}

func TestSnapshotCapturesFullState(t *testing.T) {
	p := NewPlayer("p1", nil, nil)
	h := p.AddHero(newTestClass("test_snap_a", 0), 4, 33)
	h.SetSkillLevel("strike", 2)
	p.AddHero(newTestClass("test_snap_b", 0), 0, 0)
	if err := p.SelectHero("test_snap_b"); err != nil {
		t.Fatal(err)
	}

	st := p.Snapshot()

	if st.Identity != "p1" {
		t.Errorf("Identity = %q, want p1", st.Identity)
	}
	if st.ActiveHeroID != "test_snap_b" {
		t.Errorf("ActiveHeroID = %q, want test_snap_b", st.ActiveHeroID)
	}
	if len(st.Heroes) != 2 {
		t.Fatalf("snapshot has %d heroes, want 2", len(st.Heroes))
	}
	first := st.Heroes[0]
	if first.ClassID != "test_snap_a" || first.Level != 4 || first.XP != 33 {
		t.Errorf("first hero = %+v, want test_snap_a level 4 xp 33", first)
	}
	if len(first.Skills) != 1 || first.Skills[0].SkillID != "strike" || first.Skills[0].Level != 2 {
		t.Errorf("first hero skills = %+v, want strike at 2", first.Skills)
	}
}

func TestAliveFlag(t *testing.T) {
	p := NewPlayer("p1", nil, nil)
	if p.Alive() {
		t.Error("a fresh player must not be alive")
	}
	p.SetAlive(true)
	if !p.Alive() {
		t.Error("SetAlive(true) did not stick")
	}
	p.SetAlive(false)
	if p.Alive() {
		t.Error("SetAlive(false) did not stick")
	}
}
