package model

import "log/slog"

// Experience curve: a hero at level L needs xpQuotaBase + xpQuotaStep*L
// experience to reach L+1. The quota grows with the level to compensate
// the power granted by upgraded skills.
const (
	xpQuotaBase int32 = 80
	xpQuotaStep int32 = 15
)

func xpQuota(level int32) int32 {
	return xpQuotaBase + xpQuotaStep*level
}

// Hero — прокачиваемый персонаж игрока: уровень, опыт, очки навыков
// и фиксированный набор скиллов его класса.
//
// All mutating operations serialize on the owning player's lock, so a
// concurrent autosave snapshot or repeat tick never observes a hero
// mid-mutation.
type Hero struct {
	class *HeroClass
	owner *Player

	level       int32
	xp          int32
	skillPoints int32

	skills   []*Skill
	passives []*Skill
}

// newHero instantiates a hero with one skill instance per declared
// skill type, in roster order.
func newHero(owner *Player, class *HeroClass, level, xp int32) *Hero {
	if level < 0 {
		level = 0
	}
	if class.maxLevel > 0 && level > class.maxLevel {
		level = class.maxLevel
	}
	if xp < 0 {
		xp = 0
	}
	h := &Hero{
		class: class,
		owner: owner,
		level: level,
		xp:    xp,
	}
	for _, st := range class.skills {
		h.skills = append(h.skills, newSkill(h, st))
	}
	for _, st := range class.passives {
		h.passives = append(h.passives, newSkill(h, st))
	}
	return h
}

func (h *Hero) Class() *HeroClass { return h.class }
func (h *Hero) ClassID() string { return h.class.id }
func (h *Hero) Name() string { return h.class.name }
func (h *Hero) Owner() *Player { return h.owner }
func (h *Hero) Level() int32 { return h.level }
func (h *Hero) XP() int32 { return h.xp }

// SkillPoints returns the unspent skill points.
func (h *Hero) SkillPoints() int32 { return h.skillPoints }

// Skills returns the upgradeable roster in declaration order.
func (h *Hero) Skills() []*Skill {
	out := make([]*Skill, len(h.skills))
	copy(out, h.skills)
	return out
}

// Passives returns the passive roster in declaration order.
func (h *Hero) Passives() []*Skill {
	out := make([]*Skill, len(h.passives))
	copy(out, h.passives)
	return out
}

// SkillByID finds an upgradeable skill on the roster, or nil.
func (h *Hero) SkillByID(id string) *Skill {
	for _, s := range h.skills {
		if s.typ.id == id {
			return s
		}
	}
	return nil
}

func (h *Hero) onMaxLevel() bool {
	return h.class.maxLevel > 0 && h.level >= h.class.maxLevel
}

// GrantExperience adds xp and re-evaluates the level thresholds.
// Several thresholds may be crossed by one grant; the level delta is
// granted as skill points and a single level-up notification is raised.
func (h *Hero) GrantExperience(amount int32) {
	if amount <= 0 {
		return
	}
	p := h.owner

	p.mu.Lock()
	initial := h.level
	h.xp += amount
	for !h.onMaxLevel() && h.xp >= xpQuota(h.level) {
		h.xp -= xpQuota(h.level)
		h.level++
	}
	gained := h.level - initial
	h.skillPoints += gained
	p.mu.Unlock()

	if gained > 0 {
		p.notifier.HeroLevelUp(p, h, gained)
	}
}

// TakeExperience removes xp, levelling the hero down at the same pace
// until xp is non-negative again. Spent skill points are not reclaimed;
// the unspent pool only shrinks, floored at zero.
func (h *Hero) TakeExperience(amount int32) {
	if amount <= 0 {
		return
	}
	p := h.owner

	p.mu.Lock()
	initial := h.level
	h.xp -= amount
	for h.level > 0 && h.xp < 0 {
		h.level--
		h.xp += xpQuota(h.level)
	}
	if h.xp < 0 {
		h.xp = 0
	}
	lost := initial - h.level
	h.skillPoints -= lost
	if h.skillPoints < 0 {
		h.skillPoints = 0
	}
	p.mu.Unlock()

	if lost > 0 {
		p.notifier.HeroLevelDown(p, h, lost)
	}
}

// CanUpgradeSkill reports whether a skill point may be spent on s.
func (h *Hero) CanUpgradeSkill(s *Skill) bool {
	h.owner.mu.Lock()
	defer h.owner.mu.Unlock()
	return h.canUpgradeLocked(s)
}

func (h *Hero) canUpgradeLocked(s *Skill) bool {
	return h.onRosterLocked(s) &&
		!s.OnMaxLevel() &&
		h.level >= s.typ.requiredLevel &&
		h.skillPoints > 0
}

// onRosterLocked reports whether s is one of h's upgradeable skill
// instances. Passives share the owner but live outside the roster and
// never move through skill points.
func (h *Hero) onRosterLocked(s *Skill) bool {
	for _, own := range h.skills {
		if own == s {
			return true
		}
	}
	return false
}

// UpgradeSkill spends one skill point to raise s by one level.
// Returns ErrIllegalUpgrade without mutating anything when the upgrade
// is not legal.
func (h *Hero) UpgradeSkill(s *Skill) error {
	p := h.owner

	p.mu.Lock()
	if !h.canUpgradeLocked(s) {
		p.mu.Unlock()
		return ErrIllegalUpgrade
	}
	s.setLevel(s.level + 1)
	h.skillPoints--
	p.mu.Unlock()

	p.notifier.SkillUpgraded(p, h, s)
	return nil
}

// CanDowngradeSkill reports whether s can give a skill point back.
func (h *Hero) CanDowngradeSkill(s *Skill) bool {
	h.owner.mu.Lock()
	defer h.owner.mu.Unlock()
	return h.onRosterLocked(s) && s.level > 0
}

// DowngradeSkill lowers s by one level and refunds one skill point.
func (h *Hero) DowngradeSkill(s *Skill) error {
	p := h.owner

	p.mu.Lock()
	if !h.onRosterLocked(s) || s.level == 0 {
		p.mu.Unlock()
		return ErrIllegalDowngrade
	}
	s.setLevel(s.level - 1)
	h.skillPoints++
	p.mu.Unlock()

	p.notifier.SkillDowngraded(p, h, s)
	return nil
}

// ResetSkills sets every owned skill back to level zero and restores
// skill points equal to the sum of the levels that were reset. Atomic
// from the caller's perspective.
func (h *Hero) ResetSkills() {
	p := h.owner

	p.mu.Lock()
	var refund int32
	for _, s := range h.skills {
		refund += s.level
		s.setLevel(0)
	}
	h.skillPoints += refund
	p.mu.Unlock()

	p.notifier.SkillsReset(p, h)
}

// ExecuteSkills forwards an event to every leveled skill in roster
// order, then to every passive. Skills at level zero are inert.
func (h *Hero) ExecuteSkills(name string, ev *Event) {
	h.owner.mu.Lock()
	defer h.owner.mu.Unlock()
	for _, s := range h.skills {
		if s.level > 0 {
			s.Execute(name, ev)
		}
	}
	for _, s := range h.passives {
		s.Execute(name, ev)
	}
}

// SetSkillLevel restores a saved skill level on load. Skill ids not
// present on the roster are skipped — stale rows are not an error.
func (h *Hero) SetSkillLevel(skillID string, level int32) {
	h.owner.mu.Lock()
	defer h.owner.mu.Unlock()
	s := h.SkillByID(skillID)
	if s == nil {
		slog.Debug("skipping unknown skill from storage",
			"hero", h.class.id, "skill", skillID)
		return
	}
	s.setLevel(level)
}

// RestoreSkillPoints derives the unspent pool after a load: one point
// is granted per hero level, so unspent = level − Σ skill levels.
// The persistence rows carry no points column.
func (h *Hero) RestoreSkillPoints() {
	h.owner.mu.Lock()
	defer h.owner.mu.Unlock()
	var spent int32
	for _, s := range h.skills {
		spent += s.level
	}
	h.skillPoints = h.level - spent
	if h.skillPoints < 0 {
		h.skillPoints = 0
	}
}

// stopTicks stops every repeating skill. Caller holds the player lock.
func (h *Hero) stopTicksLocked() {
	for _, s := range h.skills {
		s.stopRepeat()
	}
	for _, s := range h.passives {
		s.stopRepeat()
	}
}
