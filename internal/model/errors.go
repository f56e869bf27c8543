package model

import "errors"

var (
	// ErrIllegalUpgrade is returned when a skill upgrade is attempted
	// without a free skill point, below the required hero level, or at
	// the skill's level cap.
	ErrIllegalUpgrade = errors.New("skill cannot be upgraded")

	// ErrIllegalDowngrade is returned when downgrading a skill that is
	// already at level zero or not owned by the hero.
	ErrIllegalDowngrade = errors.New("skill cannot be downgraded")

	// ErrUnknownHero is returned when a hero class id does not resolve
	// to a hero owned by the player.
	ErrUnknownHero = errors.New("hero not owned by player")

	// ErrHeroLocked is returned when selecting a hero whose unlock
	// threshold exceeds the player's total level.
	ErrHeroLocked = errors.New("hero not unlocked yet")

	// ErrUnknownSkill is returned when a skill id is not present on the
	// hero's roster.
	ErrUnknownSkill = errors.New("skill not found on hero")
)
