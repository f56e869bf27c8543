package model

// Notifier is the UI collaborator surface. The engine raises
// progression notifications through it; the menu layer decides how to
// present them. Implementations must not call back into locking
// player/hero operations — notifications are raised outside the player
// lock, but re-entrant mutation from a notification is not supported.
type Notifier interface {
	// HeroLevelUp fires once per experience grant that crossed at least
	// one threshold, with the total number of levels gained.
	HeroLevelUp(p *Player, h *Hero, levels int32)

	// HeroLevelDown fires once per experience loss that dropped at
	// least one level.
	HeroLevelDown(p *Player, h *Hero, levels int32)

	SkillUpgraded(p *Player, h *Hero, s *Skill)
	SkillDowngraded(p *Player, h *Hero, s *Skill)
	SkillsReset(p *Player, h *Hero)

	// UpgradeRejected reports an illegal upgrade attempt back to the
	// player. Never fatal.
	UpgradeRejected(p *Player, h *Hero, s *Skill, reason error)

	// HeroInfo asks the UI to show the player their current hero.
	HeroInfo(p *Player, h *Hero)
}

// NopNotifier discards every notification. Used when no UI layer is
// attached (tests, headless runs).
type NopNotifier struct{}

func (NopNotifier) HeroLevelUp(*Player, *Hero, int32) {}
func (NopNotifier) HeroLevelDown(*Player, *Hero, int32) {}
func (NopNotifier) SkillUpgraded(*Player, *Hero, *Skill) {}
func (NopNotifier) SkillDowngraded(*Player, *Hero, *Skill) {}
func (NopNotifier) SkillsReset(*Player, *Hero) {}
func (NopNotifier) UpgradeRejected(*Player, *Hero, *Skill, error) {}
func (NopNotifier) HeroInfo(*Player, *Hero) {}
