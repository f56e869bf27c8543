package heroes

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/udisondev/warmod/internal/model"
)

// critRoll is replaceable in tests for deterministic crits.
var critRoll = rand.Float64

func init() {
	criticalStrike := model.NewSkillType(model.SkillTypeConfig{
		ID:          "critical_strike",
		Name:        "Critical Strike",
		Description: "Chance to deal double damage.",
		MaxLevel:    8,
	}).On(func(s *model.Skill, ev *model.Event) {
		if critRoll() >= 0.05*float64(s.Level()) {
			return
		}
		ev.Damage.Damage *= 2
		ev.Player.Actor().SendMessage("Critical strike!")
	}, model.EventPrePlayerAttack)

	battleTrance := model.NewSkillType(model.SkillTypeConfig{
		ID:          "battle_trance",
		Name:        "Battle Trance",
		Description: "Shrug off wounds every second.",
		MaxLevel:    8,
		Tick:        regenTick(2),
	})

	bladestorm := model.NewSkillType(model.SkillTypeConfig{
		ID:            "bladestorm",
		Name:          "Bladestorm",
		Description:   "Ultimate: whirl into a frenzy of speed.",
		MaxLevel:      8,
		RequiredLevel: 6,
	}).On(func(s *model.Skill, ev *model.Event) {
		cd := s.Cooldowns()
		if !cd.Ready("ultimate") {
			ev.Player.Actor().SendMessage(
				fmt.Sprintf("Bladestorm on cooldown: %.1fs", cd.Remaining("ultimate").Seconds()))
			return
		}
		actor := ev.Player.Actor()
		actor.SetSpeed(actor.Speed() + 0.15*float64(s.Level()))
		actor.SendMessage("Bladestorm!")
		cd.Set("ultimate", 35*time.Second)
	}, model.EventPlayerUltimate)

	model.RegisterHeroClass(
		model.NewHeroClass(model.HeroClassConfig{
			ID:            "blademaster",
			Name:          "Blademaster",
			Description:   "High-risk melee hero rewarded for aggression.",
			RequiredLevel: 25,
		}).
			Skill(criticalStrike).
			Skill(battleTrance).
			Skill(bladestorm))
}
