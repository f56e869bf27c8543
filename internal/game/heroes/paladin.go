package heroes

import (
	"fmt"
	"time"

	"github.com/udisondev/warmod/internal/model"
)

func init() {
	devotionAura := model.NewSkillType(model.SkillTypeConfig{
		ID:          "devotion_aura",
		Name:        "Devotion Aura",
		Description: "Spawn with bonus health per level.",
		MaxLevel:    8,
	}).On(func(s *model.Skill, ev *model.Event) {
		actor := ev.Player.Actor()
		actor.SetHealth(actor.Health() + 10*s.Level())
	}, model.EventPlayerSpawn)

	holyLight := model.NewSkillType(model.SkillTypeConfig{
		ID:          "holy_light",
		Name:        "Holy Light",
		Description: "Regenerate health every second.",
		MaxLevel:    8,
		Tick:        regenTick(1),
	})

	divineShield := model.NewSkillType(model.SkillTypeConfig{
		ID:            "divine_shield",
		Name:          "Divine Shield",
		Description:   "Ultimate: restore a burst of health.",
		MaxLevel:      8,
		RequiredLevel: 6,
	}).On(func(s *model.Skill, ev *model.Event) {
		cd := s.Cooldowns()
		if !cd.Ready("ultimate") {
			ev.Player.Actor().SendMessage(
				fmt.Sprintf("Divine Shield on cooldown: %.1fs", cd.Remaining("ultimate").Seconds()))
			return
		}
		actor := ev.Player.Actor()
		actor.SetHealth(actor.Health() + 20*s.Level())
		actor.SendMessage("Divine Shield!")
		// A higher level shortens the cooldown.
		cd.Set("ultimate", time.Duration(40-2*s.Level())*time.Second)
	}, model.EventPlayerUltimate)

	model.RegisterHeroClass(
		model.NewHeroClass(model.HeroClassConfig{
			ID:          "paladin",
			Name:        "Paladin",
			Description: "Durable starter hero with steady healing.",
		}).
			Skill(devotionAura).
			Skill(holyLight).
			Skill(divineShield))
}
