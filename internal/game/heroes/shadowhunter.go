package heroes

import (
	"fmt"
	"time"

	"github.com/udisondev/warmod/internal/model"
)

func init() {
	poisonedBlades := model.NewSkillType(model.SkillTypeConfig{
		ID:          "poisoned_blades",
		Name:        "Poisoned Blades",
		Description: "Hits slow the victim for a moment.",
		MaxLevel:    8,
	}).On(func(s *model.Skill, ev *model.Event) {
		cd := s.Cooldowns()
		if !cd.Ready("poison") {
			return
		}
		victim := ev.Victim.Actor()
		victim.SetSpeed(victim.Speed() * (1.0 - 0.05*float64(s.Level())))
		cd.Set("poison", 4*time.Second)
	}, model.EventPlayerAttack)

	shadowMend := model.NewSkillType(model.SkillTypeConfig{
		ID:          "shadow_mend",
		Name:        "Shadow Mend",
		Description: "Slowly knit wounds every second.",
		MaxLevel:    8,
		Tick:        regenTick(1),
	})

	// Passive: always on, no points needed.
	shadowVeil := model.NewSkillType(model.SkillTypeConfig{
		ID:          "shadow_veil",
		Name:        "Shadow Veil",
		Description: "Incoming damage is reduced by a tenth.",
	}).On(func(s *model.Skill, ev *model.Event) {
		ev.Damage.Damage *= 0.9
	}, model.EventPrePlayerVictim)

	vanish := model.NewSkillType(model.SkillTypeConfig{
		ID:            "vanish",
		Name:          "Vanish",
		Description:   "Ultimate: a burst of speed to slip away.",
		MaxLevel:      8,
		RequiredLevel: 6,
	}).On(func(s *model.Skill, ev *model.Event) {
		cd := s.Cooldowns()
		if !cd.Ready("ultimate") {
			ev.Player.Actor().SendMessage(
				fmt.Sprintf("Vanish on cooldown: %.1fs", cd.Remaining("ultimate").Seconds()))
			return
		}
		actor := ev.Player.Actor()
		actor.SetSpeed(actor.Speed() + 0.1*float64(s.Level()))
		actor.SendMessage("Vanish!")
		cd.Set("ultimate", 30*time.Second)
	}, model.EventPlayerUltimate)

	model.RegisterHeroClass(
		model.NewHeroClass(model.HeroClassConfig{
			ID:            "shadow_hunter",
			Name:          "Shadow Hunter",
			Description:   "Evasive skirmisher that wears targets down.",
			RequiredLevel: 10,
		}).
			Skill(poisonedBlades).
			Skill(shadowMend).
			Skill(vanish).
			Passive(shadowVeil))
}
