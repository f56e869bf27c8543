// Package heroes declares the playable hero classes. Each class is
// registered from init(), so importing the package populates the
// registry before any player loads.
package heroes

import "github.com/udisondev/warmod/internal/model"

// maxHealth is the host's base health pool; regeneration never heals past it.
const maxHealth int32 = 100

// regenTick builds the tick body of a regeneration skill: heal
// rate×level per second, clamped at maxHealth. Dead actors are left alone.
func regenTick(rate int32) model.TickFunc {
	return func(s *model.Skill) {
		actor := s.Owner().Owner().Actor()
		hp := actor.Health()
		if hp <= 0 || hp >= maxHealth {
			return
		}
		actor.SetHealth(min(hp+rate*s.Level(), maxHealth))
	}
}
