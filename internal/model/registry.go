package model

import (
	"fmt"
	"log/slog"
)

// Handler reacts to a gameplay event on behalf of a skill instance.
type Handler func(s *Skill, ev *Event)

// TickFunc is the body of a repeating skill, invoked once per tick
// while the owner is alive. Runs under the owning player's lock.
type TickFunc func(s *Skill)

// SkillTypeConfig declares a skill kind.
type SkillTypeConfig struct {
	ID            string
	Name          string
	Description   string
	MaxLevel      int32
	RequiredLevel int32 // hero level needed before points may be spent

	// Tick, when non-nil, makes the type repeating: the engine runs it
	// every tick while the owner is alive and the skill is leveled.
	Tick TickFunc
}

// SkillType is the declaration-time entity of a skill kind: identity,
// level caps, and the table event name → ordered handler list shared
// read-only by every instance of the type.
//
// Handlers are registered with On during declaration. Once the type is
// attached to a hero class the table is sealed and immutable.
type SkillType struct {
	id            string
	name          string
	description   string
	maxLevel      int32
	requiredLevel int32
	tick          TickFunc

	handlers map[string][]Handler
	sealed   bool
}

// NewSkillType creates a skill type from its declaration.
func NewSkillType(cfg SkillTypeConfig) *SkillType {
	if cfg.ID == "" {
		panic("model: skill type ID must not be empty")
	}
	return &SkillType{
		id:            cfg.ID,
		name:          cfg.Name,
		description:   cfg.Description,
		maxLevel:      cfg.MaxLevel,
		requiredLevel: cfg.RequiredLevel,
		tick:          cfg.Tick,
		handlers:      make(map[string][]Handler, 4),
	}
}

// On registers h for one or more event names. Registration order is
// preserved and is the execution order; the same event name may carry
// several handlers and the same handler may be tagged for several
// names. Panics if called after the type was attached to a hero class.
func (t *SkillType) On(h Handler, events ...string) *SkillType {
	if t.sealed {
		panic(fmt.Sprintf("model: skill type %q is sealed, handlers must be registered at declaration time", t.id))
	}
	if len(events) == 0 {
		panic(fmt.Sprintf("model: skill type %q: On requires at least one event name", t.id))
	}
	for _, name := range events {
		t.handlers[name] = append(t.handlers[name], h)
	}
	return t
}

func (t *SkillType) ID() string { return t.id }
func (t *SkillType) Name() string { return t.name }
func (t *SkillType) Description() string { return t.description }
func (t *SkillType) MaxLevel() int32 { return t.maxLevel }
func (t *SkillType) RequiredLevel() int32 { return t.requiredLevel }

// Repeating reports whether the type runs a periodic tick.
func (t *SkillType) Repeating() bool { return t.tick != nil }

// seal freezes the handler table. For repeating types the lifecycle
// entries are appended here, after any author-declared handlers for the
// same events, so author code cannot short-circuit tick management.
func (t *SkillType) seal() {
	if t.sealed {
		return
	}
	if t.tick != nil {
		t.handlers[EventPlayerSpawn] = append(t.handlers[EventPlayerSpawn],
			func(s *Skill, _ *Event) { s.startRepeat() })
		t.handlers[EventPlayerDeath] = append(t.handlers[EventPlayerDeath],
			func(s *Skill, _ *Event) { s.stopRepeat() })
	}
	t.sealed = true
}

// execute invokes every handler registered for name, in registration
// order. Unknown names are a silent no-op. A panicking handler is
// isolated and logged; delivery continues with the next handler.
func (t *SkillType) execute(s *Skill, name string, ev *Event) {
	for _, h := range t.handlers[name] {
		t.call(h, s, name, ev)
	}
}

func (t *SkillType) call(h Handler, s *Skill, name string, ev *Event) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("skill handler panicked",
				"skill", t.id,
				"event", name,
				"panic", r)
		}
	}()
	h(s, ev)
}
