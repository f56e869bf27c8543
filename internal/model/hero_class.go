package model

import (
	"fmt"
	"sort"
	"sync"
)

// HeroClassConfig declares a hero class.
type HeroClassConfig struct {
	ID          string
	Name        string
	Description string

	// RequiredLevel is the total level across all of a player's heroes
	// needed before this class unlocks.
	RequiredLevel int32

	// MaxLevel caps the hero's level. Zero means uncapped.
	MaxLevel int32
}

// HeroClass is the declaration-time entity of a playable hero: identity,
// unlock threshold, and the fixed skill roster every instance gets.
type HeroClass struct {
	id            string
	name          string
	description   string
	requiredLevel int32
	maxLevel      int32

	skills   []*SkillType
	passives []*SkillType
}

// NewHeroClass creates a hero class from its declaration.
func NewHeroClass(cfg HeroClassConfig) *HeroClass {
	if cfg.ID == "" {
		panic("model: hero class ID must not be empty")
	}
	return &HeroClass{
		id:            cfg.ID,
		name:          cfg.Name,
		description:   cfg.Description,
		requiredLevel: cfg.RequiredLevel,
		maxLevel:      cfg.MaxLevel,
	}
}

// Skill appends a skill type to the class roster and seals it.
// Roster order is the execution order for event delivery.
func (c *HeroClass) Skill(t *SkillType) *HeroClass {
	for _, existing := range c.skills {
		if existing.id == t.id {
			panic(fmt.Sprintf("model: skill %q already added to hero class %q", t.id, c.id))
		}
	}
	t.seal()
	c.skills = append(c.skills, t)
	return c
}

// Passive appends a passive skill type: never leveled through skill
// points and executed regardless of level.
func (c *HeroClass) Passive(t *SkillType) *HeroClass {
	for _, existing := range c.passives {
		if existing.id == t.id {
			panic(fmt.Sprintf("model: passive %q already added to hero class %q", t.id, c.id))
		}
	}
	t.seal()
	c.passives = append(c.passives, t)
	return c
}

func (c *HeroClass) ID() string { return c.id }
func (c *HeroClass) Name() string { return c.name }
func (c *HeroClass) Description() string { return c.description }
func (c *HeroClass) RequiredLevel() int32 { return c.requiredLevel }
func (c *HeroClass) MaxLevel() int32 { return c.maxLevel }

// SkillTypes returns the class roster in declaration order.
func (c *HeroClass) SkillTypes() []*SkillType {
	out := make([]*SkillType, len(c.skills))
	copy(out, c.skills)
	return out
}

// Hero class registry. Populated from init() in the content packages
// (internal/game/heroes) before the dispatcher starts; read-only
// afterwards.
var (
	classMu sync.RWMutex
	classes = map[string]*HeroClass{}
)

// RegisterHeroClass adds a hero class to the registry.
// Panics on a duplicate id — class ids are declaration-time constants.
func RegisterHeroClass(c *HeroClass) *HeroClass {
	classMu.Lock()
	defer classMu.Unlock()
	if _, ok := classes[c.id]; ok {
		panic(fmt.Sprintf("model: hero class %q registered twice", c.id))
	}
	classes[c.id] = c
	return c
}

// HeroClassByID returns the registered class or nil.
func HeroClassByID(id string) *HeroClass {
	classMu.RLock()
	defer classMu.RUnlock()
	return classes[id]
}

// HeroClasses returns every registered class ordered by unlock
// threshold, then id. The order is the deterministic fallback order for
// active-hero selection.
func HeroClasses() []*HeroClass {
	classMu.RLock()
	out := make([]*HeroClass, 0, len(classes))
	for _, c := range classes {
		out = append(out, c)
	}
	classMu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].requiredLevel != out[j].requiredLevel {
			return out[i].requiredLevel < out[j].requiredLevel
		}
		return out[i].id < out[j].id
	})
	return out
}
