package model

import "sync"

// Player is a connected game session's progression state: the heroes it
// owns, in unlock order, and the hero it is currently playing.
//
// A Player exists only while its session is connected. The dispatcher
// creates it on connect (from storage) and discards it after the
// disconnect save. The per-player mutex serializes event delivery,
// menu operations, repeat ticks and save snapshots (autosave runs on a
// separate goroutine).
type Player struct {
	identity string

	mu     sync.Mutex
	heroes map[string]*Hero
	order  []string // insertion order of hero class ids
	active *Hero
	alive  bool

	actor    Actor
	notifier Notifier
}

// NewPlayer creates a player with no heroes. A nil actor or notifier is
// replaced by a no-op implementation.
func NewPlayer(identity string, actor Actor, notifier Notifier) *Player {
	if actor == nil {
		actor = nopActor{}
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Player{
		identity: identity,
		heroes:   make(map[string]*Hero, 4),
		actor:    actor,
		notifier: notifier,
	}
}

// Identity returns the persistent id the player is stored under.
func (p *Player) Identity() string { return p.identity }

func (p *Player) Actor() Actor { return p.actor }

// SetActor attaches the host avatar once the session enters the game.
func (p *Player) SetActor(a Actor) {
	if a == nil {
		a = nopActor{}
	}
	p.mu.Lock()
	p.actor = a
	p.mu.Unlock()
}

// Alive reports whether the avatar is currently spawned.
func (p *Player) Alive() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.alive
}

func (p *Player) SetAlive(alive bool) {
	p.mu.Lock()
	p.alive = alive
	p.mu.Unlock()
}

// AddHero grants the player a hero of the given class, or returns the
// existing one. The first hero added becomes the active hero, keeping
// the invariant that active is non-nil whenever any hero is owned.
func (p *Player) AddHero(class *HeroClass, level, xp int32) *Hero {
	p.mu.Lock()
	defer p.mu.Unlock()
	if h, ok := p.heroes[class.id]; ok {
		return h
	}
	h := newHero(p, class, level, xp)
	p.heroes[class.id] = h
	p.order = append(p.order, class.id)
	if p.active == nil {
		p.active = h
	}
	return h
}

// Hero returns the active hero, nil only when no hero is owned.
func (p *Player) Hero() *Hero {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

// HeroByID returns an owned hero or nil.
func (p *Player) HeroByID(classID string) *Hero {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.heroes[classID]
}

// OwnsHero reports whether the class is already owned.
func (p *Player) OwnsHero(classID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.heroes[classID]
	return ok
}

// SelectHero makes an owned hero the active one.
func (p *Player) SelectHero(classID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	h, ok := p.heroes[classID]
	if !ok {
		return ErrUnknownHero
	}
	p.active = h
	return nil
}

// Heroes returns the owned heroes in the order they were granted.
func (p *Player) Heroes() []*Hero {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*Hero, 0, len(p.order))
	for _, id := range p.order {
		out = append(out, p.heroes[id])
	}
	return out
}

// TotalLevel is the sum of levels across all owned heroes; it gates
// which hero classes the player may unlock.
func (p *Player) TotalLevel() int32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	var total int32
	for _, h := range p.heroes {
		total += h.level
	}
	return total
}

// StopTicks stops every repeating skill across all owned heroes.
// Called on death, disconnect and shutdown; idempotent.
func (p *Player) StopTicks() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, h := range p.heroes {
		h.stopTicksLocked()
	}
}

// SkillState is the persisted shape of one skill.
type SkillState struct {
	SkillID string
	Level   int32
}

// HeroState is the persisted shape of one hero.
type HeroState struct {
	ClassID string
	Level   int32
	XP      int32
	Skills  []SkillState
}

// PlayerState is the flat snapshot handed to the persistence layer.
type PlayerState struct {
	Identity     string
	ActiveHeroID string
	Heroes       []HeroState
}

// Snapshot captures the player's full persisted state under the player
// lock, so a save never observes a half-applied mutation.
func (p *Player) Snapshot() PlayerState {
	p.mu.Lock()
	defer p.mu.Unlock()

	st := PlayerState{Identity: p.identity}
	if p.active != nil {
		st.ActiveHeroID = p.active.class.id
	}
	for _, id := range p.order {
		h := p.heroes[id]
		hs := HeroState{
			ClassID: h.class.id,
			Level:   h.level,
			XP:      h.xp,
		}
		for _, s := range h.skills {
			hs.Skills = append(hs.Skills, SkillState{SkillID: s.typ.id, Level: s.level})
		}
		st.Heroes = append(st.Heroes, hs)
	}
	return st
}
