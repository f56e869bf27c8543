// Package dispatch routes host gameplay events to the right heroes and
// owns the lifecycle of connected players: load on connect, save on
// disconnect, periodic autosave, final save on shutdown.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/udisondev/warmod/internal/model"
)

// Default experience rewards and autosave cadence; overridable via Config.
const (
	defaultKillXP         int32 = 30
	defaultHeadshotKillXP int32 = 45

	defaultAutosaveInterval = 4 * time.Minute
)

// Persistence is the storage collaborator the dispatcher drives.
// Implemented by db.Service.
type Persistence interface {
	Load(ctx context.Context, identity string) (*model.Player, error)
	Save(ctx context.Context, p *model.Player) error
	SaveAll(ctx context.Context, players []*model.Player) error
}

// Config tunes the dispatcher. Zero values fall back to defaults.
type Config struct {
	AutosaveInterval time.Duration
	KillXP           int32
	HeadshotKillXP   int32
}

// Dispatcher owns the connected-players map and the event routing
// between the host bus and the hero/skill engine. The map is created at
// startup, mutated only through OnConnect/OnDisconnect, and torn down
// at Shutdown.
type Dispatcher struct {
	mu      sync.RWMutex
	players map[string]*model.Player

	store    Persistence
	notifier model.Notifier
	cfg      Config

	stopOnce sync.Once
	stopCh   chan struct{}
}

// New creates a dispatcher over a persistence service.
func New(store Persistence, notifier model.Notifier, cfg Config) *Dispatcher {
	if notifier == nil {
		notifier = model.NopNotifier{}
	}
	if cfg.AutosaveInterval <= 0 {
		cfg.AutosaveInterval = defaultAutosaveInterval
	}
	if cfg.KillXP <= 0 {
		cfg.KillXP = defaultKillXP
	}
	if cfg.HeadshotKillXP <= 0 {
		cfg.HeadshotKillXP = defaultHeadshotKillXP
	}
	return &Dispatcher{
		players:  make(map[string]*model.Player, 64),
		store:    store,
		notifier: notifier,
		cfg:      cfg,
		stopCh:   make(chan struct{}),
	}
}

// isPlaying reports whether a team id belongs to a playing team.
// Everything below the two playing teams is a spectator slot.
func isPlaying(team int32) bool {
	return team == 2 || team == 3
}

// OnConnect loads the player's saved progression and registers the
// session. Reconnecting an already-connected identity returns the live
// player untouched.
func (d *Dispatcher) OnConnect(ctx context.Context, identity string, actor model.Actor) (*model.Player, error) {
	d.mu.RLock()
	if p, ok := d.players[identity]; ok {
		d.mu.RUnlock()
		return p, nil
	}
	d.mu.RUnlock()

	p, err := d.store.Load(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("connecting %q: %w", identity, err)
	}
	p.SetActor(actor)

	d.mu.Lock()
	d.players[identity] = p
	count := len(d.players)
	d.mu.Unlock()

	slog.Info("player connected", "identity", identity, "online", count)
	return p, nil
}

// OnDisconnect delivers the disconnect event to the active hero, stops
// every repeat tick, saves the player synchronously and discards the
// session. Save runs exactly once per disconnect.
func (d *Dispatcher) OnDisconnect(ctx context.Context, identity string) error {
	d.mu.Lock()
	p, ok := d.players[identity]
	if !ok {
		d.mu.Unlock()
		return nil
	}
	delete(d.players, identity)
	d.mu.Unlock()

	if isPlaying(p.Actor().Team()) {
		ev := &model.Event{Name: model.EventPlayerDisconnect, Player: p}
		if h := p.Hero(); h != nil {
			h.ExecuteSkills(model.EventPlayerDisconnect, ev)
		}
	}
	p.StopTicks()

	if err := d.store.Save(ctx, p); err != nil {
		return fmt.Errorf("disconnecting %q: %w", identity, err)
	}
	slog.Info("player disconnected and saved", "identity", identity)
	return nil
}

// player returns a connected player or nil.
func (d *Dispatcher) player(identity string) *model.Player {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.players[identity]
}

// Players returns a snapshot of every connected player.
func (d *Dispatcher) Players() []*model.Player {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]*model.Player, 0, len(d.players))
	for _, p := range d.players {
		out = append(out, p)
	}
	return out
}

// Count returns the number of connected players.
func (d *Dispatcher) Count() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.players)
}

// HandleSpawn marks the player alive and delivers player_spawn to the
// active hero. Spectators get no skill execution.
func (d *Dispatcher) HandleSpawn(identity string) {
	p := d.player(identity)
	if p == nil {
		return
	}
	p.SetAlive(true)
	if !isPlaying(p.Actor().Team()) {
		return
	}
	h := p.Hero()
	if h == nil {
		return
	}
	h.ExecuteSkills(model.EventPlayerSpawn, &model.Event{
		Name:   model.EventPlayerSpawn,
		Player: p,
	})
	d.notifier.HeroInfo(p, h)
}

// HandleJump delivers player_jump to the active hero.
func (d *Dispatcher) HandleJump(identity string) {
	p := d.player(identity)
	if p == nil || !isPlaying(p.Actor().Team()) {
		return
	}
	if h := p.Hero(); h != nil {
		h.ExecuteSkills(model.EventPlayerJump, &model.Event{
			Name:   model.EventPlayerJump,
			Player: p,
		})
	}
}

// HandleDeath routes a host death event. The victim is always marked
// dead and its repeat ticks stopped. When a distinct attacker exists,
// the pair (player_kill, player_death) is delivered to the attacker's
// and victim's heroes and the attacker's hero is granted kill
// experience, higher for a headshot. Self-inflicted deaths produce no
// skill executions and no experience.
func (d *Dispatcher) HandleDeath(victimID, attackerID string, headshot bool) {
	victim := d.player(victimID)
	if victim == nil {
		return
	}
	victim.SetAlive(false)
	victim.StopTicks()

	if attackerID == "" || attackerID == victimID {
		return
	}
	attacker := d.player(attackerID)
	if attacker == nil {
		return
	}

	d.deliverPair(attacker, victim,
		model.EventPlayerKill, model.EventPlayerDeath,
		func(ev *model.Event) { ev.Headshot = headshot })

	xp := d.cfg.KillXP
	if headshot {
		xp = d.cfg.HeadshotKillXP
	}
	if h := attacker.Hero(); h != nil {
		h.GrantExperience(xp)
	}
}

// HandleHurt routes a host hurt event to the pair
// (player_attack, player_victim). Self-inflicted damage is skipped.
func (d *Dispatcher) HandleHurt(victimID, attackerID string) {
	if attackerID == "" || attackerID == victimID {
		return
	}
	attacker := d.player(attackerID)
	victim := d.player(victimID)
	if attacker == nil || victim == nil {
		return
	}
	d.deliverPair(attacker, victim,
		model.EventPlayerAttack, model.EventPlayerVictim, nil)
}

// HandlePreDamage routes the host's pre-damage hook, before damage is
// applied, to (pre_player_attack, pre_player_victim). Handlers may
// scale info.Damage. Skipped when the attacker is unknown or both
// players share a team.
func (d *Dispatcher) HandlePreDamage(attackerID, victimID string, info *model.DamageInfo) {
	if attackerID == "" {
		return
	}
	attacker := d.player(attackerID)
	victim := d.player(victimID)
	if attacker == nil || victim == nil {
		return
	}
	if attacker.Actor().Team() == victim.Actor().Team() {
		return
	}
	d.deliverPair(attacker, victim,
		model.EventPrePlayerAttack, model.EventPrePlayerVictim,
		func(ev *model.Event) { ev.Damage = info })
}

// deliverPair sends the attacker-side name to the attacker's hero and
// the victim-side name to the victim's hero, both carrying the shared
// argument bundle annotated with which side is "the player".
func (d *Dispatcher) deliverPair(attacker, victim *model.Player, attackerEvent, victimEvent string, decorate func(*model.Event)) {
	base := model.Event{Attacker: attacker, Victim: victim}
	if decorate != nil {
		decorate(&base)
	}

	if h := attacker.Hero(); h != nil {
		ev := base
		ev.Name = attackerEvent
		ev.Player = attacker
		h.ExecuteSkills(attackerEvent, &ev)
	}
	if h := victim.Hero(); h != nil {
		ev := base
		ev.Name = victimEvent
		ev.Player = victim
		h.ExecuteSkills(victimEvent, &ev)
	}
}

// HandleUltimate delivers player_ultimate to the active hero. Blocked
// while the player is dead.
func (d *Dispatcher) HandleUltimate(identity string) {
	p := d.player(identity)
	if p == nil || !p.Alive() {
		return
	}
	if h := p.Hero(); h != nil {
		h.ExecuteSkills(model.EventPlayerUltimate, &model.Event{
			Name:   model.EventPlayerUltimate,
			Player: p,
		})
	}
}

// HandleMatchEnd saves every connected player at the end of a match.
func (d *Dispatcher) HandleMatchEnd(ctx context.Context) error {
	return d.store.SaveAll(ctx, d.Players())
}

// SelectHero switches the player's active hero, instantiating it first
// when the class is unlocked but was never played. Switching slays the
// avatar so the host respawns it with the new hero.
func (d *Dispatcher) SelectHero(identity, classID string) error {
	p := d.player(identity)
	if p == nil {
		return model.ErrUnknownHero
	}
	class := model.HeroClassByID(classID)
	if class == nil {
		return model.ErrUnknownHero
	}

	if cur := p.Hero(); cur != nil && cur.ClassID() == classID {
		return nil
	}

	if !p.OwnsHero(classID) {
		if class.RequiredLevel() > p.TotalLevel() {
			return model.ErrHeroLocked
		}
		p.AddHero(class, 0, 0)
	}
	if err := p.SelectHero(classID); err != nil {
		return err
	}
	p.Actor().Slay()
	return nil
}

// UpgradeSkill spends a point on the active hero's skill. Illegal
// attempts are reported through the UI collaborator and returned as
// ErrIllegalUpgrade — never fatal.
func (d *Dispatcher) UpgradeSkill(identity, skillID string) error {
	p := d.player(identity)
	if p == nil {
		return model.ErrUnknownHero
	}
	h := p.Hero()
	if h == nil {
		return model.ErrUnknownHero
	}
	s := h.SkillByID(skillID)
	if s == nil {
		return model.ErrUnknownSkill
	}
	if err := h.UpgradeSkill(s); err != nil {
		if errors.Is(err, model.ErrIllegalUpgrade) {
			d.notifier.UpgradeRejected(p, h, s, err)
		}
		return err
	}
	return nil
}

// DowngradeSkill refunds a point from the active hero's skill.
func (d *Dispatcher) DowngradeSkill(identity, skillID string) error {
	p := d.player(identity)
	if p == nil {
		return model.ErrUnknownHero
	}
	h := p.Hero()
	if h == nil {
		return model.ErrUnknownHero
	}
	s := h.SkillByID(skillID)
	if s == nil {
		return model.ErrUnknownSkill
	}
	return h.DowngradeSkill(s)
}

// ResetSkills resets the active hero's skills and restores the points.
func (d *Dispatcher) ResetSkills(identity string) error {
	p := d.player(identity)
	if p == nil {
		return model.ErrUnknownHero
	}
	h := p.Hero()
	if h == nil {
		return model.ErrUnknownHero
	}
	h.ResetSkills()
	return nil
}

// Run drives the periodic autosave until the context is canceled or
// Shutdown is called. Autosave failures are logged and retried on the
// next tick; they never stop the loop.
func (d *Dispatcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.cfg.AutosaveInterval)
	defer ticker.Stop()

	slog.Info("autosave started", "interval", d.cfg.AutosaveInterval)

	for {
		select {
		case <-ctx.Done():
			slog.Info("autosave stopping")
			return ctx.Err()
		case <-d.stopCh:
			slog.Info("autosave stopped")
			return nil
		case <-ticker.C:
			if err := d.store.SaveAll(ctx, d.Players()); err != nil {
				slog.Error("autosave failed", "error", err)
			}
		}
	}
}

// Shutdown stops the autosave loop and every repeat tick, saves all
// connected players one final time and tears the player map down.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.stopOnce.Do(func() { close(d.stopCh) })

	d.mu.Lock()
	players := make([]*model.Player, 0, len(d.players))
	for _, p := range d.players {
		players = append(players, p)
	}
	d.players = make(map[string]*model.Player)
	d.mu.Unlock()

	for _, p := range players {
		p.StopTicks()
	}

	if err := d.store.SaveAll(ctx, players); err != nil {
		return fmt.Errorf("final save on shutdown: %w", err)
	}
	slog.Info("dispatcher shut down", "saved", len(players))
	return nil
}
