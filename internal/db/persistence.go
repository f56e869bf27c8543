package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/udisondev/warmod/internal/model"
)

// ErrStorageUnavailable wraps save/load failures that exhausted the
// retry budget. Data written before the failure is not considered saved.
var ErrStorageUnavailable = errors.New("storage unavailable")

// Service синхронизирует живое состояние игроков с реляционным стором:
// load при первом появлении, save при дисконнекте, save_all по таймеру.
//
// A service-level mutex funnels all writes, so a periodic batch save and
// an individual disconnect save for the same player can never interleave
// and leave partial rows.
type Service struct {
	store    Store
	notifier model.Notifier

	mu sync.Mutex // funnels Save and SaveAll

	// Retry policy for individual saves. Batch saves are not retried:
	// the transaction either commits whole or aborts whole.
	maxRetries    uint64
	retryInterval time.Duration
}

// NewService creates a persistence service over a row store. The
// notifier is attached to every player the service reconstructs.
func NewService(store Store, notifier model.Notifier) *Service {
	if notifier == nil {
		notifier = model.NopNotifier{}
	}
	return &Service{
		store:         store,
		notifier:      notifier,
		maxRetries:    3,
		retryInterval: 500 * time.Millisecond,
	}
}

// Load reads the saved rows for identity and reconstructs a Player.
//
// Hero or skill ids that no longer resolve to a registered class are
// skipped silently — stale storage is not an error. After the saved
// heroes are restored, every class whose unlock threshold is at or
// below the player's total level is granted, even if never saved. The
// active hero comes from the stored id when still owned, otherwise the
// first owned class in unlock order.
func (s *Service) Load(ctx context.Context, identity string) (*model.Player, error) {
	rows, err := s.store.Load(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("loading player %q: %w: %w", identity, ErrStorageUnavailable, err)
	}

	p := model.NewPlayer(identity, nil, s.notifier)

	skillsByHero := make(map[string][]SkillRow, len(rows.Heroes))
	for _, sk := range rows.Skills {
		skillsByHero[sk.HeroID] = append(skillsByHero[sk.HeroID], sk)
	}

	for _, hr := range rows.Heroes {
		class := model.HeroClassByID(hr.HeroID)
		if class == nil {
			slog.Debug("skipping unknown hero class from storage",
				"identity", identity, "hero", hr.HeroID)
			continue
		}
		h := p.AddHero(class, hr.Level, hr.XP)
		for _, sk := range skillsByHero[hr.HeroID] {
			h.SetSkillLevel(sk.SkillID, sk.Level)
		}
		h.RestoreSkillPoints()
	}

	// Unlock pass: grant every class the total level already pays for.
	total := p.TotalLevel()
	for _, class := range model.HeroClasses() {
		if !p.OwnsHero(class.ID()) && class.RequiredLevel() <= total {
			p.AddHero(class, 0, 0)
		}
	}

	if rows.ActiveHeroID != "" && p.OwnsHero(rows.ActiveHeroID) {
		if err := p.SelectHero(rows.ActiveHeroID); err != nil {
			return nil, fmt.Errorf("selecting active hero for %q: %w", identity, err)
		}
	} else {
		// AddHero already made the first granted hero active; prefer
		// the first owned class in unlock order for determinism.
		for _, class := range model.HeroClasses() {
			if p.OwnsHero(class.ID()) {
				_ = p.SelectHero(class.ID())
				break
			}
		}
	}

	if p.Hero() == nil {
		slog.Warn("player loaded without any hero; no hero classes registered?",
			"identity", identity)
	}

	slog.Info("player loaded",
		"identity", identity,
		"heroes", len(p.Heroes()),
		"totalLevel", total)

	return p, nil
}

// Save writes one player's full state through a single transaction.
// Transient failures are retried with exponential backoff up to the
// bounded attempt count; exhaustion is logged as a data-loss risk and
// surfaced as ErrStorageUnavailable.
func (s *Service) Save(ctx context.Context, p *model.Player) error {
	rows := rowsFromState(p.Snapshot())

	s.mu.Lock()
	defer s.mu.Unlock()

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = s.retryInterval
	err := backoff.Retry(
		func() error { return s.store.Save(ctx, rows) },
		backoff.WithContext(backoff.WithMaxRetries(bo, s.maxRetries), ctx),
	)
	if err != nil {
		slog.Error("player save failed after retries, data loss risk",
			"identity", p.Identity(), "error", err)
		return fmt.Errorf("saving player %q: %w: %w", p.Identity(), ErrStorageUnavailable, err)
	}

	slog.Debug("player saved", "identity", p.Identity(), "heroes", len(rows.Heroes))
	return nil
}

// SaveAll writes every given player in one batch transaction. An empty
// collection is a successful no-op: no transaction is opened and no
// empty writes are issued. A failed batch aborts whole — it never
// partially commits.
func (s *Service) SaveAll(ctx context.Context, players []*model.Player) error {
	if len(players) == 0 {
		return nil
	}

	batch := make([]PlayerRows, 0, len(players))
	for _, p := range players {
		batch = append(batch, rowsFromState(p.Snapshot()))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.SaveBatch(ctx, batch); err != nil {
		slog.Error("batch save failed, aborting whole batch",
			"players", len(batch), "error", err)
		return fmt.Errorf("saving %d players: %w: %w", len(batch), ErrStorageUnavailable, err)
	}

	slog.Info("players saved", "count", len(batch))
	return nil
}

// rowsFromState flattens a model snapshot into store rows.
func rowsFromState(st model.PlayerState) PlayerRows {
	rows := PlayerRows{
		Identity:     st.Identity,
		ActiveHeroID: st.ActiveHeroID,
	}
	for _, h := range st.Heroes {
		rows.Heroes = append(rows.Heroes, HeroRow{HeroID: h.ClassID, Level: h.Level, XP: h.XP})
		for _, sk := range h.Skills {
			rows.Skills = append(rows.Skills, SkillRow{
				HeroID:  h.ClassID,
				SkillID: sk.SkillID,
				Level:   sk.Level,
			})
		}
	}
	return rows
}
