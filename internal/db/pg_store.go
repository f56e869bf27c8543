package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgStore persists player progression rows in PostgreSQL.
type PgStore struct {
	pool *pgxpool.Pool
}

// NewPgStore creates a store over the shared connection pool.
func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

var _ Store = (*PgStore)(nil)

// Load reads the player, hero and skill rows for identity.
func (s *PgStore) Load(ctx context.Context, identity string) (PlayerRows, error) {
	rows := PlayerRows{Identity: identity}

	err := s.pool.QueryRow(ctx,
		`SELECT active_hero_id FROM players WHERE identity = $1`, identity,
	).Scan(&rows.ActiveHeroID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return rows, nil
		}
		return rows, fmt.Errorf("querying player %q: %w", identity, err)
	}

	heroRows, err := s.pool.Query(ctx,
		`SELECT hero_id, level, xp FROM heroes WHERE identity = $1 ORDER BY hero_id`, identity)
	if err != nil {
		return rows, fmt.Errorf("querying heroes for %q: %w", identity, err)
	}
	defer heroRows.Close()
	for heroRows.Next() {
		var h HeroRow
		if err := heroRows.Scan(&h.HeroID, &h.Level, &h.XP); err != nil {
			return rows, fmt.Errorf("scanning hero row: %w", err)
		}
		rows.Heroes = append(rows.Heroes, h)
	}
	if err := heroRows.Err(); err != nil {
		return rows, fmt.Errorf("iterating hero rows: %w", err)
	}

	skillRows, err := s.pool.Query(ctx,
		`SELECT hero_id, skill_id, level FROM skills WHERE identity = $1 ORDER BY hero_id, skill_id`, identity)
	if err != nil {
		return rows, fmt.Errorf("querying skills for %q: %w", identity, err)
	}
	defer skillRows.Close()
	for skillRows.Next() {
		var sk SkillRow
		if err := skillRows.Scan(&sk.HeroID, &sk.SkillID, &sk.Level); err != nil {
			return rows, fmt.Errorf("scanning skill row: %w", err)
		}
		rows.Skills = append(rows.Skills, sk)
	}
	if err := skillRows.Err(); err != nil {
		return rows, fmt.Errorf("iterating skill rows: %w", err)
	}

	return rows, nil
}

// Save writes one player's rows in a single transaction.
func (s *PgStore) Save(ctx context.Context, rows PlayerRows) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction for %q: %w", rows.Identity, err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is expected to fail

	if err := saveTx(ctx, tx, rows); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing save for %q: %w", rows.Identity, err)
	}
	return nil
}

// SaveBatch writes every player's rows in one transaction, so a batch
// save never partially commits.
func (s *PgStore) SaveBatch(ctx context.Context, batch []PlayerRows) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning batch transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	for _, rows := range batch {
		if err := saveTx(ctx, tx, rows); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing batch of %d players: %w", len(batch), err)
	}
	return nil
}

func saveTx(ctx context.Context, tx pgx.Tx, rows PlayerRows) error {
	if _, err := tx.Exec(ctx,
		`INSERT INTO players (identity, active_hero_id) VALUES ($1, $2)
		 ON CONFLICT (identity) DO UPDATE SET active_hero_id = $2`,
		rows.Identity, rows.ActiveHeroID,
	); err != nil {
		return fmt.Errorf("upserting player %q: %w", rows.Identity, err)
	}

	for _, h := range rows.Heroes {
		if _, err := tx.Exec(ctx,
			`INSERT INTO heroes (identity, hero_id, level, xp) VALUES ($1, $2, $3, $4)
			 ON CONFLICT (identity, hero_id) DO UPDATE SET level = $3, xp = $4`,
			rows.Identity, h.HeroID, h.Level, h.XP,
		); err != nil {
			return fmt.Errorf("upserting hero %q for %q: %w", h.HeroID, rows.Identity, err)
		}
	}

	for _, sk := range rows.Skills {
		if _, err := tx.Exec(ctx,
			`INSERT INTO skills (identity, hero_id, skill_id, level) VALUES ($1, $2, $3, $4)
			 ON CONFLICT (identity, hero_id, skill_id) DO UPDATE SET level = $4`,
			rows.Identity, sk.HeroID, sk.SkillID, sk.Level,
		); err != nil {
			return fmt.Errorf("upserting skill %q for %q: %w", sk.SkillID, rows.Identity, err)
		}
	}

	return nil
}
