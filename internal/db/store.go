package db

import "context"

// HeroRow is the persisted shape of one hero.
type HeroRow struct {
	HeroID string
	Level  int32
	XP     int32
}

// SkillRow is the persisted shape of one skill.
type SkillRow struct {
	HeroID  string
	SkillID string
	Level   int32
}

// PlayerRows is the full row set for one player: the wire format
// between the in-memory model and the store.
type PlayerRows struct {
	Identity     string
	ActiveHeroID string
	Heroes       []HeroRow
	Skills       []SkillRow
}

// Store is the row-level save/load contract of the backing store.
// Save and SaveBatch must commit durably before returning; a failed
// write is surfaced as an error and is not treated as having happened.
type Store interface {
	// Load reads all saved rows for identity. A player that was never
	// saved yields zero-value rows, not an error.
	Load(ctx context.Context, identity string) (PlayerRows, error)

	// Save writes one player's rows in a single transaction.
	Save(ctx context.Context, rows PlayerRows) error

	// SaveBatch writes several players' rows in a single transaction:
	// either the whole batch commits or none of it does.
	SaveBatch(ctx context.Context, batch []PlayerRows) error
}
