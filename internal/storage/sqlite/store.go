// Package sqlite provides the SQLite-backed hero store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	apperrors "github.com/louisbranch/herosheet/internal/platform/errors"
	sqlitemigrate "github.com/louisbranch/herosheet/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/herosheet/internal/storage"
	"github.com/louisbranch/herosheet/internal/storage/sqlite/migrations"
	"github.com/louisbranch/herosheet/internal/systems/drawsteel"
	_ "modernc.org/sqlite"
)

var errNotConfigured = apperrors.New(apperrors.CodeStorageNotConfigured, "storage is not configured")

// Store provides SQLite-backed hero persistence.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

var _ storage.HeroStore = (*Store)(nil)

// Open opens a hero SQLite store and applies migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(ctx, sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close releases the SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return errNotConfigured
	}
	return nil
}

// PutHero inserts or replaces a hero record.
func (s *Store) PutHero(ctx context.Context, record drawsteel.HeroRecord) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(record.ID) == "" {
		return fmt.Errorf("hero id is required")
	}

	now := s.now().UTC().UnixMilli()
	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO heroes (
	id, name, class, subclass, level, xp,
	stamina_current, stamina_max, stamina_temporary, dying_threshold,
	winded_override, dying_override,
	recoveries_current, recoveries_max, recovery_value,
	heroic_current, heroic_max,
	created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	name = excluded.name,
	class = excluded.class,
	subclass = excluded.subclass,
	level = excluded.level,
	xp = excluded.xp,
	stamina_current = excluded.stamina_current,
	stamina_max = excluded.stamina_max,
	stamina_temporary = excluded.stamina_temporary,
	dying_threshold = excluded.dying_threshold,
	winded_override = excluded.winded_override,
	dying_override = excluded.dying_override,
	recoveries_current = excluded.recoveries_current,
	recoveries_max = excluded.recoveries_max,
	recovery_value = excluded.recovery_value,
	heroic_current = excluded.heroic_current,
	heroic_max = excluded.heroic_max,
	updated_at = excluded.updated_at
`,
		record.ID, record.Name, record.Class, record.Subclass, record.Level, record.XP,
		record.StaminaCurrent, record.StaminaMax, record.StaminaTemporary, record.DyingThreshold,
		record.WindedOverride, record.DyingOverride,
		record.RecoveriesCurrent, record.RecoveriesMax, record.RecoveryValue,
		record.HeroicCurrent, record.HeroicMax,
		now, now,
	)
	if err != nil {
		return fmt.Errorf("put hero: %w", err)
	}
	return nil
}

// GetHero loads a hero record by id.
func (s *Store) GetHero(ctx context.Context, id string) (drawsteel.HeroRecord, error) {
	if err := s.ready(ctx); err != nil {
		return drawsteel.HeroRecord{}, err
	}

	var rec drawsteel.HeroRecord
	err := s.sqlDB.QueryRowContext(ctx, `
SELECT
	id, name, class, subclass, level, xp,
	stamina_current, stamina_max, stamina_temporary, dying_threshold,
	winded_override, dying_override,
	recoveries_current, recoveries_max, recovery_value,
	heroic_current, heroic_max
FROM heroes
WHERE id = ?
`, strings.TrimSpace(id)).Scan(
		&rec.ID, &rec.Name, &rec.Class, &rec.Subclass, &rec.Level, &rec.XP,
		&rec.StaminaCurrent, &rec.StaminaMax, &rec.StaminaTemporary, &rec.DyingThreshold,
		&rec.WindedOverride, &rec.DyingOverride,
		&rec.RecoveriesCurrent, &rec.RecoveriesMax, &rec.RecoveryValue,
		&rec.HeroicCurrent, &rec.HeroicMax,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return drawsteel.HeroRecord{}, storage.ErrNotFound
	}
	if err != nil {
		return drawsteel.HeroRecord{}, fmt.Errorf("get hero: %w", err)
	}
	return rec, nil
}

// ListHeroes lists the most recently updated heroes first.
func (s *Store) ListHeroes(ctx context.Context, limit int) ([]storage.HeroSummary, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than zero")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, name, class, level, updated_at
FROM heroes
ORDER BY updated_at DESC, id
LIMIT ?
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list heroes: %w", err)
	}
	defer rows.Close()

	heroes := make([]storage.HeroSummary, 0, limit)
	for rows.Next() {
		var (
			summary   storage.HeroSummary
			updatedAt int64
		)
		if err := rows.Scan(&summary.ID, &summary.Name, &summary.Class, &summary.Level, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan hero: %w", err)
		}
		summary.UpdatedAt = time.UnixMilli(updatedAt).UTC()
		heroes = append(heroes, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate heroes: %w", err)
	}
	return heroes, nil
}

// DeleteHero removes a hero record.
func (s *Store) DeleteHero(ctx context.Context, id string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	result, err := s.sqlDB.ExecContext(ctx, "DELETE FROM heroes WHERE id = ?", strings.TrimSpace(id))
	if err != nil {
		return fmt.Errorf("delete hero: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete hero rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}
