package migrations

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/futureedge/counselling/internal/db"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// Migrator applies versioned SQL files and records them in schema_migrations
type Migrator struct {
	db     db.DBTX
	logger zerolog.Logger
}

// NewMigrator creates a new migrator
func NewMigrator(q db.DBTX, logger zerolog.Logger) *Migrator {
	return &Migrator{db: q, logger: logger}
}

func (m *Migrator) ensureMigrationTableExists(ctx context.Context) error {
	_, err := m.db.Exec(ctx, `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(255) PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`)
	if err != nil {
		return fmt.Errorf("failed to create migration tracking table: %w", err)
	}
	return nil
}

func (m *Migrator) isMigrationApplied(ctx context.Context, version string) (bool, error) {
	var exists bool
	err := m.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, version).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	return exists, nil
}

// Version extracts the version prefix of a migration file, "001_init.sql" => "001"
func Version(filename string) string {
	return strings.SplitN(path.Base(filename), "_", 2)[0]
}

// apply runs one migration and its bookkeeping row in a single transaction
func (m *Migrator) apply(ctx context.Context, name, content string) error {
	version := Version(name)

	applied, err := m.isMigrationApplied(ctx, version)
	if err != nil {
		return err
	}
	if applied {
		m.logger.Debug().Str("migration", name).Msg("Migration already applied, skipping")
		return nil
	}

	err = db.InTx(ctx, m.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, content); err != nil {
			return fmt.Errorf("error occurred during SQL migration %s: %w", name, err)
		}
		if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
			return fmt.Errorf("failed to record migration: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	m.logger.Info().Str("migration", name).Msg("Migration applied")
	return nil
}

// MigrateFS applies every .sql file at the root of fsys in lexical order
func (m *Migrator) MigrateFS(ctx context.Context, fsys fs.FS) error {
	if err := m.ensureMigrationTableExists(ctx); err != nil {
		return err
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("failed to read migration directory: %w", err)
	}

	var sqlFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			sqlFiles = append(sqlFiles, entry.Name())
		}
	}
	sort.Strings(sqlFiles)

	for _, name := range sqlFiles {
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", name, err)
		}
		if err := m.apply(ctx, name, string(content)); err != nil {
			return err
		}
	}
	return nil
}

// MigrateFromDirectory applies the SQL files found in dirPath
func (m *Migrator) MigrateFromDirectory(ctx context.Context, dirPath string) error {
	return m.MigrateFS(ctx, os.DirFS(dirPath))
}
