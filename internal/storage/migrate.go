package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed migrations/*.sql
var schemaFS embed.FS

type direction string

const (
	directionUp   direction = ".up.sql"
	directionDown direction = ".down.sql"
)

// MigrateUp applies every up migration in version order. The scripts
// are written IF NOT EXISTS, so re-running on a migrated database is a
// no-op.
func MigrateUp(db *sql.DB) error {
	return runMigrations(db, directionUp)
}

// MigrateDown tears the schema back down in reverse version order.
func MigrateDown(db *sql.DB) error {
	return runMigrations(db, directionDown)
}

func runMigrations(db *sql.DB, dir direction) error {
	scripts, err := fs.Glob(schemaFS, "migrations/*"+string(dir))
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(scripts)
	if dir == directionDown {
		for i, j := 0, len(scripts)-1; i < j; i, j = i+1, j-1 {
			scripts[i], scripts[j] = scripts[j], scripts[i]
		}
	}
	for _, script := range scripts {
		if err := runScript(db, script); err != nil {
			return fmt.Errorf("migration %s: %w", migrationName(script), err)
		}
	}
	return nil
}

// runScript executes one migration file inside a transaction, so a
// failing script leaves no partial schema behind.
func runScript(db *sql.DB, script string) error {
	body, err := schemaFS.ReadFile(script)
	if err != nil {
		return err
	}
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(string(body)); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func migrationName(script string) string {
	name := strings.TrimPrefix(script, "migrations/")
	name = strings.TrimSuffix(name, string(directionUp))
	return strings.TrimSuffix(name, string(directionDown))
}
