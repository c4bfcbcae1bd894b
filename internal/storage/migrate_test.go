package storage

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func TestMigrateRoundtrip(t *testing.T) {
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "migrate.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	if err := MigrateUp(db); err != nil {
		t.Fatalf("up: %v", err)
	}
	// Idempotent: every statement is IF NOT EXISTS.
	if err := MigrateUp(db); err != nil {
		t.Fatalf("second up: %v", err)
	}

	var count int
	row := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'tasks'`)
	if err := row.Scan(&count); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if count != 1 {
		t.Fatal("tasks table missing after up")
	}

	if err := MigrateDown(db); err != nil {
		t.Fatalf("down: %v", err)
	}
	row = db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'tasks'`)
	if err := row.Scan(&count); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if count != 0 {
		t.Fatal("tasks table survived down")
	}

	if err := MigrateUp(db); err != nil {
		t.Fatalf("up after down: %v", err)
	}
}
