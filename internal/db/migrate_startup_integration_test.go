package db_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	dbfs "github.com/garnizeh/mentormatch/db"
	"github.com/garnizeh/mentormatch/internal/config"
	"github.com/garnizeh/mentormatch/internal/db"
)

// TestMigrateOnStart_TempWorkdir runs the startup sequence the server
// performs (load config, open db, migrate) against a temporary directory so
// nothing touches the repository layout.
func TestMigrateOnStart_TempWorkdir(t *testing.T) {
	ctx := context.Background()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	cfgY := "addr: \":0\"\n" +
		"database_path: '" + dbPath + "'\n"

	cfgPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte(cfgY), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	// allow insecure default JWTSecret for this test
	prevEnv := os.Getenv("MENTORMATCH_ENV")
	_ = os.Setenv("MENTORMATCH_ENV", "development")
	defer func() {
		_ = os.Setenv("MENTORMATCH_ENV", prevEnv)
	}()

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate config: %v", err)
	}

	dbCtx, dbCancel := context.WithTimeout(ctx, cfg.APITimeout)
	defer dbCancel()

	d, err := db.New(dbCtx, cfg.DatabasePath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer d.Close()

	if err := db.Migrate(dbCtx, d, dbfs.Migrations); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	var count int
	row := d.QueryRow(ctx, `SELECT COUNT(1) FROM schema_migrations`)
	if err := row.Scan(&count); err != nil {
		t.Fatalf("scan schema_migrations count: %v", err)
	}
	if count == 0 {
		t.Fatalf("expected migrations recorded, got 0")
	}
}
