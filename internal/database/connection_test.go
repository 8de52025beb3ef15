package database

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mixdeck/trackdb/internal/config"
)

func setupTestDB(t *testing.T) *Context {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("TRACKDB_DIR", tmp)

	ctx, err := CreateDatabase("")
	if err != nil {
		t.Fatalf("CreateDatabase returned error: %v", err)
	}

	t.Cleanup(func() {
		if err := CloseDatabase(ctx); err != nil {
			t.Fatalf("CloseDatabase error: %v", err)
		}
	})

	return ctx
}

func TestDatabaseCreationAndMigration(t *testing.T) {
	ctx := setupTestDB(t)

	dbPath := filepath.Join(config.GetDataDir(), "library.db")
	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("expected database file to exist at %s: %v", dbPath, err)
	}

	version, dirty, err := SchemaVersion(ctx)
	if err != nil {
		t.Fatalf("SchemaVersion returned error: %v", err)
	}
	if version != 1 || dirty {
		t.Fatalf("expected clean schema version 1, got %d (dirty=%v)", version, dirty)
	}

	tables := []string{"locations", "tracks", "cues"}
	for _, table := range tables {
		if !tableExists(t, ctx.DB, table) {
			t.Fatalf("expected table %s to exist", table)
		}
	}

	var foreignKeys int
	if err := ctx.DB.QueryRow("PRAGMA foreign_keys").Scan(&foreignKeys); err != nil {
		t.Fatalf("failed to read foreign_keys pragma: %v", err)
	}
	if foreignKeys != 1 {
		t.Fatalf("expected foreign keys enabled, got %d", foreignKeys)
	}
}

func TestReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "library.db")

	first, err := CreateDatabase(dbPath)
	if err != nil {
		t.Fatalf("CreateDatabase returned error: %v", err)
	}
	insertLocation(t, first.DB, "/music/a.mp3", 10)
	if err := CloseDatabase(first); err != nil {
		t.Fatalf("CloseDatabase error: %v", err)
	}

	second, err := CreateDatabase(dbPath)
	if err != nil {
		t.Fatalf("CreateDatabase on existing file returned error: %v", err)
	}
	defer func() {
		_ = CloseDatabase(second)
	}()

	assertCount(t, second.DB, "locations", 1)
}

func TestInMemoryDatabase(t *testing.T) {
	ctx, err := CreateDatabase(":memory:")
	if err != nil {
		t.Fatalf("CreateDatabase returned error: %v", err)
	}
	defer func() {
		_ = CloseDatabase(ctx)
	}()

	insertLocation(t, ctx.DB, "/music/a.mp3", 10)
	assertCount(t, ctx.DB, "locations", 1)
}

func TestForeignKeysRejectDanglingTrack(t *testing.T) {
	ctx := setupTestDB(t)

	_, err := ctx.DB.Exec(`INSERT INTO tracks(location_id) VALUES(?)`, 999)
	if err == nil {
		t.Fatalf("expected foreign key violation inserting a track without location")
	}
}

func TestClearDatabaseRemovesAllRows(t *testing.T) {
	ctx := setupTestDB(t)

	locationID := insertLocation(t, ctx.DB, "/music/a.mp3", 10)
	trackID := insertTrack(t, ctx.DB, locationID, "Artist")
	insertCue(t, ctx.DB, trackID, 100)

	assertCount(t, ctx.DB, "locations", 1)
	assertCount(t, ctx.DB, "tracks", 1)
	assertCount(t, ctx.DB, "cues", 1)

	if err := ClearDatabase(ctx); err != nil {
		t.Fatalf("ClearDatabase returned error: %v", err)
	}

	assertCount(t, ctx.DB, "locations", 0)
	assertCount(t, ctx.DB, "tracks", 0)
	assertCount(t, ctx.DB, "cues", 0)
}

func tableExists(t *testing.T, db *sql.DB, table string) bool {
	t.Helper()
	var name string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return false
	}
	if err != nil {
		t.Fatalf("tableExists query failed for %s: %v", table, err)
	}
	return true
}

func insertLocation(t *testing.T, db *sql.DB, path string, size int64) int64 {
	t.Helper()
	res, err := db.Exec(`INSERT INTO locations(path, directory, filename, size) VALUES(?, ?, ?, ?)`,
		path, filepath.Dir(path), filepath.Base(path), size)
	if err != nil {
		t.Fatalf("insertLocation failed: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("insertLocation LastInsertId failed: %v", err)
	}
	return id
}

func insertTrack(t *testing.T, db *sql.DB, locationID int64, artist string) int64 {
	t.Helper()
	res, err := db.Exec(`INSERT INTO tracks(location_id, artist) VALUES(?, ?)`, locationID, artist)
	if err != nil {
		t.Fatalf("insertTrack failed: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("insertTrack LastInsertId failed: %v", err)
	}
	return id
}

func insertCue(t *testing.T, db *sql.DB, trackID int64, position int64) {
	t.Helper()
	if _, err := db.Exec(`INSERT INTO cues(track_id, position) VALUES(?, ?)`, trackID, position); err != nil {
		t.Fatalf("insertCue failed: %v", err)
	}
}

func assertCount(t *testing.T, db *sql.DB, table string, expected int) {
	t.Helper()
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
		t.Fatalf("count query failed for %s: %v", table, err)
	}
	if count != expected {
		t.Fatalf("expected %s to have %d rows, got %d", table, expected, count)
	}
}
