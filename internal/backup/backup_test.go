package backup

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) string {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "stride.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE habits (id TEXT PRIMARY KEY, name TEXT)`)
	if err != nil {
		t.Fatalf("failed to create test table: %v", err)
	}
	for _, row := range [][2]string{{"h1", "Read"}, {"h2", "Run"}} {
		if _, err := db.Exec(`INSERT INTO habits (id, name) VALUES (?, ?)`, row[0], row[1]); err != nil {
			t.Fatalf("failed to insert test data: %v", err)
		}
	}
	return dbPath
}

func countHabits(t *testing.T, path string) int {
	t.Helper()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open database %s: %v", path, err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM habits`).Scan(&count); err != nil {
		t.Fatalf("failed to query database %s: %v", path, err)
	}
	return count
}

func TestCreateBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		t.Fatalf("backup file was not created: %s", backupPath)
	}
	if got := countHabits(t, backupPath); got != 2 {
		t.Errorf("backup has %d rows, want 2", got)
	}
}

func TestCreateBackupMissingDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "absent.db"))
	if _, err := mgr.Create(); err == nil {
		t.Error("Create() should fail when the database does not exist")
	}
}

func TestListBackups(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(backups) != 0 {
		t.Fatalf("List() = %d backups before any Create, want 0", len(backups))
	}

	for i := 0; i < 3; i++ {
		if _, err := mgr.Create(); err != nil {
			t.Fatalf("Create() #%d error = %v", i, err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	backups, err = mgr.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(backups) != 3 {
		t.Fatalf("List() = %d backups, want 3", len(backups))
	}
	for i, b := range backups {
		if b.Path == "" || b.Size == 0 || b.Timestamp.IsZero() {
			t.Errorf("backup %d has incomplete info: %+v", i, b)
		}
		if i > 0 && backups[i].Timestamp.After(backups[i-1].Timestamp) {
			t.Errorf("List() not sorted newest first at index %d", i)
		}
	}
}

func TestBackupRotation(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.SetRetention(3)

	for i := 0; i < 5; i++ {
		if _, err := mgr.Create(); err != nil {
			t.Fatalf("Create() #%d error = %v", i, err)
		}
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(backups) != 3 {
		t.Errorf("List() = %d backups after rotation, want 3", len(backups))
	}
}

func TestRestoreBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO habits (id, name) VALUES ('h3', 'Rest')`); err != nil {
		t.Fatalf("failed to insert data: %v", err)
	}
	db.Close()

	if got := countHabits(t, dbPath); got != 3 {
		t.Fatalf("database has %d rows before restore, want 3", got)
	}

	if err := mgr.Restore(backupPath); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if got := countHabits(t, dbPath); got != 2 {
		t.Errorf("database has %d rows after restore, want 2", got)
	}
}

func TestRestoreCreatesSafetyBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	before, err := mgr.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if err := mgr.Restore(backupPath); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}

	after, err := mgr.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(after) != len(before)+1 {
		t.Errorf("List() = %d backups after restore, want %d", len(after), len(before)+1)
	}
}

func TestRestoreRejectsInvalidBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	invalidPath := filepath.Join(t.TempDir(), "invalid.db")
	if err := os.WriteFile(invalidPath, []byte("not a database"), 0600); err != nil {
		t.Fatalf("failed to create invalid file: %v", err)
	}

	if err := mgr.Restore(invalidPath); err == nil {
		t.Error("Restore() should fail for a non-database file")
	}
	if got := countHabits(t, dbPath); got != 2 {
		t.Errorf("database has %d rows after rejected restore, want 2", got)
	}
}

func TestUniqueBackupFilenames(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		backupPath, err := mgr.Create()
		if err != nil {
			t.Fatalf("Create() #%d error = %v", i, err)
		}
		name := filepath.Base(backupPath)
		if seen[name] {
			t.Errorf("duplicate backup filename: %s", name)
		}
		seen[name] = true
	}
}

func TestParseStamp(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     time.Time
		ok       bool
	}{
		{"plain", "stride-20240310-142500.db", time.Date(2024, 3, 10, 14, 25, 0, 0, time.UTC), true},
		{"with counter", "stride-20240310-142500-2.db", time.Date(2024, 3, 10, 14, 25, 0, 0, time.UTC), true},
		{"wrong prefix", "habits-20240310-142500.db", time.Time{}, false},
		{"wrong suffix", "stride-20240310-142500.bak", time.Time{}, false},
		{"garbage stamp", "stride-notadate.db", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseStamp(tt.filename)
			if ok != tt.ok {
				t.Fatalf("parseStamp(%q) ok = %v, want %v", tt.filename, ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("parseStamp(%q) = %v, want %v", tt.filename, got, tt.want)
			}
		})
	}
}
