package engine

import (
	"path/filepath"
	"testing"
)

func TestOpen_MemorySharesOneConnection(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	if got := db.Stats().MaxOpenConnections; got != 1 {
		t.Fatalf("MaxOpenConnections = %d, want 1", got)
	}
	// A second connection would see an empty database.
	if _, err := db.Exec(`CREATE TABLE digits(label INTEGER)`); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO digits(label) VALUES (3),(1),(4)`); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	var sum int
	if err := db.QueryRow(`SELECT SUM(label) FROM digits`).Scan(&sum); err != nil {
		t.Fatalf("sum failed: %v", err)
	}
	if sum != 8 {
		t.Fatalf("sum = %d, want 8", sum)
	}
}

func TestOpen_FilePersistsAcrossHandles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "digits.sqlite")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, err := db.Exec(`CREATE TABLE digits(label INTEGER); INSERT INTO digits VALUES (9)`); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	db, err = Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer db.Close()
	var label int
	if err := db.QueryRow(`SELECT label FROM digits`).Scan(&label); err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if label != 9 {
		t.Fatalf("label = %d, want 9", label)
	}
}
