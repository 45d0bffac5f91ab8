package engine

import (
	"database/sql"
	"math"
	"testing"

	"github.com/viant/knn-digits/vector"
)

func openWithFunctions(t *testing.T) *sql.DB {
	t.Helper()
	// Register globally before first connection so functions are available.
	if err := RegisterVectorFunctions(); err != nil {
		t.Fatalf("RegisterVectorFunctions failed: %v", err)
	}
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestRegisterVectorFunctionsAndUse(t *testing.T) {
	db := openWithFunctions(t)
	if err := RegisterVectorFunctions(); err != nil {
		t.Fatalf("second RegisterVectorFunctions failed: %v", err)
	}

	zero := vector.EncodeFeatures([]float32{0, 0})
	threeFour := vector.EncodeFeatures([]float32{3, 4})

	var dist float64
	if err := db.QueryRow(`SELECT vec_l2(?, ?)`, zero, threeFour).Scan(&dist); err != nil {
		t.Fatalf("vec_l2 query failed: %v", err)
	}
	if math.Abs(dist-5) > 1e-9 {
		t.Fatalf("vec_l2 = %v, want 5", dist)
	}
}

func TestVecL2NullAndMismatch(t *testing.T) {
	db := openWithFunctions(t)

	var dist sql.NullFloat64
	if err := db.QueryRow(`SELECT vec_l2(NULL, ?)`, vector.EncodeFeatures([]float32{1})).Scan(&dist); err != nil {
		t.Fatalf("vec_l2(NULL, x) query failed: %v", err)
	}
	if dist.Valid {
		t.Fatalf("vec_l2(NULL, x) = %v, want NULL", dist.Float64)
	}

	a := vector.EncodeFeatures([]float32{1, 2})
	b := vector.EncodeFeatures([]float32{1, 2, 3})
	if err := db.QueryRow(`SELECT vec_l2(?, ?)`, a, b).Scan(&dist); err == nil {
		t.Fatalf("expected dimension mismatch error from vec_l2")
	}

	if err := db.QueryRow(`SELECT vec_l2('text', ?)`, a).Scan(&dist); err == nil {
		t.Fatalf("expected type error from vec_l2 with TEXT argument")
	}
}

func TestDecodeFeaturesMatchesVectorEncoding(t *testing.T) {
	want := []float32{0, 0.5, -1.25, 255}
	got, err := decodeFeatures(vector.EncodeFeatures(want))
	if err != nil {
		t.Fatalf("decodeFeatures failed: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("decoded %d values, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("value %d = %v, want %v", i, got[i], want[i])
		}
	}

	db := openWithFunctions(t)
	var dist float64
	if err := db.QueryRow(`SELECT vec_l2(?, ?)`, []byte{1, 2, 3}, []byte{1, 2, 3}).Scan(&dist); err == nil {
		t.Fatalf("expected error from vec_l2 with truncated BLOBs")
	}
}
