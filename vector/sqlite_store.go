package vector

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLiteStore implements Store on top of a SQLite database. NearestLabels
// relies on the vec_l2 scalar function, so engine.RegisterVectorFunctions must
// be called before the database connection is opened.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-backed Store. It ensures the schema
// exists in the provided database.
func NewSQLiteStore(ctx context.Context, db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, fmt.Errorf("vector: db is nil")
	}
	if err := EnsureSchema(ctx, db); err != nil {
		return nil, fmt.Errorf("vector: ensure schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// AddSamples appends samples to the dataset after any previously stored ones.
func (s *SQLiteStore) AddSamples(ctx context.Context, dataset string, samples []Sample) error {
	if len(samples) == 0 {
		return nil
	}
	return s.inTx(ctx, func(tx *sql.Tx) error {
		return insertSamples(ctx, tx, dataset, samples)
	})
}

// ReplaceSamples deletes the dataset's samples and stores samples instead.
// On error the previous samples are kept.
func (s *SQLiteStore) ReplaceSamples(ctx context.Context, dataset string, samples []Sample) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM samples WHERE dataset = ?`, dataset); err != nil {
			return err
		}
		return insertSamples(ctx, tx, dataset, samples)
	})
}

func insertSamples(ctx context.Context, tx *sql.Tx, dataset string, samples []Sample) error {
	if len(samples) == 0 {
		return nil
	}
	next, err := nextPosition(ctx, tx, "samples", dataset)
	if err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO samples(dataset, position, label, features) VALUES(?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, smp := range samples {
		if len(smp.Features) == 0 {
			return fmt.Errorf("vector: sample %d: %w", i, ErrEmptyFeatureVector)
		}
		if _, err := stmt.ExecContext(ctx, dataset, next+int64(i), smp.Label, EncodeFeatures(smp.Features)); err != nil {
			return err
		}
	}
	return nil
}

// Samples returns the dataset's samples in insertion order.
func (s *SQLiteStore) Samples(ctx context.Context, dataset string) ([]Sample, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT label, features FROM samples WHERE dataset = ? ORDER BY position`, dataset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Sample
	for rows.Next() {
		var label int
		var blob []byte
		if err := rows.Scan(&label, &blob); err != nil {
			return nil, err
		}
		features, err := DecodeFeatures(blob)
		if err != nil {
			return nil, err
		}
		out = append(out, Sample{Label: label, Features: features})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// AddQueries appends unlabeled feature vectors to the dataset.
func (s *SQLiteStore) AddQueries(ctx context.Context, dataset string, queries []FeatureVector) error {
	if len(queries) == 0 {
		return nil
	}
	return s.inTx(ctx, func(tx *sql.Tx) error {
		return insertQueries(ctx, tx, dataset, queries)
	})
}

// ReplaceQueries deletes the dataset's queries and stores queries instead.
func (s *SQLiteStore) ReplaceQueries(ctx context.Context, dataset string, queries []FeatureVector) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM queries WHERE dataset = ?`, dataset); err != nil {
			return err
		}
		return insertQueries(ctx, tx, dataset, queries)
	})
}

func insertQueries(ctx context.Context, tx *sql.Tx, dataset string, queries []FeatureVector) error {
	if len(queries) == 0 {
		return nil
	}
	next, err := nextPosition(ctx, tx, "queries", dataset)
	if err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO queries(dataset, position, features) VALUES(?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, q := range queries {
		if len(q) == 0 {
			return fmt.Errorf("vector: query %d: %w", i, ErrEmptyFeatureVector)
		}
		if _, err := stmt.ExecContext(ctx, dataset, next+int64(i), EncodeFeatures(q)); err != nil {
			return err
		}
	}
	return nil
}

// Queries returns the dataset's queries in insertion order.
func (s *SQLiteStore) Queries(ctx context.Context, dataset string) ([]FeatureVector, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT features FROM queries WHERE dataset = ? ORDER BY position`, dataset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []FeatureVector
	for rows.Next() {
		var blob []byte
		if err := rows.Scan(&blob); err != nil {
			return nil, err
		}
		features, err := DecodeFeatures(blob)
		if err != nil {
			return nil, err
		}
		out = append(out, features)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// SavePredictions stores predictions[i] under image id i+1. Predictions saved
// earlier for the dataset are removed, including ids beyond len(predictions).
func (s *SQLiteStore) SavePredictions(ctx context.Context, dataset string, predictions []int) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM predictions WHERE dataset = ?`, dataset); err != nil {
			return err
		}
		if len(predictions) == 0 {
			return nil
		}
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO predictions(dataset, image_id, label) VALUES(?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for i, label := range predictions {
			if _, err := stmt.ExecContext(ctx, dataset, i+1, label); err != nil {
				return err
			}
		}
		return nil
	})
}

// Predictions returns the dataset's predictions ordered by image id.
func (s *SQLiteStore) Predictions(ctx context.Context, dataset string) ([]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT label FROM predictions WHERE dataset = ? ORDER BY image_id`, dataset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var label int
		if err := rows.Scan(&label); err != nil {
			return nil, err
		}
		out = append(out, label)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// NearestLabels returns the k samples closest to query, ordered by distance
// and then by insertion position, which is the same order the in-memory
// indexes produce.
func (s *SQLiteStore) NearestLabels(ctx context.Context, dataset string, query FeatureVector, k int) ([]Neighbor, error) {
	if k <= 0 {
		return nil, fmt.Errorf("vector: nearest labels: %w", ErrInvalidK)
	}
	if len(query) == 0 {
		return nil, fmt.Errorf("vector: nearest labels: %w", ErrEmptyFeatureVector)
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT position, label, vec_l2(features, ?) AS distance
FROM samples
WHERE dataset = ?
ORDER BY distance, position
LIMIT ?`, EncodeFeatures(query), dataset, k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Neighbor
	for rows.Next() {
		var n Neighbor
		if err := rows.Scan(&n.Position, &n.Label, &n.Distance); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SQLiteStore) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func nextPosition(ctx context.Context, tx *sql.Tx, table, dataset string) (int64, error) {
	var next int64
	err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(position) + 1, 0) FROM `+table+` WHERE dataset = ?`, dataset).Scan(&next)
	return next, err
}

// Ensure SQLiteStore satisfies the Store interface.
var _ Store = (*SQLiteStore)(nil)
