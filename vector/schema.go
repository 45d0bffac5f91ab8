package vector

import (
	"context"
	"database/sql"
)

// Position columns keep the order records were added in; queries and
// predictions are matched by that order.
const schema = `
CREATE TABLE IF NOT EXISTS samples (
    dataset  TEXT    NOT NULL,
    position INTEGER NOT NULL,
    label    INTEGER NOT NULL,
    features BLOB    NOT NULL,
    PRIMARY KEY(dataset, position)
);
CREATE TABLE IF NOT EXISTS queries (
    dataset  TEXT    NOT NULL,
    position INTEGER NOT NULL,
    features BLOB    NOT NULL,
    PRIMARY KEY(dataset, position)
);
CREATE TABLE IF NOT EXISTS predictions (
    dataset  TEXT    NOT NULL,
    image_id INTEGER NOT NULL,
    label    INTEGER NOT NULL,
    PRIMARY KEY(dataset, image_id)
);
`

// EnsureSchema creates the samples, queries and predictions tables if they do
// not already exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
