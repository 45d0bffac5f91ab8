// Package vector defines the data model shared by the classifier and its
// collaborators, together with SQLite-backed storage utilities. It includes:
//   - Sample and FeatureVector types and the Store interface
//   - the error taxonomy (precondition violations, degenerate input)
//   - Euclidean distance with explicit dimension checks
//   - feature encoding (BLOB) and a SQLite Store implementation
package vector
