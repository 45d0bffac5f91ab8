// Package index defines a minimal abstraction for exact nearest-neighbor
// indexes over labeled samples. Implementations in this module are a
// brute-force linear scan and a vantage-point tree; both return the same
// neighbors in the same order for any input.
package index
