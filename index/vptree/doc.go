// Package vptree provides an exact nearest-neighbor index backed by a
// vantage-point tree over Euclidean distance. Pruning relies on the triangle
// inequality and never discards a sample that could tie the current k-th
// neighbor, so results match the brute-force index, including tie order.
package vptree
