// Package bruteforce provides the reference nearest-neighbor index: every
// query is scored against every sample by Euclidean distance and the scores
// are stably sorted, so equal distances keep training-set order.
package bruteforce
