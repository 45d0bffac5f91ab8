// Package knn implements a k-nearest-neighbor classifier. A Classifier is
// fitted once with labeled samples and then answers any number of queries by
// majority vote among the k closest samples under Euclidean distance.
//
// Ordering is deterministic: neighbors at equal distance keep training-set
// order, and a tied vote goes to the lowest label.
package knn
