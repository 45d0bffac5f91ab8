// Package dataset reads digit images from CSV, prepares them for training and
// writes predictions back out.
//
// Training files have a header row followed by rows of a label and the
// image's pixel values; query files have the same layout without the label
// column. Pixel values are divided by the configured scale (255 by default)
// so features fall in [0, 1].
package dataset
