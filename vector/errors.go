package vector

import (
	"errors"
	"fmt"
)

// ErrPrecondition marks calls made against a contract the caller must satisfy,
// such as asking for more neighbors than there are training samples.
var ErrPrecondition = errors.New("precondition violation")

// ErrDegenerateInput marks inputs on which classification is undefined.
var ErrDegenerateInput = errors.New("degenerate input")

var (
	ErrNotFitted           = fmt.Errorf("%w: classifier is not fitted", ErrPrecondition)
	ErrKExceedsTrainingSet = fmt.Errorf("%w: k exceeds training set size", ErrPrecondition)
	ErrDimensionMismatch   = fmt.Errorf("%w: feature dimension mismatch", ErrPrecondition)
	ErrLabelOutOfRange     = fmt.Errorf("%w: label out of range", ErrPrecondition)

	ErrInvalidK           = fmt.Errorf("%w: k must be positive", ErrDegenerateInput)
	ErrEmptyTrainingSet   = fmt.Errorf("%w: empty training set", ErrDegenerateInput)
	ErrEmptyFeatureVector = fmt.Errorf("%w: empty feature vector", ErrDegenerateInput)
	ErrNaNFeature         = fmt.Errorf("%w: NaN feature value", ErrDegenerateInput)
)
