package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/viant/knn-digits/vector"
)

// LoadTrain reads labeled samples. The first column of every row is the
// label; the remaining columns are pixel values.
func LoadTrain(r io.Reader, opts ...Option) ([]vector.Sample, error) {
	o := newOptions(opts)
	var out []vector.Sample
	err := readRows(r, o, 2, func(line int, rec []string) error {
		label, err := parseLabel(rec[0])
		if err != nil {
			return fmt.Errorf("dataset: line %d: %w", line, err)
		}
		features, err := parsePixels(rec[1:], o.scale)
		if err != nil {
			return fmt.Errorf("dataset: line %d: %w", line, err)
		}
		out = append(out, vector.Sample{Label: label, Features: features})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// LoadQueries reads unlabeled feature vectors; every column is a pixel.
func LoadQueries(r io.Reader, opts ...Option) ([]vector.FeatureVector, error) {
	o := newOptions(opts)
	var out []vector.FeatureVector
	err := readRows(r, o, 1, func(line int, rec []string) error {
		features, err := parsePixels(rec, o.scale)
		if err != nil {
			return fmt.Errorf("dataset: line %d: %w", line, err)
		}
		out = append(out, features)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// LoadTrainFile opens path and calls LoadTrain.
func LoadTrainFile(path string, opts ...Option) ([]vector.Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	defer f.Close()
	return LoadTrain(f, opts...)
}

// LoadQueriesFile opens path and calls LoadQueries.
func LoadQueriesFile(path string, opts ...Option) ([]vector.FeatureVector, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	defer f.Close()
	return LoadQueries(f, opts...)
}

// readRows iterates data rows, enforcing a constant column count of at least
// minColumns. The csv reader rejects rows whose width differs from the first.
func readRows(r io.Reader, o options, minColumns int, fn func(line int, rec []string) error) error {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true
	first := true
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("dataset: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if first {
			first = false
			if len(rec) < minColumns {
				return fmt.Errorf("dataset: line %d: got %d columns, want at least %d", line, len(rec), minColumns)
			}
			if o.header {
				continue
			}
		}
		if err := fn(line, rec); err != nil {
			return err
		}
	}
}

func parseLabel(s string) (int, error) {
	s = strings.TrimSpace(s)
	if label, err := strconv.Atoi(s); err == nil {
		return label, nil
	}
	// Labels exported as floats, e.g. "7.0".
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("invalid label %q", s)
	}
	return int(f), nil
}

func parsePixels(cells []string, scale float32) (vector.FeatureVector, error) {
	out := make(vector.FeatureVector, len(cells))
	for i, c := range cells {
		v, err := strconv.ParseFloat(strings.TrimSpace(c), 32)
		if err != nil {
			return nil, fmt.Errorf("pixel %d: invalid value %q", i, c)
		}
		if math.IsNaN(v) {
			return nil, fmt.Errorf("pixel %d: %w", i, vector.ErrNaNFeature)
		}
		out[i] = float32(v) / scale
	}
	return out, nil
}
