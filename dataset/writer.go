package dataset

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// WritePredictions writes an ImageId,Label CSV where ImageId is the 1-based
// position of the query the label was predicted for.
func WritePredictions(w io.Writer, predictions []int) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"ImageId", "Label"}); err != nil {
		return fmt.Errorf("dataset: %w", err)
	}
	row := make([]string, 2)
	for i, label := range predictions {
		row[0] = strconv.Itoa(i + 1)
		row[1] = strconv.Itoa(label)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("dataset: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("dataset: %w", err)
	}
	return nil
}

// WritePredictionsFile writes predictions to path, creating parent
// directories as needed.
func WritePredictionsFile(path string, predictions []int) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("dataset: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dataset: %w", err)
	}
	bw := bufio.NewWriter(f)
	if err := WritePredictions(bw, predictions); err != nil {
		_ = f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("dataset: %w", err)
	}
	return f.Close()
}
