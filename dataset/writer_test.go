package dataset

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWritePredictions(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePredictions(&buf, []int{2, 0, 9}))
	assert.Equal(t, "ImageId,Label\n1,2\n2,0\n3,9\n", buf.String())
}

func TestWritePredictions_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePredictions(&buf, nil))
	assert.Equal(t, "ImageId,Label\n", buf.String())
}

func TestWritePredictionsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "predictions.csv")
	require.NoError(t, WritePredictionsFile(path, []int{5}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ImageId,Label\n1,5\n", string(data))
}
