package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/knn-digits/vector"
)

func TestLoadTrain(t *testing.T) {
	in := "label,pixel0,pixel1,pixel2\n" +
		"1,0,255,51\n" +
		"7.0,255,0,0\n"
	samples, err := LoadTrain(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, samples, 2)

	assert.Equal(t, 1, samples[0].Label)
	assert.Equal(t, vector.FeatureVector{0, 1, 0.2}, samples[0].Features)
	assert.Equal(t, 7, samples[1].Label)
	assert.Equal(t, 3, samples[1].Dim())
}

func TestLoadTrain_Options(t *testing.T) {
	in := "3,2,4\n"
	samples, err := LoadTrain(strings.NewReader(in), WithHeader(false), WithScale(2))
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Equal(t, 3, samples[0].Label)
	assert.Equal(t, vector.FeatureVector{1, 2}, samples[0].Features)
}

func TestLoadTrain_Errors(t *testing.T) {
	cases := map[string]string{
		"bad label":  "label,p0\nx,1\n",
		"fractional": "label,p0\n1.5,1\n",
		"bad pixel":  "label,p0\n1,abc\n",
		"nan pixel":  "label,p0\n1,NaN\n",
		"ragged row": "label,p0,p1\n1,2,3\n1,2\n",
		"label only": "label\n1\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadTrain(strings.NewReader(in))
			assert.Error(t, err)
		})
	}

	_, err := LoadTrain(strings.NewReader("label,p0\n1,abc\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestLoadQueries(t *testing.T) {
	in := "pixel0,pixel1\n0,255\n\n255,0\n"
	queries, err := LoadQueries(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, queries, 2)
	assert.Equal(t, vector.FeatureVector{0, 1}, queries[0])
	assert.Equal(t, vector.FeatureVector{1, 0}, queries[1])
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	train := filepath.Join(dir, "train.csv")
	test := filepath.Join(dir, "test.csv")
	require.NoError(t, os.WriteFile(train, []byte("label,p0\n4,255\n"), 0o600))
	require.NoError(t, os.WriteFile(test, []byte("p0\n0\n"), 0o600))

	samples, err := LoadTrainFile(train)
	require.NoError(t, err)
	assert.Len(t, samples, 1)

	queries, err := LoadQueriesFile(test)
	require.NoError(t, err)
	assert.Len(t, queries, 1)

	_, err = LoadTrainFile(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}
