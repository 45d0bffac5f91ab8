package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 3, cfg.Classifier.K)
	assert.Equal(t, 10, cfg.Classifier.Classes)
	assert.Equal(t, 28000, cfg.Data.TrainingSize)
	assert.Equal(t, "data/output.csv", cfg.Data.OutputPath)
	assert.Equal(t, float32(255), cfg.Data.Scale)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
classifier:
  k: 5
  index: vptree
data:
  training_size: 1000
  seed: 99
store:
  dsn: digits.sqlite
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Classifier.K)
	assert.Equal(t, "vptree", cfg.Classifier.Index)
	assert.Equal(t, 10, cfg.Classifier.Classes)
	assert.Equal(t, 1000, cfg.Data.TrainingSize)
	assert.Equal(t, int64(99), cfg.Data.Seed)
	assert.Equal(t, "data/train.csv", cfg.Data.TrainPath)
	assert.Equal(t, "digits.sqlite", cfg.Store.DSN)
	assert.Equal(t, "digits", cfg.Store.Dataset)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"zero k":        "classifier:\n  k: 0\n",
		"unknown index": "classifier:\n  index: annoy\n",
		"bad scale":     "data:\n  scale: 0\n",
		"bad yaml":      "classifier: [",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}
