package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObservePrediction(t *testing.T) {
	before := testutil.ToFloat64(PredictionsTotal.WithLabelValues("7"))
	ObservePrediction(7, 0.001)
	ObservePrediction(7, 0.002)
	assert.Equal(t, before+2, testutil.ToFloat64(PredictionsTotal.WithLabelValues("7")))
}
