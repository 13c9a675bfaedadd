package experiment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	pairs := []Key{
		{Algorithm: "GAIN", Dataset: "iris"},
		{Algorithm: "SGAIN", Dataset: "iris"},
	}
	summaries := map[Key]Summary{
		pairs[0]: {
			Key:      pairs[0],
			Rows:     150,
			Cols:     4,
			MissRate: 0.2,
			Runs:     2,
			RMSEMean: 0.1234,
			Results: []Result{
				{RMSE: 0.12},
				{RMSE: 0.13},
			},
		},
	}

	var out strings.Builder
	Render(&out, pairs, summaries)
	report := out.String()

	assert.Contains(t, report, "GAIN:")
	assert.Contains(t, report, "dataset:    iris")
	assert.Contains(t, report, "shape:      (150, 4)")
	assert.Contains(t, report, "RMSE:       0.1234")
	assert.Contains(t, report, "[0.1200, 0.1300]")
	assert.Contains(t, report, "ALGORITHM")
	// pairs without a summary are skipped
	assert.NotContains(t, report, "SGAIN")
}

func TestPairs_Order(t *testing.T) {
	dir := t.TempDir()

	cfg := testConfig(dir)
	cfg.Algos = []string{"GAIN", "SGAIN"}
	cfg.Datasets = []string{"iris", "yeast"}

	driver, err := New(cfg)
	require.NoError(t, err)

	assert.Equal(t, []Key{
		{Algorithm: "GAIN", Dataset: "iris"},
		{Algorithm: "GAIN", Dataset: "yeast"},
		{Algorithm: "SGAIN", Dataset: "iris"},
		{Algorithm: "SGAIN", Dataset: "yeast"},
	}, driver.Pairs())
}
