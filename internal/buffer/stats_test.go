package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStats_Push(t *testing.T) {

	type test struct {
		values   []float64
		avg      float64
		sum      float64
		min      float64
		max      float64
		variance float64
	}

	tests := map[string]test{
		"monotonic": {
			values:   []float64{1, 2, 3, 4, 5},
			avg:      3,
			sum:      15,
			min:      1,
			max:      5,
			variance: 2,
		},
		"constant": {
			values:   []float64{0.5, 0.5, 0.5},
			avg:      0.5,
			sum:      1.5,
			min:      0.5,
			max:      0.5,
			variance: 0,
		},
		"mixed-sign": {
			values:   []float64{-2, 2},
			avg:      0,
			sum:      0,
			min:      -2,
			max:      2,
			variance: 4,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			stats := NewStats()
			for _, v := range tt.values {
				stats.Push(v)
			}
			assert.Equal(t, len(tt.values), stats.Count())
			assert.InDelta(t, tt.avg, stats.Avg(), 1e-9)
			assert.InDelta(t, tt.sum, stats.Sum(), 1e-9)
			assert.InDelta(t, tt.min, stats.Min(), 1e-9)
			assert.InDelta(t, tt.max, stats.Max(), 1e-9)
			assert.InDelta(t, tt.variance, stats.Variance(), 1e-9)
		})
	}
}

func TestStatsCollector_Push(t *testing.T) {
	collector := NewStatsCollector(2)
	collector.Push(1, 10)
	collector.Push(3, 30)

	assert.Equal(t, 2, collector.Size())
	assert.InDelta(t, 2, collector.Stats()[0].Avg(), 1e-9)
	assert.InDelta(t, 20, collector.Stats()[1].Avg(), 1e-9)

	assert.Panics(t, func() {
		collector.Push(1)
	})
}
