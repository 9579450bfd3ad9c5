package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeProgress(t *testing.T) {
	t0 := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := t0.Add(10 * 24 * time.Hour)

	tests := []struct {
		name  string
		start *time.Time
		end   *time.Time
		now   time.Time
		want  int
	}{
		{"halfway", &t0, &end, t0.Add(5 * 24 * time.Hour), 50},
		{"before start", &t0, &end, t0.Add(-24 * time.Hour), 0},
		{"after end", &t0, &end, t0.Add(11 * 24 * time.Hour), 100},
		{"at start", &t0, &end, t0, 0},
		{"at end", &t0, &end, end, 100},
		{"missing start", nil, &end, t0, 0},
		{"missing end", &t0, nil, t0, 0},
		{"both missing", nil, nil, t0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeProgress(tt.start, tt.end, tt.now))
		})
	}
}

func TestComputeProgressRoundsToNearest(t *testing.T) {
	t0 := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := t0.Add(3 * 24 * time.Hour)

	// 1/3 elapsed → 33.33… → 33
	assert.Equal(t, 33, ComputeProgress(&t0, &end, t0.Add(24*time.Hour)))
	// 2/3 elapsed → 66.66… → 67
	assert.Equal(t, 67, ComputeProgress(&t0, &end, t0.Add(2*24*time.Hour)))
}

func TestComputeProgressDegenerateRange(t *testing.T) {
	t0 := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	// end before or equal to start never divides by zero
	assert.Equal(t, 0, ComputeProgress(&t0, &t0, t0.Add(time.Hour)))
	before := t0.Add(-time.Hour)
	assert.Equal(t, 0, ComputeProgress(&t0, &before, t0))
}
