package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestPrune(t *testing.T) {
	stamps := []time.Time{
		t0,
		t0.Add(10 * time.Second),
		t0.Add(30 * time.Second),
		t0.Add(59 * time.Second),
	}

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"all live", t0.Add(59 * time.Second), 4},
		{"boundary stamp expires", t0.Add(time.Minute), 3},
		{"some expired", t0.Add(80 * time.Second), 2},
		{"all expired", t0.Add(5 * time.Minute), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Prune(stamps, tt.now, time.Minute)
			assert.Len(t, got, tt.want)
		})
	}

	assert.Len(t, stamps, 4, "input must not be modified")
	assert.Empty(t, Prune(nil, t0, time.Minute))
}

func TestWindow_SaturatesAtCapacity(t *testing.T) {
	w := NewWindow(3)

	assert.Equal(t, 1, w.Hit(t0, time.Minute))
	assert.Equal(t, 2, w.Hit(t0.Add(time.Second), time.Minute))
	assert.Equal(t, 3, w.Hit(t0.Add(2*time.Second), time.Minute))
	assert.Equal(t, 3, w.Hit(t0.Add(3*time.Second), time.Minute))
	assert.Equal(t, 3, w.Len())
}

func TestWindow_ExpiresOldHits(t *testing.T) {
	w := NewWindow(5)
	for i := 0; i < 4; i++ {
		w.Hit(t0.Add(time.Duration(i)*time.Second), time.Minute)
	}

	assert.Equal(t, 1, w.Hit(t0.Add(2*time.Minute), time.Minute))
}
