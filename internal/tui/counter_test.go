package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCounterBeforeStart(t *testing.T) {
	counter := NewCounter(CountDuration)
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	assert.False(t, counter.Started())
	assert.Equal(t, 0, counter.Value(45, now))
	assert.False(t, counter.Running(now))
}

func TestCounterFloorsProgress(t *testing.T) {
	counter := NewCounter(2000 * time.Millisecond)
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	assert.True(t, counter.Start(start))

	cases := []struct {
		elapsed time.Duration
		want    int
	}{
		{0, 0},
		{500 * time.Millisecond, 11},
		{1000 * time.Millisecond, 22},
		{1999 * time.Millisecond, 44},
		{2000 * time.Millisecond, 45},
		{5 * time.Second, 45},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, counter.Value(45, start.Add(tc.elapsed)), "elapsed %s", tc.elapsed)
	}
	assert.True(t, counter.Running(start.Add(time.Second)))
	assert.False(t, counter.Running(start.Add(2*time.Second)))
}

func TestCounterStartsOnce(t *testing.T) {
	counter := NewCounter(time.Second)
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	assert.True(t, counter.Start(start))
	assert.False(t, counter.Start(start.Add(10*time.Second)))
	assert.Equal(t, 90, counter.Value(90, start.Add(time.Second)))
}
