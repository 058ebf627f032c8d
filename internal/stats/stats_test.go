package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStreak(t *testing.T) {
	now := time.Date(2024, 6, 10, 15, 0, 0, 0, time.Local)
	day := func(offset int, hour int) time.Time {
		return time.Date(2024, 6, 10+offset, hour, 0, 0, 0, time.Local)
	}

	tests := []struct {
		name  string
		dates []time.Time
		want  int
	}{
		{"no entries", nil, 0},
		{"only today", []time.Time{day(0, 9)}, 1},
		{"three consecutive days", []time.Time{day(0, 8), day(-1, 22), day(-2, 1)}, 3},
		{"several entries on one day count once", []time.Time{day(0, 8), day(0, 9), day(0, 20)}, 1},
		{"gap breaks the walk", []time.Time{day(0, 8), day(-1, 8), day(-3, 8)}, 2},
		{"nothing today means zero", []time.Time{day(-1, 8), day(-2, 8), day(-3, 8)}, 0},
		{"unordered input", []time.Time{day(-2, 8), day(0, 8), day(-1, 8)}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Streak(tt.dates, now))
		})
	}
}

func TestStreak_AcrossMonthBoundary(t *testing.T) {
	now := time.Date(2024, 3, 1, 7, 0, 0, 0, time.Local)
	dates := []time.Time{
		time.Date(2024, 3, 1, 6, 0, 0, 0, time.Local),
		time.Date(2024, 2, 29, 23, 0, 0, 0, time.Local),
		time.Date(2024, 2, 28, 0, 30, 0, 0, time.Local),
	}
	assert.Equal(t, 3, Streak(dates, now))
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0, Percentage(0, 0))
	assert.Equal(t, 67, Percentage(2, 3))
	assert.Equal(t, 33, Percentage(1, 3))
	assert.Equal(t, 100, Percentage(4, 4))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 6.3, Round(6.333, 1))
	assert.Equal(t, 6.7, Round(6.666, 1))
	assert.Equal(t, 5.0, Round(5, 1))
}

func TestMostCommon(t *testing.T) {
	_, ok := MostCommon(map[string]int64{})
	assert.False(t, ok)

	k, ok := MostCommon(map[string]int64{"sad": 2, "happy": 5, "calm": 1})
	assert.True(t, ok)
	assert.Equal(t, "happy", k)

	k, _ = MostCommon(map[string]int64{"sad": 3, "calm": 3})
	assert.Equal(t, "calm", k)
}

func TestSum(t *testing.T) {
	assert.Equal(t, int64(6), Sum(map[string]int64{"a": 1, "b": 2, "c": 3}))
}
