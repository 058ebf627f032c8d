// Package stats holds the pure calculations behind the per-user summary endpoints.
package stats

import (
	"math"
	"sort"
	"time"
)

const dayKey = "2006-01-02"

// Streak counts consecutive local calendar days with at least one entry, walking back from
// the day of now. The walk starts at today: a user who has not logged today has a streak of
// zero, regardless of earlier days.
func Streak(dates []time.Time, now time.Time) int {
	days := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		days[d.In(time.Local).Format(dayKey)] = struct{}{}
	}

	today := now.In(time.Local)
	streak := 0
	for i := 0; i <= len(days); i++ {
		day := today.AddDate(0, 0, -i).Format(dayKey)
		if _, ok := days[day]; !ok {
			break
		}
		streak++
	}
	return streak
}

// Percentage returns part/total*100 rounded to the nearest integer, or 0 when total is 0.
func Percentage(part, total int64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// MostCommon returns the key with the highest count. Ties go to the alphabetically first key.
func MostCommon(counts map[string]int64) (string, bool) {
	keys := make([]string, 0, len(counts))
	for k, c := range counts {
		if c > 0 {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return "", false
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys[0], true
}

// Sum adds up every count in a breakdown.
func Sum(counts map[string]int64) int64 {
	var total int64
	for _, c := range counts {
		total += c
	}
	return total
}
