package receivables

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestClassifyAgingPartitionsEveryDayCount(t *testing.T) {
	seen := make(map[AgingBucketKey]bool)
	for d := -1000; d <= 1000; d++ {
		bucket := ClassifyAging(d)
		switch {
		case d <= 0:
			require.Equal(t, BucketCurrent, bucket.Key, "day %d", d)
		case d <= 30:
			require.Equal(t, BucketDays1To30, bucket.Key, "day %d", d)
		case d <= 60:
			require.Equal(t, BucketDays31To60, bucket.Key, "day %d", d)
		case d <= 90:
			require.Equal(t, BucketDays61To90, bucket.Key, "day %d", d)
		default:
			require.Equal(t, BucketOver90, bucket.Key, "day %d", d)
		}
		seen[bucket.Key] = true
	}
	require.Len(t, seen, 5)
}

func TestClassifyAgingRiskLevelMonotone(t *testing.T) {
	prev := -1
	for _, d := range []int{-5, 0, 1, 30, 31, 60, 61, 90, 91, 400} {
		level := ClassifyAging(d).RiskLevel
		if level < prev {
			t.Fatalf("risk level decreased at %d days: %d < %d", d, level, prev)
		}
		prev = level
	}
	require.Equal(t, 0, ClassifyAging(0).RiskLevel)
	require.Equal(t, 4, ClassifyAging(91).RiskLevel)
}

func TestDaysOverdue(t *testing.T) {
	asOf := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

	due := time.Date(2025, 6, 5, 23, 0, 0, 0, time.UTC)
	require.Equal(t, 10, DaysOverdue(&due, asOf))

	future := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
	require.Equal(t, -5, DaysOverdue(&future, asOf))

	sameDay := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	require.Equal(t, 0, DaysOverdue(&sameDay, asOf))

	require.Equal(t, 0, DaysOverdue(nil, asOf))
	var zero time.Time
	require.Equal(t, 0, DaysOverdue(&zero, asOf))
}

func TestDaysOverdueBucketBoundaries(t *testing.T) {
	asOf := time.Date(2025, 6, 30, 8, 0, 0, 0, time.UTC)

	// Exactly 30 days overdue stays in the 1-30 bucket.
	due30 := asOf.AddDate(0, 0, -30)
	require.Equal(t, BucketDays1To30, ClassifyAging(DaysOverdue(&due30, asOf)).Key)

	// 31 days crosses into the next bucket.
	due31 := asOf.AddDate(0, 0, -31)
	require.Equal(t, BucketDays31To60, ClassifyAging(DaysOverdue(&due31, asOf)).Key)
}
