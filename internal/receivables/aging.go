package receivables

import "time"

// AgingBucketKey identifies one of the five aging buckets.
type AgingBucketKey string

const (
	BucketCurrent    AgingBucketKey = "current"
	BucketDays1To30  AgingBucketKey = "days_1_30"
	BucketDays31To60 AgingBucketKey = "days_31_60"
	BucketDays61To90 AgingBucketKey = "days_61_90"
	BucketOver90     AgingBucketKey = "days_over_90"
)

// AgingBucket names a range of days past due together with its risk
// weight. RiskLevel grows strictly with the bucket age.
type AgingBucket struct {
	Key       AgingBucketKey `json:"key"`
	Label     string         `json:"label"`
	RiskLevel int            `json:"riskLevel"`
}

// agingBuckets lists the buckets in ascending risk order.
var agingBuckets = []AgingBucket{
	{Key: BucketCurrent, Label: "未逾期", RiskLevel: 0},
	{Key: BucketDays1To30, Label: "逾期1-30天", RiskLevel: 1},
	{Key: BucketDays31To60, Label: "逾期31-60天", RiskLevel: 2},
	{Key: BucketDays61To90, Label: "逾期61-90天", RiskLevel: 3},
	{Key: BucketOver90, Label: "逾期90天以上", RiskLevel: 4},
}

// AgingBuckets returns the five buckets in ascending risk order.
func AgingBuckets() []AgingBucket {
	out := make([]AgingBucket, len(agingBuckets))
	copy(out, agingBuckets)
	return out
}

// ClassifyAging maps a days-overdue count onto exactly one bucket.
// Boundaries are inclusive: (-inf,0] current, [1,30], [31,60], [61,90],
// [91,inf).
func ClassifyAging(daysOverdue int) AgingBucket {
	switch {
	case daysOverdue <= 0:
		return agingBuckets[0]
	case daysOverdue <= 30:
		return agingBuckets[1]
	case daysOverdue <= 60:
		return agingBuckets[2]
	case daysOverdue <= 90:
		return agingBuckets[3]
	default:
		return agingBuckets[4]
	}
}

// DaysOverdue computes whole calendar days past the due date as of the
// reference time. A missing due date yields 0, so the record lands in
// the current bucket rather than being excluded.
func DaysOverdue(dueDate *time.Time, asOf time.Time) int {
	if dueDate == nil || dueDate.IsZero() {
		return 0
	}
	due := truncateToDay(*dueDate)
	ref := truncateToDay(asOf)
	return int(ref.Sub(due).Hours() / 24)
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
