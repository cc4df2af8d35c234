package receivables

// CollectionLevel is the prioritised collection-action severity.
type CollectionLevel string

const (
	LevelNormal   CollectionLevel = "normal"
	LevelWarning  CollectionLevel = "warning"
	LevelUrgent   CollectionLevel = "urgent"
	LevelCritical CollectionLevel = "critical"
)

// collectionLevelsDesc lists the levels from most to least severe.
var collectionLevelsDesc = []CollectionLevel{LevelCritical, LevelUrgent, LevelWarning, LevelNormal}

// Severity orders levels: critical > urgent > warning > normal.
func (l CollectionLevel) Severity() int {
	switch l {
	case LevelCritical:
		return 3
	case LevelUrgent:
		return 2
	case LevelWarning:
		return 1
	default:
		return 0
	}
}

// Label returns the display name used on the dashboard.
func (l CollectionLevel) Label() string {
	switch l {
	case LevelCritical:
		return "紧急催收"
	case LevelUrgent:
		return "加急催收"
	case LevelWarning:
		return "催收预警"
	default:
		return "正常跟进"
	}
}

// Color returns the chart colour associated with the level.
func (l CollectionLevel) Color() string {
	switch l {
	case LevelCritical:
		return "#f5222d"
	case LevelUrgent:
		return "#fa8c16"
	case LevelWarning:
		return "#faad14"
	default:
		return "#52c41a"
	}
}

// Thresholds holds the collection escalation cutoffs. The struct is
// treated as immutable; deployments override the amounts via
// configuration instead of editing code.
type Thresholds struct {
	CriticalDays   int
	CriticalAmount float64
	UrgentDays     int
	UrgentAmount   float64
	WarningDays    int
	WarningAmount  float64
}

// DefaultThresholds returns the stock escalation cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		CriticalDays:   90,
		CriticalAmount: 100000,
		UrgentDays:     60,
		UrgentAmount:   50000,
		WarningDays:    30,
		WarningAmount:  20000,
	}
}

// Recommend derives the collection level for a single receivable from
// its days overdue, outstanding amount and the customer's credit
// rating. Rules are checked from most to least severe and any single
// signal crossing its cutoff escalates; the signals are never averaged.
// Unknown ratings never trigger the rating branch.
func (t Thresholds) Recommend(daysOverdue int, amount float64, rating CreditRating) CollectionLevel {
	switch {
	case daysOverdue >= t.CriticalDays || amount >= t.CriticalAmount || rating.HighRisk():
		return LevelCritical
	case daysOverdue >= t.UrgentDays || amount >= t.UrgentAmount:
		return LevelUrgent
	case daysOverdue >= t.WarningDays || amount >= t.WarningAmount:
		return LevelWarning
	default:
		return LevelNormal
	}
}
