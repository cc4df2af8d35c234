package receivables

import "time"

// DefaultTrendWindowDays is the charting window used by the dashboard.
const DefaultTrendWindowDays = 30

// TrendPoint is one calendar day of collected amounts.
type TrendPoint struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
	Count  int     `json:"count"`
}

// BuildCollectionTrend produces exactly windowDays daily points ending
// at referenceDate inclusive, oldest first. Days without collections
// still appear zero-filled; charts rely on the series being dense.
func BuildCollectionTrend(records []PaymentRecord, windowDays int, referenceDate time.Time) []TrendPoint {
	if windowDays <= 0 {
		windowDays = DefaultTrendWindowDays
	}
	end := truncateToDay(referenceDate)
	start := end.AddDate(0, 0, -(windowDays - 1))

	byDay := make(map[string]*TrendPoint, windowDays)
	points := make([]TrendPoint, windowDays)
	for i := 0; i < windowDays; i++ {
		day := start.AddDate(0, 0, i)
		points[i] = TrendPoint{Date: day.Format("2006-01-02")}
		byDay[points[i].Date] = &points[i]
	}

	for _, rec := range records {
		if rec.Status != StatusPaid || rec.PaidDate == nil || rec.PaidDate.IsZero() {
			continue
		}
		key := truncateToDay(*rec.PaidDate).Format("2006-01-02")
		if point, ok := byDay[key]; ok {
			point.Amount += rec.Amount
			point.Count++
		}
	}
	return points
}
