package receivables

// PortfolioStatistics summarises a receivables snapshot.
type PortfolioStatistics struct {
	TotalReceivables float64 `json:"totalReceivables"`
	OverdueAmount    float64 `json:"overdueAmount"`
	PaidAmount       float64 `json:"paidAmount"`
	PendingAmount    float64 `json:"pendingAmount"`

	// CollectionRate is the raw paid/total ratio in [0,1]; the
	// presentation layer formats it as a percentage.
	CollectionRate float64 `json:"collectionRate"`

	// DSO estimates days-sales-outstanding as
	// (total - paid) / (total / 12). The monthly revenue term is an
	// approximation from receivables, not a real revenue feed.
	DSO float64 `json:"dso"`

	InvoiceCount  int `json:"invoiceCount"`
	ReminderCount int `json:"reminderCount"`
}

// Aggregate reduces a record set into portfolio statistics. Empty
// input yields the zero value, never NaN.
func Aggregate(records []PaymentRecord) PortfolioStatistics {
	var stats PortfolioStatistics
	if len(records) == 0 {
		return stats
	}
	for _, rec := range records {
		stats.TotalReceivables += rec.Amount
		switch rec.Status {
		case StatusOverdue:
			stats.OverdueAmount += rec.Amount
		case StatusPaid:
			stats.PaidAmount += rec.Amount
		case StatusPending:
			stats.PendingAmount += rec.Amount
		}
	}
	if stats.TotalReceivables > 0 {
		stats.CollectionRate = stats.PaidAmount / stats.TotalReceivables
		monthlyRevenue := stats.TotalReceivables / 12
		stats.DSO = (stats.TotalReceivables - stats.PaidAmount) / monthlyRevenue
	}
	return stats
}
