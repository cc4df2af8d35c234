package receivables

import "time"

// DistributionItem is one labelled slice of a distribution series,
// shaped for chart consumption.
type DistributionItem struct {
	Key       string  `json:"key"`
	Name      string  `json:"name"`
	Value     float64 `json:"value"`
	Color     string  `json:"color,omitempty"`
	RiskLevel int     `json:"riskLevel,omitempty"`
}

// DistributionSeries is a named grouping of a record set along one
// dimension.
type DistributionSeries []DistributionItem

var statusColors = map[PaymentStatus]string{
	StatusPending:  "#1890ff",
	StatusPaid:     "#52c41a",
	StatusOverdue:  "#f5222d",
	StatusInvoiced: "#722ed1",
}

// DistributionByStatus counts records per status. Unknown statuses are
// counted in totals elsewhere but omitted here.
func DistributionByStatus(records []PaymentRecord) DistributionSeries {
	counts := make(map[PaymentStatus]int, 4)
	for _, rec := range records {
		if rec.Status == StatusUnknown {
			continue
		}
		counts[rec.Status]++
	}
	series := make(DistributionSeries, 0, len(counts))
	for _, status := range []PaymentStatus{StatusPending, StatusPaid, StatusOverdue, StatusInvoiced} {
		if n, ok := counts[status]; ok {
			series = append(series, DistributionItem{
				Key:   string(status),
				Name:  status.Label(),
				Value: float64(n),
				Color: statusColors[status],
			})
		}
	}
	return series
}

// DistributionByType counts records per contract-milestone type.
func DistributionByType(records []PaymentRecord) DistributionSeries {
	counts := make(map[PaymentType]int, 5)
	for _, rec := range records {
		if rec.Type == TypeUnknown {
			continue
		}
		counts[rec.Type]++
	}
	series := make(DistributionSeries, 0, len(counts))
	for _, typ := range []PaymentType{TypeDeposit, TypeProgress, TypeDelivery, TypeAcceptance, TypeWarranty} {
		if n, ok := counts[typ]; ok {
			series = append(series, DistributionItem{
				Key:   string(typ),
				Name:  typ.Label(),
				Value: float64(n),
			})
		}
	}
	return series
}

var bucketColors = map[AgingBucketKey]string{
	BucketCurrent:    "#52c41a",
	BucketDays1To30:  "#faad14",
	BucketDays31To60: "#fa8c16",
	BucketDays61To90: "#fa541c",
	BucketOver90:     "#f5222d",
}

// DistributionByAging sums outstanding amounts per aging bucket for
// records that are not fully paid. When no record participates the
// series is empty; otherwise all five buckets appear so the aging
// chart axis stays stable.
func DistributionByAging(records []PaymentRecord, asOf time.Time) DistributionSeries {
	amounts := make(map[AgingBucketKey]float64, 5)
	unpaid := 0
	for _, rec := range records {
		if rec.Status == StatusPaid {
			continue
		}
		unpaid++
		days := DaysOverdue(rec.DueDate, asOf)
		if days < 0 {
			days = 0
		}
		amounts[ClassifyAging(days).Key] += rec.Amount
	}
	if unpaid == 0 {
		return DistributionSeries{}
	}
	series := make(DistributionSeries, 0, len(agingBuckets))
	for _, bucket := range agingBuckets {
		series = append(series, DistributionItem{
			Key:       string(bucket.Key),
			Name:      bucket.Label,
			Value:     amounts[bucket.Key],
			Color:     bucketColors[bucket.Key],
			RiskLevel: bucket.RiskLevel,
		})
	}
	return series
}

// DistributionByCollectionLevel counts unpaid records per recommended
// collection level, most severe first. Levels without records are
// omitted rather than zero-filled.
func (t Thresholds) DistributionByCollectionLevel(records []PaymentRecord, asOf time.Time) DistributionSeries {
	counts := make(map[CollectionLevel]int, 4)
	for _, rec := range records {
		if rec.Status == StatusPaid {
			continue
		}
		days := DaysOverdue(rec.DueDate, asOf)
		counts[t.Recommend(days, rec.Amount, rec.Rating)]++
	}
	series := make(DistributionSeries, 0, len(counts))
	for _, level := range collectionLevelsDesc {
		if n, ok := counts[level]; ok {
			series = append(series, DistributionItem{
				Key:   string(level),
				Name:  level.Label(),
				Value: float64(n),
				Color: level.Color(),
			})
		}
	}
	return series
}
