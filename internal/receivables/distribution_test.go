package receivables

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func datePtr(t time.Time) *time.Time { return &t }

func TestDistributionByStatusOmitsUnknown(t *testing.T) {
	records := []PaymentRecord{
		{ID: "p1", Status: StatusPending},
		{ID: "p2", Status: StatusPending},
		{ID: "p3", Status: StatusPaid},
		{ID: "p4", Status: StatusUnknown},
	}
	series := DistributionByStatus(records)
	require.Len(t, series, 2)
	require.Equal(t, string(StatusPending), series[0].Key)
	require.EqualValues(t, 2, series[0].Value)
	require.Equal(t, string(StatusPaid), series[1].Key)
	require.EqualValues(t, 1, series[1].Value)
}

func TestDistributionByTypeCountsMilestones(t *testing.T) {
	records := []PaymentRecord{
		{ID: "p1", Type: TypeDeposit},
		{ID: "p2", Type: TypeWarranty},
		{ID: "p3", Type: TypeWarranty},
		{ID: "p4", Type: TypeUnknown},
	}
	series := DistributionByType(records)
	require.Len(t, series, 2)
	require.Equal(t, string(TypeDeposit), series[0].Key)
	require.Equal(t, string(TypeWarranty), series[1].Key)
	require.EqualValues(t, 2, series[1].Value)
}

func TestDistributionByAgingSumsAmounts(t *testing.T) {
	asOf := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	records := []PaymentRecord{
		{ID: "p1", Amount: 1000, Status: StatusOverdue, DueDate: datePtr(asOf.AddDate(0, 0, -30))},
		{ID: "p2", Amount: 500, Status: StatusOverdue, DueDate: datePtr(asOf.AddDate(0, 0, -31))},
		{ID: "p3", Amount: 200, Status: StatusPending, DueDate: datePtr(asOf.AddDate(0, 0, 10))},
		{ID: "p4", Amount: 9999, Status: StatusPaid, DueDate: datePtr(asOf.AddDate(0, 0, -400))},
		{ID: "p5", Amount: 300, Status: StatusPending}, // no due date -> current
	}
	series := DistributionByAging(records, asOf)
	require.Len(t, series, 5)

	byKey := make(map[string]DistributionItem, len(series))
	for _, item := range series {
		byKey[item.Key] = item
	}
	require.InDelta(t, 500, byKey[string(BucketCurrent)].Value, 1e-9)
	require.InDelta(t, 1000, byKey[string(BucketDays1To30)].Value, 1e-9)
	require.InDelta(t, 500, byKey[string(BucketDays31To60)].Value, 1e-9)
	// Paid records never contribute to aging.
	require.Zero(t, byKey[string(BucketOver90)].Value)
	require.Equal(t, 4, byKey[string(BucketOver90)].RiskLevel)
}

func TestDistributionByCollectionLevelSortedAndSparse(t *testing.T) {
	asOf := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	th := DefaultThresholds()
	records := []PaymentRecord{
		{ID: "p1", Amount: 150000, Status: StatusOverdue, DueDate: datePtr(asOf.AddDate(0, 0, -5))},
		{ID: "p2", Amount: 100, Status: StatusPending, DueDate: datePtr(asOf.AddDate(0, 0, 20))},
		{ID: "p3", Amount: 50, Status: StatusPending},
		{ID: "p4", Amount: 999999, Status: StatusPaid},
	}
	series := th.DistributionByCollectionLevel(records, asOf)
	require.Len(t, series, 2)
	require.Equal(t, string(LevelCritical), series[0].Key)
	require.EqualValues(t, 1, series[0].Value)
	require.Equal(t, string(LevelNormal), series[1].Key)
	require.EqualValues(t, 2, series[1].Value)
}

func TestDistributionsEmptyInput(t *testing.T) {
	asOf := time.Now()
	require.Empty(t, DistributionByStatus(nil))
	require.Empty(t, DistributionByType(nil))
	require.Empty(t, DistributionByAging(nil, asOf))
	require.Empty(t, DefaultThresholds().DistributionByCollectionLevel(nil, asOf))

	allPaid := []PaymentRecord{{ID: "p1", Status: StatusPaid, Amount: 10}}
	require.Empty(t, DefaultThresholds().DistributionByCollectionLevel(allPaid, asOf))
	require.Empty(t, DistributionByAging(allPaid, asOf))
}
