package receivables

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, func()) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewCache(client, time.Minute)
	svc := NewService(NewSnapshotStore(), DefaultThresholds(), cache, nil)
	return svc, func() {
		_ = client.Close()
		mr.Close()
	}
}

func testSnapshot(asOf time.Time) Snapshot {
	return Snapshot{
		Payments: []PaymentRecord{
			{ID: "p1", Amount: 30000, Status: StatusPaid, Type: TypeDeposit, PaidDate: datePtr(asOf.AddDate(0, 0, -3))},
			{ID: "p2", Amount: 40000, Status: StatusPending, Type: TypeProgress, DueDate: datePtr(asOf.AddDate(0, 0, 15)), Rating: RatingB},
			{ID: "p3", Amount: 30000, Status: StatusOverdue, Type: TypeDelivery, DueDate: datePtr(asOf.AddDate(0, 0, -40)), Rating: RatingC},
		},
		Invoices:  []Invoice{{ID: "inv1", InvoiceNo: "FP-001"}},
		Reminders: []Reminder{{ID: "r1", Level: ReminderWarning, IsOverdue: true, OverdueDays: 40}},
	}
}

func TestServiceDashboardAssemblesAllViews(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()

	asOf := time.Date(2025, 6, 30, 9, 0, 0, 0, time.UTC)
	svc.WithNow(func() time.Time { return asOf })

	ctx := context.Background()
	snap, err := svc.Ingest(ctx, testSnapshot(asOf))
	require.NoError(t, err)
	require.NotEmpty(t, snap.ID)

	dashboard, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	require.Equal(t, snap.ID, dashboard.SnapshotID)

	require.InDelta(t, 0.30, dashboard.Stats.CollectionRate, 1e-9)
	require.Equal(t, 1, dashboard.Stats.InvoiceCount)
	require.Equal(t, 1, dashboard.Stats.ReminderCount)

	require.Len(t, dashboard.StatusDistribution, 3)
	require.Len(t, dashboard.TypeDistribution, 3)
	require.Len(t, dashboard.AgingDistribution, 5)
	require.Len(t, dashboard.Trend, DefaultTrendWindowDays)
	require.Len(t, dashboard.Reminders, 1)
	require.Equal(t, "逾期40天", dashboard.Reminders[0].DisplayText)

	// p3 is 40 days overdue and 30000 -> warning by days; p2 is 40000 -> warning by amount.
	require.Equal(t, string(LevelWarning), dashboard.LevelDistribution[0].Key)
	require.EqualValues(t, 2, dashboard.LevelDistribution[0].Value)
}

func TestServiceDashboardCachesPerSnapshot(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()

	base := time.Date(2025, 6, 30, 9, 0, 0, 0, time.UTC)
	now := base
	svc.WithNow(func() time.Time { return now })

	ctx := context.Background()
	_, err := svc.Ingest(ctx, testSnapshot(base))
	require.NoError(t, err)

	first, err := svc.Dashboard(ctx)
	require.NoError(t, err)

	// Advancing the clock within the same day must serve the cached
	// payload, so GeneratedAt stays at the first computation.
	now = base.Add(2 * time.Hour)
	second, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	require.True(t, second.GeneratedAt.Equal(first.GeneratedAt))

	// A new snapshot changes the content hash and forces a recompute.
	snap := testSnapshot(base)
	snap.Payments[0].Amount = 99999
	_, err = svc.Ingest(ctx, snap)
	require.NoError(t, err)

	third, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	require.False(t, third.GeneratedAt.Equal(first.GeneratedAt))
	require.InDelta(t, 99999+40000+30000, third.Stats.TotalReceivables, 1e-9)
}

func TestServiceRestoresPersistedSnapshot(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = client.Close() }()
	cache := NewCache(client, time.Minute)

	asOf := time.Date(2025, 6, 30, 9, 0, 0, 0, time.UTC)
	first := NewService(NewSnapshotStore(), DefaultThresholds(), cache, nil)
	first.WithNow(func() time.Time { return asOf })

	ctx := context.Background()
	stored, err := first.Ingest(ctx, testSnapshot(asOf))
	require.NoError(t, err)

	// A second service with an empty store, as a worker process would
	// start, loads the same snapshot back through Redis.
	second := NewService(NewSnapshotStore(), DefaultThresholds(), cache, nil)
	require.NoError(t, second.RestoreSnapshot(ctx))

	restored := second.store.Current()
	require.Equal(t, stored.ID, restored.ID)
	require.Equal(t, stored.Hash(), restored.Hash())
	require.Len(t, restored.Payments, 3)

	// Without a cache restoring is a no-op.
	bare := NewService(NewSnapshotStore(), DefaultThresholds(), nil, nil)
	require.NoError(t, bare.RestoreSnapshot(ctx))
	require.Empty(t, bare.store.Current().Payments)
}

func TestServiceWorksWithoutCache(t *testing.T) {
	svc := NewService(NewSnapshotStore(), DefaultThresholds(), nil, nil)
	ctx := context.Background()

	dashboard, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	require.Zero(t, dashboard.Stats.TotalReceivables)
	require.Len(t, dashboard.Trend, DefaultTrendWindowDays)
	require.Empty(t, dashboard.LevelDistribution)
}

func TestServiceAnnotateRecords(t *testing.T) {
	svc := NewService(NewSnapshotStore(), DefaultThresholds(), nil, nil)
	asOf := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	svc.WithNow(func() time.Time { return asOf })

	ctx := context.Background()
	_, err := svc.Ingest(ctx, Snapshot{Payments: []PaymentRecord{
		{ID: "p1", Amount: 150000, Status: StatusOverdue, DueDate: datePtr(asOf.AddDate(0, 0, -5))},
		{ID: "p2", Amount: 500, PaidAmount: 600, Status: StatusPending},
	}})
	require.NoError(t, err)

	annotations := svc.AnnotateRecords(ctx)
	require.Len(t, annotations, 2)

	require.Equal(t, 5, annotations[0].DaysOverdue)
	require.Equal(t, BucketDays1To30, annotations[0].Bucket.Key)
	require.Equal(t, LevelCritical, annotations[0].Level)

	require.Equal(t, LevelNormal, annotations[1].Level)
	require.Contains(t, annotations[1].Flags, FlagOverpaid)
}

func TestSnapshotHashTracksContent(t *testing.T) {
	base := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	a := testSnapshot(base)
	b := testSnapshot(base)
	require.Equal(t, a.Hash(), b.Hash())

	b.Payments[1].Rating = RatingE
	require.NotEqual(t, a.Hash(), b.Hash())
}
