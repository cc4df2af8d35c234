package receivables

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// Dashboard aggregates every derived view the payment-management screen
// renders in one payload.
type Dashboard struct {
	Stats PortfolioStatistics `json:"stats"` // 统计卡片

	StatusDistribution DistributionSeries `json:"statusDistribution"` // 状态分布
	TypeDistribution   DistributionSeries `json:"typeDistribution"`   // 款项类型分布
	AgingDistribution  DistributionSeries `json:"agingDistribution"`  // 账龄分布
	LevelDistribution  DistributionSeries `json:"levelDistribution"`  // 催收级别分布

	Trend     []TrendPoint `json:"trend"`     // 回款趋势
	Reminders []Reminder   `json:"reminders"` // 收款提醒

	SnapshotID  string    `json:"snapshotId"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// RecordAnnotation carries the per-record derived fields used to
// decorate individual rows and cards.
type RecordAnnotation struct {
	ID          string          `json:"id"`
	DaysOverdue int             `json:"daysOverdue"`
	Bucket      AgingBucket     `json:"agingBucket"`
	Level       CollectionLevel `json:"collectionLevel"`
	LevelLabel  string          `json:"collectionLevelLabel"`
	Flags       []RecordFlag    `json:"flags,omitempty"`
}

// Service derives dashboard views from the current snapshot. All
// computation is synchronous and side-effect free; the optional cache
// only memoises results per snapshot hash.
type Service struct {
	store       *SnapshotStore
	thresholds  Thresholds
	cache       *Cache
	logger      *slog.Logger
	trendWindow int
	now         func() time.Time
}

// NewService wires the snapshot store with the escalation thresholds
// and an optional cache.
func NewService(store *SnapshotStore, thresholds Thresholds, cache *Cache, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:       store,
		thresholds:  thresholds,
		cache:       cache,
		logger:      logger,
		trendWindow: DefaultTrendWindowDays,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// WithTrendWindow overrides the trend window length.
func (s *Service) WithTrendWindow(days int) *Service {
	if days > 0 {
		s.trendWindow = days
	}
	return s
}

// WithNow overrides the service clock for testing.
func (s *Service) WithNow(fn func() time.Time) *Service {
	if fn != nil {
		s.now = fn
	}
	return s
}

// Thresholds exposes the configured escalation cutoffs.
func (s *Service) Thresholds() Thresholds {
	return s.thresholds
}

// Ingest stores a fresh snapshot, logs data-quality issues without
// rejecting any record, and invalidates cached results.
func (s *Service) Ingest(ctx context.Context, snap Snapshot) (Snapshot, error) {
	for _, rec := range snap.Payments {
		if flags := rec.QualityFlags(); len(flags) > 0 {
			s.logger.Warn("payment record quality issue",
				slog.String("record_id", rec.ID),
				slog.Any("flags", flags),
			)
		}
	}
	stored := s.store.Replace(snap)
	if err := s.cache.SaveSnapshot(ctx, stored); err != nil {
		s.logger.Warn("snapshot persist", slog.Any("error", err))
	}
	if err := s.cache.Bump(ctx); err != nil {
		s.logger.Warn("cache bump", slog.Any("error", err))
	}
	s.logger.Info("snapshot ingested",
		slog.String("snapshot_id", stored.ID),
		slog.Int("payments", len(stored.Payments)),
		slog.Int("invoices", len(stored.Invoices)),
		slog.Int("reminders", len(stored.Reminders)),
	)
	return stored, nil
}

// RestoreSnapshot hydrates the store from the snapshot persisted in
// Redis. Worker processes call it before computing, since they never
// receive snapshot pushes themselves. A missing snapshot is not an
// error; the store simply stays empty.
func (s *Service) RestoreSnapshot(ctx context.Context) error {
	snap, ok, err := s.cache.LoadSnapshot(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	s.store.Replace(snap)
	return nil
}

// Dashboard assembles the full dashboard payload for the current
// snapshot, serving from cache when an identical snapshot was already
// computed the same day.
func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	snap := s.store.Current()
	asOf := s.now()

	loader := func(ctx context.Context) (interface{}, error) {
		return s.compute(ctx, snap, asOf)
	}

	if s.cache == nil {
		value, err := loader(ctx)
		if err != nil {
			return Dashboard{}, err
		}
		return value.(Dashboard), nil
	}

	keyBase := keyDashboard(snap.Hash(), asOf.Format("2006-01-02"))
	key, err := s.cache.BuildKey(ctx, keyBase)
	if err != nil {
		return Dashboard{}, err
	}
	var dashboard Dashboard
	if err := s.cache.FetchJSON(ctx, key, &dashboard, loader); err != nil {
		return Dashboard{}, err
	}
	return dashboard, nil
}

func (s *Service) compute(ctx context.Context, snap Snapshot, asOf time.Time) (Dashboard, error) {
	dashboard := Dashboard{
		SnapshotID:  snap.ID,
		GeneratedAt: asOf,
	}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		stats := Aggregate(snap.Payments)
		stats.InvoiceCount = len(snap.Invoices)
		stats.ReminderCount = len(snap.Reminders)
		dashboard.Stats = stats
		return nil
	})
	g.Go(func() error {
		dashboard.StatusDistribution = DistributionByStatus(snap.Payments)
		dashboard.TypeDistribution = DistributionByType(snap.Payments)
		return nil
	})
	g.Go(func() error {
		dashboard.AgingDistribution = DistributionByAging(snap.Payments, asOf)
		dashboard.LevelDistribution = s.thresholds.DistributionByCollectionLevel(snap.Payments, asOf)
		return nil
	})
	g.Go(func() error {
		dashboard.Trend = BuildCollectionTrend(snap.Payments, s.trendWindow, asOf)
		dashboard.Reminders = SortReminders(snap.Reminders)
		return nil
	})
	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}
	return dashboard, nil
}

// DistributionSet groups the four chart series served together on the
// distributions endpoint.
type DistributionSet struct {
	Status DistributionSeries `json:"statusDistribution"`
	Type   DistributionSeries `json:"typeDistribution"`
	Aging  DistributionSeries `json:"agingDistribution"`
	Level  DistributionSeries `json:"levelDistribution"`
}

// Distributions computes all four chart series for the current snapshot.
func (s *Service) Distributions(ctx context.Context) DistributionSet {
	snap := s.store.Current()
	asOf := s.now()
	return DistributionSet{
		Status: DistributionByStatus(snap.Payments),
		Type:   DistributionByType(snap.Payments),
		Aging:  DistributionByAging(snap.Payments, asOf),
		Level:  s.thresholds.DistributionByCollectionLevel(snap.Payments, asOf),
	}
}

// Statistics computes the portfolio summary for the current snapshot.
func (s *Service) Statistics(ctx context.Context) PortfolioStatistics {
	snap := s.store.Current()
	stats := Aggregate(snap.Payments)
	stats.InvoiceCount = len(snap.Invoices)
	stats.ReminderCount = len(snap.Reminders)
	return stats
}

// Trend computes the collection trend for the current snapshot.
func (s *Service) Trend(ctx context.Context, windowDays int) []TrendPoint {
	if windowDays <= 0 {
		windowDays = s.trendWindow
	}
	return BuildCollectionTrend(s.store.Current().Payments, windowDays, s.now())
}

// Reminders returns the current reminders sorted for display.
func (s *Service) Reminders(ctx context.Context) []Reminder {
	return SortReminders(s.store.Current().Reminders)
}

// AnnotateRecords derives the aging bucket and collection level for
// every record in the current snapshot, in input order.
func (s *Service) AnnotateRecords(ctx context.Context) []RecordAnnotation {
	snap := s.store.Current()
	asOf := s.now()
	annotations := make([]RecordAnnotation, 0, len(snap.Payments))
	for _, rec := range snap.Payments {
		days := DaysOverdue(rec.DueDate, asOf)
		level := s.thresholds.Recommend(days, rec.Amount, rec.Rating)
		annotations = append(annotations, RecordAnnotation{
			ID:          rec.ID,
			DaysOverdue: days,
			Bucket:      ClassifyAging(days),
			Level:       level,
			LevelLabel:  level.Label(),
			Flags:       rec.QualityFlags(),
		})
	}
	return annotations
}
