package receivables

import (
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// Snapshot is one immutable capture of the upstream receivables data.
// Derived views are recomputed from the current snapshot on every
// request; nothing here is persisted.
type Snapshot struct {
	ID        string
	Payments  []PaymentRecord
	Invoices  []Invoice
	Reminders []Reminder
	FetchedAt time.Time
}

// Hash returns a content digest over every field that influences the
// derived views. Cache keys must include it: recommendations and DSO
// are sensitive to every record, not just the one displayed.
func (s Snapshot) Hash() string {
	digest := xxhash.New()
	for _, rec := range s.Payments {
		writeField(digest, rec.ID)
		writeField(digest, string(rec.Status))
		writeField(digest, string(rec.Type))
		writeField(digest, string(rec.Rating))
		writeFloat(digest, rec.Amount)
		writeFloat(digest, rec.PaidAmount)
		writeDate(digest, rec.DueDate)
		writeDate(digest, rec.PaidDate)
	}
	for _, inv := range s.Invoices {
		writeField(digest, inv.ID)
	}
	for _, rem := range s.Reminders {
		writeField(digest, rem.ID)
		writeField(digest, string(rem.Level))
		writeField(digest, strconv.Itoa(rem.OverdueDays))
		writeField(digest, strconv.Itoa(rem.DaysUntilDue))
	}
	return strconv.FormatUint(digest.Sum64(), 16)
}

func writeField(digest *xxhash.Digest, s string) {
	_, _ = digest.WriteString(s)
	_, _ = digest.WriteString("|")
}

func writeFloat(digest *xxhash.Digest, f float64) {
	writeField(digest, strconv.FormatFloat(f, 'f', -1, 64))
}

func writeDate(digest *xxhash.Digest, t *time.Time) {
	if t == nil || t.IsZero() {
		writeField(digest, "-")
		return
	}
	writeField(digest, t.UTC().Format("2006-01-02"))
}

// SnapshotStore holds the latest snapshot for read-only sharing across
// concurrent readers.
type SnapshotStore struct {
	mu      sync.RWMutex
	current Snapshot
}

// NewSnapshotStore returns an empty store.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

// Replace swaps in a new snapshot, assigning an ID and fetch time when
// the caller left them empty.
func (st *SnapshotStore) Replace(snap Snapshot) Snapshot {
	if snap.ID == "" {
		snap.ID = uuid.NewString()
	}
	if snap.FetchedAt.IsZero() {
		snap.FetchedAt = time.Now().UTC()
	}
	st.mu.Lock()
	st.current = snap
	st.mu.Unlock()
	return snap
}

// Current returns the latest snapshot.
func (st *SnapshotStore) Current() Snapshot {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.current
}
