package receivables

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSortRemindersBySeverityThenDueness(t *testing.T) {
	items := []Reminder{
		{ID: "r1", Level: ReminderNormal, DaysUntilDue: 3},
		{ID: "r2", Level: ReminderUrgent, IsOverdue: true, OverdueDays: 10},
		{ID: "r3", Level: ReminderUrgent, IsOverdue: true, OverdueDays: 45},
		{ID: "r4", Level: ReminderWarning, DaysUntilDue: 2},
		{ID: "r5", Level: ReminderUrgent, DaysUntilDue: 1},
	}
	sorted := SortReminders(items)

	ids := make([]string, len(sorted))
	for i, r := range sorted {
		ids[i] = r.ID
	}
	require.Equal(t, []string{"r3", "r2", "r5", "r4", "r1"}, ids)

	// Input order is preserved.
	require.Equal(t, "r1", items[0].ID)
}

func TestReminderDisplayText(t *testing.T) {
	overdue := Reminder{IsOverdue: true, OverdueDays: 12}
	require.Equal(t, "逾期12天", ReminderDisplayText(overdue))

	upcoming := Reminder{DaysUntilDue: 5}
	require.Equal(t, "还有5天到期", ReminderDisplayText(upcoming))
}

func TestSortRemindersFillsDisplayText(t *testing.T) {
	sorted := SortReminders([]Reminder{{ID: "r1", IsOverdue: true, OverdueDays: 1, Level: ReminderWarning}})
	require.Len(t, sorted, 1)
	require.Equal(t, "逾期1天", sorted[0].DisplayText)
}
