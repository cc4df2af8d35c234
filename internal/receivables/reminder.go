package receivables

import (
	"fmt"
	"sort"
)

// ReminderLevel is the severity assigned upstream to a payment
// reminder. It is supplied by the collaborator, never recomputed here.
type ReminderLevel string

const (
	ReminderNormal  ReminderLevel = "normal"
	ReminderWarning ReminderLevel = "warning"
	ReminderUrgent  ReminderLevel = "urgent"
)

// Severity orders reminder levels: urgent > warning > normal.
func (l ReminderLevel) Severity() int {
	switch l {
	case ReminderUrgent:
		return 2
	case ReminderWarning:
		return 1
	default:
		return 0
	}
}

// Reminder is a collaborator-supplied collection reminder candidate.
type Reminder struct {
	ID           string        `json:"id"`
	CustomerName string        `json:"customerName"`
	ContractNo   string        `json:"contractNo"`
	Amount       float64       `json:"amount"`
	DaysUntilDue int           `json:"daysUntilDue"`
	OverdueDays  int           `json:"overdueDays"`
	IsOverdue    bool          `json:"isOverdue"`
	Level        ReminderLevel `json:"reminderLevel"`
	DisplayText  string        `json:"displayText,omitempty"`
}

// SortReminders orders reminders for display: highest severity first,
// then overdue before upcoming, longest overdue first, and soonest due
// first among upcoming items. The input slice is not mutated.
func SortReminders(items []Reminder) []Reminder {
	sorted := make([]Reminder, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Level.Severity() != b.Level.Severity() {
			return a.Level.Severity() > b.Level.Severity()
		}
		if a.IsOverdue != b.IsOverdue {
			return a.IsOverdue
		}
		if a.IsOverdue {
			return a.OverdueDays > b.OverdueDays
		}
		return a.DaysUntilDue < b.DaysUntilDue
	})
	for i := range sorted {
		sorted[i].DisplayText = ReminderDisplayText(sorted[i])
	}
	return sorted
}

// ReminderDisplayText renders the due-state label shown on reminder
// cards.
func ReminderDisplayText(r Reminder) string {
	if r.IsOverdue {
		return fmt.Sprintf("逾期%d天", r.OverdueDays)
	}
	return fmt.Sprintf("还有%d天到期", r.DaysUntilDue)
}
