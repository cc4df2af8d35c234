package receivables

import (
	"strings"
	"time"
)

// PaymentStatus enumerates payment record statuses.
type PaymentStatus string

const (
	StatusPending  PaymentStatus = "pending"
	StatusPaid     PaymentStatus = "paid"
	StatusOverdue  PaymentStatus = "overdue"
	StatusInvoiced PaymentStatus = "invoiced"
	// StatusUnknown marks values the upstream system sent that we do not
	// recognise. Such records still count toward totals but are omitted
	// from status-keyed distributions.
	StatusUnknown PaymentStatus = "unknown"
)

// ParsePaymentStatus normalises a raw status string.
func ParsePaymentStatus(raw string) PaymentStatus {
	switch PaymentStatus(strings.ToLower(strings.TrimSpace(raw))) {
	case StatusPending:
		return StatusPending
	case StatusPaid:
		return StatusPaid
	case StatusOverdue:
		return StatusOverdue
	case StatusInvoiced:
		return StatusInvoiced
	default:
		return StatusUnknown
	}
}

// Label returns the display name used on the dashboard.
func (s PaymentStatus) Label() string {
	switch s {
	case StatusPending:
		return "待收款"
	case StatusPaid:
		return "已收款"
	case StatusOverdue:
		return "已逾期"
	case StatusInvoiced:
		return "已开票"
	default:
		return "未知"
	}
}

// PaymentType enumerates contract-milestone categories.
type PaymentType string

const (
	TypeDeposit    PaymentType = "deposit"
	TypeProgress   PaymentType = "progress"
	TypeDelivery   PaymentType = "delivery"
	TypeAcceptance PaymentType = "acceptance"
	TypeWarranty   PaymentType = "warranty"
	TypeUnknown    PaymentType = "unknown"
)

// ParsePaymentType normalises a raw milestone type string.
func ParsePaymentType(raw string) PaymentType {
	switch PaymentType(strings.ToLower(strings.TrimSpace(raw))) {
	case TypeDeposit:
		return TypeDeposit
	case TypeProgress:
		return TypeProgress
	case TypeDelivery:
		return TypeDelivery
	case TypeAcceptance:
		return TypeAcceptance
	case TypeWarranty:
		return TypeWarranty
	default:
		return TypeUnknown
	}
}

// Label returns the display name used on the dashboard.
func (t PaymentType) Label() string {
	switch t {
	case TypeDeposit:
		return "预付款"
	case TypeProgress:
		return "进度款"
	case TypeDelivery:
		return "发货款"
	case TypeAcceptance:
		return "验收款"
	case TypeWarranty:
		return "质保金"
	default:
		return "未知"
	}
}

// CreditRating is the externally assigned customer credit grade.
type CreditRating string

const (
	RatingA       CreditRating = "A"
	RatingB       CreditRating = "B"
	RatingC       CreditRating = "C"
	RatingD       CreditRating = "D"
	RatingE       CreditRating = "E"
	RatingUnknown CreditRating = ""
)

// ParseCreditRating normalises a raw rating string. Unrecognised or
// missing values map to RatingUnknown, which never escalates a
// collection recommendation on its own.
func ParseCreditRating(raw string) CreditRating {
	switch CreditRating(strings.ToUpper(strings.TrimSpace(raw))) {
	case RatingA:
		return RatingA
	case RatingB:
		return RatingB
	case RatingC:
		return RatingC
	case RatingD:
		return RatingD
	case RatingE:
		return RatingE
	default:
		return RatingUnknown
	}
}

// HighRisk reports whether the rating alone warrants critical handling.
func (r CreditRating) HighRisk() bool {
	return r == RatingD || r == RatingE
}

// PaymentRecord is one receivable installment as supplied by the
// upstream data layer. It is immutable within an analysis pass; fields
// beyond the ones used here are carried for display only.
type PaymentRecord struct {
	ID           string
	CustomerID   string
	CustomerName string
	ProjectName  string
	ContractNo   string

	Amount     float64
	PaidAmount float64

	DueDate  *time.Time
	PaidDate *time.Time

	Status PaymentStatus
	Type   PaymentType
	Rating CreditRating
}

// RecordFlag marks a data-quality issue on an incoming record.
type RecordFlag string

const (
	FlagNegativeAmount RecordFlag = "negative_amount"
	FlagOverpaid       RecordFlag = "paid_exceeds_amount"
	FlagUnknownStatus  RecordFlag = "unknown_status"
	FlagUnknownType    RecordFlag = "unknown_type"
)

// QualityFlags reports data-quality issues without rejecting the
// record; aggregation always proceeds (upstream owns the fix).
func (p PaymentRecord) QualityFlags() []RecordFlag {
	var flags []RecordFlag
	if p.Amount < 0 {
		flags = append(flags, FlagNegativeAmount)
	}
	if p.PaidAmount > p.Amount {
		flags = append(flags, FlagOverpaid)
	}
	if p.Status == StatusUnknown {
		flags = append(flags, FlagUnknownStatus)
	}
	if p.Type == TypeUnknown {
		flags = append(flags, FlagUnknownType)
	}
	return flags
}

// Outstanding returns the uncollected remainder, never negative.
func (p PaymentRecord) Outstanding() float64 {
	rest := p.Amount - p.PaidAmount
	if rest < 0 {
		return 0
	}
	return rest
}

// Invoice is a collaborator-supplied issued invoice. Only its count
// feeds the portfolio statistics; the fields are passed through for
// display.
type Invoice struct {
	ID        string
	InvoiceNo string
	Amount    float64
	IssuedAt  *time.Time
}
