package sale

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status is the payment state of a sale. Values are the backend's wire values.
type Status string

const (
	StatusPaid   Status = "Khaless"
	StatusCredit Status = "Crédit"
)

// DateLayout is the minute-resolution timestamp format the backend stores.
const DateLayout = "2006-01-02T15:04"

func (s Status) Valid() bool {
	return s == StatusPaid || s == StatusCredit
}

// Label is the French display name.
func (s Status) Label() string {
	switch s {
	case StatusPaid:
		return "Payé"
	case StatusCredit:
		return "Crédit"
	default:
		return string(s)
	}
}

// ParseStatus accepts the wire values as well as the English names, case-insensitively.
func ParseStatus(v string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "khaless", "paid", "payé", "paye":
		return StatusPaid, nil
	case "crédit", "credit":
		return StatusCredit, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, v)
	}
}

// LineItem is one product/quantity pair. LineTotal always equals
// Quantity * UnitPrice once a reducer has returned.
type LineItem struct {
	ProductID   int64           `json:"product_id,omitempty"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

func newLineItem() LineItem {
	return LineItem{
		Quantity:  1,
		UnitPrice: decimal.Zero,
		LineTotal: decimal.Zero,
	}
}

// Order is the composed sale before it is split into per-line writes.
type Order struct {
	ClientName  string          `json:"client_name"`
	Status      Status          `json:"status"`
	Date        time.Time       `json:"date"`
	Items       []LineItem      `json:"items"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// Phase is the submission lifecycle of a form.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseValidating Phase = "validating"
	PhaseSubmitting Phase = "submitting"
	PhaseSuccess    Phase = "success"
	PhaseFailed     Phase = "failed"
)

// FormState is the whole observable state of one sale form. It is a value:
// reducers return a new FormState and never modify their receiver.
type FormState struct {
	Order      Order  `json:"order"`
	Phase      Phase  `json:"phase"`
	Submitting bool   `json:"submitting"`
	Error      string `json:"error,omitempty"`
	Closed     bool   `json:"closed"`
}

// NewFormState returns the blank state a freshly opened form starts from.
func NewFormState(now time.Time) FormState {
	return FormState{
		Order: Order{
			Status:      StatusPaid,
			Date:        now.Truncate(time.Minute),
			Items:       []LineItem{},
			TotalAmount: decimal.Zero,
		},
		Phase: PhaseIdle,
	}
}

// Field names the editable parts of a line.
type Field int

const (
	FieldProduct Field = iota
	FieldQuantity
)

func (f Field) String() string {
	switch f {
	case FieldProduct:
		return "product"
	case FieldQuantity:
		return "quantity"
	default:
		return fmt.Sprintf("field(%d)", int(f))
	}
}
