package models

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sinking-fund/backend/internal/types"
	"gorm.io/gorm"
)

// Bill is a financial obligation, either one-time or recurring.
//
// A one-time bill has a due date and nothing else. A recurring bill has
// a start date, a frequency and an interval; the interval is the number
// of frequency units between occurrences, so frequency "weekly" with
// interval 2 is a bi-weekly bill. The recurrence can be bounded with an
// end date or a number of occurrences, which derive each other.
type Bill struct {
	DefaultModel
	Service     string `gorm:"uniqueIndex"` // Name of the service the bill is for
	Note        string
	AmountDue   decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Recurring   bool
	DueDate     types.Date      // One-time bills only
	StartDate   types.Date      // Recurring bills only: the first due date
	EndDate     types.Date      // Recurring bills only, optional: the last possible due date
	Frequency   types.Frequency // Recurring bills only
	Interval    uint            // Recurring bills only
	Occurrences uint            // Recurring bills only, optional
}

// BillInstance is a single concrete occurrence of a bill.
//
// Instances are materialized on demand by NextInstance and
// DueDatesInRange, they are never stored. The amount is copied from the
// bill so that per-instance overrides stay possible.
type BillInstance struct {
	BillID    uuid.UUID       `json:"billId"`
	Service   string          `json:"service"`
	AmountDue decimal.Decimal `json:"amountDue"`
	DueDate   types.Date      `json:"dueDate"`
}

func (b *Bill) BeforeSave(_ *gorm.DB) error {
	b.Service = strings.TrimSpace(b.Service)
	b.Note = strings.TrimSpace(b.Note)

	if b.Service == "" {
		return ErrBillServiceNotSet
	}

	if !b.AmountDue.IsPositive() {
		return ErrBillAmountNotPositive
	}

	if !b.Recurring {
		if b.DueDate.IsZero() || !b.StartDate.IsZero() || !b.EndDate.IsZero() || b.Frequency != "" || b.Interval != 0 || b.Occurrences != 0 {
			return ErrBillShapeOneTime
		}

		return nil
	}

	if !b.DueDate.IsZero() || b.StartDate.IsZero() {
		return ErrBillShapeRecurring
	}

	frequency, err := types.ParseFrequency(string(b.Frequency))
	if err != nil {
		return err
	}
	b.Frequency = frequency

	if b.Interval < 1 {
		return types.ErrInvalidInterval
	}

	if !b.EndDate.IsZero() && b.EndDate.Before(b.StartDate) {
		return ErrBillEndBeforeStart
	}

	// End date and occurrence count derive each other. A single
	// occurrence means the recurrence ends on its start date.
	if b.Occurrences > 0 && b.EndDate.IsZero() {
		b.EndDate = b.occurrence(int(b.Occurrences) - 1)
	}

	if !b.EndDate.IsZero() && b.Occurrences == 0 {
		b.Occurrences = uint(b.countOccurrences())
	}

	return nil
}

// BeforeUpdate verifies the fields an update changes. BeforeSave only
// sees the stored record here, the new values are in the statement.
func (b *Bill) BeforeUpdate(tx *gorm.DB) error {
	toSave, ok := tx.Statement.Dest.(Bill)
	if !ok {
		return nil
	}

	if tx.Statement.Changed("Service") && strings.TrimSpace(toSave.Service) == "" {
		return ErrBillServiceNotSet
	}

	if tx.Statement.Changed("AmountDue") && !toSave.AmountDue.IsPositive() {
		return ErrBillAmountNotPositive
	}

	return nil
}

// NextInstance returns the first occurrence of the bill that is due on
// or after the reference date, or nil if no such occurrence exists.
func (b Bill) NextInstance(reference types.Date) *BillInstance {
	if !b.Recurring {
		// The obligation has passed.
		if b.DueDate.Before(reference) {
			return nil
		}

		return b.instance(b.DueDate)
	}

	if !b.EndDate.IsZero() && reference.After(b.EndDate) {
		return nil
	}

	_, due := b.firstOnOrAfter(reference)

	if !b.EndDate.IsZero() && due.After(b.EndDate) {
		return nil
	}

	return b.instance(due)
}

// DueDatesInRange returns all due dates of the bill within the
// inclusive range [start, end].
func (b Bill) DueDatesInRange(start, end types.Date) []types.Date {
	if !b.Recurring {
		if b.DueDate.Before(start) || b.DueDate.After(end) {
			return nil
		}

		return []types.Date{b.DueDate}
	}

	if !b.EndDate.IsZero() && b.EndDate.Before(end) {
		end = b.EndDate
	}

	if start.Before(b.StartDate) {
		start = b.StartDate
	}

	var dates []types.Date
	for n, due := b.firstOnOrAfter(start); !due.After(end); n, due = n+1, b.occurrence(n+1) {
		dates = append(dates, due)
	}

	return dates
}

func (b Bill) instance(due types.Date) *BillInstance {
	return &BillInstance{
		BillID:    b.ID,
		Service:   b.Service,
		AmountDue: b.AmountDue,
		DueDate:   due,
	}
}

// occurrence returns the n-th due date of a recurring bill, counted
// from zero. Every occurrence is computed as a single jump from the
// start date so that month-end clamping never accumulates.
func (b Bill) occurrence(n int) types.Date {
	if n <= 0 {
		return b.StartDate
	}

	due, _ := types.IncrementDate(b.StartDate, b.Frequency, int(b.Interval), n)
	return due
}

// firstOnOrAfter returns the index and date of the first occurrence on
// or after the reference date. The number of elapsed periods is
// estimated analytically, then corrected by at most a few steps, so
// bills whose start date is years in the past do not walk one period
// at a time.
func (b Bill) firstOnOrAfter(reference types.Date) (int, types.Date) {
	if !b.StartDate.Before(reference) {
		return 0, b.StartDate
	}

	var n int
	switch b.Frequency {
	case types.FrequencyDaily:
		n = b.StartDate.DaysUntil(reference) / int(b.Interval)
	case types.FrequencyWeekly:
		n = b.StartDate.DaysUntil(reference) / (7 * int(b.Interval))
	case types.FrequencyMonthly:
		n = monthsBetween(b.StartDate, reference) / int(b.Interval)
	case types.FrequencyQuarterly:
		n = monthsBetween(b.StartDate, reference) / (3 * int(b.Interval))
	case types.FrequencyAnnual:
		n = (reference.Year() - b.StartDate.Year()) / int(b.Interval)
	}

	if n < 0 {
		n = 0
	}

	// The estimate can overshoot by one period around month-end clamps.
	for n > 0 && !b.occurrence(n-1).Before(reference) {
		n--
	}

	for b.occurrence(n).Before(reference) {
		n++
	}

	return n, b.occurrence(n)
}

// countOccurrences returns the number of due dates up to and including
// the end date.
func (b Bill) countOccurrences() int {
	n, due := b.firstOnOrAfter(b.EndDate)
	if due.After(b.EndDate) {
		return n
	}

	return n + 1
}

func monthsBetween(start, end types.Date) int {
	return (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
}

// Export returns all bills on this instance for export
func (Bill) Export() (json.RawMessage, error) {
	var bills []Bill
	err := DB.Unscoped().Where(&Bill{}).Find(&bills).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&bills)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
