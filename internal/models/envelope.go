package models

import (
	"github.com/shopspring/decimal"
	"github.com/sinking-fund/backend/internal/types"
)

// Envelope is a savings container for a single bill instance.
//
// Envelopes are planning entities, they only live for the duration of a
// planning pass and are never stored. The allocated amount is set by an
// allocation engine, the schedule by a scheduling engine; an envelope
// never mutates itself.
//
// Allocated is a NullDecimal so that "no allocation pass has run yet"
// and "the allocation pass assigned zero" stay distinguishable.
type Envelope struct {
	Instance  BillInstance        `json:"instance"`
	Interval  int                 `json:"interval"` // Days between contribution opportunities
	Allocated decimal.NullDecimal `json:"allocated"`
	Schedule  CashFlowSchedule    `json:"schedule"`
}

// NewEnvelope returns an envelope for a bill instance with the given
// contribution interval in days.
func NewEnvelope(instance BillInstance, intervalDays int) (*Envelope, error) {
	if intervalDays < 1 {
		return nil, ErrEnvelopeIntervalNotPositive
	}

	return &Envelope{
		Instance: instance,
		Interval: intervalDays,
	}, nil
}

// SetAllocated sets the allocated amount. Only allocation engines call
// this.
func (e *Envelope) SetAllocated(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrAllocationNegative
	}

	e.Allocated = decimal.NewNullDecimal(amount)
	return nil
}

// ResetAllocated clears the allocation back to the never-allocated state.
func (e *Envelope) ResetAllocated() {
	e.Allocated = decimal.NullDecimal{}
	e.Schedule = CashFlowSchedule{}
}

// AllocatedAmount returns the allocated amount, zero if no allocation
// pass has run yet.
func (e Envelope) AllocatedAmount() decimal.Decimal {
	if !e.Allocated.Valid {
		return decimal.Zero
	}

	return e.Allocated.Decimal
}

// Remaining returns the amount still needed to fully fund the envelope.
func (e Envelope) Remaining() decimal.Decimal {
	return e.Instance.AmountDue.Sub(e.AllocatedAmount())
}

// IsFullyFunded reports whether the envelope needs no further money.
func (e Envelope) IsFullyFunded() bool {
	return !e.Remaining().IsPositive()
}

// BalanceAsOf returns the projected envelope balance at a date: the
// allocated amount plus all schedule entries up to and including the
// date.
func (e Envelope) BalanceAsOf(date types.Date) decimal.Decimal {
	return e.AllocatedAmount().Add(e.Schedule.TotalAsOf(date))
}
