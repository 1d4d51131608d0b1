package models

import (
	"encoding/json"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sinking-fund/backend/internal/types"
)

// CashFlow is a single dated monetary event in an envelope's schedule.
// Positive amounts are contributions into the envelope, negative
// amounts are payouts.
type CashFlow struct {
	Date   types.Date      `json:"date"`
	BillID uuid.UUID       `json:"billId"`
	Amount decimal.Decimal `json:"amount"`
}

// IsInflow reports whether the cash flow adds money to the envelope.
func (c CashFlow) IsInflow() bool {
	return c.Amount.IsPositive()
}

// IsOutflow reports whether the cash flow takes money out of the envelope.
func (c CashFlow) IsOutflow() bool {
	return c.Amount.IsNegative()
}

// CashFlowSchedule is a date-ordered sequence of cash flows belonging
// to one envelope.
type CashFlowSchedule struct {
	flows []CashFlow
}

// Add inserts cash flows into the schedule, keeping it ordered by date.
// Flows on the same date keep their insertion order.
func (s *CashFlowSchedule) Add(flows ...CashFlow) {
	s.flows = append(s.flows, flows...)

	sort.SliceStable(s.flows, func(i, j int) bool {
		return s.flows[i].Date.Before(s.flows[j].Date)
	})
}

// MarshalJSON renders the schedule as a plain array of cash flows.
func (s CashFlowSchedule) MarshalJSON() ([]byte, error) {
	if s.flows == nil {
		return []byte("[]"), nil
	}

	return json.Marshal(s.flows)
}

func (s *CashFlowSchedule) UnmarshalJSON(data []byte) error {
	var flows []CashFlow
	if err := json.Unmarshal(data, &flows); err != nil {
		return err
	}

	s.flows = nil
	s.Add(flows...)

	return nil
}

// CashFlows returns all cash flows in date order.
func (s CashFlowSchedule) CashFlows() []CashFlow {
	return s.flows
}

// Len returns the number of cash flows in the schedule.
func (s CashFlowSchedule) Len() int {
	return len(s.flows)
}

// InRange returns the cash flows with start <= date <= end.
func (s CashFlowSchedule) InRange(start, end types.Date) []CashFlow {
	flows := make([]CashFlow, 0, len(s.flows))
	for _, flow := range s.flows {
		if flow.Date.Before(start) || flow.Date.After(end) {
			continue
		}

		flows = append(flows, flow)
	}

	return flows
}

// TotalInRange returns the sum of all cash flow amounts with
// start <= date <= end.
func (s CashFlowSchedule) TotalInRange(start, end types.Date) decimal.Decimal {
	total := decimal.Zero
	for _, flow := range s.InRange(start, end) {
		total = total.Add(flow.Amount)
	}

	return total
}

// TotalAsOf returns the running balance of the schedule: the sum of all
// cash flow amounts with date <= the given date.
func (s CashFlowSchedule) TotalAsOf(date types.Date) decimal.Decimal {
	total := decimal.Zero
	for _, flow := range s.flows {
		if flow.Date.After(date) {
			continue
		}

		total = total.Add(flow.Amount)
	}

	return total
}

// Contributions returns only the inflow entries of the schedule.
func (s CashFlowSchedule) Contributions() []CashFlow {
	flows := make([]CashFlow, 0, len(s.flows))
	for _, flow := range s.flows {
		if flow.IsInflow() {
			flows = append(flows, flow)
		}
	}

	return flows
}

// Payouts returns only the outflow entries of the schedule.
func (s CashFlowSchedule) Payouts() []CashFlow {
	flows := make([]CashFlow, 0, len(s.flows))
	for _, flow := range s.flows {
		if flow.IsOutflow() {
			flows = append(flows, flow)
		}
	}

	return flows
}
