package schedules

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sinking-fund/backend/internal/models"
	"github.com/sinking-fund/backend/internal/types"
)

// IndependentScheduler schedules every envelope on its own: the funding
// gap is spread evenly over the envelope's contribution dates between
// the start date and the bill's due date, with no interaction between
// envelopes.
//
// The division is exact at the cent level. The per-period amount is the
// gap divided by the number of contribution dates, rounded down to
// cents; the rounding remainder is absorbed into the first
// contribution, so the positive entries always sum to the gap exactly.
// The schedule ends with a payout of the full bill amount on the due
// date.
type IndependentScheduler struct{}

func (IndependentScheduler) Schedule(envelopes []*models.Envelope, startDate types.Date) error {
	// Validate all windows before mutating anything, so a failed pass
	// leaves no envelope half-scheduled.
	for _, envelope := range envelopes {
		if envelope.Remaining().IsPositive() && startDate.After(envelope.Instance.DueDate) {
			return fmt.Errorf("%w: bill %q is due %s, start date is %s",
				ErrInvalidWindow, envelope.Instance.Service, envelope.Instance.DueDate, startDate)
		}
	}

	for _, envelope := range envelopes {
		schedule, err := buildSchedule(envelope, startDate)
		if err != nil {
			return err
		}

		envelope.Schedule = schedule
	}

	return nil
}

func buildSchedule(envelope *models.Envelope, startDate types.Date) (models.CashFlowSchedule, error) {
	var schedule models.CashFlowSchedule

	gap := envelope.Remaining()
	due := envelope.Instance.DueDate

	if gap.IsPositive() {
		dates, err := types.DateRange(startDate, due, envelope.Interval)
		if err != nil {
			return schedule, err
		}

		if len(dates) == 0 {
			// The window holds no contribution opportunity before the
			// due date, so the whole gap is contributed up front.
			dates = []types.Date{startDate}
		}

		periods := decimal.New(int64(len(dates)), 0)
		perPeriod := gap.Div(periods).RoundDown(2)
		first := gap.Sub(perPeriod.Mul(periods.Sub(decimal.New(1, 0))))

		for i, date := range dates {
			amount := perPeriod
			if i == 0 {
				amount = first
			}

			if amount.IsZero() {
				continue
			}

			schedule.Add(models.CashFlow{
				Date:   date,
				BillID: envelope.Instance.BillID,
				Amount: amount,
			})
		}
	}

	// The payout on the due date covers the full bill amount: the
	// contributions above plus the previously allocated balance leave
	// the envelope at that moment.
	schedule.Add(models.CashFlow{
		Date:   due,
		BillID: envelope.Instance.BillID,
		Amount: envelope.Instance.AmountDue.Neg(),
	})

	return schedule, nil
}
