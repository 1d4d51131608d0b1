package allocation

import (
	"github.com/shopspring/decimal"
	"github.com/sinking-fund/backend/internal/models"
	"github.com/sinking-fund/backend/internal/types"
)

// WeightFunc computes one non-negative weight per envelope, in input
// order. The weights determine each envelope's share of the balance.
type WeightFunc func(envelopes []*models.Envelope, currDate types.Date) []decimal.Decimal

// ProportionalWeights weights each envelope by its amount due, so
// larger bills receive proportionally more of the balance.
func ProportionalWeights(envelopes []*models.Envelope, _ types.Date) []decimal.Decimal {
	weights := make([]decimal.Decimal, len(envelopes))
	for i, envelope := range envelopes {
		weights[i] = envelope.Instance.AmountDue
	}

	return weights
}

// EqualWeights gives every envelope the same weight.
func EqualWeights(envelopes []*models.Envelope, _ types.Date) []decimal.Decimal {
	weights := make([]decimal.Decimal, len(envelopes))
	for i := range envelopes {
		weights[i] = decimal.New(1, 0)
	}

	return weights
}

// UrgencyWeights weights each envelope by amount due divided by days
// until its due date, so large bills due soon receive the most. Bills
// due today are weighted by their full amount, past-due bills receive
// nothing.
func UrgencyWeights(envelopes []*models.Envelope, currDate types.Date) []decimal.Decimal {
	weights := make([]decimal.Decimal, len(envelopes))
	for i, envelope := range envelopes {
		days := currDate.DaysUntil(envelope.Instance.DueDate)

		switch {
		case days < 0:
			weights[i] = decimal.Zero
		case days == 0:
			weights[i] = envelope.Instance.AmountDue
		default:
			weights[i] = envelope.Instance.AmountDue.Div(decimal.New(int64(days), 0))
		}
	}

	return weights
}

// ZeroWeights assigns nothing to any envelope. It exists for plans
// where the balance is distributed manually.
func ZeroWeights(envelopes []*models.Envelope, _ types.Date) []decimal.Decimal {
	weights := make([]decimal.Decimal, len(envelopes))
	for i := range envelopes {
		weights[i] = decimal.Zero
	}

	return weights
}

// ProportionalAllocator splits the balance across all envelopes
// according to a weight function, capping every envelope at its amount
// due. Surplus from capped envelopes is re-distributed among the still
// underfunded ones until either everything is funded or the balance is
// exhausted.
type ProportionalAllocator struct {
	Weights WeightFunc
}

// NewProportionalAllocator returns a proportional allocator using the
// given weight function.
func NewProportionalAllocator(weights WeightFunc) ProportionalAllocator {
	return ProportionalAllocator{Weights: weights}
}

func (a ProportionalAllocator) Allocate(envelopes []*models.Envelope, balance decimal.Decimal, currDate types.Date) error {
	if balance.IsNegative() {
		return ErrNegativeBalance
	}

	if len(envelopes) == 0 {
		return nil
	}

	weights := a.Weights(envelopes, currDate)
	amounts := make([]decimal.Decimal, len(envelopes))
	for i := range amounts {
		amounts[i] = decimal.Zero
	}

	// Envelopes with zero weight can never receive a share, e.g. bills
	// that are already past due under urgency weighting.
	active := make([]int, 0, len(envelopes))
	for i := range envelopes {
		if weights[i].IsPositive() {
			active = append(active, i)
		}
	}

	// Each round distributes the remaining balance over the still
	// underfunded envelopes. A round either caps at least one envelope,
	// shrinking the active set, or hands out the whole balance, so the
	// loop terminates after at most len(envelopes) rounds.
	remainder := balance
	for remainder.IsPositive() && len(active) > 0 {
		totalWeight := decimal.Zero
		for _, i := range active {
			totalWeight = totalWeight.Add(weights[i])
		}

		stillActive := active[:0:len(active)]
		roundBalance := remainder
		unplanned := roundBalance
		for n, i := range active {
			capacity := envelopes[i].Instance.AmountDue.Sub(amounts[i])

			// The last envelope of a round absorbs the division dust of
			// the other shares so that an uncapped round always hands
			// out the round balance exactly. Money freed by capping
			// stays in the remainder for the next round.
			var share decimal.Decimal
			if n == len(active)-1 {
				share = unplanned
			} else {
				share = roundBalance.Mul(weights[i]).Div(totalWeight).RoundDown(2)
				unplanned = unplanned.Sub(share)
			}

			if share.GreaterThanOrEqual(capacity) {
				share = capacity
			} else {
				stillActive = append(stillActive, i)
			}

			amounts[i] = amounts[i].Add(share)
			remainder = remainder.Sub(share)
		}

		active = stillActive
	}

	return apply(envelopes, amounts)
}
