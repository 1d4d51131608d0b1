// Package allocation implements strategies that distribute an existing
// balance across envelopes.
//
// Every allocator guarantees the same postconditions: each envelope is
// allocated between zero and its amount due, and the sum of all
// allocations is the smaller of the balance and the total amount due.
// Allocators either mutate every envelope of a pass or none.
package allocation

import (
	"errors"

	"github.com/shopspring/decimal"
	"github.com/sinking-fund/backend/internal/models"
	"github.com/sinking-fund/backend/internal/types"
)

// Allocator distributes a balance across envelopes, setting their
// allocated amounts in place.
type Allocator interface {
	Allocate(envelopes []*models.Envelope, balance decimal.Decimal, currDate types.Date) error
}

var ErrNegativeBalance = errors.New("cannot allocate a negative balance")

// apply writes the computed allocations to the envelopes. It is called
// once per pass after all amounts are known, so a failed pass never
// leaves a subset of envelopes mutated.
func apply(envelopes []*models.Envelope, amounts []decimal.Decimal) error {
	for i, envelope := range envelopes {
		if err := envelope.SetAllocated(amounts[i]); err != nil {
			return err
		}
	}

	return nil
}
