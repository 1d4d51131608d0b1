// Package fund orchestrates a full planning pass: it materializes the
// bill instances due within a planning window, wraps them in envelopes,
// distributes the current balance with an allocation strategy and lays
// out contribution schedules for whatever gap remains.
package fund

import (
	"errors"

	"github.com/shopspring/decimal"
	"github.com/sinking-fund/backend/internal/allocation"
	"github.com/sinking-fund/backend/internal/models"
	"github.com/sinking-fund/backend/internal/schedules"
	"github.com/sinking-fund/backend/internal/types"
)

var ErrInvalidPlanningWindow = errors.New("the planning window must not end before it starts")

// Planner holds the inputs of a planning pass. It is pure and
// in-memory, the same inputs always produce the same plan.
type Planner struct {
	Start   types.Date      // First day of the planning window
	End     types.Date      // Last day of the planning window, inclusive
	Balance decimal.Decimal // Balance available for allocation today
}

// ActiveInstances returns the next instance of every bill that is due
// within the planning window, in input order. Bills without an
// occurrence in the window are skipped.
func (p Planner) ActiveInstances(bills []models.Bill) []models.BillInstance {
	instances := make([]models.BillInstance, 0, len(bills))
	for _, bill := range bills {
		instance := bill.NextInstance(p.Start)
		if instance == nil || instance.DueDate.After(p.End) {
			continue
		}

		instances = append(instances, *instance)
	}

	return instances
}

// MakeEnvelopes wraps bill instances in fresh envelopes with the given
// contribution interval in days.
func (p Planner) MakeEnvelopes(instances []models.BillInstance, intervalDays int) ([]*models.Envelope, error) {
	envelopes := make([]*models.Envelope, 0, len(instances))
	for _, instance := range instances {
		envelope, err := models.NewEnvelope(instance, intervalDays)
		if err != nil {
			return nil, err
		}

		envelopes = append(envelopes, envelope)
	}

	return envelopes, nil
}

// Plan runs a complete planning pass and returns the resulting
// envelopes: the balance is allocated across the window's active
// instances, then the remaining gaps are scheduled from the window
// start.
func (p Planner) Plan(bills []models.Bill, allocator allocation.Allocator, scheduler schedules.Scheduler, intervalDays int) ([]*models.Envelope, error) {
	if p.End.Before(p.Start) {
		return nil, ErrInvalidPlanningWindow
	}

	envelopes, err := p.MakeEnvelopes(p.ActiveInstances(bills), intervalDays)
	if err != nil {
		return nil, err
	}

	if err := allocator.Allocate(envelopes, p.Balance, p.Start); err != nil {
		return nil, err
	}

	if err := scheduler.Schedule(envelopes, p.Start); err != nil {
		return nil, err
	}

	return envelopes, nil
}
