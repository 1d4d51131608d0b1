// Package schedules implements strategies that turn an envelope's
// funding gap and a time window into a schedule of dated contributions.
package schedules

import (
	"errors"

	"github.com/sinking-fund/backend/internal/models"
	"github.com/sinking-fund/backend/internal/types"
)

// Scheduler creates cash flow schedules for envelopes, setting their
// schedules in place.
type Scheduler interface {
	Schedule(envelopes []*models.Envelope, startDate types.Date) error
}

var ErrInvalidWindow = errors.New("cannot schedule contributions starting after the due date")
