package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// Bill validation errors. These are returned from the gorm hooks, so
// invalid bills never reach the database.
var (
	ErrBillAmountNotPositive = errors.New("the amount due of a bill must be larger than zero")
	ErrBillServiceNotSet     = errors.New("bills must have a service name")
	ErrBillServiceNotUnique  = errors.New("the service name is already in use by another bill")
	ErrBillShapeOneTime      = errors.New("one-time bills must have a due date and no recurrence fields")
	ErrBillShapeRecurring    = errors.New("recurring bills must have a start date, a frequency and an interval, but no due date")
	ErrBillEndBeforeStart    = errors.New("the end date of a bill cannot be before its start date")
)

// Envelope errors.
var (
	ErrEnvelopeIntervalNotPositive = errors.New("the contribution interval of an envelope must be at least one day")
	ErrAllocationNegative          = errors.New("the allocated amount of an envelope cannot be negative")
)
