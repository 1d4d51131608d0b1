package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sinking-fund/backend/internal/models"
	"github.com/sinking-fund/backend/internal/types"
)

type BillEditable struct {
	Service     string          `json:"service" example:"car_insurance" default:""`                                                                     // Name of the service the bill pays for, unique
	Note        string          `json:"note" example:"Renews in April" default:""`                                                                      // Note about the bill
	AmountDue   decimal.Decimal `json:"amountDue" example:"800" minimum:"0.00000001" maximum:"999999999999.99999999" multipleOf:"0.00000001" default:"0"` // Amount due per occurrence
	Recurring   bool            `json:"recurring" example:"true" default:"false"`                                                                       // Does the bill repeat?
	DueDate     types.Date      `json:"dueDate" example:"2026-06-01"`                                                                                   // Due date, one-time bills only
	StartDate   types.Date      `json:"startDate" example:"2026-04-24"`                                                                                 // First due date, recurring bills only
	EndDate     types.Date      `json:"endDate" example:"2027-04-24"`                                                                                   // Last possible due date, recurring bills only
	Frequency   types.Frequency `json:"frequency" example:"monthly"`                                                                                    // Unit of recurrence, recurring bills only
	Interval    uint            `json:"interval" example:"6" default:"0"`                                                                               // Number of frequency units between occurrences
	Occurrences uint            `json:"occurrences" example:"3" default:"0"`                                                                            // Total number of occurrences
}

// model returns the database resource for the API representation of the editable fields
func (editable BillEditable) model() models.Bill {
	return models.Bill{
		Service:     editable.Service,
		Note:        editable.Note,
		AmountDue:   editable.AmountDue,
		Recurring:   editable.Recurring,
		DueDate:     editable.DueDate,
		StartDate:   editable.StartDate,
		EndDate:     editable.EndDate,
		Frequency:   editable.Frequency,
		Interval:    editable.Interval,
		Occurrences: editable.Occurrences,
	}
}

type BillLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/bills/438cc6c0-9baf-49fd-a75a-d76bd5cab19c"`      // The bill itself
	Next string `json:"next" example:"https://example.com/api/v1/bills/438cc6c0-9baf-49fd-a75a-d76bd5cab19c/next"` // The next occurrence of the bill
}

type Bill struct {
	models.DefaultModel
	BillEditable
	Links BillLinks `json:"links"`
}

// newBill returns the API v1 representation of the resource
func newBill(c *gin.Context, model models.Bill) Bill {
	url := c.GetString(string(models.DBContextURL))

	return Bill{
		DefaultModel: model.DefaultModel,
		BillEditable: BillEditable{
			Service:     model.Service,
			Note:        model.Note,
			AmountDue:   model.AmountDue,
			Recurring:   model.Recurring,
			DueDate:     model.DueDate,
			StartDate:   model.StartDate,
			EndDate:     model.EndDate,
			Frequency:   model.Frequency,
			Interval:    model.Interval,
			Occurrences: model.Occurrences,
		},
		Links: BillLinks{
			Self: fmt.Sprintf("%s/v1/bills/%s", url, model.ID),
			Next: fmt.Sprintf("%s/v1/bills/%s/next", url, model.ID),
		},
	}
}

type BillListResponse struct {
	Data       []Bill      `json:"data"`                                                          // List of resources
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type BillCreateResponse struct {
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []BillResponse `json:"data"`                                                          // List of created resources
}

func (t *BillCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, BillResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type BillResponse struct {
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Bill   `json:"data"`                                                          // The resource
}

type BillInstanceResponse struct {
	Error *string              `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *models.BillInstance `json:"data"`                                                          // The next occurrence, null if none exists
}

type BillQueryFilter struct {
	Service   string `form:"service" filterField:"false"`   // By service name
	Note      string `form:"note" filterField:"false"`      // By the note
	Search    string `form:"search" filterField:"false"`    // By string in service or note
	Recurring bool   `form:"recurring"`                     // Is the bill recurring?
	Frequency string `form:"frequency"`                     // By recurrence frequency
	Offset    uint   `form:"offset" filterField:"false"`    // The offset of the first bill returned. Defaults to 0.
	Limit     int    `form:"limit" filterField:"false"`     // Maximum number of bills to return. Defaults to 50.
}

func (f BillQueryFilter) model() models.Bill {
	return models.Bill{
		Recurring: f.Recurring,
		Frequency: types.Frequency(f.Frequency),
	}
}
