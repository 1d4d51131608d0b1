package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sinking-fund/backend/internal/allocation"
	"github.com/sinking-fund/backend/internal/fund"
	"github.com/sinking-fund/backend/internal/httputil"
	"github.com/sinking-fund/backend/internal/models"
	"github.com/sinking-fund/backend/internal/schedules"
	"github.com/sinking-fund/backend/internal/types"
)

// Default contribution cadence when the request does not set one.
const defaultPlanInterval = 14

// RegisterPlanRoutes registers the routes for planning with
// the RouterGroup that is passed.
func RegisterPlanRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsPlan)
	r.POST("", CreatePlan)
}

// OptionsPlan returns the allowed HTTP verbs for the plan endpoint.
func OptionsPlan(c *gin.Context) {
	httputil.OptionsPost(c)
}

type PlanEditable struct {
	Balance    decimal.Decimal           `json:"balance" example:"1000" default:"0"`        // Balance available for allocation today
	StartDate  types.Date                `json:"startDate" example:"2026-01-01"`            // First day of the planning window, defaults to today
	EndDate    types.Date                `json:"endDate" example:"2026-12-31"`              // Last day of the planning window, inclusive
	Interval   int                       `json:"interval" example:"14" default:"14"`        // Days between contributions, defaults to 14
	Strategy   string                    `json:"strategy" example:"cascade"`                // Allocation strategy
	Reverse    bool                      `json:"reverse" example:"false" default:"false"`   // Reverse the funding order, sorted strategies only
	Priorities []allocation.PriorityRule `json:"priorities"`                                // Priority rules, strategy "priority" only
}

// PlannedEnvelope is the API representation of one envelope after a
// planning pass.
type PlannedEnvelope struct {
	Instance  models.BillInstance `json:"instance"`                // The bill occurrence the envelope funds
	Allocated decimal.Decimal     `json:"allocated" example:"800"` // Amount allocated from the balance
	Remaining decimal.Decimal     `json:"remaining" example:"0"`   // Amount still needed before the due date
	Funded    bool                `json:"funded" example:"true"`   // Is the envelope fully funded by the allocation?
	Schedule  []models.CashFlow   `json:"schedule"`                // Contributions and the payout, in date order
}

type PlanResponse struct {
	Error *string           `json:"error" example:"the specified allocation strategy is invalid"` // The error, if any occurred
	Data  []PlannedEnvelope `json:"data"`                                                         // One entry per active bill occurrence
}

// CreatePlan runs a full planning pass over all bills: the next
// occurrence of every bill within the window is wrapped in an envelope,
// the balance is allocated with the requested strategy and the
// remaining gaps are spread into contribution schedules.
func CreatePlan(c *gin.Context) {
	var editable PlanEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PlanResponse{
			Error: &e,
		})
		return
	}

	if editable.StartDate.IsZero() {
		editable.StartDate = types.Today()
	}

	if editable.EndDate.IsZero() {
		e := errEndDateNotSet.Error()
		c.JSON(http.StatusBadRequest, PlanResponse{
			Error: &e,
		})
		return
	}

	if editable.Interval == 0 {
		editable.Interval = defaultPlanInterval
	}

	allocator, err := allocatorFor(editable.Strategy, editable.Reverse, editable.Priorities)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, PlanResponse{
			Error: &e,
		})
		return
	}

	var bills []models.Bill
	err = models.DB.Order("service ASC").Find(&bills).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PlanResponse{
			Error: &e,
		})
		return
	}

	planner := fund.Planner{
		Start:   editable.StartDate,
		End:     editable.EndDate,
		Balance: editable.Balance,
	}

	envelopes, err := planner.Plan(bills, allocator, schedules.IndependentScheduler{}, editable.Interval)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, PlanResponse{
			Error: &e,
		})
		return
	}

	data := make([]PlannedEnvelope, 0, len(envelopes))
	for _, envelope := range envelopes {
		data = append(data, PlannedEnvelope{
			Instance:  envelope.Instance,
			Allocated: envelope.AllocatedAmount(),
			Remaining: envelope.Remaining(),
			Funded:    envelope.IsFullyFunded(),
			Schedule:  envelope.Schedule.CashFlows(),
		})
	}

	c.JSON(http.StatusOK, PlanResponse{Data: data})
}

// allocatorFor maps a strategy name from the API to an allocator.
func allocatorFor(strategy string, reverse bool, priorities []allocation.PriorityRule) (allocation.Allocator, error) {
	switch strategy {
	case "", "cascade":
		return allocation.NewSortedAllocator(allocation.Cascade{}, reverse), nil
	case "debt_snowball":
		return allocation.NewSortedAllocator(allocation.DebtSnowball{}, reverse), nil
	case "priority":
		return allocation.NewSortedAllocator(allocation.PriorityRules{Rules: priorities}, reverse), nil
	case "proportional":
		return allocation.NewProportionalAllocator(allocation.ProportionalWeights), nil
	case "equal":
		return allocation.NewProportionalAllocator(allocation.EqualWeights), nil
	case "urgency":
		return allocation.NewProportionalAllocator(allocation.UrgencyWeights), nil
	}

	return nil, errStrategyInvalid
}
