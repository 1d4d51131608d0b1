package v1_test

import (
	"net/http"

	"github.com/shopspring/decimal"
	v1 "github.com/sinking-fund/backend/internal/controllers/v1"
	"github.com/sinking-fund/backend/internal/types"
	"github.com/sinking-fund/backend/test"
)

// seedPlanBills creates the bills the planning tests work with.
func (suite *TestSuiteStandard) seedPlanBills() {
	createTestBill(suite.T(), v1.BillEditable{
		Service:   "car_insurance",
		AmountDue: decimal.NewFromInt(800),
		DueDate:   types.NewDate(2026, 3, 1),
	})

	createTestBill(suite.T(), v1.BillEditable{
		Service:   "streaming",
		AmountDue: decimal.NewFromFloat(15.99),
		Recurring: true,
		StartDate: types.NewDate(2026, 1, 15),
		Frequency: "monthly",
		Interval:  1,
	})
}

func (suite *TestSuiteStandard) TestPlanCascade() {
	suite.seedPlanBills()

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/plan", map[string]any{
		"balance":   "500",
		"startDate": "2026-01-01",
		"endDate":   "2026-12-31",
		"strategy":  "cascade",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.PlanResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().Len(response.Data, 2)

	// Envelopes come back in service order
	insurance := response.Data[0]
	streaming := response.Data[1]

	suite.Assert().Equal("car_insurance", insurance.Instance.Service)
	suite.Assert().Equal("streaming", streaming.Instance.Service)

	// The cascade fills the small bill due first and puts the rest
	// into the insurance envelope
	suite.Assert().True(streaming.Funded)
	suite.Assert().True(decimal.NewFromFloat(15.99).Equal(streaming.Allocated))
	suite.Assert().True(decimal.NewFromFloat(484.01).Equal(insurance.Allocated))
	suite.Assert().False(insurance.Funded)
	suite.Assert().True(decimal.NewFromFloat(315.99).Equal(insurance.Remaining))

	// Contributions close the gap, the payout drains the envelope
	total := decimal.Zero
	for _, flow := range insurance.Schedule {
		total = total.Add(flow.Amount)
	}
	suite.Assert().True(total.Add(insurance.Allocated).IsZero())
}

func (suite *TestSuiteStandard) TestPlanDefaults() {
	suite.seedPlanBills()

	// Strategy and interval fall back to their defaults, the start
	// date defaults to today
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/plan", map[string]any{
		"balance": "500",
		"endDate": "2100-12-31",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
}

func (suite *TestSuiteStandard) TestPlanStrategies() {
	suite.seedPlanBills()

	for _, strategy := range []string{"cascade", "debt_snowball", "priority", "proportional", "equal", "urgency"} {
		suite.Run(strategy, func() {
			r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/plan", map[string]any{
				"balance":   "500",
				"startDate": "2026-01-01",
				"endDate":   "2026-12-31",
				"strategy":  strategy,
			})
			test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

			var response v1.PlanResponse
			test.DecodeResponse(suite.T(), &r, &response)

			// No strategy allocates more than the balance
			total := decimal.Zero
			for _, envelope := range response.Data {
				total = total.Add(envelope.Allocated)
			}
			suite.Assert().True(total.LessThanOrEqual(decimal.NewFromInt(500)), "strategy %q allocated %s", strategy, total)
		})
	}
}

func (suite *TestSuiteStandard) TestPlanPriorities() {
	suite.seedPlanBills()

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/plan", map[string]any{
		"balance":   "500",
		"startDate": "2026-01-01",
		"endDate":   "2026-12-31",
		"strategy":  "priority",
		"reverse":   true,
		"priorities": []map[string]any{
			{"pattern": "car_*", "priority": 1},
		},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.PlanResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().Len(response.Data, 2)

	// Reversed priority puts the insurance last, so the streaming
	// bill is funded first
	for _, envelope := range response.Data {
		if envelope.Instance.Service == "streaming" {
			suite.Assert().True(envelope.Funded)
		}
	}
}

func (suite *TestSuiteStandard) TestPlanInvalid() {
	tests := []struct {
		name string
		body map[string]any
	}{
		{"unknown strategy", map[string]any{"balance": "500", "endDate": "2026-12-31", "strategy": "yolo"}},
		{"no end date", map[string]any{"balance": "500"}},
		{"end before start", map[string]any{"balance": "500", "startDate": "2026-12-31", "endDate": "2026-01-01"}},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/plan", tt.body)
			test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestPlanInvalidBody() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/plan", `{ "balance": `)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestPlanEmptyBody() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/plan", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestPlanDBClosed() {
	suite.CloseDB()

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/plan", map[string]any{
		"balance": "500",
		"endDate": "2026-12-31",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
}
