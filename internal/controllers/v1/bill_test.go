package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	v1 "github.com/sinking-fund/backend/internal/controllers/v1"
	"github.com/sinking-fund/backend/internal/models"
	"github.com/sinking-fund/backend/internal/types"
	"github.com/sinking-fund/backend/test"
	"github.com/stretchr/testify/assert"
)

func createTestBill(t *testing.T, b v1.BillEditable, expectedStatus ...int) v1.BillResponse {
	if b.Service == "" {
		b.Service = uuid.NewString()
	}

	if b.AmountDue.IsZero() {
		b.AmountDue = decimal.NewFromInt(100)
	}

	if !b.Recurring && b.DueDate.IsZero() {
		b.DueDate = types.NewDate(2026, 6, 1)
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.BillEditable{b}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/bills", body)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.BillCreateResponse
	test.DecodeResponse(t, &r, &response)

	if r.Code == http.StatusCreated {
		return response.Data[0]
	}

	return v1.BillResponse{}
}

func (suite *TestSuiteStandard) TestBillsCreate() {
	bill := createTestBill(suite.T(), v1.BillEditable{
		Service:   "car_insurance",
		AmountDue: decimal.NewFromInt(800),
		DueDate:   types.NewDate(2026, 6, 1),
	})

	suite.Assert().Equal("car_insurance", bill.Data.Service)
	suite.Assert().Contains(bill.Data.Links.Self, "/v1/bills/")
	suite.Assert().Contains(bill.Data.Links.Next, "/next")
}

func (suite *TestSuiteStandard) TestBillsCreateInvalid() {
	tests := []struct {
		name string
		bill v1.BillEditable
	}{
		{"no amount", v1.BillEditable{Service: "gym", DueDate: types.NewDate(2026, 6, 1)}},
		{"no due date", v1.BillEditable{Service: "gym", AmountDue: decimal.NewFromInt(10)}},
		{"recurring without start", v1.BillEditable{Service: "gym", AmountDue: decimal.NewFromInt(10), Recurring: true, Frequency: "monthly", Interval: 1}},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			body := []v1.BillEditable{tt.bill}
			r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/bills", body)
			test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestBillsCreateDuplicateService() {
	createTestBill(suite.T(), v1.BillEditable{Service: "car_insurance"})

	body := []v1.BillEditable{{
		Service:   "car_insurance",
		AmountDue: decimal.NewFromInt(100),
		DueDate:   types.NewDate(2026, 7, 1),
	}}

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/bills", body)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.BillCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Contains(*response.Data[0].Error, models.ErrBillServiceNotUnique.Error())
}

func (suite *TestSuiteStandard) TestBillsCreateInvalidBody() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/bills", `{ "this is not valid json"`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestBillsGetList() {
	createTestBill(suite.T(), v1.BillEditable{Service: "car_insurance"})
	createTestBill(suite.T(), v1.BillEditable{Service: "gym", Note: "cancel soon"})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/bills", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BillListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Len(response.Data, 2)

	// Sorted by service name
	suite.Assert().Equal("car_insurance", response.Data[0].Service)
	suite.Assert().Equal("gym", response.Data[1].Service)
	suite.Assert().Equal(2, response.Pagination.Count)
}

func (suite *TestSuiteStandard) TestBillsGetFiltered() {
	createTestBill(suite.T(), v1.BillEditable{Service: "car_insurance"})
	createTestBill(suite.T(), v1.BillEditable{Service: "car_registration"})
	createTestBill(suite.T(), v1.BillEditable{Service: "gym", Note: "cancel soon"})

	tests := []struct {
		query string
		count int
	}{
		{"service=car", 2},
		{"service=gym", 1},
		{"search=cancel", 1},
		{"service=水道", 0},
		{"limit=1", 1},
		{"offset=2", 1},
	}

	for _, tt := range tests {
		suite.Run(tt.query, func() {
			r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/bills?%s", tt.query), "")
			test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

			var response v1.BillListResponse
			test.DecodeResponse(suite.T(), &r, &response)
			suite.Assert().Len(response.Data, tt.count)
		})
	}
}

func (suite *TestSuiteStandard) TestBillsGetSingle() {
	created := createTestBill(suite.T(), v1.BillEditable{Service: "car_insurance"})

	r := test.Request(suite.T(), http.MethodGet, created.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BillResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("car_insurance", response.Data.Service)
}

func (suite *TestSuiteStandard) TestBillsNotFound() {
	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/bills/%s", uuid.New()), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestBillsInvalidUUID() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/bills/not-a-uuid", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestBillsUpdate() {
	created := createTestBill(suite.T(), v1.BillEditable{Service: "car_insurance", AmountDue: decimal.NewFromInt(800)})

	r := test.Request(suite.T(), http.MethodPatch, created.Data.Links.Self, map[string]any{
		"amountDue": "900",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BillResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().True(decimal.NewFromInt(900).Equal(response.Data.AmountDue))
	suite.Assert().Equal("car_insurance", response.Data.Service)
}

func (suite *TestSuiteStandard) TestBillsUpdateInvalid() {
	created := createTestBill(suite.T(), v1.BillEditable{Service: "car_insurance"})

	// Clearing the amount is not allowed
	r := test.Request(suite.T(), http.MethodPatch, created.Data.Links.Self, map[string]any{
		"amountDue": "0",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestBillsDelete() {
	created := createTestBill(suite.T(), v1.BillEditable{Service: "car_insurance"})

	r := test.Request(suite.T(), http.MethodDelete, created.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, created.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestBillsNext() {
	created := createTestBill(suite.T(), v1.BillEditable{
		Service:   "semiannual_premium",
		AmountDue: decimal.NewFromInt(420),
		Recurring: true,
		StartDate: types.NewDate(2026, 4, 24),
		Frequency: "monthly",
		Interval:  6,
	})

	r := test.Request(suite.T(), http.MethodGet, created.Data.Links.Next+"?reference=2026-05-01", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BillInstanceResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().NotNil(response.Data)
	suite.Assert().True(types.NewDate(2026, 10, 24).Equal(response.Data.DueDate))
}

func (suite *TestSuiteStandard) TestBillsNextNone() {
	created := createTestBill(suite.T(), v1.BillEditable{
		Service:   "car_insurance",
		AmountDue: decimal.NewFromInt(800),
		DueDate:   types.NewDate(2026, 6, 1),
	})

	r := test.Request(suite.T(), http.MethodGet, created.Data.Links.Next+"?reference=2027-01-01", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BillInstanceResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Nil(response.Data)
}

func (suite *TestSuiteStandard) TestBillsNextInvalidReference() {
	created := createTestBill(suite.T(), v1.BillEditable{Service: "car_insurance"})

	r := test.Request(suite.T(), http.MethodGet, created.Data.Links.Next+"?reference=tomorrow", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestBillsDBClosed() {
	tests := []struct {
		name string             // Name of the test
		test func(t *testing.T) // Code to run
	}{
		{
			"Creation fails",
			func(t *testing.T) {
				createTestBill(t, v1.BillEditable{}, http.StatusInternalServerError)
			},
		},
		{
			"GET fails",
			func(t *testing.T) {
				recorder := test.Request(t, http.MethodGet, "http://example.com/v1/bills", "")
				test.AssertHTTPStatus(t, &recorder, http.StatusInternalServerError)

				var response v1.BillListResponse
				test.DecodeResponse(t, &recorder, &response)
				assert.Contains(t, *response.Error, models.ErrGeneral.Error())
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.CloseDB()

			tt.test(t)
		})
	}
}
