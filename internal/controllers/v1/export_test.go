package v1_test

import (
	"encoding/json"
	"net/http"

	v1 "github.com/sinking-fund/backend/internal/controllers/v1"
	"github.com/sinking-fund/backend/internal/models"
	"github.com/sinking-fund/backend/test"
)

func (suite *TestSuiteStandard) TestExport() {
	createTestBill(suite.T(), v1.BillEditable{Service: "car_insurance"})
	createTestBill(suite.T(), v1.BillEditable{Service: "gym"})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/export", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ExportResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().NotZero(response.CreationTime)
	suite.Require().Contains(response.Data, "Bill")

	var bills []models.Bill
	suite.Require().Nil(json.Unmarshal(response.Data["Bill"], &bills))
	suite.Assert().Len(bills, 2)
}

func (suite *TestSuiteStandard) TestExportEmpty() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/export", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ExportResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().Contains(response.Data, "Bill")
}

func (suite *TestSuiteStandard) TestExportDBClosed() {
	suite.CloseDB()

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/export", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
}
