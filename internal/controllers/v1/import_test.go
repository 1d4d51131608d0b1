package v1_test

import (
	"bytes"
	"mime/multipart"
	"net/http"

	v1 "github.com/sinking-fund/backend/internal/controllers/v1"
	"github.com/sinking-fund/backend/test"
)

func (suite *TestSuiteStandard) TestImportCSV() {
	body, headers := test.LoadTestFile(suite.T(), "bills.csv")

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/import", body, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.BillCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().Len(response.Data, 3)
	suite.Assert().Equal("car_insurance", response.Data[0].Data.Service)

	// The imported bills are persisted
	list := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/bills", "")
	test.AssertHTTPStatus(suite.T(), &list, http.StatusOK)

	var bills v1.BillListResponse
	test.DecodeResponse(suite.T(), &list, &bills)
	suite.Assert().Len(bills.Data, 3)
}

func (suite *TestSuiteStandard) TestImportJSON() {
	body, headers := test.LoadTestFile(suite.T(), "bills.json")

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/import", body, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.BillCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().Len(response.Data, 2)
	suite.Assert().Equal("car_registration", response.Data[0].Data.Service)
	suite.Assert().Equal("gym", response.Data[1].Data.Service)
}

func (suite *TestSuiteStandard) TestImportDuplicateService() {
	createTestBill(suite.T(), v1.BillEditable{Service: "gym"})

	body, headers := test.LoadTestFile(suite.T(), "bills.json")

	// The gym bill collides, the registration is still created
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/import", body, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.BillCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Len(response.Data, 2)
}

func (suite *TestSuiteStandard) TestImportNoFile() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/import", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestImportWrongSuffix() {
	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)

	w, err := mw.CreateFormFile("file", "bills.xlsx")
	suite.Require().Nil(err)
	_, err = w.Write([]byte("not a spreadsheet"))
	suite.Require().Nil(err)
	mw.Close()

	headers := map[string]string{"Content-Type": mw.FormDataContentType()}

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/import", body, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.BillCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Contains(*response.Error, ".csv, .json")
}

func (suite *TestSuiteStandard) TestImportUnparseableFile() {
	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)

	w, err := mw.CreateFormFile("file", "bills.json")
	suite.Require().Nil(err)
	_, err = w.Write([]byte(`{"not": "an array"}`))
	suite.Require().Nil(err)
	mw.Close()

	headers := map[string]string{"Content-Type": mw.FormDataContentType()}

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/import", body, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestImportDBClosed() {
	suite.CloseDB()

	body, headers := test.LoadTestFile(suite.T(), "bills.csv")

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/import", body, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
}
