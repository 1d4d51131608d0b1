package v1

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/sinking-fund/backend/internal/httputil"
	"github.com/sinking-fund/backend/internal/models"
	"github.com/sinking-fund/backend/internal/types"
)

// RegisterBillRoutes registers the routes for bills with
// the RouterGroup that is passed.
func RegisterBillRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsBillList)
		r.GET("", GetBills)
		r.POST("", CreateBills)
	}

	// Bill with ID
	{
		r.OPTIONS("/:id", OptionsBillDetail)
		r.GET("/:id", GetBill)
		r.PATCH("/:id", UpdateBill)
		r.DELETE("/:id", DeleteBill)
	}

	// Next occurrence of a bill
	{
		r.OPTIONS("/:id/next", OptionsBillNext)
		r.GET("/:id/next", GetBillNext)
	}
}

// OptionsBillList returns the allowed HTTP verbs for the bill list endpoint.
func OptionsBillList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsBillDetail returns the allowed HTTP verbs for a specific bill.
func OptionsBillDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var bill models.Bill
	err = models.DB.First(&bill, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// OptionsBillNext returns the allowed HTTP verbs for the next occurrence endpoint.
func OptionsBillNext(c *gin.Context) {
	httputil.OptionsGet(c)
}

// CreateBills creates new bills.
func CreateBills(c *gin.Context) {
	var editables []BillEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BillCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := BillCreateResponse{}

	for _, editable := range editables {
		bill := editable.model()

		err := models.DB.Create(&bill).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newBill(c, bill)
		r.Data = append(r.Data, BillResponse{Data: &data})
	}

	c.JSON(status, r)
}

// GetBills returns a list of bills, filtered by the query parameters.
func GetBills(c *gin.Context) {
	var filter BillQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we're filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	var bills []models.Bill

	// Always sort by service name
	q := models.DB.
		Order("service ASC").
		Where(filter.model(), queryFields...)

	q = stringFilters(models.DB, q, setFields, filter.Service, filter.Note, filter.Search)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to all bills and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	err := q.Find(&bills).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BillListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BillListResponse{
			Error: &e,
		})
		return
	}

	apiResources := make([]Bill, 0)
	for _, bill := range bills {
		apiResources = append(apiResources, newBill(c, bill))
	}

	c.JSON(http.StatusOK, BillListResponse{
		Data: apiResources,
		Pagination: &Pagination{
			Count:  len(apiResources),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// GetBill returns a specific bill.
func GetBill(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BillResponse{
			Error: &s,
		})
		return
	}

	var bill models.Bill
	err = models.DB.First(&bill, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BillResponse{
			Error: &s,
		})
		return
	}

	apiResource := newBill(c, bill)
	c.JSON(http.StatusOK, BillResponse{Data: &apiResource})
}

// GetBillNext returns the next occurrence of a bill on or after the
// reference date. The reference date defaults to today.
func GetBillNext(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BillInstanceResponse{
			Error: &s,
		})
		return
	}

	reference := types.Today()
	if param := c.Query("reference"); param != "" {
		reference, err = types.ParseDate(param)
		if err != nil {
			s := err.Error()
			c.JSON(http.StatusBadRequest, BillInstanceResponse{
				Error: &s,
			})
			return
		}
	}

	var bill models.Bill
	err = models.DB.First(&bill, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BillInstanceResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, BillInstanceResponse{
		Data: bill.NextInstance(reference),
	})
}

// UpdateBill updates an existing bill. Only values to be updated need to be specified.
func UpdateBill(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BillResponse{
			Error: &s,
		})
		return
	}

	var bill models.Bill
	err = models.DB.First(&bill, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BillResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, BillEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BillResponse{
			Error: &s,
		})
		return
	}

	var data BillEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BillResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&bill).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BillResponse{
			Error: &s,
		})
		return
	}

	apiResource := newBill(c, bill)
	c.JSON(http.StatusOK, BillResponse{Data: &apiResource})
}

// DeleteBill deletes a bill.
func DeleteBill(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var bill models.Bill
	err = models.DB.First(&bill, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&bill).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}
