package v1

import (
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sinking-fund/backend/internal/httputil"
	"github.com/sinking-fund/backend/internal/importer"
	"github.com/sinking-fund/backend/internal/models"
)

// RegisterImportRoutes registers the routes for imports with
// the RouterGroup that is passed.
func RegisterImportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsImport)
	r.POST("", CreateImport)
}

// OptionsImport returns the allowed HTTP verbs for the import endpoint.
func OptionsImport(c *gin.Context) {
	httputil.OptionsPost(c)
}

// getUploadedFile returns the form file and handles potential errors.
func getUploadedFile(c *gin.Context) (multipart.File, importer.Format, error) {
	formFile, err := c.FormFile("file")
	if formFile == nil {
		return nil, "", errNoFilePost
	}

	if err != nil {
		return nil, "", err
	}

	format, err := importer.FormatFromFilename(formFile.Filename)
	if err != nil {
		return nil, "", fmt.Errorf("%w: .csv, .json", errWrongFileSuffix)
	}

	f, err := formFile.Open()
	if err != nil {
		return nil, "", err
	}

	return f, format, nil
}

// CreateImport parses an uploaded CSV or JSON file and creates a bill
// for every record in it. Per-record errors are collected in the
// response, valid records are still created.
func CreateImport(c *gin.Context) {
	f, format, err := getUploadedFile(c)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, BillCreateResponse{
			Error: &e,
		})
		return
	}
	defer f.Close()

	records, err := importer.Parse(f, format)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, BillCreateResponse{
			Error: &e,
		})
		return
	}

	status := http.StatusCreated
	r := BillCreateResponse{}

	for _, record := range records {
		bill := record.Model()

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
