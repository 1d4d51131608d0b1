// Package importer parses bill records from CSV and JSON files.
package importer

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sinking-fund/backend/internal/models"
	"github.com/sinking-fund/backend/internal/types"
)

// Format is a supported file format for bill imports.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

var ErrUnknownFormat = errors.New("unknown import format, supported formats are .csv and .json")

// FormatFromFilename derives the import format from a file name's
// extension.
func FormatFromFilename(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Record is one imported bill before persistence. Validation beyond
// field syntax happens when the record is saved as a bill.
type Record struct {
	Service     string          `json:"service"`
	Note        string          `json:"note"`
	AmountDue   decimal.Decimal `json:"amountDue"`
	Recurring   bool            `json:"recurring"`
	DueDate     types.Date      `json:"dueDate"`
	StartDate   types.Date      `json:"startDate"`
	EndDate     types.Date      `json:"endDate"`
	Frequency   string          `json:"frequency"`
	Interval    uint            `json:"interval"`
	Occurrences uint            `json:"occurrences"`
}

// Model converts the record to an unsaved bill.
func (r Record) Model() models.Bill {
	return models.Bill{
		Service:     r.Service,
		Note:        r.Note,
		AmountDue:   r.AmountDue,
		Recurring:   r.Recurring,
		DueDate:     r.DueDate,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		Frequency:   types.Frequency(r.Frequency),
		Interval:    r.Interval,
		Occurrences: r.Occurrences,
	}
}

// Parse reads all bill records from the reader in the given format.
func Parse(f io.Reader, format Format) ([]Record, error) {
	switch format {
	case FormatCSV:
		return parseCSV(f)
	case FormatJSON:
		return parseJSON(f)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}
