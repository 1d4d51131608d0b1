package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sinking-fund/backend/internal/types"
)

var errMissingColumn = errors.New("missing required column")

// parseCSV reads bill records from a CSV file with a header row. The
// service and amountDue columns are required, all other bill fields are
// optional columns. Column order does not matter.
func parseCSV(f io.Reader) ([]Record, error) {
	reader := csv.NewReader(f)

	header, err := reader.Read()
	if err == io.EOF {
		return []Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read the CSV header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	for _, required := range []string{"service", "amountdue"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("%w: %q", errMissingColumn, required)
		}
	}

	field := func(row []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}

		return strings.TrimSpace(row[i])
	}

	var records []Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return csvReadError(reader, fmt.Errorf("could not read line in CSV: %w", err))
		}

		record := Record{
			Service: field(row, "service"),
			Note:    field(row, "note"),
		}

		record.AmountDue, err = decimal.NewFromString(field(row, "amountdue"))
		if err != nil {
			return csvReadError(reader, errors.New("amountDue could not be parsed to a decimal"))
		}

		if s := field(row, "recurring"); s != "" {
			record.Recurring, err = strconv.ParseBool(s)
			if err != nil {
				return csvReadError(reader, errors.New("recurring could not be parsed to a boolean"))
			}
		}

		for name, target := range map[string]*types.Date{
			"duedate":   &record.DueDate,
			"startdate": &record.StartDate,
			"enddate":   &record.EndDate,
		} {
			s := field(row, name)
			if s == "" {
				continue
			}

			*target, err = types.ParseDate(s)
			if err != nil {
				return csvReadError(reader, fmt.Errorf("%s could not be parsed to a date: %w", name, err))
			}
		}

		record.Frequency = field(row, "frequency")

		for name, target := range map[string]*uint{
			"interval":    &record.Interval,
			"occurrences": &record.Occurrences,
		} {
			s := field(row, name)
			if s == "" {
				continue
			}

			value, err := strconv.ParseUint(s, 10, 32)
			if err != nil {
				return csvReadError(reader, fmt.Errorf("%s could not be parsed to a number", name))
			}

			*target = uint(value)
		}

		records = append(records, record)
	}

	return records, nil
}

// csvReadError returns the error including the line of the input the
// error occurred in.
func csvReadError(r *csv.Reader, err error) ([]Record, error) {
	// always use the first field, we are only interested in the line
	line, _ := r.FieldPos(0)

	return nil, fmt.Errorf("error in line %d of the CSV: %w", line, err)
}
