package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// parseJSON reads bill records from a JSON array. Each element is
// decoded individually so that errors carry the position of the
// offending record.
func parseJSON(f io.Reader) ([]Record, error) {
	decoder := json.NewDecoder(f)
	decoder.DisallowUnknownFields()

	token, err := decoder.Token()
	if err != nil {
		return nil, fmt.Errorf("could not read the JSON document: %w", err)
	}

	if delim, ok := token.(json.Delim); !ok || delim != '[' {
		return nil, errors.New("the JSON document must be an array of records")
	}

	var records []Record
	for decoder.More() {
		var record Record
		if err := decoder.Decode(&record); err != nil {
			return nil, fmt.Errorf("error in record %d of the JSON document: %w", len(records)+1, err)
		}

		records = append(records, record)
	}

	if records == nil {
		records = []Record{}
	}

	return records, nil
}
