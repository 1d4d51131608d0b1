package models

import "encoding/json"

// Model is implemented by all models that can be exported.
type Model interface {
	Export() (json.RawMessage, error)
}

// Registry contains all models that are part of a full data export.
var Registry = []Model{Bill{}}
