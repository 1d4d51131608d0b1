package v1

import (
	"fmt"
	"slices"

	"gorm.io/gorm"
)

func stringFilters(db, query *gorm.DB, setFields []string, service, note, search string) *gorm.DB {
	if service != "" {
		query = query.Where("service LIKE ?", fmt.Sprintf("%%%s%%", service))
	} else if slices.Contains(setFields, "Service") {
		query = query.Where("service = ''")
	}

	if note != "" {
		query = query.Where("note LIKE ?", fmt.Sprintf("%%%s%%", note))
	} else if slices.Contains(setFields, "Note") {
		query = query.Where("note = ''")
	}

	if search != "" {
		query = query.Where(
			db.Where("note LIKE ?", fmt.Sprintf("%%%s%%", search)).Or(
				db.Where("service LIKE ?", fmt.Sprintf("%%%s%%", search)),
			),
		)
	}

	return query
}
