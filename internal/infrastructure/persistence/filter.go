package persistence

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/warehouse/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// column names are interpolated into ORDER BY, so only plain identifiers pass
var columnPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// applyFilter adds ordering and pagination to a query
func applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	orderBy := filter.OrderBy
	if orderBy == "" || !columnPattern.MatchString(orderBy) {
		orderBy = "created_at"
	}
	dir := "desc"
	if strings.EqualFold(filter.OrderDir, "asc") {
		dir = "asc"
	}
	query = query.Order(fmt.Sprintf("%s %s", orderBy, dir))

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	return query
}
