// internal/data/filters.go
package data

import (
	"fmt"
	"strings"

	"github.com/aoideee/inventory-api/internal/validator"
)

// Filters holds the optional narrowing and ordering parameters a caller may
// supply alongside a query or delete. There is no pagination: every query
// materializes its full result set in one call.
type Filters struct {
	Name         string   // Case-insensitive substring match on the product name
	Supplier     string   // Case-insensitive substring match on the supplier name
	Sort         string   // Column name to sort by (prefix with "-" for DESC)
	SortSafeList []string // Allowed sort values to prevent SQL injection
}

// Empty reports whether the filters narrow the result set at all. Ordering
// does not count: a delete with only a sort value set is still a bulk clear.
func (f Filters) Empty() bool {
	return f.Name == "" && f.Supplier == ""
}

// sortColumn returns the validated column name for ORDER BY, defaulting to
// product_id.
func (f Filters) sortColumn() string {
	for _, safe := range f.SortSafeList {
		if f.Sort == safe {
			return strings.TrimPrefix(f.Sort, "-")
		}
	}
	return "product_id" // safe fallback
}

// sortDirection returns "ASC" or "DESC" based on the Sort prefix.
func (f Filters) sortDirection() string {
	if strings.HasPrefix(f.Sort, "-") {
		return "DESC"
	}
	return "ASC"
}

// ValidateFilters rejects sort values outside the safelist.
func ValidateFilters(v *validator.Validator, f Filters) {
	v.Check(validator.In(f.Sort, f.SortSafeList...), "sort", "invalid sort value")
}

// where renders the WHERE clause for the given resource and filters,
// appending the bind values to args so placeholder numbering stays in step
// with whatever the caller has already bound.
func (f Filters) where(res Resource, args *[]any) string {
	var conditions []string

	if id, ok := res.ItemID(); ok {
		*args = append(*args, id)
		conditions = append(conditions, fmt.Sprintf("product_id = $%d", len(*args)))
	}
	if f.Name != "" {
		*args = append(*args, "%"+f.Name+"%")
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", len(*args)))
	}
	if f.Supplier != "" {
		*args = append(*args, "%"+f.Supplier+"%")
		conditions = append(conditions, fmt.Sprintf("supplier_name ILIKE $%d", len(*args)))
	}

	if len(conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conditions, " AND ")
}
