// internal/data/resource.go
package data

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedResource is returned when an operation is asked to address
// something the store does not route: a non-positive item id, or an operation
// that is only defined for one of the two addressing modes (inserting against
// a single item, for example). Callers should treat it as a programming
// error, not a retryable condition.
var ErrUnsupportedResource = errors.New("unsupported resource")

// Resource identifies what a store operation addresses: either the whole
// products collection, or a single product by its store-assigned id.
// The zero value is the collection.
type Resource struct {
	item bool
	id   int64
}

// Collection returns the resource addressing all products.
func Collection() Resource {
	return Resource{}
}

// Item returns the resource addressing the single product with the given id.
// Ids are store-assigned and start at 1, so anything below that fails with
// ErrUnsupportedResource.
func Item(id int64) (Resource, error) {
	if id < 1 {
		return Resource{}, fmt.Errorf("%w: item id %d", ErrUnsupportedResource, id)
	}
	return Resource{item: true, id: id}, nil
}

// ItemID returns the addressed product id and true if the resource is a
// single item, or 0 and false for the collection.
func (r Resource) ItemID() (int64, bool) {
	return r.id, r.item
}

// String renders the resource for log and error messages.
func (r Resource) String() string {
	if r.item {
		return fmt.Sprintf("products/%d", r.id)
	}
	return "products"
}

// productColumns is the set of columns a caller may name in a query
// projection, in schema order.
var productColumns = []string{
	"product_id",
	"name",
	"author",
	"publisher",
	"isbn",
	"price",
	"quantity",
	"image_ref",
	"supplier_name",
	"supplier_email",
	"supplier_phone",
	"created_at",
	"updated_at",
}

// validateProjection checks every requested column against the schema
// safelist, both to honour the contract (unknown columns are an error) and
// to keep caller input out of the generated SQL.
func validateProjection(projection []string) error {
	for _, col := range projection {
		known := false
		for _, c := range productColumns {
			if col == c {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("%w: %q", ErrUnknownColumn, col)
		}
	}
	return nil
}

// selectColumns renders a projection as a SELECT column list, defaulting to
// every column when the projection is empty.
func selectColumns(projection []string) string {
	if len(projection) == 0 {
		return strings.Join(productColumns, ", ")
	}
	return strings.Join(projection, ", ")
}
