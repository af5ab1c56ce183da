// internal/data/models.go
package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// ErrRecordNotFound is returned when an operation addresses an id that has
// no matching row.
var ErrRecordNotFound = errors.New("record not found")

// ErrUnknownColumn is returned when a query projection names a column that
// does not exist in the products schema.
var ErrUnknownColumn = errors.New("unknown column in projection")

// ErrInsufficientQuantity is returned by AdjustQuantity when applying the
// delta would take the stock level below zero. The row is left unchanged.
var ErrInsufficientQuantity = errors.New("insufficient quantity")

// ProductStore is the contract the HTTP layer programs against. It is
// satisfied by ProductModel in production and by test doubles in handler
// tests; the caller owns the underlying connection lifecycle.
type ProductStore interface {
	Query(ctx context.Context, res Resource, projection []string, filters Filters) ([]*Product, error)
	Insert(ctx context.Context, res Resource, product *Product) error
	Update(ctx context.Context, res Resource, changes ProductChanges, filters Filters) (int64, error)
	Delete(ctx context.Context, res Resource, filters Filters) (int64, error)
	AdjustQuantity(ctx context.Context, id int64, delta int) (int, error)
}

// Models is a top-level container that groups all database model types
// together. It is passed around the application via applicationDependencies
// so every handler has access to the database without importing sql directly.
type Models struct {
	Products ProductStore // Handles all database operations for the products table
}

// NewModels constructs a Models value wired up to the given database
// connection pool. Call this once during application startup.
func NewModels(db *sqlx.DB) Models {
	return Models{
		Products: ProductModel{DB: db},
	}
}

// ProductModel implements ProductStore against PostgreSQL. Every method is a
// single statement, so each call is atomic in isolation, but a compound
// read-then-write performed across two calls is not; AdjustQuantity exists
// so quantity changes never need that pattern.
type ProductModel struct {
	DB *sqlx.DB // Shared database connection pool
}

// Query retrieves the products addressed by res, narrowed by filters.
// For an item resource the implicit product_id predicate is applied on top
// of any caller-supplied filters. The projection is a subset of columns to
// return; unselected fields are left at their zero value on the returned
// structs, and an unknown column fails with ErrUnknownColumn before any SQL
// runs.
func (m ProductModel) Query(ctx context.Context, res Resource, projection []string, filters Filters) ([]*Product, error) {
	if err := validateProjection(projection); err != nil {
		return nil, err
	}

	args := []any{}
	query := fmt.Sprintf(`
		SELECT %s
		FROM products%s
		ORDER BY %s %s, product_id ASC`,
		selectColumns(projection),
		filters.where(res, &args),
		filters.sortColumn(), filters.sortDirection(),
	)

	products := []*Product{}
	err := m.DB.SelectContext(ctx, &products, query, args...)
	if err != nil {
		return nil, err
	}
	return products, nil
}

// Insert adds a new product record to the database. It is only defined for
// the collection resource. After a successful insert, the database-assigned
// product_id, created_at, and updated_at values are written back into the
// product struct.
//
// Validation of required fields happens before this is called (see
// ValidateProduct); the store never performs a partial write.
func (m ProductModel) Insert(ctx context.Context, res Resource, product *Product) error {
	if _, item := res.ItemID(); item {
		return fmt.Errorf("%w: insert is only supported for the collection", ErrUnsupportedResource)
	}

	query := `
		INSERT INTO products (name, author, publisher, isbn, price, quantity,
		                      image_ref, supplier_name, supplier_email, supplier_phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING product_id, created_at, updated_at`

	// Run the INSERT and scan the auto-generated columns back into the struct.
	return m.DB.QueryRowContext(
		ctx,
		query,
		product.Name,
		product.Author,
		product.Publisher,
		product.ISBN,
		product.Price,
		product.Quantity,
		product.ImageRef,
		product.SupplierName,
		product.SupplierEmail,
		product.SupplierPhone,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

// Update applies the non-nil fields of changes to every row addressed by res
// and filters, and returns the number of rows actually changed. Zero is a
// valid no-op, not an error; callers that care must check the count. An
// empty change set touches nothing and returns 0.
func (m ProductModel) Update(ctx context.Context, res Resource, changes ProductChanges, filters Filters) (int64, error) {
	if changes.Empty() {
		return 0, nil
	}

	args := []any{}
	var assignments []string

	set := func(column string, value any) {
		args = append(args, value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if changes.Name != nil {
		set("name", *changes.Name)
	}
	if changes.Author != nil {
		set("author", *changes.Author)
	}
	if changes.Publisher != nil {
		set("publisher", *changes.Publisher)
	}
	if changes.ISBN != nil {
		set("isbn", *changes.ISBN)
	}
	if changes.Price != nil {
		set("price", *changes.Price)
	}
	if changes.Quantity != nil {
		set("quantity", *changes.Quantity)
	}
	if changes.ImageRef != nil {
		set("image_ref", *changes.ImageRef)
	}
	if changes.SupplierName != nil {
		set("supplier_name", *changes.SupplierName)
	}
	if changes.SupplierEmail != nil {
		set("supplier_email", *changes.SupplierEmail)
	}
	if changes.SupplierPhone != nil {
		set("supplier_phone", *changes.SupplierPhone)
	}
	assignments = append(assignments, "updated_at = CURRENT_TIMESTAMP")

	query := fmt.Sprintf(`UPDATE products SET %s%s`,
		strings.Join(assignments, ", "),
		filters.where(res, &args),
	)

	result, err := m.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Delete removes every row addressed by res and filters and returns the
// number of rows removed. For an item resource this is at most one row. For
// the collection with no filters it removes ALL rows: the store applies no
// safety check of its own, so callers must confirm that intent out-of-band
// before making the call.
func (m ProductModel) Delete(ctx context.Context, res Resource, filters Filters) (int64, error) {
	args := []any{}
	query := "DELETE FROM products" + filters.where(res, &args)

	result, err := m.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// AdjustQuantity changes the stock level of one product by delta (which may
// be negative) in a single atomic statement and returns the new quantity.
// Two concurrent adjustments therefore serialize in the database instead of
// racing through a read-then-write in the caller. A delta that would take
// the quantity below zero fails with ErrInsufficientQuantity and changes
// nothing; an unknown id fails with ErrRecordNotFound.
func (m ProductModel) AdjustQuantity(ctx context.Context, id int64, delta int) (int, error) {
	if id < 1 {
		return 0, ErrRecordNotFound
	}

	query := `
		UPDATE products
		SET quantity = quantity + $1, updated_at = CURRENT_TIMESTAMP
		WHERE product_id = $2 AND quantity + $1 >= 0
		RETURNING quantity`

	var quantity int
	err := m.DB.QueryRowContext(ctx, query, delta, id).Scan(&quantity)
	if err == nil {
		return quantity, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}

	// The guard rejected the update: find out whether the row is missing or
	// the delta would have gone negative.
	var exists bool
	checkErr := m.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM products WHERE product_id = $1)`, id,
	).Scan(&exists)
	if checkErr != nil {
		return 0, checkErr
	}
	if !exists {
		return 0, ErrRecordNotFound
	}
	return 0, ErrInsufficientQuantity
}
