// Package data provides the data models and database interaction logic
// for the inventory management system.
package data

import (
	"time"

	"github.com/aoideee/inventory-api/internal/validator"
)

// Product represents a single inventory record stored in the database.
// It maps directly to a row in the "products" table.
type Product struct {
	ID            int64     `db:"product_id" json:"product_id"`                       // Unique identifier assigned by the database
	Name          string    `db:"name" json:"name"`                                   // Title of the book
	Author        string    `db:"author" json:"author"`                               // Author of the book
	Publisher     string    `db:"publisher" json:"publisher,omitempty"`               // Optional publisher name
	ISBN          string    `db:"isbn" json:"isbn"`                                   // ISBN identifier
	Price         float64   `db:"price" json:"price"`                                 // Unit price, never negative
	Quantity      int       `db:"quantity" json:"quantity"`                           // Units in stock, never negative
	ImageRef      string    `db:"image_ref" json:"image_ref,omitempty"`               // Opaque locator for the cover image, never interpreted here
	SupplierName  string    `db:"supplier_name" json:"supplier_name"`                 // Supplier company name
	SupplierEmail string    `db:"supplier_email" json:"supplier_email,omitempty"`     // Optional supplier contact email
	SupplierPhone string    `db:"supplier_phone" json:"supplier_phone"`               // Supplier contact phone number
	CreatedAt     time.Time `db:"created_at" json:"created_at"`                       // Timestamp when the record was created
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`                       // Timestamp when the record was last modified
}

// CreateProductInput holds the fields a client must supply when creating a new
// product. Publisher, ImageRef and SupplierEmail are optional; everything else
// is required.
type CreateProductInput struct {
	Name          string  `json:"name"`
	Author        string  `json:"author"`
	Publisher     string  `json:"publisher"`
	ISBN          string  `json:"isbn"`
	Price         float64 `json:"price"`
	Quantity      int     `json:"quantity"`
	ImageRef      string  `json:"image_ref"`
	SupplierName  string  `json:"supplier_name"`
	SupplierEmail string  `json:"supplier_email"`
	SupplierPhone string  `json:"supplier_phone"`
}

// ProductChanges holds the fields a client may supply when partially updating
// a product. Every field is a pointer so we can distinguish between "not
// provided" (nil) and "intentionally set to zero/empty". Only non-nil fields
// are applied. The id itself is never updatable.
type ProductChanges struct {
	Name          *string  `json:"name"`
	Author        *string  `json:"author"`
	Publisher     *string  `json:"publisher"`
	ISBN          *string  `json:"isbn"`
	Price         *float64 `json:"price"`
	Quantity      *int     `json:"quantity"`
	ImageRef      *string  `json:"image_ref"`
	SupplierName  *string  `json:"supplier_name"`
	SupplierEmail *string  `json:"supplier_email"`
	SupplierPhone *string  `json:"supplier_phone"`
}

// Empty reports whether the change set contains no fields at all.
func (c ProductChanges) Empty() bool {
	return c.Name == nil && c.Author == nil && c.Publisher == nil &&
		c.ISBN == nil && c.Price == nil && c.Quantity == nil &&
		c.ImageRef == nil && c.SupplierName == nil &&
		c.SupplierEmail == nil && c.SupplierPhone == nil
}

// ValidateProduct checks the write-time invariants for a full product record:
// required fields must be non-empty, price and quantity must not be negative,
// and the supplier email, when present, must look like an email address.
// Failures are recorded field-by-field on the validator.
func ValidateProduct(v *validator.Validator, p *Product) {
	v.Check(p.Name != "", "name", "must be provided")
	v.Check(p.Author != "", "author", "must be provided")
	v.Check(p.ISBN != "", "isbn", "must be provided")
	v.Check(p.Price >= 0, "price", "must not be negative")
	v.Check(p.Quantity >= 0, "quantity", "must not be negative")
	v.Check(p.SupplierName != "", "supplier_name", "must be provided")
	v.Check(p.SupplierPhone != "", "supplier_phone", "must be provided")
	if p.SupplierEmail != "" {
		v.Check(validator.Matches(p.SupplierEmail, validator.EmailRX), "supplier_email", "must be a valid email address")
	}
}

// ValidateChanges checks a partial update for the same invariants as
// ValidateProduct, but only for the fields that are actually supplied.
// A required field may be omitted from a change set, but it may not be
// blanked out.
func ValidateChanges(v *validator.Validator, c *ProductChanges) {
	if c.Name != nil {
		v.Check(*c.Name != "", "name", "must not be empty")
	}
	if c.Author != nil {
		v.Check(*c.Author != "", "author", "must not be empty")
	}
	if c.ISBN != nil {
		v.Check(*c.ISBN != "", "isbn", "must not be empty")
	}
	if c.Price != nil {
		v.Check(*c.Price >= 0, "price", "must not be negative")
	}
	if c.Quantity != nil {
		v.Check(*c.Quantity >= 0, "quantity", "must not be negative")
	}
	if c.SupplierName != nil {
		v.Check(*c.SupplierName != "", "supplier_name", "must not be empty")
	}
	if c.SupplierPhone != nil {
		v.Check(*c.SupplierPhone != "", "supplier_phone", "must not be empty")
	}
	if c.SupplierEmail != nil && *c.SupplierEmail != "" {
		v.Check(validator.Matches(*c.SupplierEmail, validator.EmailRX), "supplier_email", "must be a valid email address")
	}
}
