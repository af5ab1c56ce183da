package data

import (
	"testing"

	"github.com/aoideee/inventory-api/internal/validator"

	"github.com/stretchr/testify/assert"
)

// validProduct returns a product that passes every write-time check.
func validProduct() *Product {
	return &Product{
		Name:          "The Little Prince",
		Author:        "A. de Saint-Exupéry",
		ISBN:          "9780156012195",
		Price:         6.35,
		Quantity:      10,
		SupplierName:  "Acme",
		SupplierPhone: "555-0000",
	}
}

func TestValidateProduct_Valid(t *testing.T) {
	v := validator.New()
	ValidateProduct(v, validProduct())
	assert.True(t, v.Valid(), "unexpected errors: %v", v.Errors)
}

func TestValidateProduct_RequiredFields(t *testing.T) {
	tests := []struct {
		field  string
		mutate func(*Product)
	}{
		{"name", func(p *Product) { p.Name = "" }},
		{"author", func(p *Product) { p.Author = "" }},
		{"isbn", func(p *Product) { p.ISBN = "" }},
		{"supplier_name", func(p *Product) { p.SupplierName = "" }},
		{"supplier_phone", func(p *Product) { p.SupplierPhone = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			p := validProduct()
			tt.mutate(p)

			v := validator.New()
			ValidateProduct(v, p)

			assert.False(t, v.Valid())
			assert.Contains(t, v.Errors, tt.field)
		})
	}
}

func TestValidateProduct_NegativeValues(t *testing.T) {
	p := validProduct()
	p.Price = -0.01
	p.Quantity = -1

	v := validator.New()
	ValidateProduct(v, p)

	assert.Contains(t, v.Errors, "price")
	assert.Contains(t, v.Errors, "quantity")
}

func TestValidateProduct_SupplierEmail(t *testing.T) {
	p := validProduct()
	p.SupplierEmail = "orders@acme.example"
	v := validator.New()
	ValidateProduct(v, p)
	assert.True(t, v.Valid())

	p.SupplierEmail = "not-an-email"
	v = validator.New()
	ValidateProduct(v, p)
	assert.Contains(t, v.Errors, "supplier_email")

	// Absent email is fine: the field is optional.
	p.SupplierEmail = ""
	v = validator.New()
	ValidateProduct(v, p)
	assert.True(t, v.Valid())
}

func TestValidateChanges_OmittedFieldsPass(t *testing.T) {
	v := validator.New()
	ValidateChanges(v, &ProductChanges{})
	assert.True(t, v.Valid())
}

func TestValidateChanges_BlankedRequiredFieldFails(t *testing.T) {
	blank := ""
	v := validator.New()
	ValidateChanges(v, &ProductChanges{Name: &blank})
	assert.Contains(t, v.Errors, "name")
}

func TestValidateChanges_NegativeValuesFail(t *testing.T) {
	price := -1.0
	quantity := -3
	v := validator.New()
	ValidateChanges(v, &ProductChanges{Price: &price, Quantity: &quantity})
	assert.Contains(t, v.Errors, "price")
	assert.Contains(t, v.Errors, "quantity")
}

func TestProductChanges_Empty(t *testing.T) {
	assert.True(t, ProductChanges{}.Empty())

	name := "New Title"
	assert.False(t, ProductChanges{Name: &name}.Empty())
}
