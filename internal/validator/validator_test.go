package validator_test

import (
	"testing"

	"github.com/aoideee/inventory-api/internal/validator"

	"github.com/stretchr/testify/assert"
)

func TestValidator_CheckAccumulates(t *testing.T) {
	v := validator.New()
	assert.True(t, v.Valid())

	v.Check(true, "name", "must be provided")
	assert.True(t, v.Valid())

	v.Check(false, "name", "must be provided")
	v.Check(false, "price", "must not be negative")
	assert.False(t, v.Valid())
	assert.Equal(t, "must be provided", v.Errors["name"])
	assert.Equal(t, "must not be negative", v.Errors["price"])
}

func TestValidator_FirstErrorWins(t *testing.T) {
	v := validator.New()
	v.AddError("isbn", "must be provided")
	v.AddError("isbn", "must be 13 characters")
	assert.Equal(t, "must be provided", v.Errors["isbn"])
}

func TestIn(t *testing.T) {
	assert.True(t, validator.In("name", "product_id", "name", "price"))
	assert.False(t, validator.In("created_by", "product_id", "name", "price"))
}

func TestMatches_Email(t *testing.T) {
	assert.True(t, validator.Matches("orders@acme.example", validator.EmailRX))
	assert.False(t, validator.Matches("not-an-email", validator.EmailRX))
}
