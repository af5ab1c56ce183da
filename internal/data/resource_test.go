package data

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItem_RejectsNonPositiveIDs(t *testing.T) {
	for _, id := range []int64{0, -1, -42} {
		_, err := Item(id)
		assert.ErrorIs(t, err, ErrUnsupportedResource, "id %d", id)
	}
}

func TestItem_AddressesSingleProduct(t *testing.T) {
	res, err := Item(3)
	require.NoError(t, err)

	id, item := res.ItemID()
	assert.True(t, item)
	assert.Equal(t, int64(3), id)
	assert.Equal(t, "products/3", res.String())
}

func TestCollection_IsNotAnItem(t *testing.T) {
	res := Collection()
	_, item := res.ItemID()
	assert.False(t, item)
	assert.Equal(t, "products", res.String())
}

// Query validates the projection before touching the database, so an unknown
// column must fail even on a model with no connection behind it.
func TestQuery_UnknownProjectionColumn(t *testing.T) {
	m := ProductModel{}
	_, err := m.Query(context.Background(), Collection(), []string{"name", "created_by"}, Filters{})
	assert.ErrorIs(t, err, ErrUnknownColumn)
	assert.Contains(t, err.Error(), "created_by")
}

// Insert is only defined for the collection; addressing an item is a
// programming error reported before any SQL runs.
func TestInsert_ItemResourceUnsupported(t *testing.T) {
	res, err := Item(7)
	require.NoError(t, err)

	m := ProductModel{}
	err = m.Insert(context.Background(), res, validProduct())
	assert.ErrorIs(t, err, ErrUnsupportedResource)
}

func TestSelectColumns(t *testing.T) {
	assert.Equal(t, "name, price", selectColumns([]string{"name", "price"}))
	// Empty projection means every column.
	assert.Contains(t, selectColumns(nil), "product_id")
	assert.Contains(t, selectColumns(nil), "supplier_phone")
}
