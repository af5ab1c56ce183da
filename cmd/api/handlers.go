// cmd/api/handlers.go
// This file contains all HTTP request handlers for the products resource.
// Each handler is a method on *applicationDependencies so it has access
// to the logger, the store, and the metadata client.
package main

import (
	"errors"
	"net/http"

	"github.com/aoideee/inventory-api/internal/data"
	"github.com/aoideee/inventory-api/internal/validator"
)

// productSortSafeList enumerates every sort value the list endpoint accepts.
var productSortSafeList = []string{
	"product_id", "name", "author", "isbn", "price", "quantity", "supplier_name",
	"-product_id", "-name", "-author", "-isbn", "-price", "-quantity", "-supplier_name",
}

// createProductHandler handles POST /v1/products.
// It reads a JSON body containing the new product's details, validates the
// write-time invariants, inserts a record, and responds with the created
// product (including its database-assigned ID and timestamps) and a
// 201 Created status.
func (app *applicationDependencies) createProductHandler(w http.ResponseWriter, r *http.Request) {
	var input data.CreateProductInput

	// Decode the incoming JSON body into our input struct using the safe readJSON helper.
	// readJSON enforces a 1MB limit, rejects unknown fields, and ensures a single value.
	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	// Map the input fields onto a new Product struct.
	product := &data.Product{
		Name:          input.Name,
		Author:        input.Author,
		Publisher:     input.Publisher,
		ISBN:          input.ISBN,
		Price:         input.Price,
		Quantity:      input.Quantity,
		ImageRef:      input.ImageRef,
		SupplierName:  input.SupplierName,
		SupplierEmail: input.SupplierEmail,
		SupplierPhone: input.SupplierPhone,
	}

	// Enforce the required-field and non-negativity invariants before any
	// write happens. A failure performs no partial write.
	v := validator.New()
	data.ValidateProduct(v, product)
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	// Persist the product. Insert() also writes the auto-generated ID and
	// timestamps back into product.
	err = app.models.Products.Insert(r.Context(), data.Collection(), product)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	// Respond with the fully-populated product and a 201 Created status.
	err = app.writeJSON(w, http.StatusCreated, envelope{"product": product}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// showProductHandler handles GET /v1/products/:id.
// It parses the :id URL parameter and queries the single addressed row.
// Responds 404 if no product with that ID exists.
func (app *applicationDependencies) showProductHandler(w http.ResponseWriter, r *http.Request) {
	res, err := app.readItemResource(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	products, err := app.models.Products.Query(r.Context(), res, nil, data.Filters{})
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	if len(products) == 0 {
		app.notFoundResponse(w, r)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"product": products[0]}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// listProductsHandler handles GET /v1/products.
// Supported query parameters: name and supplier (case-insensitive substring
// filters), sort (safelisted column, "-" prefix for descending), and fields
// (comma-separated column projection). The full result set is returned in
// one response; there is no pagination.
func (app *applicationDependencies) listProductsHandler(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()

	filters := data.Filters{
		Name:         app.readString(qs, "name", ""),
		Supplier:     app.readString(qs, "supplier", ""),
		Sort:         app.readString(qs, "sort", "product_id"),
		SortSafeList: productSortSafeList,
	}
	projection := app.readCSV(qs, "fields", nil)

	v := validator.New()
	data.ValidateFilters(v, filters)
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	products, err := app.models.Products.Query(r.Context(), data.Collection(), projection, filters)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrUnknownColumn):
			app.badRequestResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"products": products}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// updateProductHandler handles PATCH /v1/products/:id.
// It reads a partial JSON body (ProductChanges), validates whichever fields
// were supplied, and applies only those. Responds 404 if the product does
// not exist (the store reports that as an affected-count of 0).
func (app *applicationDependencies) updateProductHandler(w http.ResponseWriter, r *http.Request) {
	res, err := app.readItemResource(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	// Decode the partial update fields from the request body.
	var changes data.ProductChanges
	err = app.readJSON(w, r, &changes)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	data.ValidateChanges(v, &changes)
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	affected, err := app.models.Products.Update(r.Context(), res, changes, data.Filters{})
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	if affected == 0 && !changes.Empty() {
		app.notFoundResponse(w, r)
		return
	}

	// Read the row back so the response reflects what is actually stored.
	products, err := app.models.Products.Query(r.Context(), res, nil, data.Filters{})
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	if len(products) == 0 {
		app.notFoundResponse(w, r)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"product": products[0]}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// deleteProductHandler handles DELETE /v1/products/:id.
// Exactly the addressed row is removed. Responds 404 if no matching record
// exists.
func (app *applicationDependencies) deleteProductHandler(w http.ResponseWriter, r *http.Request) {
	res, err := app.readItemResource(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	affected, err := app.models.Products.Delete(r.Context(), res, data.Filters{})
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	if affected == 0 {
		app.notFoundResponse(w, r)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "product successfully deleted"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// deleteAllProductsHandler handles DELETE /v1/products.
// This is an explicit bulk clear: every row is removed, with no store-side
// safety check. Asking the user to confirm is the client's responsibility.
func (app *applicationDependencies) deleteAllProductsHandler(w http.ResponseWriter, r *http.Request) {
	affected, err := app.models.Products.Delete(r.Context(), data.Collection(), data.Filters{})
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"deleted": affected}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// adjustQuantityHandler handles PATCH /v1/products/:id/quantity.
// The body carries {"delta": n}; the store applies it atomically so two
// concurrent adjustments cannot lose an update or drive the stock negative.
func (app *applicationDependencies) adjustQuantityHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Delta int `json:"delta"`
	}
	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	quantity, err := app.models.Products.AdjustQuantity(r.Context(), id, input.Delta)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, data.ErrInsufficientQuantity):
			app.insufficientQuantityResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"product_id": id, "quantity": quantity}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
