// cmd/api/routes.go
package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// routes registers all HTTP endpoints and returns the configured router
// wrapped in the recoverPanic, rateLimit, and requestID middlewares.
//
// Middleware chain (outermost → innermost):
//
//	recoverPanic → rateLimit → requestID → router
//
// Current endpoints:
//
//	GET    /v1/healthcheck             – liveness and version info
//	POST   /v1/products                – create a new product
//	GET    /v1/products                – list products (filter/sort/fields)
//	DELETE /v1/products                – bulk clear, removes every product
//	GET    /v1/products/:id            – retrieve a single product by ID
//	PATCH  /v1/products/:id            – partially update an existing product
//	DELETE /v1/products/:id            – delete a product by ID
//	PATCH  /v1/products/:id/quantity   – atomically adjust stock by a delta
//	GET    /v1/metadata/:isbn          – look up book metadata for an ISBN
func (app *applicationDependencies) routes() http.Handler {
	router := httprouter.New()

	// Override the default httprouter error handlers to return JSON responses.
	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthcheckHandler)

	// Product CRUD routes
	router.HandlerFunc(http.MethodPost, "/v1/products", app.createProductHandler)
	router.HandlerFunc(http.MethodGet, "/v1/products", app.listProductsHandler)
	router.HandlerFunc(http.MethodDelete, "/v1/products", app.deleteAllProductsHandler)
	router.HandlerFunc(http.MethodGet, "/v1/products/:id", app.showProductHandler)
	router.HandlerFunc(http.MethodPatch, "/v1/products/:id", app.updateProductHandler)
	router.HandlerFunc(http.MethodDelete, "/v1/products/:id", app.deleteProductHandler)
	router.HandlerFunc(http.MethodPatch, "/v1/products/:id/quantity", app.adjustQuantityHandler)

	// ISBN metadata lookup
	router.HandlerFunc(http.MethodGet, "/v1/metadata/:isbn", app.lookupMetadataHandler)

	// Wrap with middleware: recoverPanic is outermost so it catches panics
	// from rateLimit and router alike.
	return app.recoverPanic(app.rateLimit(app.requestID(router)))
}
