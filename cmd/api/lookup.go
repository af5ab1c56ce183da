// cmd/api/lookup.go
// Handlers that do not touch the products table: the healthcheck and the
// ISBN metadata lookup used to pre-fill a new product entry.
package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// healthcheckHandler handles GET /v1/healthcheck.
func (app *applicationDependencies) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	payload := envelope{
		"status": "available",
		"system_info": map[string]string{
			"environment": app.config.environment,
			"version":     appVersion,
		},
	}

	err := app.writeJSON(w, http.StatusOK, payload, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// lookupMetadataHandler handles GET /v1/metadata/:isbn.
// It queries the remote book catalog and returns the bibliographic
// quadruple for the best match. A lookup that finds nothing responds 404;
// an unreachable or misbehaving upstream responds 502. The client shows
// its own "no match"/"offline" states and lets the user edit the result
// before submitting it as a normal product insert.
func (app *applicationDependencies) lookupMetadataHandler(w http.ResponseWriter, r *http.Request) {
	params := httprouter.ParamsFromContext(r.Context())
	isbn := params.ByName("isbn")

	book, err := app.metadata.FetchByISBN(r.Context(), isbn)
	if err != nil {
		app.upstreamErrorResponse(w, r, err)
		return
	}

	// (nil, nil) means the catalog had no match for this ISBN.
	if book == nil {
		app.notFoundResponse(w, r)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"book": book}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
