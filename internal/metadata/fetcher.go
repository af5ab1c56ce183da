// Package metadata resolves an ISBN to bibliographic metadata by querying
// the Google Books volumes API. The result is a pre-fill aid for the caller:
// nothing here ever writes to the product store.
package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the volumes search endpoint queried for ISBN lookups.
const DefaultBaseURL = "https://www.googleapis.com/books/v1/volumes"

const (
	connectTimeout = 15 * time.Second
	readTimeout    = 10 * time.Second
)

// isbn13Type is the industryIdentifiers entry type we extract.
const isbn13Type = "ISBN_13"

// ErrMalformedResponse indicates the endpoint answered 200 but the body did
// not have the shape the volumes API promises (most importantly, a result
// item without a title). It is always wrapped in a *FetchError, so use
// errors.Is to detect it.
var ErrMalformedResponse = errors.New("malformed volumes response")

// FetchError reports a failed lookup: a transport problem, a non-200 status,
// or a response body that could not be interpreted. Lookups are never
// retried here; the caller degrades to manual entry.
type FetchError struct {
	ISBN string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching metadata for isbn %q: %v", e.ISBN, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Book is the bibliographic quadruple extracted from the best-ranked search
// result. Any field other than Title may be empty when the source does not
// carry it.
type Book struct {
	Title     string `json:"title"`
	Author    string `json:"author,omitempty"`
	ISBN      string `json:"isbn,omitempty"`
	Publisher string `json:"publisher,omitempty"`
}

// Client is a Google Books volumes API client. The zero value is not usable;
// construct one with New.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client against the given volumes endpoint. If baseURL is
// empty, the public Google Books API is used.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			// Timeout bounds the whole exchange including the body read, so
			// a server that sends headers and then stalls fails instead of
			// hanging the lookup. The transport-level timeouts below bound
			// the individual connect and first-byte phases within that.
			Timeout: readTimeout,
			Transport: &http.Transport{
				DialContext:           (&net.Dialer{Timeout: connectTimeout}).DialContext,
				ResponseHeaderTimeout: readTimeout,
			},
		},
	}
}

// volumesResponse mirrors the slice of the volumes API document we care
// about: {items: [{volumeInfo: {title, authors, publisher,
// industryIdentifiers: [{type, identifier}]}}]}.
type volumesResponse struct {
	Items []struct {
		VolumeInfo struct {
			Title               string   `json:"title"`
			Authors             []string `json:"authors"`
			Publisher           string   `json:"publisher"`
			IndustryIdentifiers []struct {
				Type       string `json:"type"`
				Identifier string `json:"identifier"`
			} `json:"industryIdentifiers"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

// FetchByISBN queries the volumes endpoint with q=isbn:<isbn> and extracts
// title, first author, publisher, and ISBN-13 from the first result. The
// search service's own ranking is trusted: only the first item is read.
//
// A missing or empty items array returns (nil, nil), meaning no match; that
// is an expected outcome, not an error. Transport failures, non-200
// statuses, and shape violations return a *FetchError, with
// ErrMalformedResponse wrapped for the shape cases.
func (c *Client) FetchByISBN(ctx context.Context, isbn string) (*Book, error) {
	isbn = strings.TrimSpace(isbn)
	if isbn == "" {
		return nil, &FetchError{ISBN: isbn, Err: errors.New("isbn must be provided")}
	}

	reqURL := c.baseURL + "?q=" + url.QueryEscape("isbn:"+isbn)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &FetchError{ISBN: isbn, Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &FetchError{ISBN: isbn, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{ISBN: isbn, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var payload volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		// A timeout while reading the body is a transport failure, not a
		// shape violation: don't mislabel it as a malformed response.
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, &FetchError{ISBN: isbn, Err: err}
		}
		return nil, &FetchError{ISBN: isbn, Err: fmt.Errorf("%w: %v", ErrMalformedResponse, err)}
	}

	// No match. The caller falls back to manual entry.
	if len(payload.Items) == 0 {
		return nil, nil
	}

	info := payload.Items[0].VolumeInfo
	if info.Title == "" {
		return nil, &FetchError{ISBN: isbn, Err: fmt.Errorf("%w: result item has no title", ErrMalformedResponse)}
	}

	book := &Book{
		Title:     info.Title,
		Publisher: info.Publisher,
	}
	if len(info.Authors) > 0 {
		book.Author = info.Authors[0]
	}
	for _, ident := range info.IndustryIdentifiers {
		if ident.Type == isbn13Type {
			book.ISBN = ident.Identifier
			break
		}
	}

	return book, nil
}
