package metadata_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aoideee/inventory-api/internal/metadata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullResponse = `{
	"totalItems": 2,
	"items": [
		{
			"volumeInfo": {
				"title": "The Little Prince",
				"authors": ["Antoine de Saint-Exupéry", "Richard Howard"],
				"publisher": "Harcourt",
				"industryIdentifiers": [
					{"type": "ISBN_10", "identifier": "0156012197"},
					{"type": "ISBN_13", "identifier": "9780156012195"}
				]
			}
		},
		{
			"volumeInfo": {
				"title": "A Lower-Ranked Match"
			}
		}
	]
}`

// newStubClient serves body with status from a test server and returns a
// client pointed at it.
func newStubClient(t *testing.T, status int, body string) *metadata.Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return metadata.New(server.URL)
}

func TestFetchByISBN_ExtractsQuadrupleFromFirstItem(t *testing.T) {
	client := newStubClient(t, http.StatusOK, fullResponse)

	book, err := client.FetchByISBN(context.Background(), "9780156012195")
	require.NoError(t, err)
	require.NotNil(t, book)

	assert.Equal(t, "The Little Prince", book.Title)
	// Only the first author is taken.
	assert.Equal(t, "Antoine de Saint-Exupéry", book.Author)
	assert.Equal(t, "9780156012195", book.ISBN)
	assert.Equal(t, "Harcourt", book.Publisher)
}

func TestFetchByISBN_SendsQualifiedQuery(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Write([]byte(`{"totalItems": 0}`))
	}))
	t.Cleanup(server.Close)

	client := metadata.New(server.URL)
	_, err := client.FetchByISBN(context.Background(), "9780156012195")
	require.NoError(t, err)
	assert.Equal(t, "isbn:9780156012195", gotQuery)
}

func TestFetchByISBN_NoMatchIsNotAnError(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing items key", `{"totalItems": 0}`},
		{"empty items array", `{"totalItems": 0, "items": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newStubClient(t, http.StatusOK, tt.body)
			book, err := client.FetchByISBN(context.Background(), "9780156012195")
			assert.NoError(t, err)
			assert.Nil(t, book)
		})
	}
}

func TestFetchByISBN_NoISBN13Identifier(t *testing.T) {
	body := `{
		"items": [{
			"volumeInfo": {
				"title": "Identifierless",
				"authors": ["Nobody"],
				"publisher": "Somewhere",
				"industryIdentifiers": [{"type": "ISBN_10", "identifier": "0156012197"}]
			}
		}]
	}`
	client := newStubClient(t, http.StatusOK, body)

	book, err := client.FetchByISBN(context.Background(), "0156012197")
	require.NoError(t, err)
	require.NotNil(t, book)

	assert.Empty(t, book.ISBN)
	assert.Equal(t, "Identifierless", book.Title)
	assert.Equal(t, "Nobody", book.Author)
	assert.Equal(t, "Somewhere", book.Publisher)
}

func TestFetchByISBN_OptionalFieldsAbsent(t *testing.T) {
	client := newStubClient(t, http.StatusOK, `{"items": [{"volumeInfo": {"title": "Bare"}}]}`)

	book, err := client.FetchByISBN(context.Background(), "9780156012195")
	require.NoError(t, err)
	require.NotNil(t, book)
	assert.Equal(t, "Bare", book.Title)
	assert.Empty(t, book.Author)
	assert.Empty(t, book.Publisher)
	assert.Empty(t, book.ISBN)
}

func TestFetchByISBN_MissingTitleIsMalformed(t *testing.T) {
	client := newStubClient(t, http.StatusOK, `{"items": [{"volumeInfo": {"publisher": "Harcourt"}}]}`)

	_, err := client.FetchByISBN(context.Background(), "9780156012195")
	require.Error(t, err)

	var fetchErr *metadata.FetchError
	assert.ErrorAs(t, err, &fetchErr)
	assert.ErrorIs(t, err, metadata.ErrMalformedResponse)
}

func TestFetchByISBN_InvalidJSONIsMalformed(t *testing.T) {
	client := newStubClient(t, http.StatusOK, `<html>not json</html>`)

	_, err := client.FetchByISBN(context.Background(), "9780156012195")
	assert.ErrorIs(t, err, metadata.ErrMalformedResponse)
}

func TestFetchByISBN_Non200Status(t *testing.T) {
	client := newStubClient(t, http.StatusServiceUnavailable, `{}`)

	_, err := client.FetchByISBN(context.Background(), "9780156012195")
	require.Error(t, err)

	var fetchErr *metadata.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "9780156012195", fetchErr.ISBN)
	// An upstream failure is not a shape violation.
	assert.NotErrorIs(t, err, metadata.ErrMalformedResponse)
}

func TestFetchByISBN_UnreachableEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing is listening any more

	client := metadata.New(server.URL)
	_, err := client.FetchByISBN(context.Background(), "9780156012195")

	var fetchErr *metadata.FetchError
	assert.ErrorAs(t, err, &fetchErr)
}

func TestFetchByISBN_EmptyISBN(t *testing.T) {
	client := metadata.New("http://127.0.0.1:1") // must never be contacted

	_, err := client.FetchByISBN(context.Background(), "   ")
	var fetchErr *metadata.FetchError
	assert.ErrorAs(t, err, &fetchErr)
}
