package metadata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_BoundsTheWholeExchange(t *testing.T) {
	c := New("")
	assert.Equal(t, readTimeout, c.http.Timeout)
}

// A server that answers 200 and then drips the body one byte at a time must
// fail within the client's read bound instead of blocking the lookup forever.
// The bound is shortened here; the mechanism under test is the same one New
// configures.
func TestFetchByISBN_StalledBodyTimesOut(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flusher := w.(http.Flusher)
		w.WriteHeader(http.StatusOK)
		flusher.Flush()
		for {
			select {
			case <-r.Context().Done():
				return
			case <-time.After(50 * time.Millisecond):
				w.Write([]byte(" "))
				flusher.Flush()
			}
		}
	}))
	t.Cleanup(server.Close)

	client := New(server.URL)
	client.http.Timeout = 250 * time.Millisecond

	start := time.Now()
	_, err := client.FetchByISBN(context.Background(), "9780156012195")
	elapsed := time.Since(start)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	// The stall is a transport failure, not a shape violation.
	assert.NotErrorIs(t, err, ErrMalformedResponse)
	assert.Less(t, elapsed, 5*time.Second, "lookup did not fail within the read bound")
}
