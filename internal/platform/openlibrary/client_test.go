package openlibrary

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient(srv.URL, "bookmanager-test", 100), srv
}

func TestFetchByISBN_NormalizesFullRecord(t *testing.T) {
	const isbn = "9780140328721"
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ISBN:"+isbn, r.URL.Query().Get("bibkeys"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "data", r.URL.Query().Get("jscmd"))
		w.Write([]byte(`{"ISBN:9780140328721":{"title":"Matilda","publishers":["Puffin"],"publish_date":"1988","description":{"value":"A story about a gifted girl"}}}`))
	})
	defer srv.Close()

	data, err := client.FetchByISBN(context.Background(), isbn)
	require.NoError(t, err)

	assert.Equal(t, "Matilda", data.Title)
	assert.Equal(t, "Puffin", data.Publisher)
	assert.Equal(t, "1988", data.PublishedDate)
	assert.Equal(t, "A story about a gifted girl", data.Description)
	assert.True(t, strings.HasSuffix(data.CoverURL, "9780140328721-L.jpg"))
}

func TestFetchByISBN_DescriptionAsPlainString(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ISBN:123":{"title":"T","description":"plain text"}}`))
	})
	defer srv.Close()

	data, err := client.FetchByISBN(context.Background(), "123")
	require.NoError(t, err)
	assert.Equal(t, "plain text", data.Description)
}

func TestFetchByISBN_DefaultsForMissingFields(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ISBN:555":{"publishers":[]}}`))
	})
	defer srv.Close()

	data, err := client.FetchByISBN(context.Background(), "555")
	require.NoError(t, err)
	assert.Equal(t, "", data.Title)
	assert.Equal(t, "", data.Publisher)
	assert.Equal(t, "", data.PublishedDate)
	assert.Equal(t, "", data.Description)
	// the cover URL is synthesized, never taken from the response
	assert.Contains(t, data.CoverURL, "555")
}

func TestFetchByISBN_NoData(t *testing.T) {
	t.Run("missing bibkey", func(t *testing.T) {
		client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		})
		defer srv.Close()

		_, err := client.FetchByISBN(context.Background(), "0000000000")
		assert.True(t, errors.Is(err, ErrNoData))
	})

	t.Run("empty entry", func(t *testing.T) {
		client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"ISBN:0000000000":{}}`))
		})
		defer srv.Close()

		_, err := client.FetchByISBN(context.Background(), "0000000000")
		assert.True(t, errors.Is(err, ErrNoData))
	})
}

func TestFetchByISBN_TransportAndParseFailures(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		defer srv.Close()

		_, err := client.FetchByISBN(context.Background(), "123")
		assert.True(t, errors.Is(err, ErrUnavailable))
	})

	t.Run("empty body", func(t *testing.T) {
		client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {})
		defer srv.Close()

		_, err := client.FetchByISBN(context.Background(), "123")
		assert.True(t, errors.Is(err, ErrUnavailable))
	})

	t.Run("garbage body", func(t *testing.T) {
		client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json at all`))
		})
		defer srv.Close()

		_, err := client.FetchByISBN(context.Background(), "123")
		assert.True(t, errors.Is(err, ErrUnavailable))
	})

	t.Run("unreachable host", func(t *testing.T) {
		client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {})
		srv.Close()

		_, err := client.FetchByISBN(context.Background(), "123")
		assert.True(t, errors.Is(err, ErrUnavailable))
	})
}
