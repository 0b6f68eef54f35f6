package metadata

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*OpenLibraryClient, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewOpenLibraryClient()
	client.SetBaseURLs(server.URL, server.URL)
	return client, server
}

func TestSearchByISBN(t *testing.T) {
	t.Run("returns metadata with cover", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/isbn/9781526622426.json", r.URL.Path)
			fmt.Fprint(w, `{"title": "Piranesi", "number_of_pages": 272, "covers": [10520611]}`)
		})
		defer server.Close()

		meta, err := client.SearchByISBN(context.Background(), "9781526622426")
		require.NoError(t, err)
		assert.Equal(t, "Piranesi", meta.Title)
		assert.Equal(t, 272, meta.PageCount)
		assert.Equal(t, server.URL+"/b/id/10520611-L.jpg", meta.CoverURL)
	})

	t.Run("normalizes separators", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/isbn/9781526622426.json", r.URL.Path)
			fmt.Fprint(w, `{"title": "Piranesi"}`)
		})
		defer server.Close()

		meta, err := client.SearchByISBN(context.Background(), "978-1-5266-2242-6")
		require.NoError(t, err)
		assert.Equal(t, "9781526622426", meta.ISBN)
	})

	t.Run("rejects malformed isbn", func(t *testing.T) {
		client := NewOpenLibraryClient()
		_, err := client.SearchByISBN(context.Background(), "12345")
		assert.Error(t, err)
	})

	t.Run("unknown isbn", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		defer server.Close()

		_, err := client.SearchByISBN(context.Background(), "9781526622426")
		assert.Error(t, err)
	})

	t.Run("no cover in response", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"title": "Piranesi", "number_of_pages": 272}`)
		})
		defer server.Close()

		meta, err := client.SearchByISBN(context.Background(), "9781526622426")
		require.NoError(t, err)
		assert.Empty(t, meta.CoverURL)
	})
}

func TestNormalizeISBN(t *testing.T) {
	assert.Equal(t, "9781526622426", normalizeISBN("978-1-5266-2242-6"))
	assert.Equal(t, "0552124753", normalizeISBN("0 552 12475 3"))
	assert.Equal(t, "", normalizeISBN("123"))
	assert.Equal(t, "", normalizeISBN(""))
}
