package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"bookscan/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const duneJSON = `{
  "kind": "books#volumes",
  "totalItems": 1,
  "items": [{
    "id": "B1hSG45JCX4C",
    "volumeInfo": {
      "title": "Dune",
      "authors": ["Frank Herbert", "Brian Herbert"],
      "categories": ["Fiction", "Science Fiction"],
      "publisher": "Ace",
      "publishedDate": "1990-09-01",
      "description": "Set on the desert planet Arrakis.",
      "imageLinks": {"thumbnail": "http://books.google.com/dune.jpg"}
    }
  }]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc, mutate ...func(*Options)) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	opts := Options{
		ISBNURL:     srv.URL + "/volumes?q=isbn:{isbn}",
		CategoryURL: srv.URL + "/volumes?q=subject:{category}&maxResults=10",
		Timeout:     2 * time.Second,
		RateLimit:   100,
	}
	for _, m := range mutate {
		m(&opts)
	}
	return NewClient(opts, logging.Discard())
}

func TestLookupISBNFirstMatch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "isbn:9780441172719", r.URL.Query().Get("q"))
		fmt.Fprint(w, duneJSON)
	})

	vol, err := client.LookupISBN(context.Background(), "9780441172719")
	require.NoError(t, err)
	assert.Equal(t, "Dune", vol.Title)
	assert.Equal(t, "Frank Herbert, Brian Herbert", vol.Authors)
	assert.Equal(t, "Fiction", vol.Category)
	assert.Equal(t, "Ace (1990-09-01)", vol.PublisherWithDate())
	assert.Equal(t, "http://books.google.com/dune.jpg", vol.Thumbnail)
}

func TestLookupISBNDefaults(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"totalItems": 1, "items": [{"volumeInfo": {}}]}`)
	})

	vol, err := client.LookupISBN(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, Volume{
		Title:         UnknownTitle,
		Authors:       UnknownAuthor,
		Category:      UnknownCategory,
		Publisher:     UnknownPublisher,
		PublishedDate: UnknownDate,
		Description:   NoDescription,
	}, *vol)
}

func TestLookupISBNFailures(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		notFound bool
	}{
		{
			name:     "zero matches",
			handler:  func(w http.ResponseWriter, r *http.Request) { fmt.Fprint(w, `{"totalItems": 0}`) },
			notFound: true,
		},
		{
			name:     "count without items",
			handler:  func(w http.ResponseWriter, r *http.Request) { fmt.Fprint(w, `{"totalItems": 4}`) },
			notFound: true,
		},
		{
			name:    "server error",
			handler: func(w http.ResponseWriter, r *http.Request) { http.Error(w, "boom", http.StatusServiceUnavailable) },
		},
		{
			name:    "not json",
			handler: func(w http.ResponseWriter, r *http.Request) { fmt.Fprint(w, "<html>quota</html>") },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, tc.handler)
			vol, err := client.LookupISBN(context.Background(), "1")
			require.Error(t, err)
			assert.Nil(t, vol)
			assert.Equal(t, tc.notFound, err == ErrNotFound)
		})
	}
}

func TestNoRetriesByDefault(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.LookupISBN(context.Background(), "1")
	require.Error(t, err)
	assert.EqualValues(t, 1, calls.Load())
}

func TestRetriesWhenConfigured(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, duneJSON)
	}, func(o *Options) { o.MaxRetries = 1 })

	vol, err := client.LookupISBN(context.Background(), "9780441172719")
	require.NoError(t, err)
	assert.Equal(t, "Dune", vol.Title)
	assert.EqualValues(t, 2, calls.Load())
}

func TestAPIKeyIsSent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.URL.Query().Get("key"))
		fmt.Fprint(w, duneJSON)
	}, func(o *Options) { o.APIKey = "secret" })

	_, err := client.LookupISBN(context.Background(), "9780441172719")
	require.NoError(t, err)
}

func TestSearchByCategory(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "subject:Science Fiction", r.URL.Query().Get("q"))
		assert.Equal(t, "10", r.URL.Query().Get("maxResults"))
		fmt.Fprint(w, `{"totalItems": 3, "items": [
			{"volumeInfo": {"title": "Hyperion"}},
			{"volumeInfo": {}},
			{"volumeInfo": {"title": "Foundation"}}
		]}`)
	})

	infos, err := client.SearchByCategory(context.Background(), "Science Fiction")
	require.NoError(t, err)
	require.Len(t, infos, 3)
	assert.Equal(t, "Hyperion", infos[0].Title)
	assert.Empty(t, infos[1].Title)
}

func TestUnreachableCatalog(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	client := NewClient(Options{
		ISBNURL:     addr + "/volumes?q=isbn:{isbn}",
		CategoryURL: addr + "/volumes?q=subject:{category}",
		Timeout:     time.Second,
		RateLimit:   10,
	}, logging.Discard())

	_, err := client.LookupISBN(context.Background(), "1")
	assert.Error(t, err)
}
