package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"bookscan/internal/catalog"
	"bookscan/internal/entry"
	"bookscan/internal/httpapi/middleware"
	"bookscan/internal/logging"
	"bookscan/internal/records"
	"bookscan/internal/resolver"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type offlineCatalog struct{}

func (offlineCatalog) LookupISBN(context.Context, string) (*catalog.Volume, error) {
	return nil, catalog.ErrNotFound
}

func (offlineCatalog) SearchByCategory(context.Context, string) ([]catalog.VolumeInfo, error) {
	return nil, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *records.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := logging.Discard()
	store := records.NewStore(filepath.Join(t.TempDir(), "books.csv"))
	return NewRouter(Deps{
		Store:    store,
		Entries:  entry.NewService(offlineCatalog{}, store, logger),
		Resolver: resolver.New(offlineCatalog{}, store, 3, logger),
	}, logger), store
}

func post(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAddBookFlow(t *testing.T) {
	r, store := newTestRouter(t)

	w := post(r, "/api/books", `{"title":"  ","barcode":"42","genre":"Fiction"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = post(r, "/api/books", `{"title":"Dune","barcode":"42","genre":"Fiction"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = post(r, "/api/books", `{"title":"Dune again","barcode":"42","genre":"Fiction"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), `"Dune"`)

	w = post(r, "/api/books", `{"title":"Dune again","barcode":"42","genre":"Fiction","force":true}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	n, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestLookupFallsBackToStore(t *testing.T) {
	r, store := newTestRouter(t)
	require.NoError(t, store.Append(records.Book{Title: "Dune", Barcode: "42", Genre: "Fiction"}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/lookup/42", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"source":"local"`)
}

func TestRequestIDHeader(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, w.Header().Get(middleware.RequestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get(middleware.RequestIDHeader))
}
