package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"bookscan/internal/entry"
	"bookscan/internal/httpapi/dto"
	"bookscan/internal/records"

	"github.com/gin-gonic/gin"
)

type BookStore interface {
	All() ([]records.Book, error)
	Count() (int, error)
}

type EntryService interface {
	Prefill(ctx context.Context, isbn string) (entry.Form, bool)
	Submit(f entry.Form, confirm entry.ConfirmFunc) (*entry.Outcome, error)
}

type BookHandler struct {
	store   BookStore
	entries EntryService
}

func NewBookHandler(store BookStore, entries EntryService) *BookHandler {
	return &BookHandler{store: store, entries: entries}
}

func (h *BookHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/count", h.Count)
	rg.POST("", h.Create)
	rg.POST("/prefill", h.Prefill)
}

// List handles GET /api/books
func (h *BookHandler) List(c *gin.Context) {
	books, err := h.store.All()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if books == nil {
		books = []records.Book{}
	}
	c.JSON(http.StatusOK, dto.ListResponse{Items: books, Total: len(books)})
}

// Count handles GET /api/books/count
func (h *BookHandler) Count(c *gin.Context) {
	n, err := h.store.Count()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.CountResponse{Total: n})
}

// Create handles POST /api/books. A known barcode answers 409 unless the
// request sets force.
func (h *BookHandler) Create(c *gin.Context) {
	var in dto.CreateBookRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := h.entries.Submit(in.Form(), func(records.Book) bool { return in.Force })
	if err != nil {
		var verr *entry.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, dto.ValidationResponse{Error: entry.ErrInvalid.Error(), Fields: verr.Fields})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if !out.Saved && out.Duplicate != nil {
		c.JSON(http.StatusConflict, dto.DuplicateResponse{
			Error:    records.ErrDuplicate.Error(),
			Existing: *out.Duplicate,
		})
		return
	}
	c.JSON(http.StatusCreated, out.Book)
}

// Prefill handles POST /api/books/prefill
func (h *BookHandler) Prefill(c *gin.Context) {
	var in dto.PrefillRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	form, found := h.entries.Prefill(ctx, in.ISBN)
	c.JSON(http.StatusOK, dto.PrefillResponse{Found: found, Form: form})
}
