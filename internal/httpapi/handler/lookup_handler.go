package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"bookscan/internal/httpapi/dto"
	"bookscan/internal/resolver"

	"github.com/gin-gonic/gin"
)

type Resolver interface {
	Resolve(ctx context.Context, code string) (*resolver.Resolution, error)
	RecommendLocal(genre, exclude string) ([]string, error)
}

type LookupHandler struct {
	resolver Resolver
}

func NewLookupHandler(r Resolver) *LookupHandler {
	return &LookupHandler{resolver: r}
}

func (h *LookupHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/lookup/:code", h.Lookup)
	rg.GET("/recommendations", h.Recommendations)
}

// Lookup handles GET /api/lookup/:code with the same policy as a scan:
// a remote hit is recorded.
func (h *LookupHandler) Lookup(c *gin.Context) {
	code := strings.TrimSpace(c.Param("code"))
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	res, err := h.resolver.Resolve(ctx, code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	status := http.StatusOK
	if !res.Found() {
		status = http.StatusNotFound
	}
	c.JSON(status, res)
}

// Recommendations handles GET /api/recommendations?genre=&exclude=
func (h *LookupHandler) Recommendations(c *gin.Context) {
	genre := strings.TrimSpace(c.Query("genre"))
	if genre == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "genre is required"})
		return
	}

	recs, err := h.resolver.RecommendLocal(genre, c.Query("exclude"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.RecommendationsResponse{Recommendations: recs})
}
