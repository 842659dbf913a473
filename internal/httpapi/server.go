// Package httpapi serves the book log over a local JSON API.
package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"bookscan/internal/httpapi/handler"
	"bookscan/internal/httpapi/middleware"

	"github.com/gin-gonic/gin"
)

// Deps are the services behind the routes.
type Deps struct {
	Store    handler.BookStore
	Entries  handler.EntryService
	Resolver handler.Resolver
}

// NewRouter wires every route under /api plus /healthz.
func NewRouter(deps Deps, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger.With("component", "http")))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	handler.NewBookHandler(deps.Store, deps.Entries).RegisterRoutes(api.Group("/books"))
	handler.NewLookupHandler(deps.Resolver).RegisterRoutes(api)
	return r
}

// Serve runs h on addr until ctx is done, then drains in-flight requests.
func Serve(ctx context.Context, addr string, h http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logger.Info("http server shutting down")
	return srv.Shutdown(shutdownCtx)
}
