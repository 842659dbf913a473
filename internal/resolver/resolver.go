// Package resolver turns a decoded code into a catalog result, falling back
// to the local record store, and records new remote hits.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"bookscan/internal/catalog"
	"bookscan/internal/records"
)

// Source says where a resolution came from.
type Source string

const (
	SourceRemote   Source = "remote"
	SourceLocal    Source = "local"
	SourceNotFound Source = "notfound"
)

// DefaultRecommendationLimit caps recommendation lists.
const DefaultRecommendationLimit = 3

// Resolution is the outcome of resolving one code.
type Resolution struct {
	Code            string          `json:"code"`
	Source          Source          `json:"source"`
	Volume          *catalog.Volume `json:"volume,omitempty"`
	Book            *records.Book   `json:"book,omitempty"`
	Saved           bool            `json:"saved"`
	Recommendations []string        `json:"recommendations"`
}

// Found reports whether either the catalog or the store knew the code.
func (r *Resolution) Found() bool {
	return r.Source != SourceNotFound
}

type Resolver struct {
	catalog  catalog.Lookuper
	store    *records.Store
	recLimit int
	logger   *slog.Logger
}

func New(lookup catalog.Lookuper, store *records.Store, recLimit int, logger *slog.Logger) *Resolver {
	if recLimit <= 0 {
		recLimit = DefaultRecommendationLimit
	}
	return &Resolver{
		catalog:  lookup,
		store:    store,
		recLimit: recLimit,
		logger:   logger.With("component", "resolver"),
	}
}

// BookFromVolume flattens a catalog result into a record row.
func BookFromVolume(code string, v catalog.Volume) records.Book {
	return records.Book{
		Title:     v.Title,
		Barcode:   code,
		Genre:     v.Category,
		Author:    v.Authors,
		Publisher: v.PublisherWithDate(),
	}
}

// Resolve looks code up remotely, then locally. A remote hit is appended to
// the store unless the barcode is already recorded. Catalog failures are
// never returned; only store I/O errors are.
func (r *Resolver) Resolve(ctx context.Context, code string) (*Resolution, error) {
	vol, err := r.catalog.LookupISBN(ctx, code)
	if err == nil {
		return r.remoteHit(ctx, code, vol)
	}
	if errors.Is(err, catalog.ErrNotFound) {
		r.logger.Info("no catalog match", "code", code)
	} else {
		r.logger.Warn("catalog lookup failed", "code", code, "error", err)
	}

	book, err := r.store.FindByBarcode(code)
	if err != nil {
		return nil, fmt.Errorf("reading local records: %w", err)
	}
	if book == nil {
		return &Resolution{Code: code, Source: SourceNotFound, Recommendations: []string{}}, nil
	}

	recs, err := r.store.Recommend(book.Genre, book.Title, r.recLimit)
	if err != nil {
		r.logger.Warn("local recommendations failed", "genre", book.Genre, "error", err)
		recs = []string{}
	}
	return &Resolution{Code: code, Source: SourceLocal, Book: book, Recommendations: recs}, nil
}

func (r *Resolver) remoteHit(ctx context.Context, code string, vol *catalog.Volume) (*Resolution, error) {
	book := BookFromVolume(code, *vol)
	saved, err := r.store.AppendIfAbsent(book)
	if err != nil {
		return nil, fmt.Errorf("saving %s: %w", code, err)
	}
	if saved {
		r.logger.Info("book saved", "code", code, "title", book.Title)
	} else {
		r.logger.Info("book already recorded", "code", code)
	}

	return &Resolution{
		Code:            code,
		Source:          SourceRemote,
		Volume:          vol,
		Book:            &book,
		Saved:           saved,
		Recommendations: r.Recommend(ctx, vol.Category, vol.Title),
	}, nil
}

// Recommend asks the catalog for other titles in category. Any failure
// yields an empty list.
func (r *Resolver) Recommend(ctx context.Context, category, exclude string) []string {
	recs := []string{}
	items, err := r.catalog.SearchByCategory(ctx, category)
	if err != nil {
		r.logger.Warn("recommendations failed", "category", category, "error", err)
		return recs
	}
	for _, item := range items {
		if item.Title == "" || item.Title == exclude {
			continue
		}
		recs = append(recs, item.Title)
		if len(recs) >= r.recLimit {
			break
		}
	}
	return recs
}

// RecommendLocal lists recorded titles of the same genre.
func (r *Resolver) RecommendLocal(genre, exclude string) ([]string, error) {
	return r.store.Recommend(genre, exclude, r.recLimit)
}
