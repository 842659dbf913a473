// Package entry implements the manual "add book" form.
package entry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"bookscan/internal/catalog"
	"bookscan/internal/records"
	"bookscan/internal/resolver"
)

// Form holds the operator's input. Title, barcode and genre are required.
type Form struct {
	Title     string `json:"title" validate:"required"`
	Barcode   string `json:"barcode" validate:"required"`
	Genre     string `json:"genre" validate:"required"`
	Author    string `json:"author"`
	Publisher string `json:"publisher"`
}

// Trimmed returns f with surrounding whitespace removed from every field.
func (f Form) Trimmed() Form {
	return Form{
		Title:     strings.TrimSpace(f.Title),
		Barcode:   strings.TrimSpace(f.Barcode),
		Genre:     strings.TrimSpace(f.Genre),
		Author:    strings.TrimSpace(f.Author),
		Publisher: strings.TrimSpace(f.Publisher),
	}
}

// Book converts the form into a record row.
func (f Form) Book() records.Book {
	return records.Book{
		Title:     f.Title,
		Barcode:   f.Barcode,
		Genre:     f.Genre,
		Author:    f.Author,
		Publisher: f.Publisher,
	}
}

// ConfirmFunc is asked whether to record a barcode that already exists. A
// nil ConfirmFunc declines.
type ConfirmFunc func(existing records.Book) bool

// Outcome reports what Submit did.
type Outcome struct {
	Book      records.Book  `json:"book"`
	Saved     bool          `json:"saved"`
	Duplicate *records.Book `json:"duplicate,omitempty"`
}

type Service struct {
	catalog catalog.Lookuper
	store   *records.Store
	logger  *slog.Logger
}

func NewService(lookup catalog.Lookuper, store *records.Store, logger *slog.Logger) *Service {
	return &Service{catalog: lookup, store: store, logger: logger.With("component", "entry")}
}

// Prefill looks isbn up in the catalog. On a hit every field is filled and
// found is true; otherwise only the barcode is set.
func (s *Service) Prefill(ctx context.Context, isbn string) (form Form, found bool) {
	isbn = strings.TrimSpace(isbn)
	vol, err := s.catalog.LookupISBN(ctx, isbn)
	if err != nil {
		if !errors.Is(err, catalog.ErrNotFound) {
			s.logger.Warn("prefill lookup failed", "isbn", isbn, "error", err)
		}
		return Form{Barcode: isbn}, false
	}

	b := resolver.BookFromVolume(isbn, *vol)
	return Form{
		Title:     b.Title,
		Barcode:   b.Barcode,
		Genre:     b.Genre,
		Author:    b.Author,
		Publisher: b.Publisher,
	}, true
}

// Submit validates f and appends it. A duplicate barcode is only written
// when confirm agrees.
func (s *Service) Submit(f Form, confirm ConfirmFunc) (*Outcome, error) {
	f = f.Trimmed()
	if err := validateForm(f); err != nil {
		return nil, err
	}

	book := f.Book()
	out := &Outcome{Book: book}

	existing, err := s.store.FindByBarcode(book.Barcode)
	if err != nil {
		return nil, fmt.Errorf("checking for duplicates: %w", err)
	}
	if existing != nil {
		out.Duplicate = existing
		if confirm == nil || !confirm(*existing) {
			s.logger.Info("duplicate entry declined", "barcode", book.Barcode)
			return out, nil
		}
	}

	if err := s.store.Append(book); err != nil {
		return nil, fmt.Errorf("saving %s: %w", book.Barcode, err)
	}
	out.Saved = true
	s.logger.Info("book added manually", "barcode", book.Barcode, "title", book.Title, "duplicate", existing != nil)
	return out, nil
}
