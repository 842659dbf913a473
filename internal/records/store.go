package records

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

// Header is the fixed first row of the record file.
var Header = []string{"title", "barcode", "genre", "author", "publisher"}

// ErrDuplicate describes a write refused because the barcode is already
// recorded. AppendIfAbsent reports that case with its bool result instead.
var ErrDuplicate = errors.New("a book with this barcode already exists")

// Book is one row of the record file. Barcode is the unique key.
type Book struct {
	Title     string `json:"title"`
	Barcode   string `json:"barcode"`
	Genre     string `json:"genre"`
	Author    string `json:"author"`
	Publisher string `json:"publisher"`
}

func (b Book) row() []string {
	return []string{b.Title, b.Barcode, b.Genre, b.Author, b.Publisher}
}

// Store is an append-only CSV file of books. Every lookup is a full scan of
// the file; there is no index. The mutex makes check-then-append atomic
// within one process only.
type Store struct {
	path string
	mu   sync.RWMutex
}

// NewStore returns a store backed by the file at path. The file is created
// on the first append.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// All returns every row in file order.
func (s *Store) All() ([]Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	books := []Book{}
	err := s.each(func(b Book) bool {
		books = append(books, b)
		return true
	})
	return books, err
}

// Count returns the number of rows, 0 when the file does not exist.
func (s *Store) Count() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	err := s.each(func(Book) bool {
		n++
		return true
	})
	return n, err
}

// Titles returns the title of every row in file order.
func (s *Store) Titles() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	titles := []string{}
	err := s.each(func(b Book) bool {
		titles = append(titles, b.Title)
		return true
	})
	return titles, err
}

// FindByBarcode returns the first row with the given barcode, or nil.
func (s *Store) FindByBarcode(barcode string) (*Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.find(barcode)
}

// Recommend returns up to limit titles with the given genre, skipping rows
// whose title equals exclude exactly.
func (s *Store) Recommend(genre, exclude string, limit int) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := []string{}
	if limit <= 0 {
		return recs, nil
	}
	err := s.each(func(b Book) bool {
		if b.Genre == genre && b.Title != exclude {
			recs = append(recs, b.Title)
		}
		return len(recs) < limit
	})
	return recs, err
}

// Append writes b unconditionally.
func (s *Store) Append(b Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.append(b)
}

// AppendIfAbsent writes b unless a row with the same barcode exists. It
// reports whether the row was written.
func (s *Store) AppendIfAbsent(b Book) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.find(b.Barcode)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	if err := s.append(b); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) find(barcode string) (*Book, error) {
	var found *Book
	err := s.each(func(b Book) bool {
		if b.Barcode == barcode {
			found = &b
			return false
		}
		return true
	})
	return found, err
}

func (s *Store) append(b Book) error {
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open record store: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat record store: %w", err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(Header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	if err := w.Write(b.row()); err != nil {
		return fmt.Errorf("write row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush record store: %w", err)
	}
	return nil
}

// each streams rows to fn until fn returns false. A missing or empty file
// has no rows. Columns are matched by header name.
func (s *Store) each(fn func(Book) bool) error {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("open record store: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	field := func(record []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read row: %w", err)
		}
		b := Book{
			Title:     field(record, "title"),
			Barcode:   field(record, "barcode"),
			Genre:     field(record, "genre"),
			Author:    field(record, "author"),
			Publisher: field(record, "publisher"),
		}
		if !fn(b) {
			return nil
		}
	}
}
