package dto

import (
	"bookscan/internal/entry"
	"bookscan/internal/records"
)

// CreateBookRequest is the body of POST /api/books.
type CreateBookRequest struct {
	Title     string `json:"title"`
	Barcode   string `json:"barcode"`
	Genre     string `json:"genre"`
	Author    string `json:"author"`
	Publisher string `json:"publisher"`
	// Force records a barcode that is already present.
	Force bool `json:"force"`
}

func (r CreateBookRequest) Form() entry.Form {
	return entry.Form{
		Title:     r.Title,
		Barcode:   r.Barcode,
		Genre:     r.Genre,
		Author:    r.Author,
		Publisher: r.Publisher,
	}
}

type PrefillRequest struct {
	ISBN string `json:"isbn" binding:"required"`
}

type PrefillResponse struct {
	Found bool       `json:"found"`
	Form  entry.Form `json:"form"`
}

type ListResponse struct {
	Items []records.Book `json:"items"`
	Total int            `json:"total"`
}

type CountResponse struct {
	Total int `json:"total"`
}

type DuplicateResponse struct {
	Error    string       `json:"error"`
	Existing records.Book `json:"existing"`
}

type ValidationResponse struct {
	Error  string             `json:"error"`
	Fields []entry.FieldError `json:"fields"`
}

type RecommendationsResponse struct {
	Recommendations []string `json:"recommendations"`
}
