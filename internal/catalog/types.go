package catalog

import (
	"fmt"
	"strings"
)

// Placeholders used when the catalog omits a field.
const (
	UnknownTitle     = "Unknown Title"
	UnknownAuthor    = "Unknown Author"
	UnknownCategory  = "Unknown"
	UnknownPublisher = "Unknown Publisher"
	UnknownDate      = "N/A"
	NoDescription    = "No description available."
)

// ============================================
// API RESPONSE STRUCTURES
// ============================================

// VolumesResponse represents the response from GET /books/v1/volumes
type VolumesResponse struct {
	Kind       string       `json:"kind"`
	TotalItems int          `json:"totalItems"`
	Items      []VolumeItem `json:"items"`
}

// VolumeItem represents a single match
type VolumeItem struct {
	ID         string     `json:"id"`
	VolumeInfo VolumeInfo `json:"volumeInfo"`
}

// VolumeInfo contains the bibliographic metadata of a match
type VolumeInfo struct {
	Title               string               `json:"title"`
	Authors             []string             `json:"authors"`
	Categories          []string             `json:"categories"`
	Publisher           string               `json:"publisher"`
	PublishedDate       string               `json:"publishedDate"`
	Description         string               `json:"description"`
	ImageLinks          ImageLinks           `json:"imageLinks"`
	IndustryIdentifiers []IndustryIdentifier `json:"industryIdentifiers"`
}

// ImageLinks holds cover image URLs
type ImageLinks struct {
	SmallThumbnail string `json:"smallThumbnail"`
	Thumbnail      string `json:"thumbnail"`
}

// IndustryIdentifier is an ISBN_10 / ISBN_13 / OTHER identifier
type IndustryIdentifier struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

// ============================================
// FLATTENED LOOKUP RESULT
// ============================================

// Volume is a display-ready lookup result with every field filled in.
type Volume struct {
	Title         string `json:"title"`
	Authors       string `json:"authors"`
	Category      string `json:"category"`
	Publisher     string `json:"publisher"`
	PublishedDate string `json:"published_date"`
	Description   string `json:"description"`
	Thumbnail     string `json:"thumbnail,omitempty"`
}

// Flatten joins authors, keeps the first category and substitutes
// placeholders for missing fields.
func (v VolumeInfo) Flatten() Volume {
	authors := nonEmpty(v.Authors)
	if len(authors) == 0 {
		authors = []string{UnknownAuthor}
	}
	category := UnknownCategory
	if cats := nonEmpty(v.Categories); len(cats) > 0 {
		category = cats[0]
	}

	return Volume{
		Title:         orDefault(v.Title, UnknownTitle),
		Authors:       strings.Join(authors, ", "),
		Category:      category,
		Publisher:     orDefault(v.Publisher, UnknownPublisher),
		PublishedDate: orDefault(v.PublishedDate, UnknownDate),
		Description:   orDefault(v.Description, NoDescription),
		Thumbnail:     v.ImageLinks.Thumbnail,
	}
}

// PublisherWithDate renders the publisher column of a book record.
func (v Volume) PublisherWithDate() string {
	return fmt.Sprintf("%s (%s)", v.Publisher, v.PublishedDate)
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func nonEmpty(vals []string) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
