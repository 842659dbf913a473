package command

import (
	"fmt"
	"io"
	"strings"

	"bookscan/internal/resolver"

	"github.com/fatih/color"
)

const descriptionLimit = 200

var (
	successColor = color.New(color.FgGreen, color.Bold)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed, color.Bold)
	headingColor = color.New(color.FgCyan, color.Bold)
	faintColor   = color.New(color.FgHiBlack)
)

// printResolution renders the outcome of resolving one code.
func printResolution(w io.Writer, res *resolver.Resolution) {
	switch res.Source {
	case resolver.SourceRemote:
		v := res.Volume
		successColor.Fprintf(w, "✓ Found: '%s'\n", v.Title)
		fmt.Fprintf(w, "Author(s): %s\n", v.Authors)
		fmt.Fprintf(w, "Category: %s\n", v.Category)
		fmt.Fprintf(w, "Publisher: %s\n", v.PublisherWithDate())
		faintColor.Fprintf(w, "%s\n", truncate(v.Description, descriptionLimit))
		if res.Saved {
			fmt.Fprintln(w, "Saved to library.")
		} else {
			fmt.Fprintln(w, "Already in library (not duplicated).")
		}
		fmt.Fprintln(w)
		if len(res.Recommendations) == 0 {
			fmt.Fprintln(w, "No recommendations found.")
			return
		}
		printRecommendations(w, res.Recommendations)

	case resolver.SourceLocal:
		successColor.Fprintf(w, "✓ Found in local library: '%s' (Genre: %s)\n", res.Book.Title, res.Book.Genre)
		if len(res.Recommendations) > 0 {
			fmt.Fprintln(w)
			printRecommendations(w, res.Recommendations)
		}

	default:
		errorColor.Fprintf(w, "✗ Book not found for barcode: %s\n", res.Code)
		fmt.Fprintln(w, "Not in the online catalog or the local library.")
	}
}

func printRecommendations(w io.Writer, recs []string) {
	headingColor.Fprintln(w, "You might also like:")
	for _, r := range recs {
		fmt.Fprintf(w, "  • %s\n", r)
	}
}

// truncate cuts s to n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
