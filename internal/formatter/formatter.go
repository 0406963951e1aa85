// package formatter exports the home page rails of a preloaded state to CSV, Markdown or plain text
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/desertthunder/streamfront/internal/models"
	"github.com/desertthunder/streamfront/internal/shared"
)

// Output formats accepted by [Export].
const (
	FormatJSON     = "json"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatText     = "text"
)

// Rail is a titled list of movies as shown on the home page.
type Rail struct {
	Key    string // state key: search, mylist, trends or originals
	Title  string
	Movies []models.Movie
}

// Rails returns the non-empty rails of s in page order.
func Rails(s models.PreloadedState) []Rail {
	all := []Rail{
		{Key: "search", Title: "Results", Movies: s.Search},
		{Key: "mylist", Title: "My list", Movies: s.MyList},
		{Key: "trends", Title: "Trends", Movies: s.Trends},
		{Key: "originals", Title: "Originals", Movies: s.Originals},
	}

	rails := make([]Rail, 0, len(all))
	for _, r := range all {
		if len(r.Movies) > 0 {
			rails = append(rails, r)
		}
	}
	return rails
}

// Export renders the rails of s in the named format. JSON is handled by the caller.
func Export(s models.PreloadedState, format string) ([]byte, error) {
	switch format {
	case FormatCSV:
		return ExportToCSV(s)
	case FormatMarkdown:
		return ExportToMarkdown(s), nil
	case FormatText:
		return ExportToText(s), nil
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
	}
}

// ExportToCSV writes one row per movie with columns: Rail, ID, Title, Year, Rating, Duration
func ExportToCSV(s models.PreloadedState) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Rail", "ID", "Title", "Year", "Rating", "Duration"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, rail := range Rails(s) {
		for _, m := range rail.Movies {
			record := []string{
				rail.Key,
				m.ID,
				m.Title,
				strconv.Itoa(m.Year),
				m.ContentRating,
				strconv.Itoa(m.Duration),
			}
			if err := writer.Write(record); err != nil {
				return nil, fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown writes a heading per rail and a numbered list of movies with their covers.
func ExportToMarkdown(s models.PreloadedState) []byte {
	var buf bytes.Buffer

	if s.User.Name != "" {
		fmt.Fprintf(&buf, "# %s\n\n", s.User.Name)
	}

	for _, rail := range Rails(s) {
		fmt.Fprintf(&buf, "## %s\n\n", rail.Title)
		for i, m := range rail.Movies {
			fmt.Fprintf(&buf, "%d. **%s** (%d, %s) [%s]", i+1, m.Title, m.Year, m.ContentRating, formatMinutes(m.Duration))
			if m.Cover != "" {
				fmt.Fprintf(&buf, " ![Cover](%s)", m.Cover)
			}
			buf.WriteString("\n")
		}
		buf.WriteString("\n")
	}

	return buf.Bytes()
}

// ExportToText writes each rail as a plain text block.
func ExportToText(s models.PreloadedState) []byte {
	var buf bytes.Buffer

	rails := Rails(s)
	if len(rails) == 0 {
		buf.WriteString("No movies\n")
		return buf.Bytes()
	}

	for _, rail := range rails {
		fmt.Fprintf(&buf, "%s (%d)\n", rail.Title, len(rail.Movies))
		for i, m := range rail.Movies {
			fmt.Fprintf(&buf, "%d. %s - %d %s %dmin\n", i+1, m.Title, m.Year, m.ContentRating, m.Duration)
		}
		buf.WriteString("\n")
	}

	return buf.Bytes()
}

func formatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh%02dm", minutes/60, minutes%60)
}
