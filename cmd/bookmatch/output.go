package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/bookmatch/bookmatch/internal/catalog"
	"github.com/bookmatch/bookmatch/internal/recommend"
	"github.com/bookmatch/bookmatch/internal/search"
	"github.com/bookmatch/bookmatch/internal/usecase"
)

const (
	formatTable = "table"
	formatJSON  = "json"

	searchTitleWidth  = 45
	searchAuthorWidth = 27

	missingTitle = "[...]"
)

func validateFormat(format string) error {
	if format != formatTable && format != formatJSON {
		return fmt.Errorf("invalid format: %s (must be 'table' or 'json')", format)
	}
	return nil
}

func outputJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func getTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// wrapString breaks s into lines no wider than maxWidth display cells.
func wrapString(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return s
	}

	s = strings.TrimSpace(s)
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}

	var result strings.Builder
	var line strings.Builder
	width := 0

	for _, word := range strings.Fields(s) {
		wordWidth := runewidth.StringWidth(word)
		if width > 0 && width+1+wordWidth > maxWidth {
			result.WriteString(line.String())
			result.WriteString("\n")
			line.Reset()
			width = 0
		}
		if width > 0 {
			line.WriteString(" ")
			width++
		}
		// Words longer than a line are cut.
		for wordWidth > maxWidth {
			head := runewidth.Truncate(word, maxWidth, "")
			if head == "" {
				break
			}
			result.WriteString(head)
			result.WriteString("\n")
			word = word[len(head):]
			wordWidth = runewidth.StringWidth(word)
		}
		line.WriteString(word)
		width += wordWidth
	}

	if line.Len() > 0 {
		result.WriteString(line.String())
	}
	return result.String()
}

func truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "...")
}

func displayTitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return missingTitle
	}
	return title
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

// renderBook prints the detail view of one book.
func renderBook(w io.Writer, book catalog.Book) {
	valueWidth := getTerminalWidth() - 20
	if valueWidth < 30 {
		valueWidth = 30
	}

	year := ""
	if book.Year > 0 {
		year = strconv.Itoa(book.Year)
	}

	t := newTable(w)
	t.AppendRow(table.Row{"ISBN", book.ISBN})
	t.AppendRow(table.Row{"Title", wrapString(displayTitle(book.Title), valueWidth)})
	t.AppendRow(table.Row{"Author", book.Author})
	t.AppendRow(table.Row{"Year", year})
	t.AppendRow(table.Row{"Publisher", book.Publisher})
	if book.Genre != "" {
		t.AppendRow(table.Row{"Genre", book.Genre})
	}
	t.AppendRow(table.Row{"Tags", wrapString(strings.Join(book.Tags, ", "), valueWidth)})
	t.AppendRow(table.Row{"Rating", fmt.Sprintf("%.1f/5.0", book.Rating)})
	if book.Description != "" {
		t.AppendRow(table.Row{"Description", wrapString(book.Description, valueWidth)})
	}
	if book.CreatedDate != "" {
		t.AppendRow(table.Row{"Added", book.CreatedDate})
	}
	t.Render()
}

// renderBookList prints the catalog, fitting titles and tags to the terminal.
func renderBookList(w io.Writer, books []catalog.Book) {
	if len(books) == 0 {
		fmt.Fprintln(w, "The catalog is empty.")
		return
	}

	widths := calculateColumnWidths(getTerminalWidth(), books)

	t := newTable(w)
	t.AppendHeader(table.Row{"ISBN", "Title", "Author", "Year", "Tags", "Rating"})
	for _, b := range books {
		year := ""
		if b.Year > 0 {
			year = strconv.Itoa(b.Year)
		}
		t.AppendRow(table.Row{
			b.ISBN,
			truncate(displayTitle(b.Title), widths.title),
			truncate(b.Author, widths.author),
			year,
			truncate(strings.Join(b.Tags, ", "), widths.tags),
			fmt.Sprintf("%.1f", b.Rating),
		})
	}
	t.Render()
}

type columnWidths struct {
	title  int
	author int
	tags   int
}

func calculateColumnWidths(termWidth int, books []catalog.Book) columnWidths {
	const (
		numColumns  = 6
		yearWidth   = 4
		ratingWidth = 6
	)

	// Borders and padding take about 3 cells per column.
	available := termWidth - numColumns*3 - yearWidth - ratingWidth

	isbnWidth := 4
	for _, b := range books {
		if n := runewidth.StringWidth(b.ISBN); n > isbnWidth {
			isbnWidth = n
		}
	}
	if isbnWidth > 20 {
		isbnWidth = 20
	}
	available -= isbnWidth

	titleWidth := available / 2
	authorWidth := available * 3 / 10
	tagsWidth := available - titleWidth - authorWidth

	return columnWidths{
		title:  max(titleWidth, 15),
		author: max(authorWidth, 10),
		tags:   max(tagsWidth, 10),
	}
}

// renderSearchResults prints ranked matches with their similarity.
func renderSearchResults(w io.Writer, results []search.Result) {
	t := newTable(w)
	t.AppendHeader(table.Row{"#", "ISBN", "Title", "Author", "Similarity"})
	for i, r := range results {
		t.AppendRow(table.Row{
			i + 1,
			r.ISBN,
			truncate(displayTitle(r.Title), searchTitleWidth),
			truncate(r.Author, searchAuthorWidth),
			fmt.Sprintf("%.2f", r.Score),
		})
	}
	t.Render()
}

// renderRecommendations prints the numbered recommendation list.
func renderRecommendations(w io.Writer, result recommend.Result) {
	fmt.Fprintln(w, "Recommendations for you:")
	if len(result.Items) == 0 {
		fmt.Fprintln(w, "No recommendations available right now.")
		return
	}
	for i, item := range result.Items {
		fmt.Fprintf(w, "%d. %s - ISBN: %s\n", i+1, displayTitle(item.Title), item.ISBN)
	}
}

// renderHistory prints the numbered view history, oldest first.
func renderHistory(w io.Writer, items []usecase.HistoryItem) {
	if len(items) == 0 {
		fmt.Fprintln(w, "Your history is empty.")
		return
	}
	for _, item := range items {
		fmt.Fprintf(w, "%d. %s - ISBN: %s\n", item.Position, displayTitle(item.Title), item.ISBN)
	}
}
