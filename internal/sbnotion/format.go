package sbnotion

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/snadboy/notiongen/internal/notion"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatText  OutputFormat = "text"
	FormatTable OutputFormat = "table"
)

// Formatter handles CLI output formatting
type Formatter struct {
	format OutputFormat
	writer io.Writer
}

// NewFormatter creates a new formatter
func NewFormatter(format OutputFormat, writer io.Writer) *Formatter {
	return &Formatter{
		format: format,
		writer: writer,
	}
}

// FormatPage formats a single page
func (f *Formatter) FormatPage(page *notion.Page) error {
	switch f.format {
	case FormatJSON:
		return f.formatJSON(page)
	default:
		return f.formatPageText(page)
	}
}

// FormatDatabase formats a single database with its schema
func (f *Formatter) FormatDatabase(db *notion.Database) error {
	switch f.format {
	case FormatJSON:
		return f.formatJSON(db)
	default:
		return f.formatDatabaseText(db)
	}
}

// FormatPages formats a page listing
func (f *Formatter) FormatPages(pages []*notion.Page) error {
	switch f.format {
	case FormatJSON:
		return f.formatJSON(pages)
	case FormatText:
		return f.formatPagesText(pages)
	default:
		return f.formatPagesTable(pages)
	}
}

// FormatDatabases formats a database listing
func (f *Formatter) FormatDatabases(dbs []*notion.Database) error {
	switch f.format {
	case FormatJSON:
		return f.formatJSON(dbs)
	case FormatText:
		return f.formatDatabasesText(dbs)
	default:
		return f.formatDatabasesTable(dbs)
	}
}

func (f *Formatter) formatJSON(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func (f *Formatter) formatPageText(page *notion.Page) error {
	title := page.PlainTitle()
	if title == "" {
		title = "(Untitled)"
	}

	fmt.Fprintf(f.writer, "Title: %s\n", title)
	fmt.Fprintf(f.writer, "ID: %s\n", page.ID)
	fmt.Fprintf(f.writer, "URL: %s\n", page.URL)
	fmt.Fprintf(f.writer, "Created: %s\n", page.CreatedTime.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(f.writer, "Last edited: %s\n", page.LastEditedTime.Format("2006-01-02 15:04:05"))

	names := make([]string, 0, len(page.Properties))
	for name := range page.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(f.writer, "\nProperties:")
	for _, name := range names {
		if page.Properties[name].Type == "title" {
			continue // Already shown as title
		}
		if value := page.PropertyString(name); value != "" {
			fmt.Fprintf(f.writer, "  %s: %s\n", name, value)
		}
	}

	return nil
}

func (f *Formatter) formatDatabaseText(db *notion.Database) error {
	title := db.PlainTitle()
	if title == "" {
		title = "(Untitled)"
	}

	fmt.Fprintf(f.writer, "Title: %s\n", title)
	fmt.Fprintf(f.writer, "ID: %s\n", db.ID)
	fmt.Fprintf(f.writer, "URL: %s\n", db.URL)
	fmt.Fprintf(f.writer, "Last edited: %s\n", db.LastEditedTime.Format("2006-01-02 15:04:05"))

	names := make([]string, 0, len(db.Properties))
	for name := range db.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(f.writer, "\nSchema:")
	for _, name := range names {
		def := db.Properties[name]
		line := fmt.Sprintf("  %s: %s", name, def.Type)
		if opts := def.Options(); len(opts) > 0 {
			labels := make([]string, len(opts))
			for i, o := range opts {
				labels[i] = o.Name
			}
			line += " [" + strings.Join(labels, ", ") + "]"
		}
		fmt.Fprintln(f.writer, line)
	}

	return nil
}

func (f *Formatter) formatPagesText(pages []*notion.Page) error {
	for i, page := range pages {
		if i > 0 {
			fmt.Fprintln(f.writer, "---")
		}
		title := page.PlainTitle()
		if title == "" {
			title = "(Untitled)"
		}
		fmt.Fprintf(f.writer, "%s\n", title)
		fmt.Fprintf(f.writer, "  ID: %s\n", page.ID)
		fmt.Fprintf(f.writer, "  Last edited: %s\n", page.LastEditedTime.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func (f *Formatter) formatDatabasesText(dbs []*notion.Database) error {
	for i, db := range dbs {
		if i > 0 {
			fmt.Fprintln(f.writer, "---")
		}
		title := db.PlainTitle()
		if title == "" {
			title = "(Untitled)"
		}
		fmt.Fprintf(f.writer, "%s\n", title)
		fmt.Fprintf(f.writer, "  ID: %s\n", db.ID)
		fmt.Fprintf(f.writer, "  Properties: %d\n", len(db.Properties))
	}
	return nil
}

func (f *Formatter) formatPagesTable(pages []*notion.Page) error {
	headers := []string{"Title", "ID", "Last Edited"}
	var rows [][]string

	for _, page := range pages {
		title := page.PlainTitle()
		if title == "" {
			title = "(Untitled)"
		}
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		rows = append(rows, []string{
			title,
			page.ID,
			page.LastEditedTime.Format("2006-01-02 15:04"),
		})
	}

	return f.printTable(headers, rows)
}

func (f *Formatter) formatDatabasesTable(dbs []*notion.Database) error {
	headers := []string{"Title", "ID", "Properties"}
	var rows [][]string

	for _, db := range dbs {
		title := db.PlainTitle()
		if title == "" {
			title = "(Untitled)"
		}
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		rows = append(rows, []string{
			title,
			db.ID,
			fmt.Sprintf("%d", len(db.Properties)),
		})
	}

	return f.printTable(headers, rows)
}

// printTable prints a simple table
func (f *Formatter) printTable(headers []string, rows [][]string) error {
	if len(headers) == 0 {
		return nil
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	f.printRow(headers, widths)
	f.printSeparator(widths)
	for _, row := range rows {
		f.printRow(row, widths)
	}

	return nil
}

func (f *Formatter) printRow(cells []string, widths []int) {
	for i, cell := range cells {
		if i < len(widths) {
			fmt.Fprintf(f.writer, "%-*s", widths[i], cell)
			if i < len(cells)-1 {
				fmt.Fprint(f.writer, "  ")
			}
		}
	}
	fmt.Fprintln(f.writer)
}

func (f *Formatter) printSeparator(widths []int) {
	for i, w := range widths {
		fmt.Fprint(f.writer, strings.Repeat("-", w))
		if i < len(widths)-1 {
			fmt.Fprint(f.writer, "  ")
		}
	}
	fmt.Fprintln(f.writer)
}
