package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// Formatter renders a document.
type Formatter interface {
	Name() string
	Format(doc Document) ([]byte, error)
}

// FormatterFunc adapts a function to Formatter.
type FormatterFunc struct {
	name string
	fn   func(Document) ([]byte, error)
}

func (f FormatterFunc) Name() string                        { return f.name }
func (f FormatterFunc) Format(doc Document) ([]byte, error) { return f.fn(doc) }

var formatters = map[string]Formatter{
	"table": TableFormatter{},
	"csv":   CSVFormatter{},
	"json":  JSONFormatter{Pretty: true},
	"xlsx":  XLSXFormatter{},
	"json-compact": FormatterFunc{name: "json-compact", fn: func(doc Document) ([]byte, error) {
		return JSONFormatter{}.Format(doc)
	}},
}

var formatAliases = map[string]string{
	"console": "table",
	"text":    "table",
	"excel":   "xlsx",
}

// GetFormatterByName returns the formatter for name or an alias of it, nil
// if there is none.
func GetFormatterByName(name string) Formatter {
	name = strings.ToLower(strings.TrimSpace(name))
	if target, ok := formatAliases[name]; ok {
		name = target
	}
	return formatters[name]
}

// AvailableFormats returns the formatter names, sorted.
func AvailableFormats() []string {
	names := make([]string, 0, len(formatters))
	for n := range formatters {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the accepted aliases, sorted.
func AvailableFormatAliases() []string {
	names := make([]string, 0, len(formatAliases))
	for n := range formatAliases {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// TableFormatter renders a document as an aligned console table.
type TableFormatter struct{}

func (TableFormatter) Name() string { return "table" }

func (TableFormatter) Format(doc Document) ([]byte, error) {
	t := doc.Table
	widths := make([]int, len(t.Header))
	for i, h := range t.Header {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && utf8.RuneCountInString(cell) > widths[i] {
				widths[i] = utf8.RuneCountInString(cell)
			}
		}
	}
	total := 0
	for _, w := range widths {
		total += w + 2
	}
	if total < utf8.RuneCountInString(t.Title) {
		total = utf8.RuneCountInString(t.Title)
	}

	var sb strings.Builder
	sb.WriteString(t.Title + "\n")
	sb.WriteString(strings.Repeat("=", total) + "\n")
	sb.WriteString(formatLine(t.Header, widths))
	sb.WriteString(strings.Repeat("-", total) + "\n")
	if len(t.Rows) == 0 {
		sb.WriteString("(no data)\n")
	}
	for _, row := range t.Rows {
		sb.WriteString(formatLine(row, widths))
	}
	sb.WriteString(strings.Repeat("=", total) + "\n")
	for _, n := range t.Notes {
		sb.WriteString("Note: " + n + "\n")
	}
	return []byte(sb.String()), nil
}

// formatLine left-aligns the first column and right-aligns the rest.
func formatLine(cells []string, widths []int) string {
	var sb strings.Builder
	for i, cell := range cells {
		if i >= len(widths) {
			break
		}
		pad := strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell))
		if i == 0 {
			sb.WriteString(cell + pad)
		} else {
			sb.WriteString("  " + pad + cell)
		}
	}
	return strings.TrimRight(sb.String(), " ") + "\n"
}

// CSVFormatter renders the header and rows of a document as CSV.
type CSVFormatter struct{}

func (CSVFormatter) Name() string { return "csv" }

func (CSVFormatter) Format(doc Document) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(doc.Table.Header); err != nil {
		return nil, err
	}
	for _, row := range doc.Table.Rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// JSONFormatter encodes the view model of a document.
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

func (JSONFormatter) Name() string { return "json" }

func (jf JSONFormatter) Format(doc Document) ([]byte, error) {
	payload := struct {
		View string `json:"view"`
		Data any    `json:"data"`
	}{View: doc.View, Data: doc.Data}

	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(payload, "", "  ")
	} else {
		data, err = json.Marshal(payload)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s view: %w", doc.View, err)
	}
	return append(data, '\n'), nil
}
