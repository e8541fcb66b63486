package csvexport

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"carbonfront/internal/columns"
	"carbonfront/internal/domain"
	"carbonfront/internal/rowset"
)

// FilenamePrefix prefixes every single-document export.
const FilenamePrefix = "pdf_processed"

// Writer emits quoted, newline-separated rows for a fixed column selection.
// Every field is wrapped in double quotes; rows are separated by a single
// "\n" with no trailing newline.
type Writer struct {
	w       io.Writer
	cols    []columns.Column
	started bool
	err     error
}

// NewWriter creates a Writer for the included columns of reg.
func NewWriter(w io.Writer, reg *columns.Registry) (*Writer, error) {
	cols := reg.Included()
	if len(cols) == 0 {
		return nil, domain.ErrNoColumnsSelected
	}
	return &Writer{w: w, cols: cols}, nil
}

// WriteHeader writes the display names of the selected columns.
func (w *Writer) WriteHeader() error {
	fields := make([]string, len(w.cols))
	for i, c := range w.cols {
		fields[i] = Escape(c.Header())
	}
	return w.writeLine(fields)
}

// WriteRows writes one line per row, reading values by original key.
func (w *Writer) WriteRows(rows rowset.RowSet) error {
	for _, row := range rows {
		fields := make([]string, len(w.cols))
		for i, c := range w.cols {
			v, _ := row.Get(c.Key)
			fields[i] = Escape(v)
		}
		if err := w.writeLine(fields); err != nil {
			return err
		}
	}
	return nil
}

// Error returns the first write error, if any.
func (w *Writer) Error() error {
	return w.err
}

func (w *Writer) writeLine(fields []string) error {
	if w.err != nil {
		return w.err
	}
	line := strings.Join(fields, ",")
	if w.started {
		line = "\n" + line
	}
	w.started = true
	if _, err := io.WriteString(w.w, line); err != nil {
		w.err = err
	}
	return w.err
}

// Export serializes rows using the registry's included columns, in registry
// order, with display names as the header. It is pure: the same inputs always
// produce the same text.
func Export(rows rowset.RowSet, reg *columns.Registry) (string, error) {
	var sb strings.Builder
	w, err := NewWriter(&sb, reg)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", nil
	}
	if err := w.WriteHeader(); err != nil {
		return "", err
	}
	if err := w.WriteRows(rows); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Escape renders a single field: the value's text with line breaks, tabs and
// whitespace runs collapsed to one space, trimmed, quotes doubled and the
// whole field wrapped in double quotes. Empty values become "".
func Escape(v any) string {
	text := CellText(v)
	return `"` + strings.ReplaceAll(text, `"`, `""`) + `"`
}

// CellText returns the normalized, unquoted text of a value.
func CellText(v any) string {
	return strings.Join(strings.Fields(stringify(v)), " ")
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	case json.RawMessage:
		return string(t)
	case fmt.Stringer:
		return t.String()
	case int, int64, float64:
		return fmt.Sprint(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// SanitizeDownloadName sanitizes the base name of a filename while keeping
// its extension. Falls back to fallback when nothing usable remains.
func SanitizeDownloadName(name, fallback string) string {
	ext := ""
	base := name
	if i := strings.LastIndex(name, "."); i > 0 {
		ext = strings.ToLower(SanitizeFilename(name[i+1:]))
		base = name[:i]
	}
	base = SanitizeFilename(base)
	if base == "" {
		return fallback
	}
	if ext == "" {
		return base
	}
	return base + "." + ext
}

// Timestamp formats t as UTC ISO-8601 with ':' and '.' replaced by '-' and
// the sub-second part dropped, e.g. 2025-01-15T10-30-00.
func Timestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15-04-05")
}

// BuildFilename returns the download name for a single-document export.
// Format: pdf_processed_{methodology}_{timestamp}.{ext}
func BuildFilename(m domain.Methodology, format domain.ExportFormat, now time.Time) string {
	methodology := strings.ReplaceAll(string(m), " ", "_")
	return fmt.Sprintf("%s_%s_%s.%s", FilenamePrefix, methodology, Timestamp(now), format)
}

// BulkFallbackFilename is used when the bulk response carries no filename.
// Format: bulk_processing_{YYYY-MM-DD}.csv
func BulkFallbackFilename(now time.Time) string {
	return fmt.Sprintf("bulk_processing_%s.csv", now.UTC().Format("2006-01-02"))
}
