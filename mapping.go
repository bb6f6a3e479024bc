package glyphforge

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
)

// PlaceholderSource is the designated source id a mapping author uses to
// request the embedded placeholder glyph instead of an upstream one.
const PlaceholderSource = "unknown"

// Contexts holds the FreeDesktop Icon Naming Specification categories a
// mapping row may target.
var Contexts = []string{
	"actions",
	"animations",
	"apps",
	"categories",
	"devices",
	"emblems",
	"emotes",
	"international",
	"mimetypes",
	"places",
	"status",
}

// Record is a single mapping table row: the icon name the theme exports,
// the upstream glyph id it is drawn from and the naming spec context the
// icon belongs to.
type Record struct {
	Name    string
	Source  string
	Context string
}

// Placeholder reports whether the record requests the embedded
// placeholder glyph rather than an upstream one.
func (r Record) Placeholder() bool {
	return r.Source == PlaceholderSource
}

// Table is the parsed mapping table. It preserves the file order of the
// rows and is never mutated after load.
type Table struct {
	Records []Record

	index map[string]int // target name -> line number
}

// Names returns the set of target names present in the table.
func (t *Table) Names() map[string]struct{} {
	names := make(map[string]struct{}, len(t.Records))
	for _, r := range t.Records {
		names[r.Name] = struct{}{}
	}
	return names
}

// LoadTable reads the mapping table from a comma separated file with the
// columns (target_name, source_id, context). It returns a ParseError on
// a row with the wrong field count or an unknown context and a
// DuplicateKeyError when two rows share the same target name.
func LoadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "unable to open the mapping table")
	}
	defer f.Close()

	return readTable(f, path)
}

func readTable(r io.Reader, path string) (*Table, error) {
	cr := csv.NewReader(r)
	// Field count is validated per row so that the error carries the
	// offending line number.
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	t := &Table{index: make(map[string]int)}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			line := 0
			if pe, ok := err.(*csv.ParseError); ok {
				line = pe.Line
			}
			return nil, &ParseError{Path: path, Line: line, Reason: err.Error()}
		}
		// Blank lines are skipped by the reader; FieldPos keeps the
		// reported line numbers accurate across them.
		line, _ := cr.FieldPos(0)
		if len(row) != 3 {
			return nil, &ParseError{
				Path: path, Line: line,
				Reason: fmt.Sprintf("expected 3 fields (target_name, source_id, context), got %d", len(row)),
			}
		}

		rec := Record{Name: row[0], Source: row[1], Context: row[2]}
		if rec.Name == "" || rec.Source == "" {
			return nil, &ParseError{Path: path, Line: line, Reason: "empty target name or source id"}
		}
		if !validContext(rec.Context) {
			return nil, &ParseError{
				Path: path, Line: line,
				Reason: fmt.Sprintf("unknown context %q", rec.Context),
			}
		}
		if first, ok := t.index[rec.Name]; ok {
			return nil, &DuplicateKeyError{Path: path, Name: rec.Name, FirstLine: first, DupLine: line}
		}
		t.index[rec.Name] = line
		t.Records = append(t.Records, rec)
	}
	return t, nil
}

// validContext checks the context against the naming spec categories.
func validContext(ctx string) bool {
	for _, c := range Contexts {
		if c == ctx {
			return true
		}
	}
	return false
}
