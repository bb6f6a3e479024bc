package glyphforge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeMapping(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mapping.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadTable(t *testing.T) {
	path := writeMapping(t, `edit-copy,content_copy,actions
go-home,home,actions
folder,folder,places
`)

	table, err := LoadTable(path)
	assert.NoError(t, err)
	assert.Len(t, table.Records, 3)

	// File order is preserved.
	assert.Equal(t, Record{Name: "edit-copy", Source: "content_copy", Context: "actions"}, table.Records[0])
	assert.Equal(t, Record{Name: "folder", Source: "folder", Context: "places"}, table.Records[2])
}

func TestLoadTable_SkipsBlankLines(t *testing.T) {
	path := writeMapping(t, "edit-copy,content_copy,actions\n\ngo-home,home,actions\n")

	table, err := LoadTable(path)
	assert.NoError(t, err)
	assert.Len(t, table.Records, 2)
}

func TestLoadTable_WrongFieldCount(t *testing.T) {
	path := writeMapping(t, "edit-copy,content_copy,actions\ngo-home,home\n")

	_, err := LoadTable(path)
	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Line)
}

func TestLoadTable_UnknownContext(t *testing.T) {
	path := writeMapping(t, "edit-copy,content_copy,widgets\n")

	_, err := LoadTable(path)
	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Reason, "widgets")
}

func TestLoadTable_EmptyName(t *testing.T) {
	path := writeMapping(t, ",content_copy,actions\n")

	_, err := LoadTable(path)
	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestLoadTable_DuplicateKey(t *testing.T) {
	path := writeMapping(t, `list-add,add,actions
edit-copy,content_copy,actions
list-add,add_circle,actions
`)

	_, err := LoadTable(path)
	var derr *DuplicateKeyError
	assert.ErrorAs(t, err, &derr)
	assert.Equal(t, "list-add", derr.Name)
	assert.Equal(t, 1, derr.FirstLine)
	assert.Equal(t, 3, derr.DupLine)
}

func TestRecordPlaceholder(t *testing.T) {
	assert.True(t, Record{Name: "foo", Source: PlaceholderSource}.Placeholder())
	assert.False(t, Record{Name: "foo", Source: "home"}.Placeholder())
}

func TestTableNames(t *testing.T) {
	table := &Table{Records: []Record{
		{Name: "edit-copy"},
		{Name: "go-home"},
	}}

	names := table.Names()
	assert.Len(t, names, 2)
	_, ok := names["go-home"]
	assert.True(t, ok)
}
