package glyphforge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheck_MissingName(t *testing.T) {
	table := &Table{Records: []Record{
		{Name: "edit-copy", Source: "content_copy", Context: "actions"},
	}}

	missing := Check(table, []string{"edit-copy", "go-home"})
	assert.Equal(t, []string{"go-home"}, missing)
}

func TestCheck_FullCoverage(t *testing.T) {
	table := &Table{Records: []Record{
		{Name: "edit-copy", Source: "content_copy", Context: "actions"},
		{Name: "go-home", Source: "home", Context: "actions"},
		{Name: "folder", Source: "folder", Context: "places"},
	}}

	missing := Check(table, []string{"edit-copy", "go-home"})
	assert.Empty(t, missing)
}

func TestCheck_SortsMissingNames(t *testing.T) {
	table := &Table{}

	missing := Check(table, []string{"zoom-in", "edit-copy", "go-home"})
	assert.Equal(t, []string{"edit-copy", "go-home", "zoom-in"}, missing)
}

func TestCheck_ExtraMappedNamesAreFine(t *testing.T) {
	table := &Table{Records: []Record{
		{Name: "edit-copy"},
		{Name: "something-extra"},
	}}

	missing := Check(table, []string{"edit-copy"})
	assert.Empty(t, missing)
}

func TestRequiredNames_CoverCoreContexts(t *testing.T) {
	// One sanity probe per context group of the built-in required set.
	for _, name := range []string{"edit-copy", "help-browser", "computer", "text-x-generic", "folder", "dialog-error"} {
		found := false
		for _, req := range RequiredNames {
			if req == name {
				found = true
				break
			}
		}
		assert.True(t, found, "expected %q in the required set", name)
	}
}
