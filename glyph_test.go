package glyphforge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeCheckout lays out a glyph repository the way upstream ships it:
// category directories, one directory per glyph, one per variant.
func fakeCheckout(t *testing.T, glyphs map[string][]string) string {
	t.Helper()
	root := t.TempDir()
	for id, variants := range glyphs {
		for _, v := range variants {
			dir := filepath.Join(root, "src", "action", id, v)
			assert.NoError(t, os.MkdirAll(dir, 0755))
			assert.NoError(t, os.WriteFile(filepath.Join(dir, "24px.svg"), []byte(canonicalGlyph), 0644))
		}
	}
	return root
}

func TestParseStyle(t *testing.T) {
	for _, valid := range []string{"Filled", "Outlined", "Rounded", "Two-Tone"} {
		s, err := ParseStyle(valid)
		assert.NoError(t, err)
		assert.Equal(t, Style(valid), s)
	}

	_, err := ParseStyle("Sharp")
	assert.Error(t, err)
}

func TestSourceLocate(t *testing.T) {
	root := fakeCheckout(t, map[string][]string{
		"content_copy": {"materialicons", "materialiconsoutlined"},
		"home":         {"materialicons"},
	})

	src := NewSource(root, StyleFilled)
	path, err := src.Locate("content_copy")
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "src", "action", "content_copy", "materialicons", "24px.svg"), path)
}

func TestSourceLocate_StyleVariant(t *testing.T) {
	root := fakeCheckout(t, map[string][]string{
		"content_copy": {"materialicons", "materialiconsoutlined"},
	})

	src := NewSource(root, StyleOutlined)
	path, err := src.Locate("content_copy")
	assert.NoError(t, err)
	assert.Contains(t, path, "materialiconsoutlined")
}

func TestSourceLocate_MissingGlyph(t *testing.T) {
	root := fakeCheckout(t, map[string][]string{
		"home": {"materialicons"},
	})

	src := NewSource(root, StyleFilled)
	_, err := src.Locate("does_not_exist")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "does_not_exist")
}

func TestSourceLocate_MissingVariant(t *testing.T) {
	root := fakeCheckout(t, map[string][]string{
		"home": {"materialicons"},
	})

	// The glyph exists but only in the Filled variant.
	src := NewSource(root, StyleTwoTone)
	_, err := src.Locate("home")
	assert.Error(t, err)
}

func TestSourceLocate_Cached(t *testing.T) {
	root := fakeCheckout(t, map[string][]string{
		"home": {"materialicons"},
	})

	src := NewSource(root, StyleFilled)
	first, err := src.Locate("home")
	assert.NoError(t, err)

	// A second lookup resolves from the cache even after the tree is gone.
	assert.NoError(t, os.RemoveAll(filepath.Join(root, "src")))
	second, err := src.Locate("home")
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}
