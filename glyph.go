package glyphforge

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Style selects the upstream glyph variant to build the theme from.
type Style string

// The glyph variants shipped by the upstream icon repository.
const (
	StyleFilled   Style = "Filled"
	StyleOutlined Style = "Outlined"
	StyleRounded  Style = "Rounded"
	StyleTwoTone  Style = "Two-Tone"
)

// ParseStyle converts the CLI flag value to a Style.
func ParseStyle(s string) (Style, error) {
	switch Style(s) {
	case StyleFilled, StyleOutlined, StyleRounded, StyleTwoTone:
		return Style(s), nil
	}
	return "", errors.Errorf("unknown style %q, expected one of Filled, Outlined, Rounded, Two-Tone", s)
}

// dir returns the upstream directory name holding the variant.
func (s Style) dir() string {
	switch s {
	case StyleOutlined:
		return "materialiconsoutlined"
	case StyleRounded:
		return "materialiconsround"
	case StyleTwoTone:
		return "materialiconstwotone"
	default:
		return "materialicons"
	}
}

// glyphFile is the canonical glyph asset inside a variant directory.
const glyphFile = "24px.svg"

// Source resolves upstream glyph ids to SVG files inside a checked out
// glyph repository.
type Source struct {
	Root  string
	Style Style

	cache map[string]string // glyph id -> resolved path
}

// NewSource returns a glyph source rooted at the given checkout.
func NewSource(root string, style Style) *Source {
	return &Source{
		Root:  root,
		Style: style,
		cache: make(map[string]string),
	}
}

// Locate finds the SVG file for the given glyph id. The upstream
// repository nests each glyph under a category directory, so the lookup
// walks the tree for a directory carrying the glyph id which contains
// the requested variant. Resolved paths are cached; Locate is called
// once per mapping row, before any worker starts, so the cache needs no
// locking.
func (s *Source) Locate(id string) (string, error) {
	if path, ok := s.cache[id]; ok {
		return path, nil
	}

	var found string
	err := filepath.WalkDir(s.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() || d.Name() != id {
			return nil
		}
		candidate := filepath.Join(path, s.Style.dir(), glyphFile)
		if _, err := os.Stat(candidate); err == nil {
			found = candidate
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", errors.Wrapf(err, "walking the glyph source for %q", id)
	}
	if found == "" {
		return "", errors.Errorf("glyph %q (%s) not found under %s", id, s.Style, s.Root)
	}
	s.cache[id] = found
	return found, nil
}

// placeholderSVG is the embedded glyph used when a mapping row
// designates its source as unknown: a 24x24 outlined question mark.
const placeholderSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" width="24" height="24"><path fill="currentColor" d="M11 18h2v-2h-2v2zm1-16C6.48 2 2 6.48 2 12s4.48 10 10 10 10-4.48 10-10S17.52 2 12 2zm0 18c-4.41 0-8-3.59-8-8s3.59-8 8-8 8 3.59 8 8-3.59 8-8 8zm0-14c-2.21 0-4 1.79-4 4h2c0-1.1.9-2 2-2s2 .9 2 2c0 2-3 1.75-3 5h2c0-2.25 3-2.5 3-5 0-2.21-1.79-4-4-4z"/></svg>
`
