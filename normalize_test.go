package glyphforge

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const rawGlyph = `<svg xmlns="http://www.w3.org/2000/svg" width="48" height="48" viewBox="0 0 48 48">
  <rect fill="#ff0000" x="2" y="2" width="20" height="20"/>
  <path fill="#00ff00" d="M0 0h24v24H0z"/>
  <circle cx="12" cy="12" r="4"/>
</svg>`

func TestRecolor_FillsShapesWithCurrentColor(t *testing.T) {
	out, err := Recolor([]byte(rawGlyph))
	assert.NoError(t, err)

	svg := string(out)
	assert.NotContains(t, svg, "#ff0000")
	assert.NotContains(t, svg, "#00ff00")
	assert.Equal(t, 3, strings.Count(svg, `fill="currentColor"`))
}

func TestRecolor_ForcesViewbox(t *testing.T) {
	out, err := Recolor([]byte(rawGlyph))
	assert.NoError(t, err)

	svg := string(out)
	assert.Contains(t, svg, `viewBox="0 0 24 24"`)
	assert.Contains(t, svg, `width="24"`)
	assert.Contains(t, svg, `height="24"`)
	assert.NotContains(t, svg, "48")
}

func TestRecolor_KeepsFillNone(t *testing.T) {
	in := `<svg viewBox="0 0 24 24"><path fill="none" d="M0 0h24v24H0z"/><path d="M4 4h2v2H4z"/></svg>`

	out, err := Recolor([]byte(in))
	assert.NoError(t, err)

	svg := string(out)
	assert.Contains(t, svg, `fill="none"`)
	assert.Equal(t, 1, strings.Count(svg, `fill="currentColor"`))
}

func TestRecolor_LeavesNonShapeElementsAlone(t *testing.T) {
	in := `<svg viewBox="0 0 24 24"><g transform="scale(2)"><path d="M0 0"/></g></svg>`

	out, err := Recolor([]byte(in))
	assert.NoError(t, err)

	svg := string(out)
	assert.Contains(t, svg, `<g transform="scale(2)">`)
	assert.NotContains(t, svg, `<g fill`)
}

func TestRecolor_Idempotent(t *testing.T) {
	once, err := Recolor([]byte(rawGlyph))
	assert.NoError(t, err)

	twice, err := Recolor(once)
	assert.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestRecolor_Placeholder(t *testing.T) {
	out, err := Recolor([]byte(placeholderSVG))
	assert.NoError(t, err)
	assert.Contains(t, string(out), `viewBox="0 0 24 24"`)
}

func TestRecolor_MalformedSVG(t *testing.T) {
	_, err := Recolor([]byte(`<svg><path`))
	assert.Error(t, err)
}

func TestResolveColor(t *testing.T) {
	svg := []byte(`<path fill="currentColor" stroke="currentColor"/>`)

	out := ResolveColor(svg, ForegroundDark)
	assert.Equal(t, `<path fill="#eff0f1" stroke="#eff0f1"/>`, string(out))
}
