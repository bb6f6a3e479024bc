package glyphforge

import (
	"bytes"
	"encoding/xml"
	"io"
	"os"
	"os/exec"
	"strings"
)

// DefaultNormalizeCommand is the vector editor used to flatten glyphs.
const DefaultNormalizeCommand = "inkscape"

// Normalizer converts an upstream glyph into the canonical theme form: a
// plain SVG, stripped of editor metadata, every shape filled with
// currentColor and the viewbox pinned to 24x24.
type Normalizer struct {
	// Command is the vector editor binary, inkscape by default.
	Command string
}

// Normalize runs the vector editor over the glyph at path and rewrites
// the result into the canonical single-color form. The editor step is
// never retried; a non-zero exit or empty output surfaces as an
// ExternalToolError carrying the tool's stderr.
func (n *Normalizer) Normalize(path string) ([]byte, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	flat, err := n.flatten(src, path)
	if err != nil {
		return nil, err
	}
	return Recolor(flat)
}

// flatten pipes the glyph through the vector editor to strip defs,
// editor namespaces and crop to the drawing area.
func (n *Normalizer) flatten(src []byte, glyph string) ([]byte, error) {
	cmd := n.Command
	if cmd == "" {
		cmd = DefaultNormalizeCommand
	}
	args := []string{
		"--pipe",
		"--export-plain-svg",
		"--export-type=svg",
		"--export-filename=-",
		"--export-area-drawing",
		"--vacuum-defs",
	}

	var stdout, stderr bytes.Buffer
	c := exec.Command(cmd, args...)
	c.Stdin = bytes.NewReader(src)
	c.Stdout = &stdout
	c.Stderr = &stderr

	if err := c.Run(); err != nil {
		return nil, &ExternalToolError{
			Tool: cmd, Args: args, Glyph: glyph,
			Stderr: stderr.String(), Err: err,
		}
	}
	if stdout.Len() == 0 {
		return nil, &ExternalToolError{
			Tool: cmd, Args: args, Glyph: glyph,
			Stderr: stderr.String(), Err: errNoOutput,
		}
	}
	return stdout.Bytes(), nil
}

// shapeElements are the SVG elements that carry a paintable fill.
var shapeElements = map[string]bool{
	"path":     true,
	"rect":     true,
	"circle":   true,
	"ellipse":  true,
	"polygon":  true,
	"polyline": true,
	"line":     true,
}

// Recolor rewrites an SVG so that every shape is filled with
// currentColor and the root element carries a fixed 24x24 viewbox. The
// rewrite works on the raw token stream so namespace prefixes and the
// document structure pass through untouched.
func Recolor(svg []byte) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(svg))
	var out bytes.Buffer

	for {
		tok, err := dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case t.Name.Local == "svg":
				t.Attr = setAttrs(t.Attr, map[string]string{
					"viewBox": "0 0 24 24",
					"width":   "24",
					"height":  "24",
				})
			case shapeElements[t.Name.Local]:
				if !hasAttr(t.Attr, "fill", "none") {
					t.Attr = setAttrs(t.Attr, map[string]string{"fill": "currentColor"})
				}
			}
			writeStart(&out, t)
		case xml.EndElement:
			out.WriteString("</" + rawName(t.Name) + ">")
		case xml.CharData:
			// xml.EscapeText would also encode plain whitespace as
			// character references, so only the markup runes are escaped.
			out.WriteString(escapeText(string(t)))
		case xml.Comment:
			out.WriteString("<!--" + string(t) + "-->")
		case xml.ProcInst:
			out.WriteString("<?" + t.Target + " " + string(t.Inst) + "?>")
		case xml.Directive:
			out.WriteString("<!" + string(t) + ">")
		}
	}
	return out.Bytes(), nil
}

// setAttrs replaces or appends the given attributes, preserving the
// original attribute order for the ones already present.
func setAttrs(attrs []xml.Attr, set map[string]string) []xml.Attr {
	seen := make(map[string]bool, len(set))
	for i, a := range attrs {
		if v, ok := set[a.Name.Local]; ok && a.Name.Space == "" {
			attrs[i].Value = v
			seen[a.Name.Local] = true
		}
	}
	// Append the missing ones in a stable order.
	for _, k := range []string{"viewBox", "width", "height", "fill"} {
		if v, ok := set[k]; ok && !seen[k] {
			attrs = append(attrs, xml.Attr{Name: xml.Name{Local: k}, Value: v})
		}
	}
	return attrs
}

// hasAttr reports whether the attribute carries the given value.
func hasAttr(attrs []xml.Attr, name, value string) bool {
	for _, a := range attrs {
		if a.Name.Space == "" && a.Name.Local == name && a.Value == value {
			return true
		}
	}
	return false
}

// rawName renders an xml.Name the way RawToken produced it.
func rawName(n xml.Name) string {
	if n.Space != "" {
		return n.Space + ":" + n.Local
	}
	return n.Local
}

// writeStart renders a start element with escaped attribute values.
func writeStart(out *bytes.Buffer, t xml.StartElement) {
	out.WriteString("<" + rawName(t.Name))
	for _, a := range t.Attr {
		out.WriteString(" " + rawName(a.Name) + `="`)
		xml.EscapeText(out, []byte(a.Value))
		out.WriteString(`"`)
	}
	out.WriteString(">")
}

// escapeText escapes the markup runes of character data.
func escapeText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}

// ResolveColor substitutes currentColor with a concrete foreground so
// that rasterizers which do not inherit a CSS color render the glyph
// visibly.
func ResolveColor(svg []byte, color string) []byte {
	return []byte(strings.ReplaceAll(string(svg), "currentColor", color))
}
