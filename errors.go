package glyphforge

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// errNoOutput marks an external command that exited clean but wrote
// nothing to stdout.
var errNoOutput = errors.New("the command produced no output")

// ParseError reports a malformed mapping table row.
type ParseError struct {
	Path   string
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: malformed mapping row: %s", e.Path, e.Line, e.Reason)
}

// DuplicateKeyError reports two mapping rows sharing the same target name.
type DuplicateKeyError struct {
	Path      string
	Name      string
	FirstLine int
	DupLine   int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s:%d: duplicate target name %q (first defined on line %d)",
		e.Path, e.DupLine, e.Name, e.FirstLine)
}

// CoverageError reports required target names absent from the mapping table.
type CoverageError struct {
	Missing []string
}

func (e *CoverageError) Error() string {
	return fmt.Sprintf("mapping table is missing %d required icon name(s): %s",
		len(e.Missing), strings.Join(e.Missing, ", "))
}

// ExternalToolError reports a conversion command that exited non-zero
// or produced no output.
type ExternalToolError struct {
	Tool   string
	Args   []string
	Glyph  string
	Size   int
	Stderr string
	Err    error
}

func (e *ExternalToolError) Error() string {
	msg := fmt.Sprintf("%s failed for glyph %q", e.Tool, e.Glyph)
	if e.Size > 0 {
		msg = fmt.Sprintf("%s at size %dx%d", msg, e.Size, e.Size)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg = fmt.Sprintf("%s\n\tstderr: %s", msg, stderr)
	}
	return msg
}

func (e *ExternalToolError) Unwrap() error { return e.Err }

// PackagingError reports a failure while archiving or checksumming the
// assembled theme tree.
type PackagingError struct {
	Path string
	Err  error
}

func (e *PackagingError) Error() string {
	return fmt.Sprintf("packaging %s failed: %v", e.Path, e.Err)
}

func (e *PackagingError) Unwrap() error { return e.Err }
