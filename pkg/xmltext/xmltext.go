package xmltext

import (
	"fmt"
	"strings"
)

// escaper handles the five reserved markup characters in a single pass.
var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// Escape escapes the reserved markup characters in s.
func Escape(s string) string {
	return escaper.Replace(s)
}

// ParseError reports a malformed document. Offset is the byte position the
// decoder had reached when the error occurred.
type ParseError struct {
	Path   string
	Offset int64
	Err    error
}

func (e *ParseError) Error() string {
	path := e.Path
	if path == "" {
		path = "document"
	}
	if e.Offset > 0 {
		return fmt.Sprintf("parsing %s at byte %d: %v", path, e.Offset, e.Err)
	}
	return fmt.Sprintf("parsing %s: %v", path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
