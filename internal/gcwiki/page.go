package gcwiki

import (
	"errors"
	"fmt"
	"strings"
)

// HeaderMarker prefixes every metadata line at the top of a page.
const HeaderMarker = "#"

// ErrMalformedHeader indicates the header block was not terminated by a blank line.
var ErrMalformedHeader = errors.New("metadata block must be followed by a blank line")

// Metadata holds the `#key value` lines of a page.
type Metadata map[string]string

// Summary returns the page summary, if any.
func (m Metadata) Summary() (string, bool) {
	v, ok := m["summary"]
	return v, ok
}

// Labels returns the comma separated labels of the page.
func (m Metadata) Labels() []string {
	raw, ok := m["labels"]
	if !ok {
		return nil
	}
	var out []string
	for _, l := range strings.Split(raw, ",") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// Page is a parsed source page.
type Page struct {
	// Name is the source base name without extension, e.g. "GettingStarted".
	Name string
	Meta Metadata
	// Body is the markup after the header separator, lines joined by "\n".
	Body string
}

// MalformedHeaderError reports the offending line of a page whose header
// block is not followed by a blank line.
type MalformedHeaderError struct {
	Line int
	Text string
}

func (e *MalformedHeaderError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, ErrMalformedHeader)
}

func (e *MalformedHeaderError) Unwrap() error { return ErrMalformedHeader }

// Parse splits content into metadata and body.
//
// Lines starting with HeaderMarker are metadata. The first other line ends the
// header and must be blank; everything after it is the body. Content made only
// of header lines has an empty body.
func Parse(name, content string) (*Page, error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	lines := splitLines(content)

	page := &Page{Name: name, Meta: Metadata{}}
	for i, line := range lines {
		if strings.HasPrefix(line, HeaderMarker) {
			if k, v, ok := parseHeaderLine(line); ok {
				page.Meta[k] = v
			}
			continue
		}
		if strings.TrimSpace(line) != "" {
			return nil, &MalformedHeaderError{Line: i + 1, Text: line}
		}
		page.Body = strings.Join(lines[i+1:], "\n")
		break
	}
	return page, nil
}

// parseHeaderLine splits "#key value" on the first whitespace run.
func parseHeaderLine(line string) (key, value string, ok bool) {
	rest := strings.TrimLeft(strings.TrimPrefix(line, HeaderMarker), " \t")
	if rest == "" {
		return "", "", false
	}
	idx := strings.IndexAny(rest, " \t")
	if idx < 0 {
		return rest, "", true
	}
	return rest[:idx], strings.TrimLeft(rest[idx:], " \t"), true
}

// splitLines splits on "\n" without producing a trailing empty element for a
// final newline.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}
