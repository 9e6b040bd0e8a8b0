package creole

import (
	"git.home.luguber.info/inful/wikiconvert/internal/gcwiki"
)

// DefaultPreIndent is the margin applied to restored preformatted blocks.
const DefaultPreIndent = "    "

// Replacement is a literal substitution applied after markup conversion.
type Replacement struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Options configures a Pipeline.
type Options struct {
	// ProjectID is the "owner/repo" used to build issue links.
	ProjectID string
	// PreIndent prefixes every line of a preformatted block. Empty means DefaultPreIndent.
	PreIndent    string
	Replacements []Replacement
	// StrictRestore turns a missing segment into an error instead of a diagnostic.
	StrictRestore bool
}

// Document is the state a page carries through the stages.
type Document struct {
	Text      string
	Meta      gcwiki.Metadata
	ProjectID string
	Segments  *Segments
	// Diagnostics collects non-fatal problems found by stages.
	Diagnostics []error
}

// Result is the converted page.
type Result struct {
	Text        string
	Diagnostics []error
}
