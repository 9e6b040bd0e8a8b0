package config

import "git.home.luguber.info/inful/wikiconvert/internal/creole"

const (
	DefaultSourcePattern   = "*.wiki"
	DefaultOutputExtension = ".creole"

	DefaultCommitMessage = "Import pages converted from Google Code wiki"
	DefaultAuthorName    = "wikiconvert"
	DefaultAuthorEmail   = "wikiconvert@localhost"
)

// DefaultReplacements rebrands Google Refine pages for the OpenRefine wiki.
func DefaultReplacements() []creole.Replacement {
	return []creole.Replacement{
		{From: "Google Refine", To: "OpenRefine"},
		{From: "http://groups.google.com/group/google-refine", To: "http://groups.google.com/group/openrefine"},
		{From: "code.google.com/p/google-refine/source/browse/trunk/", To: "github.com/OpenRefine/OpenRefine/blob/master/"},
	}
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{Replacements: DefaultReplacements()}
	cfg.applyDefaults()
	return cfg
}
