package gcwiki

import (
	"regexp"
	"strings"
)

var (
	camelCasePrefix = regexp.MustCompile(`^[A-Z][a-z]{2,}`)
	capitalizedRun  = regexp.MustCompile(`[A-Z][a-z]+`)
)

// PageName converts a Google Code page name to its GitHub wiki spelling.
//
// Names that look like CamelCase (an uppercase letter followed by at least two
// lowercase letters) get a hyphen before every capitalized word run:
// "FooBarBaz" becomes "Foo-Bar-Baz". Other names are returned unchanged.
func PageName(name string) string {
	if !camelCasePrefix.MatchString(name) {
		return name
	}
	return capitalizedRun.ReplaceAllString(name, "-$0")[1:]
}

// DisplayName is PageName with hyphens turned into spaces, as used for link text.
func DisplayName(name string) string {
	return strings.ReplaceAll(PageName(name), "-", " ")
}
