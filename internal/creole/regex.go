package creole

import (
	"regexp"

	"github.com/dlclark/regexp2"
)

// replaceSubmatches calls repl with the submatches of every match of re.
// Groups that did not participate are passed as "".
func replaceSubmatches(re *regexp.Regexp, s string, repl func(groups []string) string) string {
	matches := re.FindAllStringSubmatchIndex(s, -1)
	if matches == nil {
		return s
	}
	out := make([]byte, 0, len(s))
	last := 0
	for _, m := range matches {
		groups := make([]string, len(m)/2)
		for g := range groups {
			if m[2*g] >= 0 {
				groups[g] = s[m[2*g]:m[2*g+1]]
			}
		}
		out = append(out, s[last:m[0]]...)
		out = append(out, repl(groups)...)
		last = m[1]
	}
	out = append(out, s[last:]...)
	return string(out)
}

// replaceLookaround is replaceSubmatches for patterns that need lookbehind or
// lookahead, which RE2 does not support.
func replaceLookaround(re *regexp2.Regexp, s string, repl func(groups []string) string) (string, error) {
	return re.ReplaceFunc(s, func(m regexp2.Match) string {
		gs := m.Groups()
		groups := make([]string, len(gs))
		for i := range gs {
			if len(gs[i].Captures) > 0 {
				groups[i] = gs[i].String()
			}
		}
		return repl(groups)
	}, -1, -1)
}
