package creole

import (
	"regexp"
	"strings"
)

var (
	preBlockPattern   = regexp.MustCompile(`(?ms)^\{\{\{(.*?)\}\}\}`)
	inlineCodePattern = regexp.MustCompile("(?s)`(.*?)`")
	tableRowPattern   = regexp.MustCompile(`^\|\|(?:.*?\|\|)+$`)
	bulletItemPattern = regexp.MustCompile(`(?m)^[ \t]+\*[ \t]+(.*?)$`)
	numberItemPattern = regexp.MustCompile(`(?m)^[ \t]+#[ \t]+(.*?)$`)
)

// preBlockStage moves {{{ }}} blocks out of the text, indented.
type preBlockStage struct {
	indent string
}

func (preBlockStage) Name() string { return "pre_blocks" }

func (s preBlockStage) Apply(d *Document) error {
	d.Text = replaceSubmatches(preBlockPattern, d.Text, func(g []string) string {
		return d.Segments.Protect(indentLines(g[1], s.indent))
	})
	return nil
}

func indentLines(text, prefix string) string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return prefix
	}
	return prefix + strings.ReplaceAll(text, "\n", "\n"+prefix)
}

// inlineCodeStage turns `code` into Creole monospace ##{{{code}}}##.
type inlineCodeStage struct{}

func (inlineCodeStage) Name() string { return "inline_code" }

func (inlineCodeStage) Apply(d *Document) error {
	d.Text = inlineCodePattern.ReplaceAllString(d.Text, "##{{{${1}}}}##")
	return nil
}

// tableStage regroups runs of ||a||b|| rows. The first row of a run is the header.
type tableStage struct{}

func (tableStage) Name() string { return "tables" }

func (tableStage) Apply(d *Document) error {
	lines := strings.Split(d.Text, "\n")
	out := make([]string, 0, len(lines))
	var rows [][]string

	flush := func() {
		if len(rows) == 0 {
			return
		}
		out = append(out, "|="+strings.Join(rows[0], "|=")+"|")
		for _, row := range rows[1:] {
			out = append(out, "|"+strings.Join(row, "|")+"|")
		}
		rows = nil
	}

	for _, line := range lines {
		trimmed := strings.TrimRight(line, " \t")
		if !tableRowPattern.MatchString(trimmed) {
			flush()
			out = append(out, line)
			continue
		}
		parts := strings.Split(trimmed, "||")
		cells := make([]string, 0, len(parts)-2)
		for _, c := range parts[1 : len(parts)-1] {
			cells = append(cells, strings.TrimSpace(c))
		}
		rows = append(rows, cells)
	}
	flush()

	d.Text = strings.Join(out, "\n")
	return nil
}

// listStage flattens indented * and # items. Bullets get a temporary marker so
// the emphasis stage does not read them as bold delimiters.
type listStage struct{}

func (listStage) Name() string { return "lists" }

func (listStage) Apply(d *Document) error {
	d.Text = bulletItemPattern.ReplaceAllString(d.Text, string(bulletMarker)+" ${1}")
	d.Text = numberItemPattern.ReplaceAllString(d.Text, "# ${1}")
	return nil
}
