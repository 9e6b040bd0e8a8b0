package creole

import (
	"fmt"
	"regexp"

	"github.com/dlclark/regexp2"

	"git.home.luguber.info/inful/wikiconvert/internal/gcwiki"
)

var (
	wikiLinkPattern     = regexp.MustCompile(`(?s)\[((?:[A-Z][a-z]+)+)(?:\s+(.*?))?\]`)
	externalLinkPattern = regexp2.MustCompile(`(?<!\[)\[((?:http|ftp):\S+)\s+(.*?)\](?!\])`, regexp2.Singleline)
	issuePattern        = regexp2.MustCompile(`(?<![\[\w])(issue (\d+))(?![\d\]])`, regexp2.None)
)

// wikiLinkStage renders [CamelCase text] as [[Camel Case|text]].
type wikiLinkStage struct{}

func (wikiLinkStage) Name() string { return "wiki_links" }

func (wikiLinkStage) Apply(d *Document) error {
	d.Text = replaceSubmatches(wikiLinkPattern, d.Text, func(g []string) string {
		target := gcwiki.DisplayName(g[1])
		if g[2] != "" {
			return d.Segments.Protect("[[" + target + "|" + g[2] + "]]")
		}
		return d.Segments.Protect("[[" + target + "]]")
	})
	return nil
}

// externalLinkStage renders [url text] as [[text|url]].
type externalLinkStage struct{}

func (externalLinkStage) Name() string { return "external_links" }

func (externalLinkStage) Apply(d *Document) error {
	text, err := replaceLookaround(externalLinkPattern, d.Text, func(g []string) string {
		return d.Segments.Protect("[[" + g[2] + "|" + g[1] + "]]")
	})
	if err != nil {
		return err
	}
	d.Text = text
	return nil
}

// issueLinkStage links "issue N" to the project's GitHub issue. Numbers are
// carried over as-is.
type issueLinkStage struct{}

func (issueLinkStage) Name() string { return "issue_links" }

func (issueLinkStage) Apply(d *Document) error {
	text, err := replaceLookaround(issuePattern, d.Text, func(g []string) string {
		return fmt.Sprintf("[%s](https://github.com/%s/issues#issue/%s)", g[1], d.ProjectID, g[2])
	})
	if err != nil {
		return err
	}
	d.Text = text
	return nil
}
