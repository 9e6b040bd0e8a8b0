package creole

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/wikiconvert/internal/foundation/errors"
	"git.home.luguber.info/inful/wikiconvert/internal/gcwiki"
)

func transformBody(t *testing.T, body string) string {
	t.Helper()
	res, err := Transform(&gcwiki.Page{Name: "Test", Meta: gcwiki.Metadata{}, Body: body}, Options{ProjectID: "owner/repo"})
	require.NoError(t, err)
	require.Empty(t, res.Diagnostics)
	return res.Text
}

func TestTransform_Properties(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"inline code", "`code`", "##{{{code}}}##"},
		{"bold", "*word*", "**word**"},
		{"italic", "_word_", "*word*"},
		{"independent bold spans", "*already* *bold* text", "**already** **bold** text"},
		{"table", "||A||B||\n||1||2||", "|=A|=B|\n|1|2|"},
		{"wiki link", "[FooBarBaz]", "[[Foo Bar Baz]]"},
		{"external link", "[http://example.com Example]", "[[Example|http://example.com]]"},
		{"issue", "see issue 42", "see [issue 42](https://github.com/owner/repo/issues#issue/42)"},
		{"preformatted", "{{{\nfoo\nbar\n}}}", "    \n    foo\n    bar"},
		{"bullets", "  * one\n  * two", "* one\n* two"},
		{"numbered", "  # one\n   # two", "# one\n# two"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, transformBody(t, tt.in))
		})
	}
}

func TestTransform_PreformattedUntouched(t *testing.T) {
	out := transformBody(t, "{{{\n*x* _y_ [FooBar] issue 3\n  * item\n||a||b||\n}}}")
	assert.Equal(t, "    \n    *x* _y_ [FooBar] issue 3\n      * item\n    ||a||b||", out)
}

func TestTransform_LinkTextAndURLs(t *testing.T) {
	out := transformBody(t, "[http://example.com/a_b_c My *link*] and [ReleaseNotes notes_v2_final]")
	assert.Equal(t, "[[My **link**|http://example.com/a_b_c]] and [[Release Notes|notes_v2_final]]", out)
}

func TestTransform_IssueInsideLinkNotRelinked(t *testing.T) {
	out := transformBody(t, "[http://example.com see issue 9]")
	assert.Equal(t, "[[see issue 9|http://example.com]]", out)
}

func TestTransform_BulletWithBoldText(t *testing.T) {
	out := transformBody(t, "  * the *main* point")
	assert.Equal(t, "* the **main** point", out)
}

func TestTransform_SummaryAndReplacements(t *testing.T) {
	page := &gcwiki.Page{
		Name: "Home",
		Meta: gcwiki.Metadata{"summary": "Google Refine home"},
		Body: "Welcome to Google Refine.",
	}
	res, err := Transform(page, Options{
		ProjectID:    "OpenRefine/OpenRefine",
		Replacements: []Replacement{{From: "Google Refine", To: "OpenRefine"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "//OpenRefine home//\n\nWelcome to OpenRefine.", res.Text)
}

func TestTransform_CustomIndent(t *testing.T) {
	res, err := Transform(&gcwiki.Page{Body: "{{{\nx\n}}}"}, Options{PreIndent: "\t"})
	require.NoError(t, err)
	assert.Equal(t, "\t\n\tx", res.Text)
}

func TestTransform_RejectsReservedMarker(t *testing.T) {
	_, err := Transform(&gcwiki.Page{Body: "bad " + string(segmentOpen)}, Options{})
	assert.ErrorIs(t, err, ErrReservedMarker)
}

type dropTokensStage struct{}

func (dropTokensStage) Name() string { return "drop_tokens" }

func (dropTokensStage) Apply(d *Document) error {
	d.Text = tokenPattern.ReplaceAllString(d.Text, "")
	return nil
}

func TestPipeline_LostSegmentSurfaces(t *testing.T) {
	page := &gcwiki.Page{Name: "Lossy", Body: "[FooBar]"}

	p := &Pipeline{logger: discardLogger(), stages: []Stage{wikiLinkStage{}, dropTokensStage{}, restoreStage{}}}
	res, err := p.Run(page)
	require.NoError(t, err)
	require.Len(t, res.Diagnostics, 1)
	assert.ErrorIs(t, res.Diagnostics[0], ErrSegmentMissing)
	assert.Contains(t, res.Diagnostics[0].Error(), "[[Foo Bar]]")

	p.stages[2] = restoreStage{strict: true}
	_, err = p.Run(page)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSegmentMissing)
	assert.Contains(t, err.Error(), "stage restore")
}

func TestDefaultStages_Order(t *testing.T) {
	var names []string
	for _, st := range NewPipeline(Options{}, nil).Stages() {
		names = append(names, st.Name())
	}
	assert.Equal(t, "pre_blocks,inline_code,tables,lists,emphasis,wiki_links,external_links,issue_links,restore,summary,replacements,bullets",
		strings.Join(names, ","))
}

func TestPipeline_LostSegmentIsWarning(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	page := &gcwiki.Page{Name: "Lossy", Meta: gcwiki.Metadata{"labels": "Featured, Deprecated"}, Body: "[FooBar]"}

	p := &Pipeline{logger: logger, stages: []Stage{wikiLinkStage{}, dropTokensStage{}, restoreStage{}}}
	res, err := p.Run(page)
	require.NoError(t, err)
	require.Len(t, res.Diagnostics, 1)

	classified, ok := errors.AsClassified(res.Diagnostics[0])
	require.True(t, ok)
	assert.Equal(t, errors.SeverityWarning, classified.Severity())
	assert.Equal(t, errors.CategoryMarkup, classified.Category())

	out := logs.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "segment=0")
	assert.Contains(t, out, "labels=\"[Featured Deprecated]\"")
}
