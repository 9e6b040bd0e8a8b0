package convert

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/wikiconvert/internal/config"
	"git.home.luguber.info/inful/wikiconvert/internal/foundation/errors"
)

func newTestConverter(t *testing.T, dst string, cfg *config.Config) *Converter {
	t.Helper()
	return newLoggedConverter(t, dst, cfg, &bytes.Buffer{})
}

func newLoggedConverter(t *testing.T, dst string, cfg *config.Config, logs *bytes.Buffer) *Converter {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelInfo}))
	c, err := New(Options{ProjectID: "OpenRefine/OpenRefine", DestDir: dst, Config: cfg, Logger: logger})
	require.NoError(t, err)
	return c
}

func writePage(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestConvertFile_WritesOnceThenUnchanged(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	page := writePage(t, src, "FooBarBaz.wiki", "#summary s\n\n*bold*")

	var logs bytes.Buffer
	c := newLoggedConverter(t, dst, nil, &logs)

	first := c.ConvertFile(page)
	require.NoError(t, first.Err)
	assert.Equal(t, OutcomeWritten, first.Outcome)
	assert.Equal(t, filepath.Join(dst, "Foo-Bar-Baz.creole"), first.Dest)

	got, err := os.ReadFile(first.Dest)
	require.NoError(t, err)
	assert.Equal(t, "//s//\n\n**bold**", string(got))

	info, err := os.Stat(first.Dest)
	require.NoError(t, err)

	second := c.ConvertFile(page)
	require.NoError(t, second.Err)
	assert.Equal(t, OutcomeUnchanged, second.Outcome)

	after, err := os.Stat(first.Dest)
	require.NoError(t, err)
	assert.Equal(t, info.ModTime(), after.ModTime())

	lines := strings.Split(strings.TrimSpace(logs.String()), "\n")
	require.Len(t, lines, 1, "exactly one log line per write: %q", logs.String())
	assert.Contains(t, lines[0], "msg=wrote")
	assert.Contains(t, lines[0], "Foo-Bar-Baz.creole")
}

func TestConvertFile_OverwritesDifferentContent(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	page := writePage(t, src, "Home.wiki", "\nnew text")
	writePage(t, dst, "Home.creole", "old text")

	fr := newTestConverter(t, dst, nil).ConvertFile(page)
	require.NoError(t, fr.Err)
	assert.Equal(t, OutcomeWritten, fr.Outcome)
	got, err := os.ReadFile(fr.Dest)
	require.NoError(t, err)
	assert.Equal(t, "new text", string(got))
}

func TestConvertFile_DryRunWritesNothing(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	page := writePage(t, src, "Home.wiki", "\ntext")
	cfg := config.Default()
	cfg.DryRun = true

	fr := newTestConverter(t, dst, cfg).ConvertFile(page)
	require.NoError(t, fr.Err)
	assert.Equal(t, OutcomeWouldWrite, fr.Outcome)
	_, err := os.Stat(fr.Dest)
	assert.True(t, os.IsNotExist(err))
}

func TestConvertFile_StripsBOM(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	page := writePage(t, src, "Bom.wiki", "\xef\xbb\xbf#summary with bom\n\nbody")

	fr := newTestConverter(t, dst, nil).ConvertFile(page)
	require.NoError(t, fr.Err)
	got, err := os.ReadFile(fr.Dest)
	require.NoError(t, err)
	assert.Equal(t, "//with bom//\n\nbody", string(got))
}

func TestConvertFile_InvalidUTF8(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	page := writePage(t, src, "Bad.wiki", "\nvalid \xff\xfe bytes")

	fr := newTestConverter(t, dst, nil).ConvertFile(page)
	require.Error(t, fr.Err)
	assert.Equal(t, OutcomeFailed, fr.Outcome)
	assert.Equal(t, errors.CategoryMarkup, errors.GetCategory(fr.Err))
	assert.Contains(t, fr.Err.Error(), "not valid UTF-8")
	_, err := os.Stat(fr.Dest)
	assert.True(t, os.IsNotExist(err))
}

func TestConvertFile_MalformedHeader(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	page := writePage(t, src, "Broken.wiki", "#summary x\nno separator")

	fr := newTestConverter(t, dst, nil).ConvertFile(page)
	require.Error(t, fr.Err)
	assert.Equal(t, OutcomeFailed, fr.Outcome)
	assert.Equal(t, errors.CategoryMarkup, errors.GetCategory(fr.Err))
	assert.Contains(t, fr.Err.Error(), page)
	_, err := os.Stat(fr.Dest)
	assert.True(t, os.IsNotExist(err))
}

func TestConvertFile_MissingSource(t *testing.T) {
	fr := newTestConverter(t, t.TempDir(), nil).ConvertFile(filepath.Join(t.TempDir(), "Nope.wiki"))
	require.Error(t, fr.Err)
	assert.Equal(t, errors.CategoryFileSystem, errors.GetCategory(fr.Err))
}

func TestConvertPath_SingleFile(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	page := writePage(t, src, "notes.txt", "\nplain")

	report, err := newTestConverter(t, dst, nil).ConvertPath(context.Background(), page)
	require.NoError(t, err)
	require.Len(t, report.Files, 1)
	assert.Equal(t, filepath.Join(dst, "notes.creole"), report.Files[0].Dest)
}

func TestConvertPath_DirectoryFiltersAndIsNotRecursive(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writePage(t, src, "PageOne.wiki", "\none")
	writePage(t, src, "PageTwo.wiki", "\ntwo")
	writePage(t, src, "README.txt", "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(src, "Nested.wiki"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "Nested.wiki", "Deep.wiki"), []byte("\ndeep"), 0o644))

	c := newTestConverter(t, dst, nil)
	report, err := c.ConvertPath(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Count(OutcomeWritten))
	assert.ElementsMatch(t, []string{
		filepath.Join(dst, "Page-One.creole"),
		filepath.Join(dst, "Page-Two.creole"),
	}, report.Written())
	assert.False(t, report.HasFailures())
}

func TestConvertPath_StopsAtFirstFailure(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writePage(t, src, "APage.wiki", "#summary a\nbroken")
	writePage(t, src, "BPage.wiki", "\nfine")

	report, err := newTestConverter(t, dst, nil).ConvertPath(context.Background(), src)
	require.Error(t, err)
	require.Len(t, report.Files, 1)
	assert.Equal(t, OutcomeFailed, report.Files[0].Outcome)
	_, statErr := os.Stat(filepath.Join(dst, "B-Page.creole"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestConvertPath_KeepGoingJoinsFailures(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writePage(t, src, "APage.wiki", "#summary a\nbroken")
	writePage(t, src, "BPage.wiki", "\nfine")
	writePage(t, src, "CPage.wiki", "= oops =")
	cfg := config.Default()
	cfg.KeepGoing = true

	report, err := newTestConverter(t, dst, cfg).ConvertPath(context.Background(), src)
	require.Error(t, err)
	assert.Len(t, report.Files, 3)
	assert.Equal(t, 2, report.Count(OutcomeFailed))
	assert.Equal(t, 1, report.Count(OutcomeWritten))
	assert.True(t, errors.HasCategory(err, errors.CategoryMarkup))
	assert.Contains(t, err.Error(), "APage.wiki")
	assert.Contains(t, err.Error(), "CPage.wiki")
}

func TestConvertPath_CancelledContext(t *testing.T) {
	src := t.TempDir()
	writePage(t, src, "APage.wiki", "\na")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := newTestConverter(t, t.TempDir(), nil).ConvertPath(ctx, src)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, report.Files)
}

func TestConvertPath_MissingSource(t *testing.T) {
	_, err := newTestConverter(t, t.TempDir(), nil).ConvertPath(context.Background(), filepath.Join(t.TempDir(), "gone"))
	require.Error(t, err)
	assert.Equal(t, errors.CategoryNotFound, errors.GetCategory(err))
}

func TestNew_Validation(t *testing.T) {
	dir := t.TempDir()
	file := writePage(t, dir, "f.txt", "x")

	tests := []struct {
		name     string
		opts     Options
		category errors.ErrorCategory
	}{
		{"bad project", Options{ProjectID: "norepo", DestDir: dir}, errors.CategoryValidation},
		{"too many slashes", Options{ProjectID: "a/b/c", DestDir: dir}, errors.CategoryValidation},
		{"missing dest", Options{ProjectID: "a/b", DestDir: filepath.Join(dir, "missing")}, errors.CategoryNotFound},
		{"dest is file", Options{ProjectID: "a/b", DestDir: file}, errors.CategoryValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts)
			require.Error(t, err)
			assert.Equal(t, tt.category, errors.GetCategory(err))
		})
	}
}

func TestRender_ValidatesProjectID(t *testing.T) {
	_, err := Render("whatever.wiki", "noslash", nil, nil)
	assert.Equal(t, errors.CategoryValidation, errors.GetCategory(err))
}

func TestListSources_CustomPattern(t *testing.T) {
	src := t.TempDir()
	writePage(t, src, "a.txt", "\na")
	writePage(t, src, "b.wiki", "\nb")

	got, err := ListSources(src, "*.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(src, "a.txt")}, got)
}

func TestDestinationName(t *testing.T) {
	assert.Equal(t, "Foo-Bar-Baz.creole", DestinationName("/x/FooBarBaz.wiki", ".creole"))
	assert.Equal(t, "FAQ.md", DestinationName("FAQ.wiki", ".md"))
	assert.Equal(t, "Release-Notes.creole", DestinationName("ReleaseNotes", ".creole"))
}

func TestRender_DoesNotWrite(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	page := writePage(t, src, "Home.wiki", "\nsee issue 3")

	text, err := Render(page, "OpenRefine/OpenRefine", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "see [issue 3](https://github.com/OpenRefine/OpenRefine/issues#issue/3)", text)
	entries, err := os.ReadDir(dst)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
