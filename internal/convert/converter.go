package convert

import (
	"bytes"
	"context"
	stderrors "errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"

	"git.home.luguber.info/inful/wikiconvert/internal/config"
	"git.home.luguber.info/inful/wikiconvert/internal/creole"
	"git.home.luguber.info/inful/wikiconvert/internal/foundation/errors"
	"git.home.luguber.info/inful/wikiconvert/internal/gcwiki"
	"git.home.luguber.info/inful/wikiconvert/internal/logfields"
)

// Options configures a Converter.
type Options struct {
	// ProjectID is the GitHub "owner/repo" used for issue links.
	ProjectID string
	// DestDir must be an existing directory.
	DestDir string
	Config  *config.Config
	Logger  *slog.Logger
}

// Converter converts source pages into destination pages.
type Converter struct {
	projectID string
	destDir   string
	cfg       *config.Config
	pipeline  *creole.Pipeline
	logger    *slog.Logger
}

// New validates opts and returns a Converter.
func New(opts Options) (*Converter, error) {
	if err := ValidateProjectID(opts.ProjectID); err != nil {
		return nil, err
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	info, err := os.Stat(opts.DestDir)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryNotFound, "destination directory not accessible").
			WithContext("path", opts.DestDir).Build()
	}
	if !info.IsDir() {
		return nil, errors.ValidationError("destination is not a directory").
			WithContext("path", opts.DestDir).Build()
	}

	return &Converter{
		projectID: opts.ProjectID,
		destDir:   opts.DestDir,
		cfg:       cfg,
		pipeline:  creole.NewPipeline(cfg.Pipeline(opts.ProjectID), logger),
		logger:    logger,
	}, nil
}

// ValidateProjectID checks the "owner/repo" shape.
func ValidateProjectID(id string) error {
	owner, repo, ok := strings.Cut(id, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") || strings.ContainsAny(id, " \t\n") {
		return errors.ValidationError("project id must look like owner/repo").
			WithContext("project", id).Build()
	}
	return nil
}

// DestinationPath returns where the page converted from src is written.
func (c *Converter) DestinationPath(src string) string {
	return filepath.Join(c.destDir, DestinationName(src, c.cfg.OutputExtension))
}

// DestinationName derives the output file name from a source path.
func DestinationName(src, ext string) string {
	return gcwiki.PageName(baseName(src)) + ext
}

func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ConvertPath converts src, which is either a single page or a directory of
// pages. Pages are processed one at a time. The first failure stops the run
// unless keep_going is set, in which case all failures are joined.
func (c *Converter) ConvertPath(ctx context.Context, src string) (*Report, error) {
	sources, err := c.Sources(src)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("Converting pages", logfields.Source(src), logfields.Count(len(sources)), logfields.Project(c.projectID))

	report := &Report{}
	var failures []error
	for _, s := range sources {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		fr := c.ConvertFile(s)
		report.add(fr)
		if fr.Err == nil {
			continue
		}
		c.logger.Error("Page conversion failed", logfields.Source(s), logfields.Error(fr.Err))
		if !c.cfg.KeepGoing {
			return report, fr.Err
		}
		failures = append(failures, fr.Err)
	}
	return report, stderrors.Join(failures...)
}

// Sources lists the pages ConvertPath would process for src.
func (c *Converter) Sources(src string) ([]string, error) {
	return ListSources(src, c.cfg.SourcePattern)
}

// ListSources returns src itself when it is a file, otherwise the entries of
// directory src whose names match pattern. Subdirectories are not descended.
func ListSources(src, pattern string) ([]string, error) {
	info, err := os.Stat(src)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryNotFound, "source not accessible").
			WithContext("path", src).Build()
	}
	if !info.IsDir() {
		return []string{src}, nil
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to list source directory").
			WithContext("path", src).Build()
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		// pattern validated by config
		if ok, _ := filepath.Match(pattern, e.Name()); ok {
			out = append(out, filepath.Join(src, e.Name()))
		}
	}
	return out, nil
}

// ConvertFile converts one page and writes it when the content changed.
// The returned result carries any error in Err.
func (c *Converter) ConvertFile(src string) FileResult {
	fr := FileResult{Source: src, Dest: c.DestinationPath(src)}

	text, diags, err := renderPage(c.pipeline, src)
	if err != nil {
		fr.Outcome = OutcomeFailed
		fr.Err = err
		return fr
	}
	fr.Diagnostics = diags

	changed, err := needsWrite(fr.Dest, text)
	if err != nil {
		fr.Outcome = OutcomeFailed
		fr.Err = err
		return fr
	}
	switch {
	case !changed:
		fr.Outcome = OutcomeUnchanged
		c.logger.Debug("Page unchanged", logfields.Path(fr.Dest))
	case c.cfg.DryRun:
		fr.Outcome = OutcomeWouldWrite
		c.logger.Info("would write", logfields.Path(fr.Dest))
	default:
		if err := os.WriteFile(fr.Dest, []byte(text), 0o644); err != nil {
			fr.Outcome = OutcomeFailed
			fr.Err = errors.WrapError(err, errors.CategoryFileSystem, "failed to write page").
				WithContext("path", fr.Dest).Build()
			return fr
		}
		fr.Outcome = OutcomeWritten
		c.logger.Info("wrote", logfields.Path(fr.Dest))
	}
	return fr
}

// Render converts the page at src and returns the Creole text without
// writing anything.
func Render(src, projectID string, cfg *config.Config, logger *slog.Logger) (string, error) {
	if err := ValidateProjectID(projectID); err != nil {
		return "", err
	}
	if cfg == nil {
		cfg = config.Default()
	}
	text, _, err := renderPage(creole.NewPipeline(cfg.Pipeline(projectID), logger), src)
	return text, err
}

func renderPage(p *creole.Pipeline, src string) (string, []error, error) {
	content, err := readPage(src)
	if err != nil {
		return "", nil, err
	}

	page, err := gcwiki.Parse(baseName(src), content)
	if err != nil {
		return "", nil, errors.WrapError(err, errors.CategoryMarkup, "malformed page header").
			WithContext("path", src).Build()
	}

	res, err := p.Run(page)
	switch {
	case err == nil:
		return res.Text, res.Diagnostics, nil
	case stderrors.Is(err, creole.ErrSegmentMissing):
		return "", nil, errors.InternalError("protected segment lost during conversion").
			WithCause(err).
			WithContext("path", src).Build()
	default:
		return "", nil, errors.WrapError(err, errors.CategoryMarkup, "page cannot be converted").
			WithContext("path", src).Build()
	}
}

// readPage reads src as UTF-8, dropping a leading byte order mark.
func readPage(src string) (string, error) {
	raw, err := os.ReadFile(src)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryFileSystem, "failed to read page").
			WithContext("path", src).Build()
	}
	// the decoder substitutes U+FFFD for bad bytes instead of failing
	if !utf8.Valid(raw) {
		return "", errors.MarkupError("page is not valid UTF-8").
			WithContext("path", src).Build()
	}
	decoded, err := unicode.UTF8BOM.NewDecoder().Bytes(raw)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryMarkup, "failed to decode page").
			WithContext("path", src).Build()
	}
	return string(decoded), nil
}

// needsWrite reports whether dest is missing or holds different content.
func needsWrite(dest, text string) (bool, error) {
	existing, err := os.ReadFile(dest)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, errors.WrapError(err, errors.CategoryFileSystem, "failed to read existing page").
			WithContext("path", dest).Build()
	}
	return !bytes.Equal(existing, []byte(text)), nil
}
