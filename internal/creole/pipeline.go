package creole

import (
	"errors"
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/wikiconvert/internal/gcwiki"
	"git.home.luguber.info/inful/wikiconvert/internal/logfields"
)

// Stage is one rewrite pass over a Document.
type Stage interface {
	Name() string
	Apply(d *Document) error
}

// DefaultStages returns the conversion stages in the order they must run.
// Protecting stages come before the passes they guard against, and restore
// runs before the stages that work on final text.
func DefaultStages(opts Options) []Stage {
	indent := opts.PreIndent
	if indent == "" {
		indent = DefaultPreIndent
	}
	return []Stage{
		preBlockStage{indent: indent},
		inlineCodeStage{},
		tableStage{},
		listStage{},
		emphasisStage{},
		wikiLinkStage{},
		externalLinkStage{},
		issueLinkStage{},
		restoreStage{strict: opts.StrictRestore},
		summaryStage{},
		replacementStage{replacements: opts.Replacements},
		bulletStage{},
	}
}

// Pipeline runs a fixed list of stages over a page.
type Pipeline struct {
	opts   Options
	stages []Stage
	logger *slog.Logger
}

// NewPipeline builds the default pipeline for opts.
func NewPipeline(opts Options, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{opts: opts, stages: DefaultStages(opts), logger: logger}
}

// Stages exposes the configured stage order.
func (p *Pipeline) Stages() []Stage { return p.stages }

// Run converts page and returns the Creole text. Diagnostics from stages are
// logged as warnings and returned in the result.
func (p *Pipeline) Run(page *gcwiki.Page) (*Result, error) {
	if containsReserved(page.Body) {
		return nil, ErrReservedMarker
	}

	doc := &Document{
		Text:      page.Body,
		Meta:      page.Meta,
		ProjectID: p.opts.ProjectID,
		Segments:  &Segments{},
	}
	p.logger.Debug("Converting page",
		logfields.Page(page.Name),
		slog.Any("labels", page.Meta.Labels()))
	for _, st := range p.stages {
		before := doc.Text
		if err := st.Apply(doc); err != nil {
			return nil, fmt.Errorf("stage %s: %w", st.Name(), err)
		}
		p.logger.Debug("Stage applied",
			logfields.Page(page.Name),
			logfields.Stage(st.Name()),
			slog.Bool("changed", before != doc.Text))
	}
	for _, d := range doc.Diagnostics {
		attrs := []any{logfields.Page(page.Name), logfields.Error(d)}
		var missing *SegmentMissingError
		if errors.As(d, &missing) {
			attrs = append(attrs, logfields.Segment(missing.Index))
		}
		p.logger.Warn("Conversion diagnostic", attrs...)
	}
	return &Result{Text: doc.Text, Diagnostics: doc.Diagnostics}, nil
}

// Transform converts a single page with the default pipeline.
func Transform(page *gcwiki.Page, opts Options) (*Result, error) {
	return NewPipeline(opts, nil).Run(page)
}
