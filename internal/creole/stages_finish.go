package creole

import (
	"strings"

	"git.home.luguber.info/inful/wikiconvert/internal/foundation/errors"
)

// restoreStage splices protected segments back into the text.
type restoreStage struct {
	strict bool
}

func (restoreStage) Name() string { return "restore" }

func (s restoreStage) Apply(d *Document) error {
	text, missing := d.Segments.Restore(d.Text)
	d.Text = text
	if len(missing) == 0 {
		return nil
	}
	if s.strict {
		return missing[0]
	}
	for _, m := range missing {
		d.Diagnostics = append(d.Diagnostics, errors.MarkupError("protected segment not restored").
			WithCause(m).
			WithContext("segment", m.Index).
			Warning().Build())
	}
	return nil
}

// summaryStage prepends the page summary as an italic line.
type summaryStage struct{}

func (summaryStage) Name() string { return "summary" }

func (summaryStage) Apply(d *Document) error {
	if summary, ok := d.Meta.Summary(); ok {
		d.Text = "//" + summary + "//\n\n" + d.Text
	}
	return nil
}

// replacementStage applies the configured literal substitutions in order.
type replacementStage struct {
	replacements []Replacement
}

func (replacementStage) Name() string { return "replacements" }

func (s replacementStage) Apply(d *Document) error {
	for _, r := range s.replacements {
		if r.From == "" {
			continue
		}
		d.Text = strings.ReplaceAll(d.Text, r.From, r.To)
	}
	return nil
}

// bulletStage swaps the temporary bullet marker for the Creole bullet.
type bulletStage struct{}

func (bulletStage) Name() string { return "bullets" }

func (bulletStage) Apply(d *Document) error {
	d.Text = strings.ReplaceAll(d.Text, string(bulletMarker), "*")
	return nil
}
