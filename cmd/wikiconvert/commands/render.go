package commands

import (
	"fmt"
	"io"
	"os"

	"git.home.luguber.info/inful/wikiconvert/internal/convert"
)

// RenderCmd prints a single converted page.
type RenderCmd struct {
	ProjectID string `arg:"" name:"project-id" help:"GitHub project id used for issue links, e.g. owner/repo"`
	Page      string `arg:"" name:"page" help:"Source .wiki file" type:"path"`

	out io.Writer `kong:"-"`
}

// Run writes the converted text to stdout.
func (r *RenderCmd) Run(g *Global) error {
	text, err := convert.Render(r.Page, r.ProjectID, g.Config, g.Logger)
	if err != nil {
		return err
	}
	w := r.out
	if w == nil {
		w = os.Stdout
	}
	_, err = fmt.Fprintln(w, text)
	return err
}
