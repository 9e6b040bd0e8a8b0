package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/wikiconvert/internal/convert"
	"git.home.luguber.info/inful/wikiconvert/internal/gcwiki"
)

// NamesCmd lists the page name mapping without converting anything.
type NamesCmd struct {
	Src string `arg:"" name:"src" help:"Source .wiki file or directory" type:"path"`

	out io.Writer `kong:"-"`
}

// Run prints one "source -> destination (display)" line per page.
func (n *NamesCmd) Run(g *Global) error {
	sources, err := convert.ListSources(n.Src, g.Config.SourcePattern)
	if err != nil {
		return err
	}
	w := n.out
	if w == nil {
		w = os.Stdout
	}
	for _, s := range sources {
		base := strings.TrimSuffix(filepath.Base(s), filepath.Ext(s))
		name := convert.DestinationName(s, g.Config.OutputExtension)
		if _, err := fmt.Fprintf(w, "%s -> %s (%s)\n", s, name, gcwiki.DisplayName(base)); err != nil {
			return err
		}
	}
	return nil
}
