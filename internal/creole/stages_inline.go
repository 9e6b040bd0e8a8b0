package creole

import (
	"github.com/dlclark/regexp2"
)

var (
	boldPattern   = regexp2.MustCompile(`(?<![*\w])\*([^*]+?)\*(?![*\w])`, regexp2.None)
	italicPattern = regexp2.MustCompile(`(?<![_\w])_([^_]+?)_(?![_\w])`, regexp2.None)
)

// emphasisStage converts *bold* to **bold** and then _italic_ to *italic*.
type emphasisStage struct{}

func (emphasisStage) Name() string { return "emphasis" }

func (emphasisStage) Apply(d *Document) error {
	text, err := replaceLookaround(boldPattern, d.Text, func(g []string) string {
		return "**" + g[1] + "**"
	})
	if err != nil {
		return err
	}
	text, err = replaceLookaround(italicPattern, text, func(g []string) string {
		return "*" + g[1] + "*"
	})
	if err != nil {
		return err
	}
	d.Text = text
	return nil
}
