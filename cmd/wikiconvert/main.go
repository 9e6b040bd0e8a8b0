package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/wikiconvert/cmd/wikiconvert/commands"
	"git.home.luguber.info/inful/wikiconvert/internal/foundation/errors"
	"git.home.luguber.info/inful/wikiconvert/internal/version"
)

func main() {
	cli := &commands.CLI{}
	global := &commands.Global{}

	parser, err := kong.New(cli,
		kong.Name("wikiconvert"),
		kong.Description("Convert Google Code wiki pages to Creole pages for a GitHub wiki."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.Bind(global),
	)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		// configuration problems surface from AfterApply as classified errors
		if _, ok := errors.AsClassified(err); ok {
			errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
		}
		parser.FatalIfErrorf(err)
	}

	if err := ctx.Run(); err != nil {
		errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
