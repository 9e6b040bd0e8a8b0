package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/wikiconvert/internal/convert"
	"git.home.luguber.info/inful/wikiconvert/internal/logfields"
	"git.home.luguber.info/inful/wikiconvert/internal/wikigit"
)

// ConvertCmd implements the default command.
type ConvertCmd struct {
	ProjectID string `arg:"" name:"project-id" help:"GitHub project id used for issue links, e.g. owner/repo"`
	Src       string `arg:"" name:"src" help:"Source .wiki file or directory" type:"path"`
	Dst       string `arg:"" name:"dst" help:"Existing destination directory, usually a clone of the GitHub wiki" type:"path"`

	KeepGoing bool `help:"Continue with remaining pages after a page fails"`
	Strict    bool `help:"Fail a page when a protected span cannot be restored"`
	DryRun    bool `help:"Report pages that would be written without writing them"`
	Commit    bool `help:"Commit written pages in the destination git working copy"`
}

// Run executes the conversion.
func (c *ConvertCmd) Run(g *Global) error {
	cfg := g.Config
	if c.KeepGoing {
		cfg.KeepGoing = true
	}
	if c.Strict {
		cfg.StrictRestore = true
	}
	if c.DryRun {
		cfg.DryRun = true
	}

	conv, err := convert.New(convert.Options{
		ProjectID: c.ProjectID,
		DestDir:   c.Dst,
		Config:    cfg,
		Logger:    g.Logger,
	})
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	report, err := conv.ConvertPath(ctx, c.Src)
	if report != nil {
		g.Logger.Debug("Conversion finished",
			logfields.Source(c.Src),
			logfields.Dest(c.Dst),
			logfields.Count(len(report.Files)),
			"written", report.Count(convert.OutcomeWritten),
			"unchanged", report.Count(convert.OutcomeUnchanged),
			"failed", report.Count(convert.OutcomeFailed),
			"diagnostics", report.Diagnostics())
	}
	if err != nil {
		return err
	}

	if c.Commit && !cfg.DryRun {
		_, err := wikigit.Commit(c.Dst, report.Written(), wikigit.CommitOptions{
			Message:     cfg.Commit.Message,
			AuthorName:  cfg.Commit.AuthorName,
			AuthorEmail: cfg.Commit.AuthorEmail,
		})
		return err
	}
	return nil
}
