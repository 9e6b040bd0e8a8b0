package wikigit

import (
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"git.home.luguber.info/inful/wikiconvert/internal/foundation/errors"
	"git.home.luguber.info/inful/wikiconvert/internal/logfields"
)

// CommitOptions describes the commit to create.
type CommitOptions struct {
	Message     string
	AuthorName  string
	AuthorEmail string
	// When defaults to time.Now.
	When time.Time
}

// Commit stages paths (absolute or relative to the working directory) in the
// repository containing dir and commits them. It returns the new commit hash,
// or "" when paths is empty.
func Commit(dir string, paths []string, opts CommitOptions) (string, error) {
	if len(paths) == 0 {
		return "", nil
	}

	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", ClassifyGitError(err, "open", dir)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", ClassifyGitError(err, "worktree", dir)
	}
	root, err := filepath.Abs(wt.Filesystem.Root())
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryFileSystem, "cannot resolve worktree root").Build()
	}

	for _, p := range paths {
		rel, err := relativeTo(root, p)
		if err != nil {
			return "", err
		}
		if _, err := wt.Add(rel); err != nil {
			return "", ClassifyGitError(err, "add", rel)
		}
		slog.Debug("Staged page", logfields.Path(rel))
	}

	when := opts.When
	if when.IsZero() {
		when = time.Now()
	}
	hash, err := wt.Commit(opts.Message, &git.CommitOptions{
		Author: &object.Signature{Name: opts.AuthorName, Email: opts.AuthorEmail, When: when},
	})
	if err != nil {
		return "", ClassifyGitError(err, "commit", dir)
	}
	slog.Info("Committed pages", logfields.Count(len(paths)), slog.String("commit", hash.String()[:8]))
	return hash.String(), nil
}

func relativeTo(root, p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryFileSystem, "cannot resolve page path").
			WithContext("path", p).Build()
	}
	// worktree roots may be reached through symlinks, e.g. /tmp on macOS
	if r, err := filepath.EvalSymlinks(root); err == nil {
		root = r
	}
	if a, err := filepath.EvalSymlinks(abs); err == nil {
		abs = a
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.ValidationError("page is outside the git working copy").
			WithContext("path", p).
			WithContext("root", root).Build()
	}
	return filepath.ToSlash(rel), nil
}
