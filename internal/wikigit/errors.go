package wikigit

import (
	stderrors "errors"
	"strings"

	"github.com/go-git/go-git/v5"

	"git.home.luguber.info/inful/wikiconvert/internal/foundation/errors"
)

// ClassifyGitError translates go-git errors into ClassifiedErrors.
func ClassifyGitError(err error, op string, target string) error {
	if err == nil {
		return nil
	}
	if _, ok := errors.AsClassified(err); ok {
		return err
	}

	builder := errors.GitError("git operation failed").
		WithCause(err).
		WithContext("op", op).
		WithContext("target", target)

	l := strings.ToLower(err.Error())
	switch {
	case stderrors.Is(err, git.ErrRepositoryNotExists):
		builder.WithCategory(errors.CategoryNotFound)
	case strings.Contains(l, "entry not found") || strings.Contains(l, "file does not exist"):
		builder.WithCategory(errors.CategoryNotFound)
	case strings.Contains(l, "permission denied"):
		builder.WithCategory(errors.CategoryFileSystem)
	}
	return builder.Build()
}
