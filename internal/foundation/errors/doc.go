// Package errors provides the classified error type used across wikiconvert.
//
// Key features:
//   - ErrorCategory: broad classification (config, markup, filesystem, git, ...)
//   - ErrorSeverity: impact level (fatal, error, warning, info)
//   - ClassifiedError: structured error with category, severity, and context
//   - ErrorBuilder: fluent API for creating classified errors
//   - CLIErrorAdapter: exit codes and log levels for the command line
//
// Example usage:
//
//	err := errors.MarkupError("header not followed by blank line").
//		WithContext("path", src).
//		WithCause(gcwiki.ErrMalformedHeader).
//		Build()
package errors
