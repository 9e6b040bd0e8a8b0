package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPath    = "path"
	KeySource  = "source"
	KeyDest    = "dest"
	KeyPage    = "page"
	KeyProject = "project"
	KeyStage   = "stage"
	KeySegment = "segment"
	KeyCount   = "count"
	KeyError   = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Path(p string) slog.Attr     { return slog.String(KeyPath, p) }
func Source(p string) slog.Attr   { return slog.String(KeySource, p) }
func Dest(p string) slog.Attr     { return slog.String(KeyDest, p) }
func Page(name string) slog.Attr  { return slog.String(KeyPage, name) }
func Project(id string) slog.Attr { return slog.String(KeyProject, id) }
func Stage(name string) slog.Attr { return slog.String(KeyStage, name) }
func Segment(index int) slog.Attr { return slog.Int(KeySegment, index) }
func Count(n int) slog.Attr       { return slog.Int(KeyCount, n) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
