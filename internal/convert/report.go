package convert

// Outcome is what happened to a single source page.
type Outcome string

const (
	OutcomeWritten    Outcome = "written"
	OutcomeUnchanged  Outcome = "unchanged"
	OutcomeWouldWrite Outcome = "would-write"
	OutcomeFailed     Outcome = "failed"
)

// FileResult describes the conversion of one source page.
type FileResult struct {
	Source      string
	Dest        string
	Outcome     Outcome
	Diagnostics []error
	Err         error
}

// Report collects the results of a run in processing order.
type Report struct {
	Files []FileResult
}

func (r *Report) add(fr FileResult) {
	r.Files = append(r.Files, fr)
}

// Count returns the number of files with the given outcome.
func (r *Report) Count(o Outcome) int {
	n := 0
	for _, f := range r.Files {
		if f.Outcome == o {
			n++
		}
	}
	return n
}

// Written returns the destination paths that were written.
func (r *Report) Written() []string {
	var out []string
	for _, f := range r.Files {
		if f.Outcome == OutcomeWritten {
			out = append(out, f.Dest)
		}
	}
	return out
}

// HasFailures reports whether any page failed.
func (r *Report) HasFailures() bool {
	return r.Count(OutcomeFailed) > 0
}

// Diagnostics returns the number of non-fatal diagnostics across all pages.
func (r *Report) Diagnostics() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Diagnostics)
	}
	return n
}
