package creole

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Private use code points. Source pages containing any of them are rejected,
// so a token in the working text always originates from Protect.
const (
	segmentOpen  = '\uE000'
	segmentClose = '\uE001'
	bulletMarker = '\uE002'

	reservedRunes = string(segmentOpen) + string(segmentClose) + string(bulletMarker)
)

var tokenPattern = regexp.MustCompile(`\x{E000}([0-9]+)\x{E001}`)

var (
	// ErrReservedMarker is returned for input that already contains a sentinel rune.
	ErrReservedMarker = errors.New("page contains reserved private-use marker characters")
	// ErrSegmentMissing reports a protected span whose token vanished from the text.
	ErrSegmentMissing = errors.New("protected segment token not found during restore")
)

// SegmentMissingError identifies the protected span that could not be restored.
type SegmentMissingError struct {
	Index int
	Text  string
}

func (e *SegmentMissingError) Error() string {
	return fmt.Sprintf("segment %d (%q): %v", e.Index, e.Text, ErrSegmentMissing)
}

func (e *SegmentMissingError) Unwrap() error { return ErrSegmentMissing }

// Segments is the per-page table of protected spans, indexed by token.
type Segments struct {
	texts []string
}

// Len returns the number of protected spans.
func (s *Segments) Len() int { return len(s.texts) }

// Text returns the replacement text recorded for index i.
func (s *Segments) Text(i int) string { return s.texts[i] }

// Protect records text and returns the token that stands in for it.
func (s *Segments) Protect(text string) string {
	s.texts = append(s.texts, text)
	return token(len(s.texts) - 1)
}

// Restore replaces every token in text with its recorded span. Spans may
// themselves contain tokens; those are resolved too. The returned errors list
// each recorded span that never appeared in the text.
func (s *Segments) Restore(text string) (string, []*SegmentMissingError) {
	found := make([]bool, len(s.texts))
	// each pass can only uncover tokens nested one level deeper
	for pass := 0; pass <= len(s.texts); pass++ {
		changed := false
		text = tokenPattern.ReplaceAllStringFunc(text, func(tok string) string {
			idx, err := strconv.Atoi(tok[len(string(segmentOpen)) : len(tok)-len(string(segmentClose))])
			if err != nil || idx >= len(s.texts) {
				return tok
			}
			found[idx] = true
			changed = true
			return s.texts[idx]
		})
		if !changed {
			break
		}
	}

	var missing []*SegmentMissingError
	for i, ok := range found {
		if !ok {
			missing = append(missing, &SegmentMissingError{Index: i, Text: s.texts[i]})
		}
	}
	return text, missing
}

func token(i int) string {
	return string(segmentOpen) + strconv.Itoa(i) + string(segmentClose)
}

func containsReserved(s string) bool {
	return strings.ContainsAny(s, reservedRunes)
}
