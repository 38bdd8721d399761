// Package types defines the core types used throughout the log triage tool.
package types

import "sort"

// Summary is the structured accumulation of the recurring failure patterns
// found in a review-automation log. One Summary is produced per analysis run;
// it is mutated line by line during the scan and treated as immutable once
// returned to the caller.
type Summary struct {
	// OscillationMessages holds the full text of every oscillation warning,
	// in encounter order. Duplicates are kept: the repetition itself is the
	// signal.
	OscillationMessages []string

	// MissingBackticks is the set of type names reported without backticks.
	MissingBackticks map[string]struct{}

	// UnacceptableControlCodes is the set of lowercase 4-hex-digit control
	// character codes that crashed a validator.
	UnacceptableControlCodes map[string]struct{}

	RecursionLimitHits       int
	QAVerificationNoneErrors int
	DraftStatusNotes         int
	FutureDatedMetadataNotes int

	// NotesProcessed and NotesWithErrors are the last values seen for the
	// corresponding metric lines. Nil means the metric never appeared.
	// Repeated metric lines overwrite, they do not accumulate.
	NotesProcessed  *int
	NotesWithErrors *int

	// RuleHits collects matches of user-supplied custom rules, one entry per
	// declared rule in declaration order.
	RuleHits []RuleHit

	// Stats carries aggregate scan counters. They are informational and do
	// not appear in the default report.
	Stats ScanStats
}

// RuleHit is the match count for a single custom rule.
type RuleHit struct {
	ID          string
	Description string
	Advice      string
	Count       int
}

// ScanStats aggregates per-run scan counters.
type ScanStats struct {
	LinesScanned int
	LinesMatched int
}

// NewSummary returns an empty Summary ready for accumulation.
func NewSummary() *Summary {
	return &Summary{
		MissingBackticks:         make(map[string]struct{}),
		UnacceptableControlCodes: make(map[string]struct{}),
	}
}

// AddMissingBacktick records a type name reported without backticks.
func (s *Summary) AddMissingBacktick(name string) {
	s.MissingBackticks[name] = struct{}{}
}

// AddControlCode records a lowercase control character code.
func (s *Summary) AddControlCode(code string) {
	s.UnacceptableControlCodes[code] = struct{}{}
}

// SetNotesProcessed overwrites the notes-processed metric. Last seen wins.
func (s *Summary) SetNotesProcessed(v int) {
	s.NotesProcessed = &v
}

// SetNotesWithErrors overwrites the notes-with-errors metric. Last seen wins.
func (s *Summary) SetNotesWithErrors(v int) {
	s.NotesWithErrors = &v
}

// SortedMissingBackticks returns the missing-backtick type names in sorted
// order for deterministic rendering.
func (s *Summary) SortedMissingBackticks() []string {
	return sortedKeys(s.MissingBackticks)
}

// SortedControlCodes returns the control character codes in sorted order.
func (s *Summary) SortedControlCodes() []string {
	return sortedKeys(s.UnacceptableControlCodes)
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
