package report

import (
	"fmt"
	"strings"

	"github.com/vaultops/logtriage/pkg/types"
)

// Recommendations derives concrete follow-up steps from the captured issues.
// It is a pure function of the summary: each recommendation has a single
// trigger condition, fires at most once, and the output order is fixed.
func Recommendations(sum *types.Summary) []string {
	var advice []string

	if len(sum.MissingBackticks) > 0 {
		advice = append(advice, fmt.Sprintf(
			"Wrap Kotlin type identifiers in backticks during automated fixes to "+
				"avoid validator oscillation (missing: %s).",
			strings.Join(sum.SortedMissingBackticks(), ", ")))
	}

	if len(sum.OscillationMessages) > 0 {
		advice = append(advice,
			"Tune the fixer/validator handshake: automatically short-circuit after "+
				"two oscillating iterations and flag the note for manual review with "+
				"the concrete validator payload.")
	}

	if sum.FutureDatedMetadataNotes > 0 {
		advice = append(advice,
			"Allow the metadata fixer to normalise future-dated timestamps when "+
				"they exceed the allowed threshold instead of repeatedly deferring to "+
				"manual review.")
	}

	if sum.DraftStatusNotes > 0 {
		advice = append(advice,
			"Escalate draft-status warnings with context so reviewers can make a "+
				"publishability decision without combing through raw logs.")
	}

	if len(sum.UnacceptableControlCodes) > 0 {
		advice = append(advice, fmt.Sprintf(
			"Strip non-printable control characters (e.g. 0x%s).",
			strings.Join(sum.SortedControlCodes(), ", ")))
	}

	if sum.RecursionLimitHits > 0 {
		advice = append(advice,
			"Increase the recursion limit or implement stronger guard rails on "+
				"fix-planning loops to prevent runaway iterations.")
	}

	if sum.QAVerificationNoneErrors > 0 {
		advice = append(advice,
			"Guard QA verification against None results before membership tests "+
				"so automation no longer crashes on 'NoneType' iterable checks.")
	}

	// NotesProcessed == 0 would make the error rate meaningless, so the
	// systemic-issues advice requires a positive denominator.
	if sum.NotesProcessed != nil && *sum.NotesProcessed > 0 &&
		sum.NotesWithErrors != nil && *sum.NotesWithErrors > 0 {
		rate := float64(*sum.NotesWithErrors) / float64(*sum.NotesProcessed) * 100
		advice = append(advice, fmt.Sprintf(
			"Investigate systemic issues: %d of %d notes (%.1f%%) still end in "+
				"errors despite modifications.",
			*sum.NotesWithErrors, *sum.NotesProcessed, rate))
	}

	for _, h := range sum.RuleHits {
		if h.Count > 0 && h.Advice != "" {
			advice = append(advice, h.Advice)
		}
	}

	return advice
}
