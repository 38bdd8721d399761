// Package report renders a Summary as a deterministic, human-readable
// triage report with derived remediation advice.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/vaultops/logtriage/pkg/types"
)

// Options controls optional report content. The section ordering itself is
// fixed and not configurable.
type Options struct {
	// Verbose adds the aggregate scan counters after the banner.
	Verbose bool
}

var (
	banner   = color.New(color.Bold)
	heading  = color.New(color.FgCyan)
	emphasis = color.New(color.FgYellow)
)

// Render writes the full report for sum to w. Section order is a fixed
// global template; sections with no data are omitted entirely, so an empty
// summary renders as the banner alone. Content inside each section preserves
// the summary's own ordering (oscillation messages in encounter order,
// set-valued fields sorted).
func Render(w io.Writer, sum *types.Summary, opts Options) {
	fmt.Fprintln(w, banner.Sprint("LLM review log analysis"))
	fmt.Fprintln(w, banner.Sprint("========================"))

	if opts.Verbose {
		fmt.Fprintf(w, "Lines scanned: %d (matched: %d)\n",
			sum.Stats.LinesScanned, sum.Stats.LinesMatched)
	}

	if sum.NotesProcessed != nil {
		errors := 0
		if sum.NotesWithErrors != nil {
			errors = *sum.NotesWithErrors
		}
		fmt.Fprintf(w, "Processed notes: %d (errors: %d)\n", *sum.NotesProcessed, errors)
	}

	if len(sum.OscillationMessages) > 0 {
		fmt.Fprintln(w, "")
		fmt.Fprintln(w, heading.Sprint("Oscillation detected in validators:"))
		for _, msg := range sum.OscillationMessages {
			fmt.Fprintf(w, "  - %s\n", msg)
		}
	}

	if len(sum.MissingBackticks) > 0 {
		fmt.Fprintln(w, "")
		fmt.Fprintf(w, "Missing backticks around Kotlin types: %s\n",
			strings.Join(sum.SortedMissingBackticks(), ", "))
	}

	if len(sum.UnacceptableControlCodes) > 0 {
		fmt.Fprintf(w, "Control character crashes encountered: %s\n",
			strings.Join(sum.SortedControlCodes(), ", "))
	}

	if sum.RecursionLimitHits > 0 {
		fmt.Fprintf(w, "Recursion limit hit: %d time(s)\n", sum.RecursionLimitHits)
	}

	if sum.QAVerificationNoneErrors > 0 {
		fmt.Fprintf(w, "QA verification NoneType errors: %d occurrence(s)\n",
			sum.QAVerificationNoneErrors)
	}

	if sum.FutureDatedMetadataNotes > 0 {
		fmt.Fprintf(w, "Future-dated metadata warnings: %d occurrence(s)\n",
			sum.FutureDatedMetadataNotes)
	}

	if sum.DraftStatusNotes > 0 {
		fmt.Fprintf(w, "Draft-status metadata warnings: %d occurrence(s)\n",
			sum.DraftStatusNotes)
	}

	printRuleHits(w, sum)

	if advice := Recommendations(sum); len(advice) > 0 {
		fmt.Fprintln(w, "")
		fmt.Fprintln(w, heading.Sprint("Recommended follow-up actions:"))
		for _, item := range advice {
			fmt.Fprintf(w, "  * %s\n", item)
		}
	}
}

func printRuleHits(w io.Writer, sum *types.Summary) {
	matched := 0
	for _, h := range sum.RuleHits {
		if h.Count > 0 {
			matched++
		}
	}
	if matched == 0 {
		return
	}

	fmt.Fprintln(w, "")
	fmt.Fprintln(w, heading.Sprint("Custom rule matches:"))
	for _, h := range sum.RuleHits {
		if h.Count == 0 {
			continue
		}
		desc := ""
		if h.Description != "" {
			desc = " (" + h.Description + ")"
		}
		fmt.Fprintf(w, "  - %s: %s%s\n", h.ID, emphasis.Sprintf("%d line(s)", h.Count), desc)
	}
}
