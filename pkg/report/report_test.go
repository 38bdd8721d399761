package report

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultops/logtriage/pkg/types"
)

func init() {
	// Reports must be byte-identical across runs when piped; tests render
	// with color disabled the same way non-TTY output does.
	color.NoColor = true
}

func render(sum *types.Summary) string {
	var b strings.Builder
	Render(&b, sum, Options{})
	return b.String()
}

func fullSummary() *types.Summary {
	s := types.NewSummary()
	s.OscillationMessages = []string{
		"Oscillation detected: validator 'backticks' iteration 3",
		"Oscillation detected: validator 'backticks' iteration 4",
	}
	s.AddMissingBacktick("StateFlow")
	s.AddMissingBacktick("Flow")
	s.AddControlCode("001f")
	s.AddControlCode("0004")
	s.RecursionLimitHits = 2
	s.QAVerificationNoneErrors = 1
	s.DraftStatusNotes = 3
	s.FutureDatedMetadataNotes = 4
	s.SetNotesProcessed(120)
	s.SetNotesWithErrors(25)
	return s
}

func TestEmptySummaryRendersBannerOnly(t *testing.T) {
	out := render(types.NewSummary())

	assert.Equal(t, "LLM review log analysis\n========================\n", out)
}

func TestSectionOrderIsFixed(t *testing.T) {
	out := render(fullSummary())

	sections := []string{
		"LLM review log analysis",
		"Processed notes: 120 (errors: 25)",
		"Oscillation detected in validators:",
		"Missing backticks around Kotlin types: Flow, StateFlow",
		"Control character crashes encountered: 0004, 001f",
		"Recursion limit hit: 2 time(s)",
		"QA verification NoneType errors: 1 occurrence(s)",
		"Future-dated metadata warnings: 4 occurrence(s)",
		"Draft-status metadata warnings: 3 occurrence(s)",
		"Recommended follow-up actions:",
	}

	last := -1
	for _, section := range sections {
		idx := strings.Index(out, section)
		require.GreaterOrEqual(t, idx, 0, "section %q missing from report", section)
		assert.Greater(t, idx, last, "section %q out of order", section)
		last = idx
	}
}

func TestOscillationBulletsKeepEncounterOrder(t *testing.T) {
	out := render(fullSummary())

	it3 := strings.Index(out, "  - Oscillation detected: validator 'backticks' iteration 3")
	it4 := strings.Index(out, "  - Oscillation detected: validator 'backticks' iteration 4")
	require.GreaterOrEqual(t, it3, 0)
	require.GreaterOrEqual(t, it4, 0)
	assert.Less(t, it3, it4)
}

func TestProcessedNotesDefaultsErrorsToZero(t *testing.T) {
	s := types.NewSummary()
	s.SetNotesProcessed(50)

	out := render(s)

	assert.Contains(t, out, "Processed notes: 50 (errors: 0)")
}

func TestErrorsWithoutProcessedOmitsLine(t *testing.T) {
	s := types.NewSummary()
	s.SetNotesWithErrors(5)

	out := render(s)

	assert.NotContains(t, out, "Processed notes")
}

func TestVerboseAddsScanStats(t *testing.T) {
	s := types.NewSummary()
	s.Stats = types.ScanStats{LinesScanned: 40, LinesMatched: 7}

	var b strings.Builder
	Render(&b, s, Options{Verbose: true})

	assert.Contains(t, b.String(), "Lines scanned: 40 (matched: 7)")
}

func TestRenderIsDeterministic(t *testing.T) {
	assert.Equal(t, render(fullSummary()), render(fullSummary()))
}

func TestRecommendationTriggers(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.Summary)
		needle string
	}{
		{
			"missing backticks",
			func(s *types.Summary) { s.AddMissingBacktick("Flow") },
			"backticks",
		},
		{
			"oscillation",
			func(s *types.Summary) { s.OscillationMessages = []string{"Oscillation detected: x"} },
			"short-circuit after two oscillating iterations",
		},
		{
			"future dates",
			func(s *types.Summary) { s.FutureDatedMetadataNotes = 1 },
			"future-dated timestamps",
		},
		{
			"draft status",
			func(s *types.Summary) { s.DraftStatusNotes = 1 },
			"draft-status warnings",
		},
		{
			"control codes",
			func(s *types.Summary) { s.AddControlCode("0004") },
			"Strip non-printable control characters (e.g. 0x0004).",
		},
		{
			"recursion limit",
			func(s *types.Summary) { s.RecursionLimitHits = 1 },
			"recursion limit",
		},
		{
			"qa none errors",
			func(s *types.Summary) { s.QAVerificationNoneErrors = 1 },
			"'NoneType' iterable checks",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := types.NewSummary()
			tt.mutate(s)

			advice := Recommendations(s)

			require.Len(t, advice, 1)
			assert.Contains(t, advice[0], tt.needle)
		})
	}
}

func TestNoRecommendationsForEmptySummary(t *testing.T) {
	assert.Empty(t, Recommendations(types.NewSummary()))
}

func TestSystemicIssuesRate(t *testing.T) {
	s := types.NewSummary()
	s.SetNotesProcessed(100)
	s.SetNotesWithErrors(25)

	advice := Recommendations(s)

	require.Len(t, advice, 1)
	assert.Contains(t, advice[0], "25 of 100 notes (25.0%)")
}

func TestSystemicIssuesSkippedWhenNoErrors(t *testing.T) {
	s := types.NewSummary()
	s.SetNotesProcessed(100)
	s.SetNotesWithErrors(0)

	assert.Empty(t, Recommendations(s))
}

func TestSystemicIssuesSkippedWhenProcessedZero(t *testing.T) {
	s := types.NewSummary()
	s.SetNotesProcessed(0)
	s.SetNotesWithErrors(5)

	assert.Empty(t, Recommendations(s))
}

func TestCustomRuleSectionAndAdvice(t *testing.T) {
	s := types.NewSummary()
	s.RuleHits = []types.RuleHit{
		{ID: "stale-lock", Description: "vault lock file left behind", Advice: "Remove stale lock files.", Count: 2},
		{ID: "never-fires", Count: 0},
	}

	out := render(s)

	assert.Contains(t, out, "Custom rule matches:")
	assert.Contains(t, out, "  - stale-lock: 2 line(s) (vault lock file left behind)")
	assert.NotContains(t, out, "never-fires")
	assert.Contains(t, out, "  * Remove stale lock files.")
}

func TestCustomRulesAllUnmatchedOmitsSection(t *testing.T) {
	s := types.NewSummary()
	s.RuleHits = []types.RuleHit{{ID: "quiet", Count: 0}}

	out := render(s)

	assert.Equal(t, "LLM review log analysis\n========================\n", out)
}
