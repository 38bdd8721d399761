package analyzer

import (
	"regexp"
	"strings"

	"github.com/vaultops/logtriage/pkg/types"
)

var (
	missingBackticksRe = regexp.MustCompile(`Type name '([^']+)' found without backticks`)
	oscillationRe      = regexp.MustCompile(`Oscillation detected.*`)
	controlCharRe      = regexp.MustCompile(`unacceptable character #x([0-9A-Fa-f]{4})`)
	recursionLimitRe   = regexp.MustCompile(`Recursion limit of \d+ reached`)
	draftStatusRe      = regexp.MustCompile(`(?i)status set to 'draft'`)
	futureDateRe       = regexp.MustCompile(`(?i)future(?:-looking)? dates?`)
)

const qaNoneErrorNeedle = "argument of type 'NoneType' is not iterable"

// MissingBackticksDetector catches the lint warning for type identifiers
// that appear unquoted in generated text. The repeated automated "fixes"
// these trigger are a major source of validator churn.
type MissingBackticksDetector struct{}

func (d *MissingBackticksDetector) Name() string { return "missing-backticks" }

func (d *MissingBackticksDetector) Scan(line string, sum *types.Summary) bool {
	m := missingBackticksRe.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	sum.AddMissingBacktick(m[1])
	return true
}

// OscillationDetector catches validators re-raising the same warning across
// fix/validate iterations without converging. The full message text is kept
// in encounter order so the report can show the concrete payloads.
type OscillationDetector struct{}

func (d *OscillationDetector) Name() string { return "oscillation" }

func (d *OscillationDetector) Scan(line string, sum *types.Summary) bool {
	m := oscillationRe.FindString(line)
	if m == "" {
		return false
	}
	sum.OscillationMessages = append(sum.OscillationMessages, m)
	return true
}

// ControlCharacterDetector catches low-level validator crashes on stray
// control characters. Codes are normalized to lowercase hex.
type ControlCharacterDetector struct{}

func (d *ControlCharacterDetector) Name() string { return "control-character" }

func (d *ControlCharacterDetector) Scan(line string, sum *types.Summary) bool {
	m := controlCharRe.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	sum.AddControlCode(strings.ToLower(m[1]))
	return true
}

// RecursionLimitDetector counts recursion-limit cutoffs in the self-healing
// loops. The numeric limit itself is not retained; only the hit matters.
type RecursionLimitDetector struct{}

func (d *RecursionLimitDetector) Name() string { return "recursion-limit" }

func (d *RecursionLimitDetector) Scan(line string, sum *types.Summary) bool {
	if !recursionLimitRe.MatchString(line) {
		return false
	}
	sum.RecursionLimitHits++
	return true
}

// QANoneErrorDetector counts QA verification crashes on absent results.
type QANoneErrorDetector struct{}

func (d *QANoneErrorDetector) Name() string { return "qa-none-error" }

func (d *QANoneErrorDetector) Scan(line string, sum *types.Summary) bool {
	if !strings.Contains(line, qaNoneErrorNeedle) {
		return false
	}
	sum.QAVerificationNoneErrors++
	return true
}

// DraftStatusDetector counts metadata warnings about notes left in draft.
type DraftStatusDetector struct{}

func (d *DraftStatusDetector) Name() string { return "draft-status" }

func (d *DraftStatusDetector) Scan(line string, sum *types.Summary) bool {
	if !draftStatusRe.MatchString(line) {
		return false
	}
	sum.DraftStatusNotes++
	return true
}

// FutureDateDetector counts metadata warnings about future-dated timestamps.
type FutureDateDetector struct{}

func (d *FutureDateDetector) Name() string { return "future-date" }

func (d *FutureDateDetector) Scan(line string, sum *types.Summary) bool {
	if !futureDateRe.MatchString(line) {
		return false
	}
	sum.FutureDatedMetadataNotes++
	return true
}

// NotesProcessedDetector extracts the "Notes Processed" metric. The last
// occurrence wins; a metric line with no integer token is silently ignored.
type NotesProcessedDetector struct{}

func (d *NotesProcessedDetector) Name() string { return "notes-processed" }

func (d *NotesProcessedDetector) Scan(line string, sum *types.Summary) bool {
	if !strings.Contains(line, "Notes Processed") {
		return false
	}
	v, ok := lastIntToken(line)
	if !ok {
		return false
	}
	sum.SetNotesProcessed(v)
	return true
}

// ErrorsMetricDetector extracts the "Errors" metric. Lines mentioning
// "Metric" are skipped to avoid picking up metric table headers.
type ErrorsMetricDetector struct{}

func (d *ErrorsMetricDetector) Name() string { return "errors-metric" }

func (d *ErrorsMetricDetector) Scan(line string, sum *types.Summary) bool {
	if !strings.Contains(line, "Errors") || strings.Contains(line, "Metric") {
		return false
	}
	v, ok := lastIntToken(line)
	if !ok {
		return false
	}
	sum.SetNotesWithErrors(v)
	return true
}
