// Package analyzer defines the Detector interface, the built-in detector
// registry, and the single-pass line scan that accumulates a Summary.
package analyzer

import (
	"io"

	"go.uber.org/zap"

	"github.com/vaultops/logtriage/pkg/source"
	"github.com/vaultops/logtriage/pkg/types"
)

// Detector inspects a single log line for one failure pattern and records
// what it finds in the summary. Detectors are independent: a line may
// trigger any number of them, and a non-match is the expected common case.
type Detector interface {
	// Name returns the human-readable name of this detector.
	Name() string
	// Scan checks one line and mutates sum on a match. It reports whether
	// the line matched.
	Scan(line string, sum *types.Summary) bool
}

// Registry holds the built-in detectors in their registration order.
var Registry []Detector

// Register adds a detector to the global registry.
func Register(d Detector) {
	Registry = append(Registry, d)
}

func init() {
	Register(&MissingBackticksDetector{})
	Register(&OscillationDetector{})
	Register(&ControlCharacterDetector{})
	Register(&RecursionLimitDetector{})
	Register(&QANoneErrorDetector{})
	Register(&DraftStatusDetector{})
	Register(&FutureDateDetector{})
	Register(&NotesProcessedDetector{})
	Register(&ErrorsMetricDetector{})
}

// Analyzer runs a set of detectors over log lines in a single forward pass.
// The zero value is not usable; construct one with New.
type Analyzer struct {
	detectors []Detector
	log       *zap.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger attaches a logger that records every detector match. The
// default is a nop logger.
func WithLogger(log *zap.Logger) Option {
	return func(a *Analyzer) {
		a.log = log
	}
}

// WithRules appends custom-rule detectors after the built-in ones.
func WithRules(rs *RuleSet) Option {
	return func(a *Analyzer) {
		for _, r := range rs.Rules() {
			a.detectors = append(a.detectors, newRuleDetector(r))
		}
	}
}

// New returns an Analyzer running the built-in registry plus any configured
// custom rules.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		detectors: append([]Detector(nil), Registry...),
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze scans the provided lines in order and returns the accumulated
// summary. The input is never mutated, and a line that defeats one pattern
// check still runs through all the others.
func (a *Analyzer) Analyze(lines []string) *types.Summary {
	sum := types.NewSummary()
	a.prepare(sum)
	for _, line := range lines {
		a.scanLine(line, sum)
	}
	return sum
}

// AnalyzeText scans a full text blob.
func (a *Analyzer) AnalyzeText(text string) *types.Summary {
	return a.Analyze(source.Split(text))
}

// AnalyzeFile loads and scans the log file at path. A path that cannot be
// read returns an error and no summary.
func (a *Analyzer) AnalyzeFile(path string) (*types.Summary, error) {
	lines, err := source.Load(path)
	if err != nil {
		return nil, err
	}
	return a.Analyze(lines), nil
}

// AnalyzeReader scans lines from r incrementally, so arbitrarily large logs
// can be processed without buffering the whole text.
func (a *Analyzer) AnalyzeReader(r io.Reader) (*types.Summary, error) {
	sum := types.NewSummary()
	a.prepare(sum)
	sc := source.NewScanner(r)
	for sc.Scan() {
		a.scanLine(sc.Line(), sum)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return sum, nil
}

// prepare gives rule detectors their slot in the summary so that RuleHits
// keeps declaration order even for rules that never match.
func (a *Analyzer) prepare(sum *types.Summary) {
	for _, d := range a.detectors {
		if rd, ok := d.(*ruleDetector); ok {
			rd.bind(sum)
		}
	}
}

func (a *Analyzer) scanLine(line string, sum *types.Summary) {
	sum.Stats.LinesScanned++
	matched := false
	for _, d := range a.detectors {
		if d.Scan(line, sum) {
			matched = true
			a.log.Debug("detector matched",
				zap.String("detector", d.Name()),
				zap.String("line", line))
		}
	}
	if matched {
		sum.Stats.LinesMatched++
	}
}

// Analyze scans pre-split lines with the default detector set.
func Analyze(lines []string) *types.Summary {
	return New().Analyze(lines)
}

// AnalyzeText scans a text blob with the default detector set.
func AnalyzeText(text string) *types.Summary {
	return New().AnalyzeText(text)
}

// AnalyzeFile scans a log file with the default detector set.
func AnalyzeFile(path string) (*types.Summary, error) {
	return New().AnalyzeFile(path)
}
