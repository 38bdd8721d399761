package analyzer

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/vaultops/logtriage/pkg/types"
)

// Rule is a single declarative pattern loaded from a YAML rules file. It
// describes what to look for (Pattern, compiled as a Go regexp) and the
// remediation advice to surface when it matches.
type Rule struct {
	ID          string `yaml:"id"`
	Description string `yaml:"description"`
	Pattern     string `yaml:"pattern"`
	Advice      string `yaml:"advice"`

	re *regexp.Regexp
}

// ruleFile is the top-level structure of a YAML rules file: a single "rules"
// key containing an array of rule definitions.
type ruleFile struct {
	Rules []Rule `yaml:"rules"`
}

// RuleSet is an ordered collection of validated, compiled rules.
type RuleSet struct {
	rules []Rule
}

// Rules returns all rules in declaration order.
func (rs *RuleSet) Rules() []Rule {
	return rs.rules
}

// LoadRules reads a YAML rules file and returns a validated RuleSet. Every
// pattern is compiled at load time so that scan-time matching cannot fail.
func LoadRules(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file %s: %w", path, err)
	}

	var rf ruleFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing rules file %s: %w", path, err)
	}

	rs := &RuleSet{}
	for i, r := range rf.Rules {
		if r.ID == "" {
			return nil, fmt.Errorf("rule %d in %s: rule ID must not be empty", i, path)
		}
		if r.Pattern == "" {
			return nil, fmt.Errorf("rule %s in %s: pattern must not be empty", r.ID, path)
		}
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rule %s in %s: compiling pattern: %w", r.ID, path, err)
		}
		r.re = re
		rs.rules = append(rs.rules, r)
	}
	return rs, nil
}

// ruleDetector adapts one custom rule to the Detector interface. Each
// detector owns an index into the summary's RuleHits slice, assigned when
// the analyzer binds it to a fresh summary.
type ruleDetector struct {
	rule Rule
	slot int
	sum  *types.Summary
}

func newRuleDetector(r Rule) *ruleDetector {
	return &ruleDetector{rule: r, slot: -1}
}

func (d *ruleDetector) Name() string { return "rule:" + d.rule.ID }

// bind reserves this rule's RuleHit entry in sum, keeping declaration order
// even for rules that never match.
func (d *ruleDetector) bind(sum *types.Summary) {
	d.sum = sum
	d.slot = len(sum.RuleHits)
	sum.RuleHits = append(sum.RuleHits, types.RuleHit{
		ID:          d.rule.ID,
		Description: d.rule.Description,
		Advice:      d.rule.Advice,
	})
}

func (d *ruleDetector) Scan(line string, sum *types.Summary) bool {
	if !d.rule.re.MatchString(line) {
		return false
	}
	if d.sum == sum && d.slot >= 0 {
		sum.RuleHits[d.slot].Count++
	}
	return true
}
