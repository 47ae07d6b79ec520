// Package invoice pulls labeled fields out of invoice text.
package invoice

import (
	"regexp"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/invoice-cli/internal/model"
)

// sameLineSpace skips blanks after the colon without crossing a line break.
const sameLineSpace = `[^\S\n]*`

type compiledRule struct {
	Rule
	re *regexp.Regexp
}

// Extractor applies a fixed rule set to document text. It is safe for
// concurrent use.
type Extractor struct {
	rules []compiledRule
}

// NewExtractor compiles rules into an Extractor.
func NewExtractor(rules []Rule) (*Extractor, error) {
	e := &Extractor{rules: make([]compiledRule, 0, len(rules))}
	for _, r := range rules {
		var capture string
		switch r.Mode {
		case ModeToken:
			capture = `(\S+)`
		case ModeLine:
			capture = `(.+)`
		default:
			return nil, eris.Errorf("invoice: field %s: invalid mode %q", r.Key, r.Mode)
		}
		if strings.TrimSpace(r.Label) == "" {
			return nil, eris.Errorf("invoice: field %s: empty label", r.Key)
		}
		re, err := regexp.Compile(regexp.QuoteMeta(r.Label) + `:` + sameLineSpace + capture)
		if err != nil {
			return nil, eris.Wrapf(err, "invoice: compile rule %s", r.Key)
		}
		e.rules = append(e.rules, compiledRule{Rule: r, re: re})
	}
	return e, nil
}

// Default returns an Extractor over DefaultRules.
func Default() *Extractor {
	e, err := NewExtractor(DefaultRules())
	if err != nil {
		panic(err)
	}
	return e
}

// Rules returns the rule set in column order.
func (e *Extractor) Rules() []Rule {
	out := make([]Rule, len(e.rules))
	for i, r := range e.rules {
		out[i] = r.Rule
	}
	return out
}

// Extract applies every rule to text. The first match of each label wins.
// The returned record holds every rule key; a field whose label is missing,
// or whose capture is blank, is nil.
func (e *Extractor) Extract(text string) model.FieldRecord {
	rec := make(model.FieldRecord, len(e.rules))
	for _, r := range e.rules {
		rec[r.Key] = nil
		m := r.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if v := strings.TrimSpace(m[1]); v != "" {
			rec[r.Key] = &v
		}
	}
	return rec
}
