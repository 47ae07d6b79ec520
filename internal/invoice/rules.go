package invoice

import (
	"os"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/invoice-cli/internal/model"
)

// Mode controls how much text a rule captures after its label.
type Mode string

const (
	// ModeToken captures the first run of non-whitespace characters.
	ModeToken Mode = "token"
	// ModeLine captures the rest of the line.
	ModeLine Mode = "line"
)

// Rule binds a field key to the label that introduces it in the text.
type Rule struct {
	Key   string `yaml:"key" json:"key"`
	Label string `yaml:"label" json:"label"`
	Mode  Mode   `yaml:"mode" json:"mode"`
}

// DefaultRules returns the built-in rule for every invoice field, in column
// order. Labels match the column titles.
func DefaultRules() []Rule {
	lineFields := map[string]bool{
		model.FieldBuyerName:       true,
		model.FieldBuyerAddress:    true,
		model.FieldProductTitle:    true,
		model.FieldTaxRateCategory: true,
	}

	cols := model.InvoiceColumns()
	rules := make([]Rule, len(cols))
	for i, c := range cols {
		mode := ModeToken
		if lineFields[c.Key] {
			mode = ModeLine
		}
		rules[i] = Rule{Key: c.Key, Label: c.Title, Mode: mode}
	}
	return rules
}

type ruleOverride struct {
	Label string `yaml:"label"`
	Mode  Mode   `yaml:"mode"`
}

// LoadRules reads label and mode overrides from a YAML file:
//
//	rules:
//	  buyerName:
//	    label: Customer Name
//	    mode: line
//
// Fields not listed keep their default rule.
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "invoice: read rules %s", path)
	}

	var wrapper struct {
		Rules map[string]ruleOverride `yaml:"rules"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, eris.Wrap(err, "invoice: parse rules")
	}

	return applyOverrides(DefaultRules(), wrapper.Rules)
}

func applyOverrides(rules []Rule, overrides map[string]ruleOverride) ([]Rule, error) {
	idx := make(map[string]int, len(rules))
	for i, r := range rules {
		idx[r.Key] = i
	}

	var unknown []string
	for key := range overrides {
		if _, ok := idx[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, eris.Errorf("invoice: unknown field keys in rules: %s", strings.Join(unknown, ", "))
	}

	for key, o := range overrides {
		r := &rules[idx[key]]
		if label := strings.TrimSpace(o.Label); label != "" {
			r.Label = label
		}
		switch o.Mode {
		case "":
		case ModeToken, ModeLine:
			r.Mode = o.Mode
		default:
			return nil, eris.Errorf("invoice: field %s: invalid mode %q (want token or line)", key, o.Mode)
		}
	}
	return rules, nil
}
