// Package config decodes the hierarchical core/rules/indentation/layout
// YAML document (spec.md §6 "Config") into typed option structs, the same
// decode-once-at-startup discipline the teacher follows for its own static
// configuration (flame.go's Run() reading environment once at boot).
package config

import (
	"os"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/sqllint/sqllint/internal/dialect"
	"github.com/sqllint/sqllint/pkg/reflow"
	"github.com/sqllint/sqllint/pkg/rules"
)

// Document is the raw shape of the YAML config file.
type Document struct {
	Core struct {
		Dialect       string `yaml:"dialect"`
		Templater     string `yaml:"templater"`
		MaxLineLength int    `yaml:"max_line_length"`
	} `yaml:"core"`

	Indentation struct {
		IndentUnit   string `yaml:"indent_unit"` // "space" or "tab"
		TabSpaceSize int    `yaml:"tab_space_size"`
	} `yaml:"indentation"`

	Rules struct {
		AllowScalar bool `yaml:"allow_scalar"`

		Ambiguous struct {
			ColumnReferences struct {
				GroupByAndOrderByStyle string `yaml:"group_by_and_order_by_style"`
			} `yaml:"column_references"`
		} `yaml:"ambiguous"`

		Capitalisation struct {
			Keywords struct {
				CapitalisationPolicy string `yaml:"capitalisation_policy"`
			} `yaml:"keywords"`
			Functions struct {
				CapitalisationPolicy string `yaml:"capitalisation_policy"`
			} `yaml:"functions"`
		} `yaml:"capitalisation"`

		Convention struct {
			NotEqual struct {
				PreferredNotEqualStyle string `yaml:"preferred_not_equal_style"`
			} `yaml:"not_equal"`
			SelectTrailingComma string `yaml:"select_trailing_comma"`
		} `yaml:"convention"`

		References struct {
			Qualification struct {
				IgnoreWords      []string `yaml:"ignore_words"`
				IgnoreWordsRegex []string `yaml:"ignore_words_regex"`
			} `yaml:"qualification"`
		} `yaml:"references"`
	} `yaml:"rules"`
}

// Config is the decoded, defaulted document plus the ready-to-use
// rules.Options it materializes — the boundary between "what the YAML
// says" and "what every rule constructor actually needs".
type Config struct {
	Dialect       string
	Templater     string
	MaxLineLength int
	RuleOptions   rules.Options
}

// Load reads and decodes path, applying defaults for every key spec.md §6
// lists, and returns a fatal Config error (spec.md §7) wrapped via
// pkg/errors on any invalid enum value.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "config: read")
	}
	return Decode(raw)
}

// Decode parses YAML bytes into a Config, the unit Load and tests both use.
func Decode(raw []byte) (*Config, error) {
	var doc Document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrap(err, "config: decode")
	}
	applyDefaults(&doc)

	opts, err := resolveRuleOptions(doc)
	if err != nil {
		return nil, err
	}

	return &Config{
		Dialect:       doc.Core.Dialect,
		Templater:     doc.Core.Templater,
		MaxLineLength: doc.Core.MaxLineLength,
		RuleOptions:   opts,
	}, nil
}

func applyDefaults(doc *Document) {
	if doc.Core.Dialect == "" {
		doc.Core.Dialect = "ansi"
	}
	if doc.Core.Templater == "" {
		doc.Core.Templater = "raw"
	}
	if doc.Core.MaxLineLength == 0 {
		doc.Core.MaxLineLength = 80
	}
	if doc.Indentation.IndentUnit == "" {
		doc.Indentation.IndentUnit = "space"
	}
	if doc.Indentation.TabSpaceSize == 0 {
		doc.Indentation.TabSpaceSize = 4
	}
	if doc.Rules.Capitalisation.Keywords.CapitalisationPolicy == "" {
		doc.Rules.Capitalisation.Keywords.CapitalisationPolicy = "consistent"
	}
	if doc.Rules.Capitalisation.Functions.CapitalisationPolicy == "" {
		doc.Rules.Capitalisation.Functions.CapitalisationPolicy = "consistent"
	}
	if doc.Rules.Convention.NotEqual.PreferredNotEqualStyle == "" {
		doc.Rules.Convention.NotEqual.PreferredNotEqualStyle = "consistent"
	}
}

func resolveRuleOptions(doc Document) (rules.Options, error) {
	indentUnit, err := indentUnitOf(doc.Indentation.IndentUnit, doc.Indentation.TabSpaceSize)
	if err != nil {
		return rules.Options{}, err
	}

	cpPolicy, err := capitalisationPolicyOf(doc.Rules.Capitalisation.Keywords.CapitalisationPolicy)
	if err != nil {
		return rules.Options{}, errors.Wrap(err, "rules.capitalisation.keywords.capitalisation_policy")
	}
	cp3Policy, err := capitalisationPolicyOf(doc.Rules.Capitalisation.Functions.CapitalisationPolicy)
	if err != nil {
		return rules.Options{}, errors.Wrap(err, "rules.capitalisation.functions.capitalisation_policy")
	}
	notEqual, err := notEqualStyleOf(doc.Rules.Convention.NotEqual.PreferredNotEqualStyle)
	if err != nil {
		return rules.Options{}, errors.Wrap(err, "rules.convention.not_equal.preferred_not_equal_style")
	}

	ignoreRegex, err := compileIgnoreRegex(doc.Rules.References.Qualification.IgnoreWordsRegex)
	if err != nil {
		return rules.Options{}, errors.Wrap(err, "rules.references.qualification.ignore_words_regex")
	}

	return rules.Options{
		AL03: rules.AL03Options{AllowScalar: doc.Rules.AllowScalar},
		CP01: rules.CapitalisationOptions{Policy: cpPolicy},
		CP03: rules.CapitalisationOptions{Policy: cp3Policy},
		CV01: rules.CV01Options{Preferred: notEqual},
		RF01: rules.RF01Options{
			IgnoreWords: doc.Rules.References.Qualification.IgnoreWords,
			IgnoreRegex: ignoreRegex,
		},
		Indentation: rules.IndentationOptions{
			IndentConfig: reflow.IndentConfig{
				Unit:                 indentUnit,
				AllowImplicitIndents: true,
			},
			MaxLineLength: doc.Core.MaxLineLength,
		},
	}, nil
}

func indentUnitOf(unit string, tabSpaceSize int) (string, error) {
	switch unit {
	case "space":
		n := tabSpaceSize
		if n <= 0 {
			n = 4
		}
		out := make([]byte, n)
		for i := range out {
			out[i] = ' '
		}
		return string(out), nil
	case "tab":
		return "\t", nil
	default:
		return "", errors.Errorf("indentation.indent_unit: invalid value %q", unit)
	}
}

func capitalisationPolicyOf(v string) (rules.CapitalisationPolicy, error) {
	switch rules.CapitalisationPolicy(v) {
	case rules.PolicyUpper, rules.PolicyLower, rules.PolicyCapitalise, rules.PolicyPascal, rules.PolicyConsistent:
		return rules.CapitalisationPolicy(v), nil
	default:
		return "", errors.Errorf("invalid value %q", v)
	}
}

func notEqualStyleOf(v string) (rules.NotEqualStyle, error) {
	switch rules.NotEqualStyle(v) {
	case rules.NotEqualAnsi, rules.NotEqualCStyle, rules.NotEqualConsistent:
		return rules.NotEqualStyle(v), nil
	default:
		return "", errors.Errorf("invalid value %q", v)
	}
}

// compileIgnoreRegex combines every pattern in patterns into one compiled
// regexp ("(pat1)|(pat2)|...") so RF01 has a single matcher to call, rather
// than looping over one regexp per pattern on every column reference.
func compileIgnoreRegex(patterns []string) (*regexp.Regexp, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	grouped := make([]string, len(patterns))
	for i, p := range patterns {
		grouped[i] = "(" + p + ")"
	}
	return regexp.Compile(strings.Join(grouped, "|"))
}

// ResolveDialect constructs the internal/dialect.Dialect named by the
// config's core.dialect key.
func ResolveDialect(name string) (*dialect.Dialect, error) {
	d, err := dialect.New(name)
	if err != nil {
		return nil, errors.Wrapf(err, "config: dialect %q", name)
	}
	return d, nil
}
