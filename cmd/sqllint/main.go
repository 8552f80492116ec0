// Command sqllint is the minimal CLI surface spec.md §6 names: lint, fix
// and rules subcommands over a fixed set of flags. It is deliberately thin
// — the teacher itself never reaches for a CLI framework (flame.go's Run()
// is plain os.Getenv/strconv), so this repo sticks to the standard flag
// package the same way.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/sqllint/sqllint/pkg/config"
	"github.com/sqllint/sqllint/pkg/engine"
	"github.com/sqllint/sqllint/pkg/lintctx"
	"github.com/sqllint/sqllint/pkg/rules"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// Exit codes per spec.md §6: 0 clean, 1 lint errors, 2 fatal (config/user).
const (
	exitOK    = 0
	exitLint  = 1
	exitFatal = 2
)

func run(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: sqllint <lint|fix|rules> [flags] [paths...]")
		return exitFatal
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "lint":
		return runLint(rest, false)
	case "fix":
		return runLint(rest, true)
	case "rules":
		return runRules(rest)
	default:
		fmt.Fprintf(os.Stderr, "sqllint: unknown command %q\n", cmd)
		return exitFatal
	}
}

type commonFlags struct {
	dialect      string
	configPath   string
	format       string
	noColor      bool
	rulesAllow   string
	rulesExclude string
}

func parseCommonFlags(name string, args []string) (*commonFlags, []string, error) {
	fs := newFlagSet(name)
	cf := &commonFlags{}
	fs.StringVar(&cf.dialect, "dialect", "", "SQL dialect (core.dialect)")
	fs.StringVar(&cf.configPath, "config", "", "path to a YAML config document")
	fs.StringVar(&cf.format, "format", "human", "human|json|yaml|github-annotation|github-annotation-native")
	fs.BoolVar(&cf.noColor, "no-color", false, "disable styled output")
	fs.StringVar(&cf.rulesAllow, "rules", "", "comma-separated rule codes to restrict to")
	fs.StringVar(&cf.rulesExclude, "exclude-rules", "", "comma-separated rule codes to exclude")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return cf, fs.Args(), nil
}

func runLint(args []string, fix bool) int {
	name := "lint"
	if fix {
		name = "fix"
	}
	cf, paths, err := parseCommonFlags(name, args)
	if err != nil {
		return exitFatal
	}
	if len(paths) == 0 {
		fmt.Fprintf(os.Stderr, "sqllint %s: no paths given\n", name)
		return exitFatal
	}

	logger := log.New(os.Stderr)

	cfg, err := loadConfig(cf.configPath)
	if err != nil {
		logger.Error("config error", "err", err)
		return exitFatal
	}
	if cf.dialect != "" {
		cfg.Dialect = cf.dialect
	}

	linter, err := lintctx.New(cfg)
	if err != nil {
		logger.Error("failed to build linter", "err", err)
		return exitFatal
	}
	linter.Logger = logger
	applyRuleFilter(linter, cf.rulesAllow, cf.rulesExclude)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var outcomes []lintctx.FileOutcome
	if fix {
		outcomes = linter.Fix(ctx, paths)
	} else {
		outcomes = linter.Lint(ctx, paths)
	}

	if fix {
		for _, o := range outcomes {
			if o.Err != nil || o.Fixed == "" {
				continue
			}
			if err := os.WriteFile(o.Path, []byte(o.Fixed), 0o644); err != nil {
				logger.Error("failed to write fixed file", "path", o.Path, "err", err)
			}
		}
	}

	return render(cf.format, cf.noColor, outcomes)
}

func runRules(args []string) int {
	fs := newFlagSet("rules")
	if err := fs.Parse(args); err != nil {
		return exitFatal
	}
	all := rules.All(rules.Options{})
	for _, r := range all {
		fmt.Printf("%-6s %s\n", r.Code(), r.Name())
	}
	return exitOK
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Decode(nil)
	}
	return config.Load(path)
}

func applyRuleFilter(l *lintctx.Linter, allow, exclude string) {
	if allow == "" && exclude == "" {
		return
	}
	allowSet := splitCodes(allow)
	excludeSet := splitCodes(exclude)

	var filtered []engine.Rule
	for _, r := range l.Rules {
		if len(allowSet) > 0 && !allowSet[r.Code()] {
			continue
		}
		if excludeSet[r.Code()] {
			continue
		}
		filtered = append(filtered, r)
	}
	l.Rules = filtered
}

func splitCodes(s string) map[string]bool {
	if s == "" {
		return nil
	}
	out := map[string]bool{}
	for _, code := range strings.Split(s, ",") {
		code = strings.TrimSpace(code)
		if code != "" {
			out[strings.ToUpper(code)] = true
		}
	}
	return out
}
