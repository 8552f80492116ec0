// Package lintctx is the top-level orchestration entry point: it ties the
// parser, templater, config, worker pool, and rule engine together into the
// two operations the CLI actually calls, Lint and Fix (spec.md §4.2's
// overall data-flow diagram, driven per-file).
package lintctx

import (
	"context"
	"os"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"github.com/sqllint/sqllint/internal/parse"
	"github.com/sqllint/sqllint/internal/templater"
	"github.com/sqllint/sqllint/internal/worker"
	"github.com/sqllint/sqllint/pkg/config"
	"github.com/sqllint/sqllint/pkg/engine"
	"github.com/sqllint/sqllint/pkg/rules"
	"github.com/sqllint/sqllint/pkg/segment"
	"github.com/sqllint/sqllint/pkg/templatefile"
)

// Linter bundles everything a Lint/Fix call over a set of paths needs: the
// dialect parser, templater choice, resolved rule set and logger. One
// Linter is built once per CLI invocation from a single Config (spec.md §9
// "materialized once at startup").
type Linter struct {
	Parser    *parse.Parser
	Templater string // "raw" or "placeholder"
	Rules     []engine.Rule
	Logger    *log.Logger
}

// New builds a Linter from a resolved Config.
func New(cfg *config.Config) (*Linter, error) {
	p, err := parse.New(cfg.Dialect)
	if err != nil {
		return nil, errors.Wrapf(err, "lintctx: dialect %q", cfg.Dialect)
	}
	return &Linter{
		Parser:    p,
		Templater: cfg.Templater,
		Rules:     rules.All(cfg.RuleOptions),
		Logger:    log.New(os.Stderr),
	}, nil
}

// FileOutcome is one file's lint/fix result.
type FileOutcome struct {
	Path          string
	Violations    []engine.Violation
	FixesMade     int
	Oscillated    bool
	FixWouldBreak bool
	Fixed         string // the rewritten source, set only when Fix was requested
	Err           error  // lex/parse/template/IO error for this file; non-fatal, reported per-file
}

// Lint reports violations for every path without mutating anything.
func (l *Linter) Lint(ctx context.Context, paths []string) []FileOutcome {
	return l.run(ctx, paths, false)
}

// Fix lints every path and computes its fixed source without writing
// anything, returning each file's final source alongside its outcome so the
// caller decides whether/how to write it back (the CLI writes; tests can
// inspect without touching disk).
func (l *Linter) Fix(ctx context.Context, paths []string) []FileOutcome {
	return l.run(ctx, paths, true)
}

func (l *Linter) run(ctx context.Context, paths []string, fix bool) []FileOutcome {
	concurrency := runtime.GOMAXPROCS(0)
	results := worker.Run(ctx, paths, concurrency, func(ctx context.Context, job worker.Job) (interface{}, error) {
		return l.lintOne(job.Path, fix), nil
	})

	outcomes := make([]FileOutcome, len(results))
	for i, r := range results {
		outcomes[i] = r.Value.(FileOutcome)
	}
	return outcomes
}

func (l *Linter) lintOne(path string, fix bool) FileOutcome {
	raw, err := os.ReadFile(path)
	if err != nil {
		return FileOutcome{Path: path, Err: errors.Wrap(err, "read file")}
	}
	source := string(raw)

	var tf *templatefile.TemplatedFile
	switch l.Templater {
	case "placeholder":
		tf = templater.Scan(source)
	default:
		tf = templatefile.NewRaw(source)
	}

	arena := segment.NewArena()
	root, ok := l.Parser.Tree(arena, tf.TemplatedStr())
	if !ok {
		l.Logger.Warn("file fell back to an unparsable segment", "path", path)
	}
	file := &segment.File{Root: root, Arena: arena}

	main, post := splitPhases(l.Rules)
	driver := &engine.Driver{Main: main, Post: post, Logger: l.Logger, Reparser: l.Parser}
	result := driver.Run(file, tf, engine.NewMemory(), fix)

	outcome := FileOutcome{
		Path:          path,
		Violations:    result.Violations,
		FixesMade:     result.FixesMade,
		Oscillated:    result.Oscillated,
		FixWouldBreak: result.FixWouldBreak,
	}
	if fix {
		outcome.Fixed = renderFixed(file.Root, tf)
	}
	return outcome
}

// renderFixed produces the rewritten source string via the patch-generation
// and splicing algorithm (spec.md §4.1 "patch generation and string
// rewriting"), rather than simply taking the fixed tree's raw text: that
// would discard the distinction between literal and templated regions and
// silently rewrite text the templating layer owns. Render's own internal
// overlap check is the P4 guard (spec.md "Patch disjointness"); a failure
// here means a rule produced fixes iter_patches cannot reconcile, so the
// file is left unfixed rather than risking corrupted output.
func renderFixed(root segment.Segment, tf *templatefile.TemplatedFile) string {
	patches := segment.IterPatches(root, tf)
	out, err := segment.Render(tf.SourceStr(), patches)
	if err != nil {
		return tf.SourceStr()
	}
	return out
}

// splitPhases partitions the rule set into Main (everything except LT01 and
// LT02, which are Post-phase since they delegate into the reflow engine
// that must run after every other rule has had its say) and Post.
func splitPhases(all []engine.Rule) (main, post []engine.Rule) {
	for _, r := range all {
		if r.Code() == "LT01" || r.Code() == "LT02" {
			post = append(post, r)
			continue
		}
		main = append(main, r)
	}
	return main, post
}
