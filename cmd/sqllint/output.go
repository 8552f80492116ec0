package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"

	"github.com/sqllint/sqllint/pkg/engine"
	"github.com/sqllint/sqllint/pkg/lintctx"
)

// jsonRange mirrors spec.md §6's JSON diagnostic schema exactly. yaml tags
// mirror the same field names so --format=yaml emits a structurally
// identical document in YAML instead of JSON.
type jsonRange struct {
	Start jsonPos `json:"start" yaml:"start"`
	End   jsonPos `json:"end" yaml:"end"`
}

type jsonPos struct {
	Line int `json:"line" yaml:"line"`
	Col  int `json:"col" yaml:"col"`
}

type jsonDiagnostic struct {
	Range       jsonRange `json:"range" yaml:"range"`
	Severity    string    `json:"severity" yaml:"severity"`
	Code        string    `json:"code" yaml:"code"`
	Description string    `json:"description" yaml:"description"`
}

var (
	codeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	errStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	pathStyle = lipgloss.NewStyle().Underline(true)
)

// render writes outcomes in the requested format and returns the process
// exit code: 0 clean, 1 if any file produced a violation, 2 on a per-file
// fatal error that left nothing to report (spec.md §6/§7).
func render(format string, noColor bool, outcomes []lintctx.FileOutcome) int {
	slices.SortFunc(outcomes, func(a, b lintctx.FileOutcome) int {
		switch {
		case a.Path < b.Path:
			return -1
		case a.Path > b.Path:
			return 1
		default:
			return 0
		}
	})

	switch format {
	case "json":
		return renderJSON(outcomes)
	case "yaml":
		return renderYAML(outcomes)
	case "github-annotation", "github-annotation-native":
		return renderGitHubAnnotation(outcomes)
	default:
		return renderHuman(outcomes, noColor)
	}
}

func diagnosticDoc(outcomes []lintctx.FileOutcome) (map[string][]jsonDiagnostic, int) {
	doc := map[string][]jsonDiagnostic{}
	exit := exitOK
	for _, o := range outcomes {
		if o.Err != nil {
			exit = exitFatal
			continue
		}
		diags := make([]jsonDiagnostic, 0, len(o.Violations))
		for _, v := range o.Violations {
			diags = append(diags, toDiagnostic(v))
			exit = maxExit(exit, exitLint)
		}
		doc[o.Path] = diags
	}
	return doc, exit
}

func renderJSON(outcomes []lintctx.FileOutcome) int {
	doc, exit := diagnosticDoc(outcomes)
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(doc)
	return exit
}

func renderYAML(outcomes []lintctx.FileOutcome) int {
	doc, exit := diagnosticDoc(outcomes)
	enc := yaml.NewEncoder(os.Stdout)
	_ = enc.Encode(doc)
	_ = enc.Close()
	return exit
}

func renderHuman(outcomes []lintctx.FileOutcome, noColor bool) int {
	render := func(s lipgloss.Style, text string) string {
		if noColor {
			return text
		}
		return s.Render(text)
	}

	exit := exitOK
	for _, o := range outcomes {
		if o.Err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", render(errStyle, "error"), o.Err)
			exit = exitFatal
			continue
		}
		if len(o.Violations) == 0 {
			continue
		}
		fmt.Println(render(pathStyle, o.Path))
		for _, v := range o.Violations {
			pos := v.Anchor.Position()
			fmt.Printf("  L%d:C%d  %s  %s\n", pos.WorkingLine, pos.WorkingCol, render(codeStyle, v.RuleCode), v.Description)
			exit = maxExit(exit, exitLint)
		}
	}
	if exit == exitOK {
		fmt.Println(render(lipgloss.NewStyle().Foreground(lipgloss.Color("42")), "All checks passed."))
	}
	return exit
}

func renderGitHubAnnotation(outcomes []lintctx.FileOutcome) int {
	exit := exitOK
	for _, o := range outcomes {
		if o.Err != nil {
			fmt.Printf("::error file=%s::%s\n", o.Path, o.Err)
			exit = exitFatal
			continue
		}
		for _, v := range o.Violations {
			pos := v.Anchor.Position()
			fmt.Printf("::warning file=%s,line=%d,col=%d::%s %s\n", o.Path, pos.WorkingLine, pos.WorkingCol, v.RuleCode, v.Description)
			exit = maxExit(exit, exitLint)
		}
	}
	return exit
}

func toDiagnostic(v engine.Violation) jsonDiagnostic {
	start := v.Anchor.Position()
	end := start.Advance(v.Anchor.Raw())
	return jsonDiagnostic{
		Range: jsonRange{
			Start: jsonPos{Line: start.WorkingLine, Col: start.WorkingCol},
			End:   jsonPos{Line: end.WorkingLine, Col: end.WorkingCol},
		},
		Severity:    "error",
		Code:        v.RuleCode,
		Description: v.Description,
	}
}

func maxExit(a, b int) int {
	if b > a {
		return b
	}
	return a
}
