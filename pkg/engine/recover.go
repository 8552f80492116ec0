package engine

import (
	"bytes"
	"fmt"
	"runtime"

	"github.com/charmbracelet/log"
)

// evalSafely calls rule.Eval and converts any panic into a single synthetic
// Violation carrying the trimmed stack, logging the failure and letting the
// driver continue with the next rule — the same "catch at the boundary,
// keep serving" shape as recovery.go's Recovery() middleware, relocated
// from the HTTP request boundary to the per-rule-per-segment boundary
// (spec.md §7 "a panic from inside a rule is caught... and does not abort
// the rest of the lint run").
func evalSafely(logger *log.Logger, rule Rule, ctx *RuleContext) (violations []Violation) {
	defer func() {
		if r := recover(); r != nil {
			trace := trimmedStack(3)
			logger.Error("rule panicked", "rule", rule.Code(), "panic", r, "stack", trace)
			violations = []Violation{{
				RuleCode:    rule.Code(),
				Description: fmt.Sprintf("internal error evaluating rule %s: %v", rule.Code(), r),
				Anchor:      ctx.Segment,
			}}
		}
	}()
	return rule.Eval(ctx)
}

func trimmedStack(skip int) string {
	buf := new(bytes.Buffer)
	for i := skip; ; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}
		fn := runtime.FuncForPC(pc)
		name := "???"
		if fn != nil {
			name = fn.Name()
		}
		fmt.Fprintf(buf, "%s:%d %s\n", file, line, name)
		if buf.Len() > 4096 {
			break
		}
	}
	return buf.String()
}
