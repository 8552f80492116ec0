// Package templater implements the (out-of-scope, per spec.md §1) templating
// layer's two concrete strategies: "raw" passthrough and a Jinja-like
// "{{ ... }}" placeholder scanner. The scanner is grounded directly on
// mohae-rollie/parse/lex.go's open/close-tag state-function design
// (oTag/cTag, itemTag/itemIdentifier), adapted from Mustache tags to
// Jinja-style "{{ expr }}" / "{{ ref('x') }}" forms, and from channel-based
// item emission to slice-based emission for the same reason the dialect
// lexer makes that change: the engine re-lexes synchronously, many times.
package templater

import (
	"github.com/sqllint/sqllint/pkg/segment"
	"github.com/sqllint/sqllint/pkg/templatefile"
)

const (
	openTag  = "{{"
	closeTag = "}}"
)

type stateFn func(*scanner) stateFn

type scanner struct {
	input   string
	pos     int
	start   int
	records []templatefile.SliceRecord
}

// Scan builds a TemplatedFile for the placeholder templater. Unlike a real
// templating engine it performs no value substitution — source and
// templated text stay byte-identical — but it tags every "{{ ... }}" span as
// a non-literal slice, which is all the core needs to gate fixes inside
// template expansions (spec.md §3 "A marker is literal iff...").
func Scan(source string) *templatefile.TemplatedFile {
	s := &scanner{input: source}
	for state := lexText; state != nil; {
		state = state(s)
	}
	if s.start < len(s.input) {
		s.emit(templatefile.SliceLiteral, len(s.input))
	}
	return templatefile.New(source, source, s.records)
}

func (s *scanner) emit(typ templatefile.SliceType, stop int) {
	if s.start == stop {
		return
	}
	rng := segment.Slice{Start: s.start, Stop: stop}
	s.records = append(s.records, templatefile.SliceRecord{Type: typ, SourceSlice: rng, TemplatedSlice: rng})
	s.start = stop
}

func lexText(s *scanner) stateFn {
	i := indexFrom(s.input, s.pos, openTag)
	if i == -1 {
		s.pos = len(s.input)
		return nil
	}
	s.pos = i
	s.emit(templatefile.SliceLiteral, s.pos)
	return lexTag
}

func lexTag(s *scanner) stateFn {
	s.pos += len(openTag)
	j := indexFrom(s.input, s.pos, closeTag)
	if j == -1 {
		// Unterminated tag: treat the remainder as a single templated block.
		s.pos = len(s.input)
		s.emit(templatefile.SliceBlockStart, s.pos)
		return nil
	}
	s.pos = j + len(closeTag)
	s.emit(templatefile.SliceTemplated, s.pos)
	return lexText
}

func indexFrom(s string, from int, sub string) int {
	if from >= len(s) {
		return -1
	}
	idx := indexOf(s[from:], sub)
	if idx == -1 {
		return -1
	}
	return from + idx
}

func indexOf(s, sub string) int {
	n, m := len(s), len(sub)
	if m == 0 || m > n {
		return -1
	}
	for i := 0; i+m <= n; i++ {
		if s[i:i+m] == sub {
			return i
		}
	}
	return -1
}

// InnerPadding reports whether the body of a "{{ ... }}" tag (the raw text
// of the templated slice, including the delimiters) has a single space of
// padding immediately inside each delimiter — the condition rule JJ01
// checks and fixes (spec.md §8 scenario S10).
func InnerPadding(tagRaw string) (hasLeading, hasTrailing bool) {
	body := tagRaw[len(openTag) : len(tagRaw)-len(closeTag)]
	hasLeading = len(body) > 0 && body[0] == ' '
	hasTrailing = len(body) > 0 && body[len(body)-1] == ' '
	return hasLeading, hasTrailing
}

// PadTag rewrites tagRaw to have exactly one space of inner padding on each
// side, matching the JJ01 fix.
func PadTag(tagRaw string) string {
	body := tagRaw[len(openTag) : len(tagRaw)-len(closeTag)]
	trimmed := trimSpace(body)
	if trimmed == "" {
		return openTag + closeTag
	}
	return openTag + " " + trimmed + " " + closeTag
}

func trimSpace(s string) string {
	start := 0
	for start < len(s) && s[start] == ' ' {
		start++
	}
	end := len(s)
	for end > start && s[end-1] == ' ' {
		end--
	}
	return s[start:end]
}
