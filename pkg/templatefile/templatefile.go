// Package templatefile implements the templated-file abstraction the core
// consumes from the (out-of-scope) templating layer, per spec.md §6.
package templatefile

import "github.com/sqllint/sqllint/pkg/segment"

// SliceType classifies one record of a TemplatedFile's SlicedFile.
type SliceType string

const (
	SliceLiteral    SliceType = "literal"
	SliceTemplated  SliceType = "templated"
	SliceBlockStart SliceType = "block_start"
	SliceBlockMid   SliceType = "block_mid"
	SliceBlockEnd   SliceType = "block_end"
	SliceComment    SliceType = "comment"
)

// SliceRecord is one entry of a TemplatedFile's SlicedFile (spec.md §6).
type SliceRecord struct {
	Type           SliceType
	SourceSlice    segment.Slice
	TemplatedSlice segment.Slice
}

// TemplatedFile is the opaque object the core is handed by the (external)
// templating layer, exactly as specified in spec.md §6.
type TemplatedFile struct {
	sourceStr    string
	templatedStr string
	slicedFile   []SliceRecord

	sourceLineOffsets    []int
	templatedLineOffsets []int
}

// New constructs a TemplatedFile from its three required parts. Line
// offsets for get_line_pos_of_char_pos are computed eagerly since every
// leaf position lookup needs them.
func New(sourceStr, templatedStr string, slicedFile []SliceRecord) *TemplatedFile {
	return &TemplatedFile{
		sourceStr:            sourceStr,
		templatedStr:         templatedStr,
		slicedFile:           slicedFile,
		sourceLineOffsets:    lineOffsets(sourceStr),
		templatedLineOffsets: lineOffsets(templatedStr),
	}
}

// NewRaw constructs a TemplatedFile for the no-templating case: source and
// templated text are identical, and the whole file is a single literal
// slice.
func NewRaw(source string) *TemplatedFile {
	return New(source, source, []SliceRecord{
		{Type: SliceLiteral, SourceSlice: segment.Slice{Start: 0, Stop: len(source)}, TemplatedSlice: segment.Slice{Start: 0, Stop: len(source)}},
	})
}

func (t *TemplatedFile) SourceStr() string    { return t.sourceStr }
func (t *TemplatedFile) TemplatedStr() string { return t.templatedStr }
func (t *TemplatedFile) SlicedFile() []SliceRecord {
	out := make([]SliceRecord, len(t.slicedFile))
	copy(out, t.slicedFile)
	return out
}

// IsTemplated reports whether any non-literal slice exists (spec.md §6
// "is_templated()").
func (t *TemplatedFile) IsTemplated() bool {
	for _, s := range t.slicedFile {
		if s.Type != SliceLiteral {
			return true
		}
	}
	return false
}

func lineOffsets(s string) []int {
	offsets := []int{0}
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}

// GetLinePosOfCharPos returns the 1-indexed (line, column) of byte offset
// idx in either the source or templated text (spec.md §6
// "get_line_pos_of_char_pos").
func (t *TemplatedFile) GetLinePosOfCharPos(idx int, source bool) segment.LineCol {
	offsets := t.templatedLineOffsets
	if source {
		offsets = t.sourceLineOffsets
	}
	line := 0
	for i, off := range offsets {
		if off > idx {
			break
		}
		line = i
	}
	return segment.LineCol{Line: line + 1, Col: idx - offsets[line] + 1}
}
