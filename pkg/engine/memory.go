package engine

import "reflect"

// Memory is the per-file bag rules use to carry state from one crawl to the
// next within a single file (spec.md §9 "Memory between rules") — e.g. CP01
// remembering the capitalisation style it saw on the first keyword so every
// later keyword in the file is judged "consistent" against it.
//
// It is adapted from inject/inject.go's TypeMapper: the same
// type-keyed-map idea, but stripped of the reflection-based function-call
// injection (Invoke/Apply) this repo never needs, and additionally keyed by
// a rule code so two unrelated rules storing the same Go type (e.g. both
// tracking a "string" style) never collide.
type Memory struct {
	values map[string]map[reflect.Type]reflect.Value
}

// NewMemory returns an empty per-file Memory, one per worker per file
// (spec.md §5 "Per-file state").
func NewMemory() *Memory {
	return &Memory{values: make(map[string]map[reflect.Type]reflect.Value)}
}

// Set stores value under ruleCode, keyed by value's concrete type.
func (m *Memory) Set(ruleCode string, value interface{}) {
	bucket := m.values[ruleCode]
	if bucket == nil {
		bucket = make(map[reflect.Type]reflect.Value)
		m.values[ruleCode] = bucket
	}
	bucket[reflect.TypeOf(value)] = reflect.ValueOf(value)
}

// Get retrieves the value of out's type previously Set under ruleCode,
// copying it into out. Reports whether a value was found.
func (m *Memory) Get(ruleCode string, out interface{}) bool {
	bucket := m.values[ruleCode]
	if bucket == nil {
		return false
	}
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return false
	}
	val, ok := bucket[rv.Elem().Type()]
	if !ok {
		return false
	}
	rv.Elem().Set(val)
	return true
}

// Clear drops all memory recorded for ruleCode, e.g. between files.
func (m *Memory) Clear(ruleCode string) { delete(m.values, ruleCode) }
