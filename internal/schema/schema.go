// Package schema checks a persisted habit collection against its JSON schema.
// Loading never validates; this is an explicit diagnostic.
package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/brk3/streaks/pkg/habit"
)

//go:embed habits.schema.json
var schemaJSON []byte

const schemaURL = "habits.schema.json"

var ErrInvalid = errors.New("habit data does not match schema")

// Violation is one schema failure at a JSON path such as "[0].history".
type Violation struct {
	Path    string
	Message string
}

func (v Violation) String() string {
	if v.Path == "" {
		return v.Message
	}
	return v.Path + ": " + v.Message
}

// ValidationError lists every violation found in a document.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return fmt.Sprintf("%s: %s", ErrInvalid, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalid }

var compiled = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, err
	}
	return compiler.Compile(schemaURL)
})

// Validate checks raw slot bytes. Malformed JSON and schema violations both
// return an error wrapping ErrInvalid; a *ValidationError carries the detail.
func Validate(data []byte) error {
	sch, err := compiled()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return &ValidationError{Violations: []Violation{{Message: "invalid JSON: " + err.Error()}}}
	}

	var violations []Violation
	if err := sch.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return err
		}
		collect(&violations, ve)
	}
	violations = append(violations, semantic(data)...)

	if len(violations) == 0 {
		return nil
	}
	sort.SliceStable(violations, func(i, j int) bool { return violations[i].Path < violations[j].Path })
	return &ValidationError{Violations: violations}
}

func collect(out *[]Violation, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		*out = append(*out, Violation{Path: pointerToPath(err.InstanceLocation), Message: err.Message})
		return
	}
	for _, c := range err.Causes {
		collect(out, c)
	}
}

// semantic covers what the schema cannot express: real calendar days and
// unique ids. Structural problems are left to the schema.
func semantic(data []byte) []Violation {
	var habits []habit.Habit
	if err := json.Unmarshal(data, &habits); err != nil {
		return nil
	}

	var out []Violation
	seen := map[int64]int{}
	for i, h := range habits {
		if j, dup := seen[h.ID]; dup {
			out = append(out, Violation{
				Path:    fmt.Sprintf("[%d].id", i),
				Message: fmt.Sprintf("duplicate id %d (also at [%d])", h.ID, j),
			})
		} else {
			seen[h.ID] = i
		}
		for day := range h.History {
			if len(day) != len(habit.DayLayout) {
				continue
			}
			if _, err := time.Parse(habit.DayLayout, day); err != nil {
				out = append(out, Violation{
					Path:    fmt.Sprintf("[%d].history", i),
					Message: fmt.Sprintf("%q is not a calendar day", day),
				})
			}
		}
	}
	return out
}

// pointerToPath turns "/0/history/2024-01-10" into "[0].history.2024-01-10".
func pointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}
	var b strings.Builder
	for _, seg := range strings.Split(ptr, "/") {
		seg = strings.ReplaceAll(strings.ReplaceAll(seg, "~1", "/"), "~0", "~")
		if isIndex(seg) {
			fmt.Fprintf(&b, "[%s]", seg)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg)
	}
	return b.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
