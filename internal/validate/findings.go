package validate

import (
	"fmt"

	"github.com/roster-dev/roster/internal/manifest"
)

// Class categorizes a finding. The constant order is the tie-break order in
// the report: structural problems sort before reference problems, and so on.
type Class int

const (
	ClassStructural Class = iota // missing or mistyped field
	ClassReference               // dangling category or dependency reference
	ClassUniqueness              // duplicate name within a kind
	ClassFormat                  // malformed version string
)

func (c Class) String() string {
	switch c {
	case ClassStructural:
		return "structural"
	case ClassReference:
		return "reference"
	case ClassUniqueness:
		return "uniqueness"
	case ClassFormat:
		return "format"
	}
	return "unknown"
}

// Finding is one recorded violation, anchored to the entry it was found on.
type Finding struct {
	Class   Class
	Kind    manifest.Kind
	Index   int    // entry position within its collection
	Entity  string // display reference: `"name"` or `#N` when the name is unusable
	Message string
}

// Line renders the finding as the single report line shown to the user,
// e.g. `skill "testing": missing required field "version"`.
func (f Finding) Line() string {
	return fmt.Sprintf("%s %s: %s", f.Kind, f.Entity, f.Message)
}

// entityRef builds the display reference for an entry: the quoted name when
// present and string-typed, otherwise the 1-based position in its collection.
func entityRef(e manifest.Entry) string {
	if name, ok := e.Name(); ok {
		return fmt.Sprintf("%q", name)
	}
	return fmt.Sprintf("#%d", e.Index+1)
}
