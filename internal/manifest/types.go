package manifest

import "sort"

// Kind identifies which manifest collection an entry belongs to. The
// constant order matches the report order (skills, agents, commands).
type Kind int

const (
	KindSkill Kind = iota
	KindAgent
	KindCommand
)

// Kinds lists all entry kinds in manifest section order.
var Kinds = []Kind{KindSkill, KindAgent, KindCommand}

func (k Kind) String() string {
	switch k {
	case KindSkill:
		return "skill"
	case KindAgent:
		return "agent"
	case KindCommand:
		return "command"
	}
	return "unknown"
}

// Section returns the manifest collection name for the kind.
func (k Kind) Section() string {
	switch k {
	case KindSkill:
		return "skills"
	case KindAgent:
		return "agents"
	case KindCommand:
		return "commands"
	}
	return ""
}

// ModelTiers contains the valid values for an agent's model field, sorted.
var ModelTiers = []string{"haiku", "opus", "sonnet"}

// ValidTier reports whether s is one of the known model tiers.
func ValidTier(s string) bool {
	for _, tier := range ModelTiers {
		if s == tier {
			return true
		}
	}
	return false
}

// Entry is one record from a manifest collection. Fields holds the decoded
// mapping verbatim, including keys the validator does not know about, so
// checks can distinguish a missing field from a mistyped one.
type Entry struct {
	Kind   Kind
	Index  int // position within the entry's collection
	Fields map[string]any
}

// Name returns the entry's name field when present and string-typed.
func (e Entry) Name() (string, bool) {
	return e.StringField("name")
}

// StringField returns the named field when present and string-typed.
func (e Entry) StringField(key string) (string, bool) {
	s, ok := e.Fields[key].(string)
	return s, ok
}

// BoolField returns the named field when present and bool-typed.
func (e Entry) BoolField(key string) (bool, bool) {
	b, ok := e.Fields[key].(bool)
	return b, ok
}

// StringsField returns the string elements of a sequence field. present
// reports whether the field exists at all; clean reports whether it was a
// sequence containing only strings. Non-string elements are dropped so
// reference checks can still resolve the usable names.
func (e Entry) StringsField(key string) (vals []string, present, clean bool) {
	raw, ok := e.Fields[key]
	if !ok {
		return nil, false, false
	}
	seq, ok := raw.([]any)
	if !ok {
		return nil, true, false
	}
	clean = true
	for _, el := range seq {
		s, ok := el.(string)
		if !ok {
			clean = false
			continue
		}
		vals = append(vals, s)
	}
	return vals, true, clean
}

// Document is the parsed manifest: the category table plus the three entry
// collections in source order. It is never mutated after loading.
type Document struct {
	Path       string
	Categories map[string]any
	Skills     []Entry
	Agents     []Entry
	Commands   []Entry
}

// Collection returns the entries of one kind in source order.
func (d *Document) Collection(k Kind) []Entry {
	switch k {
	case KindSkill:
		return d.Skills
	case KindAgent:
		return d.Agents
	case KindCommand:
		return d.Commands
	}
	return nil
}

// CategoryIDs returns the category keys in sorted order.
func (d *Document) CategoryIDs() []string {
	ids := make([]string, 0, len(d.Categories))
	for id := range d.Categories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
