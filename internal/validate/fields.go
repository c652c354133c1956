package validate

import (
	"fmt"
	"strings"

	"github.com/roster-dev/roster/internal/manifest"
)

// fieldType describes the expected shape of a manifest field value.
type fieldType int

const (
	typeString fieldType = iota
	typeBool
	typeTier       // string constrained to the model tier set
	typeStringList // sequence containing only strings
)

type fieldSpec struct {
	name string
	typ  fieldType
}

// requiredFields lists the fields every entry of a kind must carry.
var requiredFields = map[manifest.Kind][]fieldSpec{
	manifest.KindSkill: {
		{"name", typeString},
		{"category", typeString},
		{"description", typeString},
		{"user_invocable", typeBool},
		{"version", typeString},
	},
	manifest.KindAgent: {
		{"name", typeString},
		{"description", typeString},
		{"model", typeTier},
		{"version", typeString},
		{"depends_on_skills", typeStringList},
	},
	manifest.KindCommand: {
		{"name", typeString},
		{"description", typeString},
		{"version", typeString},
	},
}

// optionalFields lists fields that are validated only when present.
var optionalFields = map[manifest.Kind][]fieldSpec{
	manifest.KindCommand: {
		{"depends_on_skills", typeStringList},
		{"depends_on_agents", typeStringList},
	},
}

// CheckFields verifies every entry carries its kind's required fields with
// well-typed values, and that optional fields are well-typed when present.
// Unknown extra fields are not errors.
func CheckFields(doc *manifest.Document) []Finding {
	var findings []Finding

	for _, kind := range manifest.Kinds {
		for _, e := range doc.Collection(kind) {
			ref := entityRef(e)

			for _, spec := range requiredFields[kind] {
				if _, ok := e.Fields[spec.name]; !ok {
					findings = append(findings, Finding{
						Class:   ClassStructural,
						Kind:    kind,
						Index:   e.Index,
						Entity:  ref,
						Message: fmt.Sprintf("missing required field %q", spec.name),
					})
					continue
				}
				findings = append(findings, checkFieldType(e, kind, ref, spec)...)
			}

			for _, spec := range optionalFields[kind] {
				if _, ok := e.Fields[spec.name]; !ok {
					continue
				}
				findings = append(findings, checkFieldType(e, kind, ref, spec)...)
			}
		}
	}

	return findings
}

// checkFieldType validates the shape of a field known to be present.
func checkFieldType(e manifest.Entry, kind manifest.Kind, ref string, spec fieldSpec) []Finding {
	finding := func(msg string) []Finding {
		return []Finding{{
			Class:   ClassStructural,
			Kind:    kind,
			Index:   e.Index,
			Entity:  ref,
			Message: msg,
		}}
	}

	switch spec.typ {
	case typeString:
		if _, ok := e.StringField(spec.name); !ok {
			return finding(fmt.Sprintf("field %q must be a string", spec.name))
		}
	case typeBool:
		if _, ok := e.BoolField(spec.name); !ok {
			return finding(fmt.Sprintf("field %q must be a boolean", spec.name))
		}
	case typeTier:
		s, ok := e.StringField(spec.name)
		if !ok {
			return finding(fmt.Sprintf("field %q must be a string", spec.name))
		}
		if !manifest.ValidTier(s) {
			return finding(fmt.Sprintf("field %q must be one of: %s",
				spec.name, strings.Join(manifest.ModelTiers, ", ")))
		}
	case typeStringList:
		if _, _, clean := e.StringsField(spec.name); !clean {
			return finding(fmt.Sprintf("field %q must be a list of strings", spec.name))
		}
	}
	return nil
}
