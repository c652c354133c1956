package validate

import (
	"fmt"

	"github.com/roster-dev/roster/internal/manifest"
)

// CheckDependencies resolves every dependency reference against the names
// declared in the document. The lookup sets are built from all entries with
// a usable name, whether or not those entries pass their own validation: a
// reference to a malformed entry is still a resolvable reference, while a
// reference to nothing is reported here. The check is existence-only; no
// cycle detection, since dependencies are capability references rather than
// an execution order.
func CheckDependencies(doc *manifest.Document) []Finding {
	skillNames := nameSet(doc.Skills)
	agentNames := nameSet(doc.Agents)

	var findings []Finding
	for _, e := range doc.Agents {
		findings = append(findings, checkRefs(e, "depends_on_skills", manifest.KindSkill, skillNames)...)
	}
	for _, e := range doc.Commands {
		findings = append(findings, checkRefs(e, "depends_on_skills", manifest.KindSkill, skillNames)...)
		findings = append(findings, checkRefs(e, "depends_on_agents", manifest.KindAgent, agentNames)...)
	}
	return findings
}

// checkRefs resolves the string elements of one dependency list. Non-string
// elements were already reported as a mistyped field and are not resolved.
func checkRefs(e manifest.Entry, field string, target manifest.Kind, valid map[string]struct{}) []Finding {
	deps, present, _ := e.StringsField(field)
	if !present {
		return nil
	}

	var findings []Finding
	for _, dep := range deps {
		if _, ok := valid[dep]; ok {
			continue
		}
		findings = append(findings, Finding{
			Class:   ClassReference,
			Kind:    e.Kind,
			Index:   e.Index,
			Entity:  entityRef(e),
			Message: fmt.Sprintf("depends on unknown %s %q", target, dep),
		})
	}
	return findings
}

// nameSet collects the string-typed names of a collection.
func nameSet(entries []manifest.Entry) map[string]struct{} {
	names := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if name, ok := e.Name(); ok {
			names[name] = struct{}{}
		}
	}
	return names
}
