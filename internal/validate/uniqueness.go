package validate

import (
	"fmt"

	"github.com/roster-dev/roster/internal/manifest"
)

// CheckUniqueness reports names that occur more than once within a kind's
// collection. Each duplicated name yields exactly one finding carrying the
// occurrence count, anchored at the first occurrence, so a name repeated
// five times does not inflate the report with five lines. Cross-kind reuse
// of a name is permitted.
func CheckUniqueness(doc *manifest.Document) []Finding {
	var findings []Finding

	for _, kind := range manifest.Kinds {
		first := map[string]int{}
		count := map[string]int{}
		var order []string

		for _, e := range doc.Collection(kind) {
			name, ok := e.Name()
			if !ok {
				continue
			}
			if count[name] == 0 {
				first[name] = e.Index
				order = append(order, name)
			}
			count[name]++
		}

		for _, name := range order {
			if count[name] < 2 {
				continue
			}
			findings = append(findings, Finding{
				Class:   ClassUniqueness,
				Kind:    kind,
				Index:   first[name],
				Entity:  fmt.Sprintf("%q", name),
				Message: fmt.Sprintf("duplicate name (%d occurrences)", count[name]),
			})
		}
	}

	return findings
}
