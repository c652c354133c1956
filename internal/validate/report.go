package validate

import (
	"sort"

	"github.com/roster-dev/roster/internal/manifest"
)

// Report is the aggregated outcome of all checks over one document.
type Report struct {
	Findings []Finding
}

// Check runs every checker over the document and returns the combined,
// deterministically ordered report. The document is never mutated.
func Check(doc *manifest.Document) *Report {
	var findings []Finding
	findings = append(findings, CheckFields(doc)...)
	findings = append(findings, CheckCategories(doc)...)
	findings = append(findings, CheckDependencies(doc)...)
	findings = append(findings, CheckUniqueness(doc)...)
	findings = append(findings, CheckVersions(doc)...)

	// Order: kind section (skills, agents, commands), then source position,
	// then finding class. The stable sort preserves checker emission order
	// for remaining ties, so repeated runs produce identical output.
	sort.SliceStable(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		if a.Index != b.Index {
			return a.Index < b.Index
		}
		return a.Class < b.Class
	})

	return &Report{Findings: findings}
}

// Valid reports whether the document passed every check.
func (r *Report) Valid() bool {
	return len(r.Findings) == 0
}

// Lines renders all findings in report order, one line per finding. The
// list is complete; the reporter never truncates.
func (r *Report) Lines() []string {
	lines := make([]string, len(r.Findings))
	for i, f := range r.Findings {
		lines[i] = f.Line()
	}
	return lines
}
