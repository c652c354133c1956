package validate

import (
	"fmt"
	"strings"

	"github.com/roster-dev/roster/internal/manifest"
)

// CheckCategories confirms every skill's category exists in the document's
// category table. Skills whose category field is missing or mistyped are
// skipped here; the field checks already reported them.
func CheckCategories(doc *manifest.Document) []Finding {
	validIDs := doc.CategoryIDs()

	var findings []Finding
	for _, e := range doc.Skills {
		category, ok := e.StringField("category")
		if !ok {
			continue
		}
		if _, known := doc.Categories[category]; known {
			continue
		}

		msg := fmt.Sprintf("unknown category %q (no categories defined)", category)
		if len(validIDs) > 0 {
			msg = fmt.Sprintf("unknown category %q (valid: %s)", category, strings.Join(validIDs, ", "))
		}
		findings = append(findings, Finding{
			Class:   ClassReference,
			Kind:    manifest.KindSkill,
			Index:   e.Index,
			Entity:  entityRef(e),
			Message: msg,
		})
	}
	return findings
}
