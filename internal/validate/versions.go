package validate

import (
	"fmt"
	"regexp"

	"github.com/roster-dev/roster/internal/manifest"
)

// semverPattern is the strict MAJOR.MINOR.PATCH form: no "v" prefix, no
// prerelease or build suffix.
var semverPattern = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

// CheckVersions verifies the version string of every entry that carries a
// present, string-typed version field. Missing or mistyped versions were
// already reported by the field checks.
func CheckVersions(doc *manifest.Document) []Finding {
	var findings []Finding

	for _, kind := range manifest.Kinds {
		for _, e := range doc.Collection(kind) {
			version, ok := e.StringField("version")
			if !ok || semverPattern.MatchString(version) {
				continue
			}
			findings = append(findings, Finding{
				Class:   ClassFormat,
				Kind:    kind,
				Index:   e.Index,
				Entity:  entityRef(e),
				Message: fmt.Sprintf("invalid version %q (expected semver like \"1.0.0\")", version),
			})
		}
	}

	return findings
}
