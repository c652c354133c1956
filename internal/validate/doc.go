// Package validate implements the semantic checks for a loaded manifest
// document: required fields, category references, dependency references,
// name uniqueness, and version formats. Each checker is a full pass over
// the normalized entries; none stops at the first violation. Findings are
// aggregated into a deterministically ordered report.
package validate
