// Package registry handles the on-disk side of the roster registry: locating
// the registry directory, scanning entity source files (skills/<name>/SKILL.md,
// agents/<name>.md, commands/<name>.md), parsing their frontmatter, and
// planning manifest updates that reconcile the manifest with what exists on
// disk. The manifest remains the source of truth for curated fields; the scan
// only adds new entries, removes deleted ones, and flags version drift.
package registry
