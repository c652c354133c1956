// Package scaffold creates registry skeletons and entity file templates from
// embedded templates. It powers "roster init" and "roster new", producing the
// conventional layout (manifest, skills/, agents/, commands/, bundles/) and
// pre-filled frontmatter for each entity kind.
package scaffold
