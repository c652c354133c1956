// Package manifest handles loading the registry manifest document. It parses
// the YAML/JSON source into kind-tagged entries that preserve every field
// verbatim, and provides JSON Schema shape linting against the embedded
// manifest schema. Semantic checks live in the validate package.
package manifest
