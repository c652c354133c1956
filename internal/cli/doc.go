// Package cli wires up the cobra command tree for the roster binary. Each
// command lives in its own file and registers itself on the root command in
// an init function. Commands return errors for exit-code purposes; the root
// Execute prints the final error once.
package cli
