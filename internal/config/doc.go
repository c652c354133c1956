// Package config manages user-level settings stored at ~/.roster/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// the default registry directory used when no flag or env override is given.
package config
