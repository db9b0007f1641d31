// Package version contains information on the current version of the module.
// It is split out for easy use by a config file or a diagnostic report.
package version

// Current is the string representing the current version of this parser.
const Current = "0.1.0"
