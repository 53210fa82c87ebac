// Package validation checks the files the feature pipeline reads and the
// directories it writes to, so a command fails before any document is parsed.
package validation
