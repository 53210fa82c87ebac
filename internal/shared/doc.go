// Package shared holds code used across the module that belongs to no single
// layer. Its testutil subpackage provides the box score fixtures and the
// buffered slog handler the package tests assert log output with.
package shared
