// Package shared holds utilities used across the panel data codebase
// that belong to no specific domain layer.
//
// The testutil subpackage provides the snapshot and store fixtures the
// package tests build on, plus a capturing slog handler for asserting
// on log output.
package shared
