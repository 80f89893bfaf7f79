// Package cli defines the Cobra command tree for the skill CLI. Each file in
// this package builds one top-level command (connect, list, validate, etc.).
// Command implementations delegate to internal packages for business logic and
// only handle flag parsing, I/O formatting, and exit status.
package cli
