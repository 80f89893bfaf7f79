// Package connect registers a skill manifest with an assistant. A single
// registration resolves both file arguments, loads the manifest and the
// assistant skills file, reports missing manifest fields, refuses a skill name
// that is already registered, appends the manifest, and rewrites the skills
// file atomically.
package connect
