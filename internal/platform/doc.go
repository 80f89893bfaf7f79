// Package platform provides cross-platform filesystem operations: replacing a
// file's contents atomically and permission management. On Windows, Chmod is a
// no-op because the OS has no Unix-style permission bits.
package platform
