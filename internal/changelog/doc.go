// Package changelog turns a plain-text commit log into release notes.
//
// This package implements:
//   - parsing of "<hash> - <message> (<date>)" log rows
//   - chronological normalization of the newest-first log
//   - version segmentation and conventional-commit categorization
//   - Markdown and YAML rendering, newest version first
//   - version queries and a colored terminal view
//
// The whole transformation is a synchronous fold over an in-memory slice.
// Generate never fails; only the file-level helpers return I/O errors.
package changelog
