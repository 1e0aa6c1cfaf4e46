// Package store writes artifacts and backups to durable storage.
//
// Writes go through a temp-file-then-rename replace so an interrupted
// process never leaves a half-written file at a final path. Sealed files are
// created with owner-only permissions.
package store
