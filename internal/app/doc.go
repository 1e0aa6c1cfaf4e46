// Package app wires application dependencies for the CLI.
//
// Initialize performs the one ordered bootstrap sequence: data directories,
// key material, ledger schema, conditional restore, artifact reconcile.
// Every step returns its error; nothing is created implicitly elsewhere.
package app
