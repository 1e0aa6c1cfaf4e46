// Package restore rebuilds the live ledger from a sealed dump.
//
// The operation is destructive and explicit: bootstrap invokes it only when
// no live database exists yet, otherwise it runs on operator command alone.
// Decryption completes before the first destructive step, so a failed open
// can never partially destroy existing data.
package restore
