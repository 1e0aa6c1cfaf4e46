// Package export builds the derived artifact representations of the
// ledger: CSV, workbook, state snapshot, and the sealed bundle. Artifacts
// are regenerable; none of them is a source of truth.
package export
