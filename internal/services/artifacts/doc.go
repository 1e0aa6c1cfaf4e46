// Package artifacts keeps the derived artifact set (CSV, workbook, state,
// sealed dump) synchronized with the authoritative ledger, runs backups,
// and serves the operator-facing decrypt and secure-export operations.
package artifacts
