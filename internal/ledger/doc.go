// Package ledger is the authoritative relational store.
//
// Every exported artifact (CSV, workbook, state, dump) is derivable from
// it; after a crash anything else can be regenerated from here. The SQL
// dump is its serialized form and the only artifact used to rebuild it.
package ledger
