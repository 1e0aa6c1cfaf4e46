// Package records saves and lists ledger entries. It is the only writer:
// it seals sensitive fields before they reach row storage, then refreshes
// the derived artifacts and backups best-effort.
package records
