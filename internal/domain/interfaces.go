package domain

// Sealer performs authenticated encryption with the process key, for whole
// artifacts (Seal/Open) and for individual sensitive fields.
type Sealer interface {
	Seal(plain []byte) ([]byte, error)
	Open(sealed []byte) ([]byte, error)

	EncryptField(text string) (string, error)
	DecryptField(stored string) (string, error)
}

// Ledger is the authoritative relational store. Every other persisted file
// is derivable from it (the sealed dump being its own serialized form).
type Ledger interface {
	Insert(r Record) (int64, error)
	All() ([]Record, error)
	Count() (int, error)
	Dump() (string, error)
	RestoreScript(script string) error
}

// Reconciler regenerates every derived artifact from the authoritative
// store. It is idempotent and safe to run at any time.
type Reconciler interface {
	Reconcile() error
}
