// Package crypto holds the key material and sealing primitives.
//
// One symmetric key is active per process: either derived from the
// passphrase in FINTRACK_PASSPHRASE via PBKDF2-HMAC-SHA-256, or loaded from
// a random key file created on first run. The key never changes after Load.
package crypto
