// Package commands implements the fintrack CLI.
//
// Operator commands report explicit success or failure and exit non-zero on
// error; a failed decrypt or restore never leaves a partial artifact behind.
package commands
