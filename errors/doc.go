// Package errors provides the structured error type shared by querykit packages.
// Every failure carries a machine-readable ErrorCode so callers can branch on the
// kind of misuse (type mismatch, invalid argument, missing key) without matching
// on message text.
package errors
