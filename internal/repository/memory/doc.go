// Package memory provides process-local implementations of the account and
// refresh token stores. A single mutex per store makes every operation,
// including Rotate, atomic, so the stores honour the same contract as the
// Postgres repositories.
package memory
