// Package storage defines the persistence interfaces for hero records.
//
// Implementations live in subpackages (see storage/sqlite). Roll history and
// skill allocations are session-transient and never stored.
//
// # Error Types
//
//   - ErrNotFound: a requested hero does not exist.
package storage
