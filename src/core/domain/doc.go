// Package domain contains the tournament model: entities, the score maps that
// aggregate game results, the partitioner that splits a subround into games,
// and the state machines that guard result submission and splitting.
//
// Rules for this package:
//   - No external dependencies except the standard library
//   - No infrastructure concerns (database, HTTP, etc.)
//   - Entities validate their own transitions and return DomainError values
//
// Aggregates on Round and Subround are caches derived from game results.
// They change only through PropagateAdd and PropagateSubtract.
package domain
