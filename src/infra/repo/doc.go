// Package repo contains the PostgreSQL implementation of ports.Store.
//
// Every unit of work runs in one pgx transaction. Round rows are locked with
// SELECT ... FOR UPDATE before any change below them, and word takes lock the
// eligible rows of their difficulty bucket, so concurrent callers serialize
// on exactly the state they compete for.
package repo
