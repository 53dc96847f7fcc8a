package domain

import "time"

// MinPairsPerGame is the smallest number of pairs a playable game holds.
const MinPairsPerGame = 2

// DefaultTokenLifetime is how long a login token stays valid when the
// configuration does not say otherwise.
const DefaultTokenLifetime = 24 * time.Hour

// MaxNameLength bounds user-provided names (tournaments, rounds, subrounds, players).
const MaxNameLength = 128
