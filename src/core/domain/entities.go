package domain

import (
	"slices"
	"time"
)

// User is a registered account that owns tournaments.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Token is an opaque login token bound to a user.
type Token struct {
	ID        string    `json:"token"`
	UserID    int64     `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the token is no longer valid at now.
func (t Token) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// Tournament groups pairs, words and rounds under one owner.
type Tournament struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"owner_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// OwnedBy reports whether userID owns the tournament.
func (t Tournament) OwnedBy(userID int64) bool {
	return t.OwnerID == userID
}

// PlayerPair is two players competing as one unit.
type PlayerPair struct {
	ID           int64     `json:"id"`
	TournamentID int64     `json:"tournament_id"`
	FirstPlayer  string    `json:"first_player"`
	SecondPlayer string    `json:"second_player"`
	CreatedAt    time.Time `json:"created_at"`
}

// HasPlayer reports whether name is one of the pair's players.
func (p PlayerPair) HasPlayer(name string) bool {
	return p.FirstPlayer == name || p.SecondPlayer == name
}

// Word is an entry of a tournament's word bank. A consumed word never
// becomes eligible again, even if its subround is deleted.
type Word struct {
	ID           int64     `json:"id"`
	TournamentID int64     `json:"tournament_id"`
	Text         string    `json:"text"`
	Difficulty   int       `json:"difficulty"`
	Consumed     bool      `json:"consumed"`
	SubroundID   *int64    `json:"subround_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Round is a named grouping of pairs within a tournament. Pairs keeps the
// order in which pairs joined; it breaks ties in rankings.
type Round struct {
	ID           int64     `json:"id"`
	TournamentID int64     `json:"tournament_id"`
	Name         string    `json:"name"`
	Pairs        []int64   `json:"pairs"`
	Scores       Scores    `json:"scores"`
	CreatedAt    time.Time `json:"created_at"`
}

// HasPair reports whether pairID is a member of the round.
func (r *Round) HasPair(pairID int64) bool {
	return slices.Contains(r.Pairs, pairID)
}

// Clone returns a deep copy.
func (r Round) Clone() Round {
	r.Pairs = slices.Clone(r.Pairs)
	r.Scores = r.Scores.Clone()
	return r
}

// Subround is a grouping of pairs and words within a round. It is split
// once it owns at least one game.
type Subround struct {
	ID        int64     `json:"id"`
	RoundID   int64     `json:"round_id"`
	Name      string    `json:"name"`
	Pairs     []int64   `json:"pairs"`
	Words     []int64   `json:"words"`
	Games     []int64   `json:"games"`
	Scores    Scores    `json:"scores"`
	CreatedAt time.Time `json:"created_at"`
}

// HasPair reports whether pairID is a member of the subround.
func (s *Subround) HasPair(pairID int64) bool {
	return slices.Contains(s.Pairs, pairID)
}

// Clone returns a deep copy.
func (s Subround) Clone() Subround {
	s.Pairs = slices.Clone(s.Pairs)
	s.Words = slices.Clone(s.Words)
	s.Games = slices.Clone(s.Games)
	s.Scores = s.Scores.Clone()
	return s
}

// Game is the smallest unit of play: a cell of a subround partition.
type Game struct {
	ID           int64     `json:"id"`
	SubroundID   int64     `json:"subround_id"`
	Participants []int64   `json:"participants"`
	Resolved     bool      `json:"resolved"`
	Result       Scores    `json:"result"`
	CreatedAt    time.Time `json:"created_at"`
}

// Clone returns a deep copy.
func (g Game) Clone() Game {
	g.Participants = slices.Clone(g.Participants)
	g.Result = g.Result.Clone()
	return g
}
