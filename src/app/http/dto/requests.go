package dto

import "hattournament/src/core/domain"

// CredentialsRequest is the payload for register and login.
type CredentialsRequest struct {
	Username string `json:"username" binding:"required,max=128"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// CreateTournamentRequest is the payload for POST /v1/tournaments.
type CreateTournamentRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreatePairRequest registers two players as one pair.
type CreatePairRequest struct {
	FirstPlayer  string `json:"first_player" binding:"required"`
	SecondPlayer string `json:"second_player" binding:"required"`
}

// CreateWordRequest adds a word to the tournament's bank.
type CreateWordRequest struct {
	Text       string `json:"text" binding:"required"`
	Difficulty *int   `json:"difficulty" binding:"required"`
}

// CreateRoundRequest is used for both rounds and subrounds.
type CreateRoundRequest struct {
	Name string `json:"name" binding:"required"`
}

// AddPairRequest adds an existing tournament pair to a round or subround.
type AddPairRequest struct {
	PairID int64 `json:"pair_id" binding:"required"`
}

// LinkWordsRequest takes words of one difficulty for a subround.
type LinkWordsRequest struct {
	Difficulty *int `json:"difficulty" binding:"required"`
	Amount     int  `json:"amount" binding:"required,min=1"`
}

// SplitRequest partitions a subround into Games games.
type SplitRequest struct {
	Games int `json:"games"`
}

// SubmitResultRequest carries one score per participant pair.
type SubmitResultRequest struct {
	Results domain.Scores `json:"results" binding:"required"`
}

// ResetRequest authorizes the data wipe.
type ResetRequest struct {
	Secret string `json:"secret" binding:"required"`
}
