package dto

import (
	"time"

	"hattournament/src/core/domain"
)

// TokenResponse is returned by login.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// StandingsResponse lists pairs by descending score.
type StandingsResponse struct {
	Standings []domain.Standing `json:"standings"`
}

// TopResponse is the result of a top-n query.
type TopResponse struct {
	N     int     `json:"n"`
	Pairs []int64 `json:"pairs"`
}

// SplitResponse lists the games created by a split.
type SplitResponse struct {
	Games []domain.Game `json:"games"`
}

// ResultResponse is a resolved game's result.
type ResultResponse struct {
	GameID  int64         `json:"game_id"`
	Results domain.Scores `json:"results"`
}
