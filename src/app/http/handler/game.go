package handler

import (
	"github.com/gin-gonic/gin"

	"hattournament/src/app/http/dto"
	"hattournament/src/app/http/response"
	"hattournament/src/app/middleware"
	"hattournament/src/core/usecase"
)

// GameHandler handles games and their results.
type GameHandler struct {
	games *usecase.GameService
}

func NewGameHandler(games *usecase.GameService) *GameHandler {
	return &GameHandler{games: games}
}

// GET /v1/games/:game_id
func (h *GameHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "game_id")
	if !ok {
		return
	}
	g, err := h.games.Get(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, g)
}

// GET /v1/games/:game_id/pairs
func (h *GameHandler) Participants(c *gin.Context) {
	id, ok := pathID(c, "game_id")
	if !ok {
		return
	}
	ps, err := h.games.Participants(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, ps)
}

// POST /v1/games/:game_id/result
func (h *GameHandler) SubmitResult(c *gin.Context) {
	id, ok := pathID(c, "game_id")
	if !ok {
		return
	}
	var req dto.SubmitResultRequest
	if !bind(c, &req) {
		return
	}
	g, err := h.games.SubmitResult(c.Request.Context(), middleware.GetUserID(c), id, req.Results)
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, dto.ResultResponse{GameID: g.ID, Results: g.Result})
}

// GET /v1/games/:game_id/result
func (h *GameHandler) GetResult(c *gin.Context) {
	id, ok := pathID(c, "game_id")
	if !ok {
		return
	}
	res, err := h.games.GetResult(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, dto.ResultResponse{GameID: id, Results: res})
}

// DELETE /v1/games/:game_id/result
func (h *GameHandler) ClearResult(c *gin.Context) {
	id, ok := pathID(c, "game_id")
	if !ok {
		return
	}
	if err := h.games.ClearResult(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		fail(c, err)
		return
	}
	response.NoContent(c)
}
