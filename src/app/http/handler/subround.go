package handler

import (
	"github.com/gin-gonic/gin"

	"hattournament/src/app/http/dto"
	"hattournament/src/app/http/response"
	"hattournament/src/app/middleware"
	"hattournament/src/core/usecase"
)

// SubroundHandler handles subrounds: membership, words and splitting.
type SubroundHandler struct {
	subrounds *usecase.SubroundService
}

func NewSubroundHandler(subrounds *usecase.SubroundService) *SubroundHandler {
	return &SubroundHandler{subrounds: subrounds}
}

// POST /v1/rounds/:round_id/subrounds
func (h *SubroundHandler) Create(c *gin.Context) {
	id, ok := pathID(c, "round_id")
	if !ok {
		return
	}
	var req dto.CreateRoundRequest
	if !bind(c, &req) {
		return
	}
	s, err := h.subrounds.Create(c.Request.Context(), middleware.GetUserID(c), id, req.Name)
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, s)
}

// GET /v1/rounds/:round_id/subrounds
func (h *SubroundHandler) List(c *gin.Context) {
	id, ok := pathID(c, "round_id")
	if !ok {
		return
	}
	ss, err := h.subrounds.List(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, ss)
}

// GET /v1/subrounds/:subround_id
func (h *SubroundHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "subround_id")
	if !ok {
		return
	}
	s, err := h.subrounds.Get(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, s)
}

// DELETE /v1/subrounds/:subround_id
func (h *SubroundHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "subround_id")
	if !ok {
		return
	}
	if err := h.subrounds.Delete(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		fail(c, err)
		return
	}
	response.NoContent(c)
}

// POST /v1/subrounds/:subround_id/pairs
func (h *SubroundHandler) AddPair(c *gin.Context) {
	id, ok := pathID(c, "subround_id")
	if !ok {
		return
	}
	var req dto.AddPairRequest
	if !bind(c, &req) {
		return
	}
	if err := h.subrounds.AddPair(c.Request.Context(), middleware.GetUserID(c), id, req.PairID); err != nil {
		fail(c, err)
		return
	}
	response.NoContent(c)
}

// DELETE /v1/subrounds/:subround_id/pairs/:pair_id
func (h *SubroundHandler) RemovePair(c *gin.Context) {
	id, ok := pathID(c, "subround_id")
	if !ok {
		return
	}
	pairID, ok := pathID(c, "pair_id")
	if !ok {
		return
	}
	if err := h.subrounds.RemovePair(c.Request.Context(), middleware.GetUserID(c), id, pairID); err != nil {
		fail(c, err)
		return
	}
	response.NoContent(c)
}

// GET /v1/subrounds/:subround_id/pairs
func (h *SubroundHandler) ListPairs(c *gin.Context) {
	id, ok := pathID(c, "subround_id")
	if !ok {
		return
	}
	ps, err := h.subrounds.ListPairs(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, ps)
}

// POST /v1/subrounds/:subround_id/words
func (h *SubroundHandler) LinkWords(c *gin.Context) {
	id, ok := pathID(c, "subround_id")
	if !ok {
		return
	}
	var req dto.LinkWordsRequest
	if !bind(c, &req) {
		return
	}
	ws, err := h.subrounds.LinkWords(c.Request.Context(), middleware.GetUserID(c), id, *req.Difficulty, req.Amount)
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, ws)
}

// GET /v1/subrounds/:subround_id/words
func (h *SubroundHandler) ListWords(c *gin.Context) {
	id, ok := pathID(c, "subround_id")
	if !ok {
		return
	}
	ws, err := h.subrounds.ListWords(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, ws)
}

// POST /v1/subrounds/:subround_id/split
func (h *SubroundHandler) Split(c *gin.Context) {
	id, ok := pathID(c, "subround_id")
	if !ok {
		return
	}
	var req dto.SplitRequest
	if !bind(c, &req) {
		return
	}
	games, err := h.subrounds.Split(c.Request.Context(), middleware.GetUserID(c), id, req.Games)
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, dto.SplitResponse{Games: games})
}

// DELETE /v1/subrounds/:subround_id/split
func (h *SubroundHandler) UndoSplit(c *gin.Context) {
	id, ok := pathID(c, "subround_id")
	if !ok {
		return
	}
	if err := h.subrounds.UndoSplit(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		fail(c, err)
		return
	}
	response.NoContent(c)
}

// GET /v1/subrounds/:subround_id/games
func (h *SubroundHandler) ListGames(c *gin.Context) {
	id, ok := pathID(c, "subround_id")
	if !ok {
		return
	}
	games, err := h.subrounds.ListGames(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, games)
}

// GET /v1/subrounds/:subround_id/results
func (h *SubroundHandler) Results(c *gin.Context) {
	id, ok := pathID(c, "subround_id")
	if !ok {
		return
	}
	st, err := h.subrounds.Standings(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, dto.StandingsResponse{Standings: st})
}
