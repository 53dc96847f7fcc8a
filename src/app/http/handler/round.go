package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"hattournament/src/app/http/dto"
	"hattournament/src/app/http/response"
	"hattournament/src/app/middleware"
	"hattournament/src/core/usecase"
)

// RoundHandler handles rounds, their membership and their standings.
type RoundHandler struct {
	rounds *usecase.RoundService
}

func NewRoundHandler(rounds *usecase.RoundService) *RoundHandler {
	return &RoundHandler{rounds: rounds}
}

// POST /v1/tournaments/:tournament_id/rounds
func (h *RoundHandler) Create(c *gin.Context) {
	id, ok := pathID(c, "tournament_id")
	if !ok {
		return
	}
	var req dto.CreateRoundRequest
	if !bind(c, &req) {
		return
	}
	r, err := h.rounds.Create(c.Request.Context(), middleware.GetUserID(c), id, req.Name)
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, r)
}

// GET /v1/tournaments/:tournament_id/rounds
func (h *RoundHandler) List(c *gin.Context) {
	id, ok := pathID(c, "tournament_id")
	if !ok {
		return
	}
	rs, err := h.rounds.List(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, rs)
}

// GET /v1/rounds/:round_id
func (h *RoundHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "round_id")
	if !ok {
		return
	}
	r, err := h.rounds.Get(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, r)
}

// DELETE /v1/rounds/:round_id
func (h *RoundHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "round_id")
	if !ok {
		return
	}
	if err := h.rounds.Delete(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		fail(c, err)
		return
	}
	response.NoContent(c)
}

// POST /v1/rounds/:round_id/pairs
func (h *RoundHandler) AddPair(c *gin.Context) {
	id, ok := pathID(c, "round_id")
	if !ok {
		return
	}
	var req dto.AddPairRequest
	if !bind(c, &req) {
		return
	}
	if err := h.rounds.AddPair(c.Request.Context(), middleware.GetUserID(c), id, req.PairID); err != nil {
		fail(c, err)
		return
	}
	response.NoContent(c)
}

// DELETE /v1/rounds/:round_id/pairs/:pair_id
func (h *RoundHandler) RemovePair(c *gin.Context) {
	id, ok := pathID(c, "round_id")
	if !ok {
		return
	}
	pairID, ok := pathID(c, "pair_id")
	if !ok {
		return
	}
	if err := h.rounds.RemovePair(c.Request.Context(), middleware.GetUserID(c), id, pairID); err != nil {
		fail(c, err)
		return
	}
	response.NoContent(c)
}

// GET /v1/rounds/:round_id/pairs
func (h *RoundHandler) ListPairs(c *gin.Context) {
	id, ok := pathID(c, "round_id")
	if !ok {
		return
	}
	ps, err := h.rounds.ListPairs(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, ps)
}

// GET /v1/rounds/:round_id/results
func (h *RoundHandler) Results(c *gin.Context) {
	id, ok := pathID(c, "round_id")
	if !ok {
		return
	}
	st, err := h.rounds.Standings(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, dto.StandingsResponse{Standings: st})
}

// GET /v1/rounds/:round_id/top?n=
func (h *RoundHandler) Top(c *gin.Context) {
	id, ok := pathID(c, "round_id")
	if !ok {
		return
	}
	n, err := strconv.Atoi(c.Query("n"))
	if err != nil {
		response.ValidationError(c, "n", "must be an integer", middleware.GetRequestID(c))
		return
	}
	top, err := h.rounds.TopN(c.Request.Context(), middleware.GetUserID(c), id, n)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, dto.TopResponse{N: n, Pairs: top})
}
