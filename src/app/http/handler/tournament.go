package handler

import (
	"github.com/gin-gonic/gin"

	"hattournament/src/app/http/dto"
	"hattournament/src/app/http/response"
	"hattournament/src/app/middleware"
	"hattournament/src/core/usecase"
)

// TournamentHandler handles tournaments, their pairs and their word bank.
type TournamentHandler struct {
	tournaments *usecase.TournamentService
}

func NewTournamentHandler(tournaments *usecase.TournamentService) *TournamentHandler {
	return &TournamentHandler{tournaments: tournaments}
}

// POST /v1/tournaments
func (h *TournamentHandler) Create(c *gin.Context) {
	var req dto.CreateTournamentRequest
	if !bind(c, &req) {
		return
	}
	t, err := h.tournaments.Create(c.Request.Context(), middleware.GetUserID(c), req.Name)
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, t)
}

// GET /v1/tournaments
func (h *TournamentHandler) List(c *gin.Context) {
	ts, err := h.tournaments.List(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, ts)
}

// GET /v1/tournaments/:tournament_id
func (h *TournamentHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "tournament_id")
	if !ok {
		return
	}
	t, err := h.tournaments.Get(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, t)
}

// POST /v1/tournaments/:tournament_id/pairs
func (h *TournamentHandler) CreatePair(c *gin.Context) {
	id, ok := pathID(c, "tournament_id")
	if !ok {
		return
	}
	var req dto.CreatePairRequest
	if !bind(c, &req) {
		return
	}
	p, err := h.tournaments.AddPair(c.Request.Context(), middleware.GetUserID(c), id, req.FirstPlayer, req.SecondPlayer)
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, p)
}

// GET /v1/tournaments/:tournament_id/pairs
func (h *TournamentHandler) ListPairs(c *gin.Context) {
	id, ok := pathID(c, "tournament_id")
	if !ok {
		return
	}
	ps, err := h.tournaments.ListPairs(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, ps)
}

// DELETE /v1/pairs/:pair_id
func (h *TournamentHandler) DeletePair(c *gin.Context) {
	id, ok := pathID(c, "pair_id")
	if !ok {
		return
	}
	if err := h.tournaments.DeletePair(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		fail(c, err)
		return
	}
	response.NoContent(c)
}

// POST /v1/tournaments/:tournament_id/words
func (h *TournamentHandler) CreateWord(c *gin.Context) {
	id, ok := pathID(c, "tournament_id")
	if !ok {
		return
	}
	var req dto.CreateWordRequest
	if !bind(c, &req) {
		return
	}
	w, err := h.tournaments.AddWord(c.Request.Context(), middleware.GetUserID(c), id, req.Text, *req.Difficulty)
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, w)
}

// GET /v1/tournaments/:tournament_id/words
func (h *TournamentHandler) ListWords(c *gin.Context) {
	id, ok := pathID(c, "tournament_id")
	if !ok {
		return
	}
	ws, err := h.tournaments.ListWords(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, ws)
}

// DELETE /v1/words/:word_id
func (h *TournamentHandler) DeleteWord(c *gin.Context) {
	id, ok := pathID(c, "word_id")
	if !ok {
		return
	}
	if err := h.tournaments.DeleteWord(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		fail(c, err)
		return
	}
	response.NoContent(c)
}
