package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mossvale/mossvale/internal/api/middleware"
	"github.com/mossvale/mossvale/internal/api/request"
	"github.com/mossvale/mossvale/internal/api/response"
	"github.com/mossvale/mossvale/internal/services/players"
)

// PlayerHandler handles player character endpoints
type PlayerHandler struct {
	playersService *players.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(playersService *players.Service) *PlayerHandler {
	return &PlayerHandler{
		playersService: playersService,
	}
}

// Create handles POST /api/v1/players
func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	account := middleware.MustGetAccount(r.Context())

	var req request.CreatePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}

	player, err := h.playersService.Create(r.Context(), account.ID, req.Name)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PlayerFromModel(player))
}

// List handles GET /api/v1/players
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	account := middleware.MustGetAccount(r.Context())

	list, err := h.playersService.List(r.Context(), account.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerListFromModels(list))
}
