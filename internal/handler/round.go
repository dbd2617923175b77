package handler

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/osse101/SnakeCrawl_Go/internal/domain"
	"github.com/osse101/SnakeCrawl_Go/internal/logger"
	"github.com/osse101/SnakeCrawl_Go/internal/round"
)

// RoundHandler handles round lifecycle requests
type RoundHandler struct {
	service round.Service
}

// NewRoundHandler creates a new round handler
func NewRoundHandler(service round.Service) *RoundHandler {
	return &RoundHandler{service: service}
}

// StartRoundRequest places a bet on a new board
type StartRoundRequest struct {
	Player     string          `json:"player" validate:"required,max=128"`
	Stake      decimal.Decimal `json:"stake" validate:"required,gt=0"`
	Difficulty string          `json:"difficulty" validate:"required,difficulty"`
}

// PlayerRequest identifies the player acting on their round
type PlayerRequest struct {
	Player string `json:"player" validate:"required,max=128"`
}

// CashoutResponse is the cashout outcome. Error is set for declined and failed settlements.
type CashoutResponse struct {
	domain.CashoutResult
	Error string `json:"error,omitempty"`
}

// HandleStart starts a round
func (h *RoundHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	var req StartRoundRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Start round"); err != nil {
		return
	}

	ctx := logger.WithPlayer(r.Context(), req.Player)
	d, err := domain.ParseDifficulty(req.Difficulty)
	if err != nil {
		respondServiceError(w, r, ErrMsgStartRoundFailed, err)
		return
	}

	rd, err := h.service.Start(ctx, req.Player, req.Stake, d)
	if err != nil {
		respondServiceError(w, r, ErrMsgStartRoundFailed, err)
		return
	}

	logger.FromContext(ctx).Info(LogMsgRoundStarted, "round_id", rd.ID, "difficulty", d)
	respondJSON(w, http.StatusCreated, rd)
}

// HandleRoll rolls the dice for the player's active round
func (h *RoundHandler) HandleRoll(w http.ResponseWriter, r *http.Request) {
	var req PlayerRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Roll"); err != nil {
		return
	}

	res, err := h.service.Roll(logger.WithPlayer(r.Context(), req.Player), req.Player)
	if err != nil {
		respondServiceError(w, r, ErrMsgRollFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, res)
}

// HandleCashout settles the player's active round at its current multiplier
func (h *RoundHandler) HandleCashout(w http.ResponseWriter, r *http.Request) {
	var req PlayerRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Cashout"); err != nil {
		return
	}

	ctx := logger.WithPlayer(r.Context(), req.Player)
	res, err := h.service.Cashout(ctx, req.Player)
	if err != nil {
		respondServiceError(w, r, ErrMsgCashoutFailed, err)
		return
	}

	logger.FromContext(ctx).Info(LogMsgCashoutOutcome, "outcome", res.Outcome, "round_id", res.Round.ID)

	switch res.Outcome {
	case domain.SettlementDeclined:
		respondJSON(w, http.StatusConflict, CashoutResponse{CashoutResult: res, Error: ErrMsgSettlementDeclined})
	case domain.SettlementFailed:
		respondJSON(w, http.StatusBadGateway, CashoutResponse{CashoutResult: res, Error: ErrMsgSettlementFailed})
	default:
		respondJSON(w, http.StatusOK, CashoutResponse{CashoutResult: res})
	}
}

// HandleCurrent returns the player's latest round
func (h *RoundHandler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	player, ok := GetQueryParam(r, w, QueryParamPlayer)
	if !ok {
		return
	}

	rd, err := h.service.Current(r.Context(), player)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetRoundFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, rd)
}

// HandleBoardPreview returns a display-only board for a difficulty
func (h *RoundHandler) HandleBoardPreview(w http.ResponseWriter, r *http.Request) {
	raw := GetOptionalQueryParam(r, QueryParamDifficulty, string(domain.DifficultyEasy))
	d, err := domain.ParseDifficulty(raw)
	if err != nil {
		respondServiceError(w, r, ErrMsgPreviewFailed, err)
		return
	}

	preview, err := h.service.Preview(r.Context(), d)
	if err != nil {
		respondServiceError(w, r, ErrMsgPreviewFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, preview)
}

// HandleDifficulties lists the difficulty tiers
func (h *RoundHandler) HandleDifficulties(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, DataResponse{Data: h.service.Difficulties()})
}
