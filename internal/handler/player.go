package handler

import (
	"net/http"

	"github.com/osse101/SnakeCrawl_Go/internal/balance"
	"github.com/osse101/SnakeCrawl_Go/internal/history"
	"github.com/osse101/SnakeCrawl_Go/internal/leaderboard"
	"github.com/osse101/SnakeCrawl_Go/internal/player"
)

// NicknameRequest sets a player's nickname
type NicknameRequest struct {
	Player   string `json:"player" validate:"required,max=128"`
	Nickname string `json:"nickname" validate:"required"`
}

// NicknameResponse is a player's nickname
type NicknameResponse struct {
	Player   string `json:"player"`
	Nickname string `json:"nickname"`
}

// HandleGetNickname returns the stored nickname, empty when none is set
func HandleGetNickname(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetQueryParam(r, w, QueryParamPlayer)
		if !ok {
			return
		}

		name, err := svc.Nickname(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetNicknameFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, NicknameResponse{Player: id, Nickname: name})
	}
}

// HandleSetNickname stores a trimmed nickname of 1 to 20 characters
func HandleSetNickname(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req NicknameRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Set nickname"); err != nil {
			return
		}

		name, err := svc.SetNickname(r.Context(), req.Player, req.Nickname)
		if err != nil {
			respondServiceError(w, r, ErrMsgSetNicknameFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, NicknameResponse{Player: req.Player, Nickname: name})
	}
}

// HandleGetHistory returns one page of the player's finished rounds, newest first
func HandleGetHistory(svc history.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetQueryParam(r, w, QueryParamPlayer)
		if !ok {
			return
		}
		page, ok := GetIntQueryParam(r, w, QueryParamPage, 1)
		if !ok {
			return
		}
		pageSize, ok := GetIntQueryParam(r, w, QueryParamPageSize, history.DefaultPageSize)
		if !ok {
			return
		}

		result, err := svc.List(r.Context(), id, page, pageSize)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetHistoryFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}

// HandleGetBalance returns the player's balance and keeps it refreshed in the background.
// Ledger failures are reported through the stale flag, never as an error status.
func HandleGetBalance(svc balance.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetQueryParam(r, w, QueryParamPlayer)
		if !ok {
			return
		}

		svc.Track(id)
		respondJSON(w, http.StatusOK, svc.Get(r.Context(), id))
	}
}

// HandleGetLeaderboard returns the top players by total winnings
func HandleGetLeaderboard(svc leaderboard.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := svc.Top(r.Context())
		if err != nil {
			respondServiceError(w, r, ErrMsgGetLeaderboardFail, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: entries})
	}
}
