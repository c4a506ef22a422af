package rest

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rocketscienceinc/quixo-backend/internal/apperror"
	"github.com/rocketscienceinc/quixo-backend/internal/quixo"
)

const maxBodyBytes = 16 << 10

type createMatchRequest struct {
	Players []string   `json:"players" validate:"len=2,dive,required"`
	Board   [][]string `json:"board"`
}

type moveRequest struct {
	Player    string `json:"player" validate:"required"`
	Origin    []int  `json:"origin" validate:"len=2"`
	Direction string `json:"direction" validate:"required"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func (that *Server) handleCreateMatch(w http.ResponseWriter, r *http.Request) {
	var req createMatchRequest
	if err := that.decode(w, r, &req); err != nil {
		that.respondError(w, err)
		return
	}

	match, err := that.matches.CreateMatch(r.Context(), [2]string{req.Players[0], req.Players[1]}, req.Board)
	if err != nil {
		that.respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, match)
}

func (that *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	match, err := that.matches.GetMatch(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		that.respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, match)
}

func (that *Server) handleRenderMatch(w http.ResponseWriter, r *http.Request) {
	rendered, err := that.matches.RenderMatch(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		that.respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(rendered))
}

func (that *Server) handleMoveCube(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := that.decode(w, r, &req); err != nil {
		that.respondError(w, err)
		return
	}

	direction, err := quixo.ParseDirection(req.Direction)
	if err != nil {
		that.respondError(w, err)
		return
	}

	origin := quixo.Position{X: req.Origin[0], Y: req.Origin[1]}

	match, err := that.matches.MoveCube(r.Context(), mux.Vars(r)["id"], req.Player, origin, direction)
	if err != nil {
		that.respondError(w, err)
		return
	}

	if that.listener != nil {
		that.listener.MatchUpdated(match)
	}

	respondJSON(w, http.StatusOK, match)
}

func (that *Server) handleDeleteMatch(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := that.matches.DeleteMatch(r.Context(), id); err != nil {
		that.respondError(w, err)
		return
	}

	if that.listener != nil {
		that.listener.MatchDeleted(id)
	}

	w.WriteHeader(http.StatusNoContent)
}

// decode - reads a JSON body into req and validates it.
func (that *Server) decode(w http.ResponseWriter, r *http.Request, req any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(req); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrInvalidRequest, err)
	}

	if err := that.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrInvalidRequest, err)
	}

	return nil
}

func (that *Server) respondError(w http.ResponseWriter, err error) {
	kind := apperror.KindOf(err)
	status := statusOf(kind)

	message := err.Error()
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "error", err)
		message = http.StatusText(status)
	}

	respondJSON(w, status, errorResponse{Error: message, Kind: kind})
}

func statusOf(kind string) int {
	switch kind {
	case apperror.KindNotFound:
		return http.StatusNotFound
	case quixo.KindUnknownPlayer:
		return http.StatusForbidden
	case apperror.KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
