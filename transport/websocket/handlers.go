package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/quixo-backend/internal/apperror"
	"github.com/rocketscienceinc/quixo-backend/internal/entity"
	"github.com/rocketscienceinc/quixo-backend/internal/quixo"
)

const (
	actionSubscribe = "match:subscribe"
	actionMove      = "match:move"
	actionState     = "match:state"
	actionDeleted   = "match:deleted"
	actionError     = "error"
)

var (
	errMalformedMessage = fmt.Errorf("%w: malformed message", apperror.ErrInvalidRequest)
	errUnknownAction    = fmt.Errorf("%w: unknown action", apperror.ErrInvalidRequest)
)

// Message is the envelope of everything exchanged on the socket.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type subscribePayload struct {
	MatchID string `json:"match_id" validate:"required"`
}

type movePayload struct {
	MatchID   string `json:"match_id" validate:"required"`
	Player    string `json:"player" validate:"required"`
	Origin    []int  `json:"origin" validate:"len=2"`
	Direction string `json:"direction" validate:"required"`
}

type matchPayload struct {
	Match *entity.Match `json:"match"`
}

type errorPayload struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func (that *Server) handleSubscribe(ctx context.Context, conn *client, msg *Message) error {
	var payload subscribePayload
	if err := that.decode(msg, &payload); err != nil {
		return err
	}

	match, err := that.matches.GetMatch(ctx, payload.MatchID)
	if err != nil {
		return err
	}

	that.subscribe(match.ID, conn)
	that.logger.Debug("client subscribed", "matchID", match.ID)

	return conn.send(msg.Action, matchPayload{Match: match})
}

func (that *Server) handleMove(ctx context.Context, conn *client, msg *Message) error {
	var payload movePayload
	if err := that.decode(msg, &payload); err != nil {
		return err
	}

	direction, err := quixo.ParseDirection(payload.Direction)
	if err != nil {
		return err
	}

	origin := quixo.Position{X: payload.Origin[0], Y: payload.Origin[1]}

	match, err := that.matches.MoveCube(ctx, payload.MatchID, payload.Player, origin, direction)
	if err != nil {
		return err
	}

	if err = conn.send(msg.Action, matchPayload{Match: match}); err != nil {
		return err
	}

	that.broadcast(match)

	return nil
}

// decode - reads the payload of msg into payload and validates it.
func (that *Server) decode(msg *Message, payload any) error {
	if err := json.Unmarshal(msg.Payload, payload); err != nil {
		return fmt.Errorf("%w: %w", errMalformedMessage, err)
	}

	if err := that.validate.Struct(payload); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrInvalidRequest, err)
	}

	return nil
}

// replyError - reports err to the client, internal failures are logged and masked.
func (that *Server) replyError(conn *client, err error) {
	kind := apperror.KindOf(err)

	message := err.Error()
	if kind == apperror.KindInternal {
		that.logger.Error("message failed", "error", err)
		message = "internal error"
	}

	if sendErr := conn.send(actionError, errorPayload{Error: message, Kind: kind}); sendErr != nil {
		that.logger.Debug("failed to send error", "error", sendErr)
	}
}
