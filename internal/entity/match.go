package entity

import (
	"time"

	"github.com/rocketscienceinc/quixo-backend/internal/quixo"
)

// Match is a Quixo game as stored and served by the backend.
type Match struct {
	ID        string     `json:"id"`
	Players   [2]string  `json:"players"`
	Board     [][]string `json:"board"`
	Moves     int        `json:"moves"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewMatch - creates a match record from the state of a game.
func NewMatch(id string, game *quixo.Game, now time.Time) *Match {
	state := game.State()

	return &Match{
		ID:        id,
		Players:   state.Players,
		Board:     state.Board,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Game - rebuilds the rules engine view of the match.
func (that *Match) Game() (*quixo.Game, error) {
	return quixo.NewGame(that.Players, that.Board)
}

// Apply - records the state of game after one more move.
func (that *Match) Apply(game *quixo.Game, now time.Time) {
	that.Board = game.State().Board
	that.Moves++
	that.UpdatedAt = now
}

func (that *Match) State() quixo.State {
	return quixo.State{
		Players: that.Players,
		Board:   that.Board,
	}
}
