package quixo

import (
	"fmt"
	"strings"
)

// State is the external view of a game, as exchanged with the game server.
type State struct {
	Players [2]string  `json:"players"`
	Board   [][]string `json:"board"`
}

// Game binds two players to their cubes: the first plays X, the second O.
type Game struct {
	players [2]string
	board   *Board
}

// NewGame - creates a game for the two players, snapshot may be nil for an empty board.
func NewGame(players [2]string, snapshot [][]string) (*Game, error) {
	board, err := NewBoardFromSnapshot(snapshot)
	if err != nil {
		return nil, err
	}

	return &Game{
		players: players,
		board:   board,
	}, nil
}

// CheckPlayers - reports ErrInvalidPlayers unless both identities are set and differ.
// NewGame accepts any pair, callers that start or resume a match check first.
func CheckPlayers(players [2]string) error {
	if players[0] == "" || players[1] == "" {
		return fmt.Errorf("%w: got %q", ErrInvalidPlayers, players)
	}

	if players[0] == players[1] {
		return fmt.Errorf("%w: both players are %q", ErrInvalidPlayers, players[0])
	}

	return nil
}

func NewGameFromState(state State) (*Game, error) {
	return NewGame(state.Players, state.Board)
}

func (that *Game) Players() [2]string {
	return that.players
}

// State - returns a copy of the game that shares nothing with it.
func (that *Game) State() State {
	return State{
		Players: that.players,
		Board:   that.board.Snapshot(),
	}
}

func (that *Game) Render() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Legend:\n   X=%s\n   O=%s\n", that.players[0], that.players[1])
	sb.WriteString(that.board.Render())

	return sb.String()
}

func (that *Game) String() string {
	return that.Render()
}

// CubeOf - returns the cube played by player.
func (that *Game) CubeOf(player string) (Cube, error) {
	switch player {
	case that.players[0]:
		return CubeX, nil
	case that.players[1]:
		return CubeO, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPlayer, player)
	}
}

// MoveCube - applies the insertion for player on the board.
func (that *Game) MoveCube(player string, origin Position, direction Direction) error {
	cube, err := that.CubeOf(player)
	if err != nil {
		return err
	}

	return that.board.InsertCube(string(cube), origin, direction)
}
