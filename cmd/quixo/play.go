package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/rocketscienceinc/quixo-backend/internal/prompt"
	"github.com/rocketscienceinc/quixo-backend/internal/quixo"
)

// playMatch - alternates turns between the two players until input ends or a player quits.
func playMatch(logger *slog.Logger, in io.Reader, out io.Writer, game *quixo.Game) error {
	log := logger.With("method", "playMatch")

	prompter := prompt.New(in, out)
	players := game.Players()
	turn := 0

	for {
		player := players[turn]
		cube, err := game.CubeOf(player)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "%s\n%s (%s) to play.\n", game.Render(), player, cube)

		origin, direction, err := prompter.ChooseMove()
		if err == nil {
			err = game.MoveCube(player, origin, direction)
		}

		switch {
		case err == nil:
			log.Debug("cube moved", "player", player, "origin", origin, "direction", direction)
			turn = 1 - turn
		case errors.Is(err, io.EOF), errors.Is(err, prompt.ErrQuit):
			fmt.Fprintln(out, "Bye.")
			return nil
		case prompt.Retryable(err):
			log.Debug("move rejected", "player", player, "kind", quixo.KindOf(err), "error", err)
			fmt.Fprintf(out, "Invalid move: %v\n", err)
		default:
			return fmt.Errorf("failed to play move: %w", err)
		}
	}
}
