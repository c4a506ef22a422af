// Command quixo plays a local Quixo match on the terminal.
//
// Usage:
//
//	quixo <idul> [--opponent name] [--state game.json]
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/rocketscienceinc/quixo-backend/internal/quixo"
	"github.com/spf13/cobra"
)

const defaultOpponent = "robot"

var (
	opponent  string
	statePath string
	verbose   bool
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "quixo <idul>",
		Short:        "Quixo",
		Long:         "Play a hot-seat Quixo match. The first player (idul) plays X, the opponent plays O.",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         runPlay,
	}

	cmd.Flags().StringVarP(&opponent, "opponent", "o", defaultOpponent, "identity of the second player")
	cmd.Flags().StringVarP(&statePath, "state", "s", "", "JSON game state to resume (players and board)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log every move to stderr")

	return cmd
}

func runPlay(cmd *cobra.Command, args []string) error {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	game, err := loadGame(args[0])
	if err != nil {
		return err
	}

	return playMatch(logger, cmd.InOrStdin(), cmd.OutOrStdout(), game)
}

// loadGame - resumes the game in statePath, or starts an empty one for idul and the opponent.
func loadGame(idul string) (*quixo.Game, error) {
	if statePath == "" {
		players := [2]string{idul, opponent}
		if err := quixo.CheckPlayers(players); err != nil {
			return nil, err
		}

		return quixo.NewGame(players, nil)
	}

	raw, err := os.ReadFile(statePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read game state: %w", err)
	}

	var state quixo.State
	if err = json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game state: %w", err)
	}

	if err = quixo.CheckPlayers(state.Players); err != nil {
		return nil, fmt.Errorf("invalid game state: %w", err)
	}

	game, err := quixo.NewGameFromState(state)
	if err != nil {
		return nil, fmt.Errorf("invalid game state: %w", err)
	}

	return game, nil
}
