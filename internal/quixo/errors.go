package quixo

import "errors"

var (
	ErrOutOfRange       = errors.New("x and y positions must be between 1 and 5 inclusive")
	ErrInvalidValue     = errors.New("invalid cube value")
	ErrInvalidFormat    = errors.New("invalid board format")
	ErrInvalidDirection = errors.New(`direction must be "up", "down", "left" or "right"`)
	ErrEmptyCube        = errors.New("cube to insert cannot be empty")
	ErrUnknownPlayer    = errors.New("player is not part of this game")
	ErrInvalidPlayers   = errors.New("two distinct, non-empty players are required")
)

// error kinds, stable identifiers for transports and metrics.
const (
	KindOutOfRange       = "out_of_range"
	KindInvalidValue     = "invalid_value"
	KindInvalidFormat    = "invalid_format"
	KindInvalidDirection = "invalid_direction"
	KindEmptyCube        = "empty_cube"
	KindUnknownPlayer    = "unknown_player"
	KindInvalidPlayers   = "invalid_players"
)

var kinds = []struct {
	err  error
	kind string
}{
	{ErrOutOfRange, KindOutOfRange},
	{ErrInvalidValue, KindInvalidValue},
	{ErrInvalidFormat, KindInvalidFormat},
	{ErrInvalidDirection, KindInvalidDirection},
	{ErrEmptyCube, KindEmptyCube},
	{ErrUnknownPlayer, KindUnknownPlayer},
	{ErrInvalidPlayers, KindInvalidPlayers},
}

// KindOf - returns the kind of a rules error, or an empty string for any other error.
func KindOf(err error) string {
	if err == nil {
		return ""
	}

	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}

	return ""
}
