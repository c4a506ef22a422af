package quixo

import (
	"fmt"
	"strings"
)

type Direction string

const (
	DirectionUp    Direction = "up"
	DirectionDown  Direction = "down"
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

// aliases accepted from user input next to the canonical tokens.
var directionAliases = map[string]Direction{
	"up":     DirectionUp,
	"down":   DirectionDown,
	"left":   DirectionLeft,
	"right":  DirectionRight,
	"haut":   DirectionUp,
	"bas":    DirectionDown,
	"gauche": DirectionLeft,
	"droite": DirectionRight,
}

// ParseDirection - turns a user token into a Direction, case and surrounding spaces are ignored.
func ParseDirection(token string) (Direction, error) {
	direction, ok := directionAliases[strings.ToLower(strings.TrimSpace(token))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidDirection, token)
	}

	return direction, nil
}

func (that Direction) IsValid() bool {
	switch that {
	case DirectionUp, DirectionDown, DirectionLeft, DirectionRight:
		return true
	default:
		return false
	}
}
