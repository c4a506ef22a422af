package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/quixo-backend/internal/quixo"
)

const (
	originQuestion    = "Origin of the cube to move (x,y): "
	directionQuestion = "Insertion direction (up, down, left, right): "

	quitCommand = "quit"
)

var (
	ErrMalformedInput = errors.New(`origin must be written as "x,y"`)
	ErrQuit           = errors.New("player quit")
)

// Prompter asks a human for the next move over a line protocol.
type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

// ChooseMove - asks for an origin and a direction and validates both.
func (that *Prompter) ChooseMove() (quixo.Position, quixo.Direction, error) {
	line, err := that.Ask(originQuestion)
	if err != nil {
		return quixo.Position{}, "", err
	}

	if isQuit(line) {
		return quixo.Position{}, "", ErrQuit
	}

	origin, err := ParseOrigin(line)
	if err != nil {
		return quixo.Position{}, "", err
	}

	line, err = that.Ask(directionQuestion)
	if err != nil {
		return quixo.Position{}, "", err
	}

	if isQuit(line) {
		return quixo.Position{}, "", ErrQuit
	}

	direction, err := quixo.ParseDirection(line)
	if err != nil {
		return quixo.Position{}, "", err
	}

	return origin, direction, nil
}

// Ask - writes question and returns the next input line, io.EOF once input is exhausted.
func (that *Prompter) Ask(question string) (string, error) {
	if _, err := io.WriteString(that.out, question); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	if !that.scanner.Scan() {
		if err := that.scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read answer: %w", err)
		}

		return "", io.EOF
	}

	return that.scanner.Text(), nil
}

// ParseOrigin - parses "x,y" into a board position.
func ParseOrigin(input string) (quixo.Position, error) {
	parts := strings.Split(input, ",")
	if len(parts) != 2 {
		return quixo.Position{}, fmt.Errorf("%w: got %q", ErrMalformedInput, input)
	}

	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return quixo.Position{}, fmt.Errorf("%w: got %q", ErrMalformedInput, input)
	}

	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return quixo.Position{}, fmt.Errorf("%w: got %q", ErrMalformedInput, input)
	}

	origin := quixo.Position{X: x, Y: y}
	if !origin.IsValid() {
		return quixo.Position{}, fmt.Errorf("%w: got (%d, %d)", quixo.ErrOutOfRange, x, y)
	}

	return origin, nil
}

func isQuit(line string) bool {
	return strings.EqualFold(strings.TrimSpace(line), quitCommand)
}

// Retryable - reports whether a prompt loop should ask again after err.
func Retryable(err error) bool {
	switch {
	case errors.Is(err, ErrMalformedInput),
		errors.Is(err, quixo.ErrOutOfRange),
		errors.Is(err, quixo.ErrInvalidDirection),
		errors.Is(err, quixo.ErrEmptyCube),
		errors.Is(err, quixo.ErrUnknownPlayer):
		return true
	default:
		return false
	}
}
