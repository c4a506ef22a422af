package quixo

import (
	"fmt"
	"strings"
)

const Size = 5

type Cube string

const (
	CubeX     Cube = "X"
	CubeO     Cube = "O"
	CubeEmpty Cube = " "
)

func (that Cube) IsValid() bool {
	return that == CubeX || that == CubeO || that == CubeEmpty
}

// Position is a 1-indexed board coordinate: X is the column, Y is the row.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (that Position) IsValid() bool {
	return that.X >= 1 && that.X <= Size && that.Y >= 1 && that.Y <= Size
}

// Board holds the 5x5 grid of cubes. Cells are stored row-major and 0-indexed,
// every public accessor takes 1-indexed positions.
type Board struct {
	cells [Size][Size]Cube
}

// NewBoard - creates a board where every cell is empty.
func NewBoard() *Board {
	board := &Board{}

	for y := range board.cells {
		for x := range board.cells[y] {
			board.cells[y][x] = CubeEmpty
		}
	}

	return board
}

// NewBoardFromSnapshot - creates a board from the nested-array form, nil gives an empty board.
// The snapshot is copied, later changes to it do not reach the board.
func NewBoardFromSnapshot(snapshot [][]string) (*Board, error) {
	if snapshot == nil {
		return NewBoard(), nil
	}

	if len(snapshot) != Size {
		return nil, fmt.Errorf("%w: expected %d rows, got %d", ErrInvalidFormat, Size, len(snapshot))
	}

	board := &Board{}

	for y, row := range snapshot {
		if len(row) != Size {
			return nil, fmt.Errorf("%w: row %d has %d cells", ErrInvalidFormat, y+1, len(row))
		}

		for x, value := range row {
			cube := Cube(value)
			if !cube.IsValid() {
				return nil, fmt.Errorf("%w: %q at (%d, %d)", ErrInvalidValue, value, x+1, y+1)
			}

			board.cells[y][x] = cube
		}
	}

	return board, nil
}

func (that *Board) Get(x, y int) (Cube, error) {
	if err := checkPosition(x, y); err != nil {
		return "", err
	}

	return that.cells[y-1][x-1], nil
}

func (that *Board) Set(x, y int, cube Cube) error {
	if err := checkPosition(x, y); err != nil {
		return err
	}

	if !cube.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidValue, cube)
	}

	that.cells[y-1][x-1] = cube

	return nil
}

// Snapshot - returns a deep copy of the grid in its nested-array form.
func (that *Board) Snapshot() [][]string {
	snapshot := make([][]string, Size)

	for y, row := range that.cells {
		snapshot[y] = make([]string, Size)
		for x, cube := range row {
			snapshot[y][x] = string(cube)
		}
	}

	return snapshot
}

func (that *Board) Render() string {
	var sb strings.Builder

	sb.WriteString("   -------------------\n")

	for y, row := range that.cells {
		cubes := make([]string, Size)
		for x, cube := range row {
			cubes[x] = string(cube)
		}

		fmt.Fprintf(&sb, "%d | %s |\n", y+1, strings.Join(cubes, " | "))

		if y < Size-1 {
			sb.WriteString("  |---|---|---|---|---|\n")
		}
	}

	sb.WriteString("--|---|---|---|---|---|\n")
	sb.WriteString("  | 1   2   3   4   5 |\n")

	return sb.String()
}

func (that *Board) String() string {
	return that.Render()
}

// InsertCube - pushes a cube in from the edge given by direction, shifting the
// line between that edge and origin one step toward origin.
func (that *Board) InsertCube(cube string, origin Position, direction Direction) error {
	symbol := Cube(strings.TrimSpace(cube))
	if symbol != CubeX && symbol != CubeO {
		return fmt.Errorf("%w: got %q", ErrEmptyCube, cube)
	}

	if !direction.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidDirection, direction)
	}

	// the shift loops are bounded by origin, so a valid origin means no step can fail halfway
	if err := checkPosition(origin.X, origin.Y); err != nil {
		return err
	}

	switch direction {
	case DirectionDown:
		return that.insertFromBottom(symbol, origin)
	case DirectionUp:
		return that.insertFromTop(symbol, origin)
	case DirectionLeft:
		return that.insertFromLeft(symbol, origin)
	default:
		return that.insertFromRight(symbol, origin)
	}
}

func (that *Board) insertFromBottom(cube Cube, origin Position) error {
	x, y := origin.X, origin.Y

	for i := y; i < Size; i++ {
		if err := that.move(x, i+1, x, i); err != nil {
			return err
		}
	}

	return that.Set(x, Size, cube)
}

func (that *Board) insertFromTop(cube Cube, origin Position) error {
	x, y := origin.X, origin.Y

	for i := y - 1; i >= 1; i-- {
		if err := that.move(x, i, x, i+1); err != nil {
			return err
		}
	}

	return that.Set(x, 1, cube)
}

func (that *Board) insertFromLeft(cube Cube, origin Position) error {
	x, y := origin.X, origin.Y

	for i := x - 1; i >= 1; i-- {
		if err := that.move(i, y, i+1, y); err != nil {
			return err
		}
	}

	return that.Set(1, y, cube)
}

func (that *Board) insertFromRight(cube Cube, origin Position) error {
	x, y := origin.X, origin.Y

	for i := x; i < Size; i++ {
		if err := that.move(i+1, y, i, y); err != nil {
			return err
		}
	}

	return that.Set(Size, y, cube)
}

// move - copies the cube at (fromX, fromY) onto (toX, toY).
func (that *Board) move(fromX, fromY, toX, toY int) error {
	cube, err := that.Get(fromX, fromY)
	if err != nil {
		return err
	}

	return that.Set(toX, toY, cube)
}

func checkPosition(x, y int) error {
	if !(Position{X: x, Y: y}).IsValid() {
		return fmt.Errorf("%w: got (%d, %d)", ErrOutOfRange, x, y)
	}

	return nil
}
