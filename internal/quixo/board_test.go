package quixo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	x = "X"
	o = "O"
	e = " "
)

func emptySnapshot() [][]string {
	return [][]string{
		{e, e, e, e, e},
		{e, e, e, e, e},
		{e, e, e, e, e},
		{e, e, e, e, e},
		{e, e, e, e, e},
	}
}

func column(t *testing.T, board *Board, col int) []Cube {
	t.Helper()

	cubes := make([]Cube, 0, Size)
	for y := 1; y <= Size; y++ {
		cube, err := board.Get(col, y)
		require.NoError(t, err)
		cubes = append(cubes, cube)
	}

	return cubes
}

func row(t *testing.T, board *Board, r int) []Cube {
	t.Helper()

	cubes := make([]Cube, 0, Size)
	for xx := 1; xx <= Size; xx++ {
		cube, err := board.Get(xx, r)
		require.NoError(t, err)
		cubes = append(cubes, cube)
	}

	return cubes
}

func TestNewBoard(t *testing.T) {
	// When: an empty board is created
	board := NewBoard()

	// Then: every cell is blank
	require.Equal(t, emptySnapshot(), board.Snapshot())
}

func TestNewBoardFromSnapshot(t *testing.T) {
	t.Run("Nil snapshot gives an empty board", func(t *testing.T) {
		// When: the board is built from nil
		board, err := NewBoardFromSnapshot(nil)

		// Then: the board is empty
		require.NoError(t, err)
		assert.Equal(t, emptySnapshot(), board.Snapshot())
	})

	t.Run("Valid snapshot is loaded", func(t *testing.T) {
		// Given: a snapshot with a few cubes
		snapshot := emptySnapshot()
		snapshot[0][4] = x
		snapshot[3][1] = o

		// When: the board is built from it
		board, err := NewBoardFromSnapshot(snapshot)
		require.NoError(t, err)

		// Then: the cubes are readable at their 1-indexed positions
		cube, err := board.Get(5, 1)
		require.NoError(t, err)
		assert.Equal(t, CubeX, cube)

		cube, err = board.Get(2, 4)
		require.NoError(t, err)
		assert.Equal(t, CubeO, cube)
	})

	t.Run("Snapshot is copied on construction", func(t *testing.T) {
		// Given: a board built from a snapshot
		snapshot := emptySnapshot()
		board, err := NewBoardFromSnapshot(snapshot)
		require.NoError(t, err)

		// When: the caller mutates its snapshot afterwards
		snapshot[0][0] = x

		// Then: the board is unaffected
		cube, err := board.Get(1, 1)
		require.NoError(t, err)
		assert.Equal(t, CubeEmpty, cube)
	})

	t.Run("Four rows is an invalid format", func(t *testing.T) {
		// Given: a snapshot missing its last row
		snapshot := emptySnapshot()[:4]

		// When: the board is built from it
		_, err := NewBoardFromSnapshot(snapshot)

		// Then: ErrInvalidFormat is returned
		require.ErrorIs(t, err, ErrInvalidFormat)
	})

	t.Run("Ragged snapshot is an invalid format", func(t *testing.T) {
		// Given: a snapshot with a short row
		snapshot := emptySnapshot()
		snapshot[2] = []string{e, e, e}

		// When: the board is built from it
		_, err := NewBoardFromSnapshot(snapshot)

		// Then: ErrInvalidFormat is returned
		require.ErrorIs(t, err, ErrInvalidFormat)
	})

	t.Run("Unknown symbol is an invalid value", func(t *testing.T) {
		// Given: a snapshot containing Z
		snapshot := emptySnapshot()
		snapshot[1][1] = "Z"

		// When: the board is built from it
		_, err := NewBoardFromSnapshot(snapshot)

		// Then: ErrInvalidValue is returned
		require.ErrorIs(t, err, ErrInvalidValue)
	})
}

func TestBoard_GetSet(t *testing.T) {
	t.Run("Set then Get returns the value everywhere on the board", func(t *testing.T) {
		board := NewBoard()

		for yy := 1; yy <= Size; yy++ {
			for xx := 1; xx <= Size; xx++ {
				cube := CubeX
				if (xx+yy)%2 == 0 {
					cube = CubeO
				}

				require.NoError(t, board.Set(xx, yy, cube))

				got, err := board.Get(xx, yy)
				require.NoError(t, err)
				assert.Equal(t, cube, got, "position (%d, %d)", xx, yy)
			}
		}
	})

	t.Run("Out of range coordinates are rejected", func(t *testing.T) {
		board := NewBoard()

		positions := []Position{
			{X: 0, Y: 1}, {X: 6, Y: 1}, {X: 1, Y: 0}, {X: 1, Y: 6}, {X: -1, Y: -1}, {X: 0, Y: 0},
		}

		for _, pos := range positions {
			_, err := board.Get(pos.X, pos.Y)
			assert.ErrorIs(t, err, ErrOutOfRange, "get %v", pos)

			err = board.Set(pos.X, pos.Y, CubeX)
			assert.ErrorIs(t, err, ErrOutOfRange, "set %v", pos)
		}
	})

	t.Run("Set rejects an invalid value", func(t *testing.T) {
		// Given: an empty board
		board := NewBoard()

		// When: a cell is set to an unknown symbol
		err := board.Set(2, 2, Cube("Z"))

		// Then: ErrInvalidValue is returned and the cell is unchanged
		require.ErrorIs(t, err, ErrInvalidValue)

		cube, err := board.Get(2, 2)
		require.NoError(t, err)
		assert.Equal(t, CubeEmpty, cube)
	})
}

func TestBoard_Snapshot(t *testing.T) {
	t.Run("Snapshot does not alias the board", func(t *testing.T) {
		// Given: a board with one cube
		board := NewBoard()
		require.NoError(t, board.Set(3, 3, CubeX))

		// When: the returned snapshot is mutated
		snapshot := board.Snapshot()
		snapshot[2][2] = o
		snapshot[0][0] = x

		// Then: the board still reports its own values
		cube, err := board.Get(3, 3)
		require.NoError(t, err)
		assert.Equal(t, CubeX, cube)

		cube, err = board.Get(1, 1)
		require.NoError(t, err)
		assert.Equal(t, CubeEmpty, cube)
	})

	t.Run("Round trip through a snapshot keeps every cell", func(t *testing.T) {
		// Given: a board with a mix of cubes
		board := NewBoard()
		require.NoError(t, board.Set(1, 1, CubeX))
		require.NoError(t, board.Set(5, 2, CubeO))
		require.NoError(t, board.Set(3, 4, CubeX))

		// When: a second board is built from its snapshot
		clone, err := NewBoardFromSnapshot(board.Snapshot())
		require.NoError(t, err)

		// Then: both boards agree on all 25 cells
		for yy := 1; yy <= Size; yy++ {
			for xx := 1; xx <= Size; xx++ {
				want, err := board.Get(xx, yy)
				require.NoError(t, err)

				got, err := clone.Get(xx, yy)
				require.NoError(t, err)

				assert.Equal(t, want, got)
			}
		}
	})
}

func TestBoard_Render(t *testing.T) {
	// Given: a board with an X on (1, 1) and an O on (5, 5)
	board := NewBoard()
	require.NoError(t, board.Set(1, 1, CubeX))
	require.NoError(t, board.Set(5, 5, CubeO))

	// When: the board is rendered
	rendered := board.Render()

	// Then: the layout matches the fixed format
	expected := "   -------------------\n" +
		"1 | X |   |   |   |   |\n" +
		"  |---|---|---|---|---|\n" +
		"2 |   |   |   |   |   |\n" +
		"  |---|---|---|---|---|\n" +
		"3 |   |   |   |   |   |\n" +
		"  |---|---|---|---|---|\n" +
		"4 |   |   |   |   |   |\n" +
		"  |---|---|---|---|---|\n" +
		"5 |   |   |   |   | O |\n" +
		"--|---|---|---|---|---|\n" +
		"  | 1   2   3   4   5 |\n"

	assert.Equal(t, expected, rendered)
	assert.Equal(t, expected, board.String())
}

func TestBoard_InsertCube(t *testing.T) {
	t.Run("Insert down from the top row lands at the bottom", func(t *testing.T) {
		// Given: an empty board
		board := NewBoard()

		// When: X is inserted down from (3, 1)
		err := board.InsertCube(x, Position{X: 3, Y: 1}, DirectionDown)
		require.NoError(t, err)

		// Then: column 3 ends with X and the other columns are untouched
		assert.Equal(t, []Cube{CubeEmpty, CubeEmpty, CubeEmpty, CubeEmpty, CubeX}, column(t, board, 3))

		for _, col := range []int{1, 2, 4, 5} {
			assert.Equal(t, []Cube{CubeEmpty, CubeEmpty, CubeEmpty, CubeEmpty, CubeEmpty}, column(t, board, col))
		}
	})

	t.Run("Insert up from the bottom row lands at the top", func(t *testing.T) {
		// Given: an empty board
		board := NewBoard()

		// When: O is inserted up from (3, 5)
		err := board.InsertCube(o, Position{X: 3, Y: 5}, DirectionUp)
		require.NoError(t, err)

		// Then: column 3 starts with O
		assert.Equal(t, []Cube{CubeO, CubeEmpty, CubeEmpty, CubeEmpty, CubeEmpty}, column(t, board, 3))
	})

	t.Run("Insert left at the left edge is a single assignment", func(t *testing.T) {
		board := NewBoard()

		err := board.InsertCube(x, Position{X: 1, Y: 1}, DirectionLeft)
		require.NoError(t, err)

		assert.Equal(t, []Cube{CubeX, CubeEmpty, CubeEmpty, CubeEmpty, CubeEmpty}, row(t, board, 1))
	})

	t.Run("Insert right at the right edge is a single assignment", func(t *testing.T) {
		board := NewBoard()

		err := board.InsertCube(o, Position{X: 5, Y: 3}, DirectionRight)
		require.NoError(t, err)

		assert.Equal(t, []Cube{CubeEmpty, CubeEmpty, CubeEmpty, CubeEmpty, CubeO}, row(t, board, 3))
	})

	t.Run("Insert down at the bottom row overwrites it", func(t *testing.T) {
		// Given: a column full of O
		snapshot := emptySnapshot()
		for r := range snapshot {
			snapshot[r][1] = o
		}
		board, err := NewBoardFromSnapshot(snapshot)
		require.NoError(t, err)

		// When: X is inserted down from (2, 5)
		require.NoError(t, board.InsertCube(x, Position{X: 2, Y: 5}, DirectionDown))

		// Then: only row 5 changed
		assert.Equal(t, []Cube{CubeO, CubeO, CubeO, CubeO, CubeX}, column(t, board, 2))
	})

	t.Run("Shifts move the line toward the origin", func(t *testing.T) {
		// Given: row 2 is X O X O X and column 4 is O O O X O
		snapshot := [][]string{
			{e, e, e, o, e},
			{x, o, x, o, x},
			{e, e, e, o, e},
			{e, e, e, x, e},
			{e, e, e, o, e},
		}

		cases := []struct {
			name      string
			cube      string
			origin    Position
			direction Direction
			line      func(*testing.T, *Board) []Cube
			want      []Cube
		}{
			{
				name: "left from the middle", cube: o, origin: Position{X: 3, Y: 2}, direction: DirectionLeft,
				line: func(t *testing.T, b *Board) []Cube { return row(t, b, 2) },
				want: []Cube{CubeO, CubeX, CubeO, CubeO, CubeX},
			},
			{
				name: "right from the middle", cube: o, origin: Position{X: 3, Y: 2}, direction: DirectionRight,
				line: func(t *testing.T, b *Board) []Cube { return row(t, b, 2) },
				want: []Cube{CubeX, CubeO, CubeO, CubeX, CubeO},
			},
			{
				name: "up from the middle", cube: x, origin: Position{X: 4, Y: 3}, direction: DirectionUp,
				line: func(t *testing.T, b *Board) []Cube { return column(t, b, 4) },
				want: []Cube{CubeX, CubeO, CubeO, CubeX, CubeO},
			},
			{
				name: "down from the middle", cube: x, origin: Position{X: 4, Y: 3}, direction: DirectionDown,
				line: func(t *testing.T, b *Board) []Cube { return column(t, b, 4) },
				want: []Cube{CubeO, CubeO, CubeX, CubeO, CubeX},
			},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				board, err := NewBoardFromSnapshot(snapshot)
				require.NoError(t, err)

				require.NoError(t, board.InsertCube(tc.cube, tc.origin, tc.direction))

				assert.Equal(t, tc.want, tc.line(t, board))
			})
		}
	})

	t.Run("Cube symbol is trimmed", func(t *testing.T) {
		board := NewBoard()

		require.NoError(t, board.InsertCube(" X ", Position{X: 1, Y: 1}, DirectionUp))

		cube, err := board.Get(1, 1)
		require.NoError(t, err)
		assert.Equal(t, CubeX, cube)
	})

	t.Run("Empty cube is rejected", func(t *testing.T) {
		board := NewBoard()

		for _, cube := range []string{" ", "", "Z"} {
			err := board.InsertCube(cube, Position{X: 1, Y: 1}, DirectionUp)
			assert.ErrorIs(t, err, ErrEmptyCube, "cube %q", cube)
		}
	})

	t.Run("Unknown direction is rejected", func(t *testing.T) {
		board := NewBoard()

		err := board.InsertCube(x, Position{X: 1, Y: 1}, Direction("sideways"))

		assert.ErrorIs(t, err, ErrInvalidDirection)
	})

	t.Run("Out of range origin leaves the board untouched", func(t *testing.T) {
		// Given: a board with a full row 1
		snapshot := emptySnapshot()
		snapshot[0] = []string{x, o, x, o, x}
		board, err := NewBoardFromSnapshot(snapshot)
		require.NoError(t, err)

		for _, direction := range []Direction{DirectionUp, DirectionDown, DirectionLeft, DirectionRight} {
			// When: an insertion starts outside the board
			err = board.InsertCube(o, Position{X: 6, Y: 1}, direction)

			// Then: ErrOutOfRange is returned and nothing moved
			require.ErrorIs(t, err, ErrOutOfRange)
			assert.Equal(t, snapshot, board.Snapshot())
		}

		err = board.InsertCube(o, Position{X: 3, Y: 0}, DirectionDown)
		require.ErrorIs(t, err, ErrOutOfRange)
		assert.Equal(t, snapshot, board.Snapshot())
	})
}
