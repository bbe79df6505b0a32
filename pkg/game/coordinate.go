package game

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/notnil/chess"
)

const BoardSize = 8

// Coordinate identifies one board square, 0-indexed.
type Coordinate struct {
	File int `json:"file"`
	Rank int `json:"rank"`
}

func (c Coordinate) Add(d Coordinate) Coordinate {
	return Coordinate{File: c.File + d.File, Rank: c.Rank + d.Rank}
}

// IsOnBoard reports whether both axes are within the board.
func (c Coordinate) IsOnBoard() bool {
	return c.File >= 0 && c.Rank >= 0 && c.File < BoardSize && c.Rank < BoardSize
}

func (c Coordinate) String() string {
	if !c.IsOnBoard() {
		var b strings.Builder
		b.WriteRune('(')
		b.WriteString(strconv.Itoa(c.File))
		b.WriteRune(',')
		b.WriteString(strconv.Itoa(c.Rank))
		b.WriteRune(')')
		return b.String()
	}
	return c.square().String()
}

// square maps an on-board coordinate to the notnil/chess square, A1 is 0.
func (c Coordinate) square() chess.Square {
	return chess.Square(c.Rank*BoardSize + c.File)
}

var squareNames = func() map[string]Coordinate {
	names := make(map[string]Coordinate, BoardSize*BoardSize)
	for r := 0; r < BoardSize; r++ {
		for f := 0; f < BoardSize; f++ {
			c := Coordinate{File: f, Rank: r}
			names[c.square().String()] = c
		}
	}
	return names
}()

// ParseCoordinate parses algebraic notation such as "e2".
func ParseCoordinate(s string) (Coordinate, error) {
	c, ok := squareNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return Coordinate{}, fmt.Errorf("%q: %w", s, ErrInvalidCoordinate)
	}
	return c, nil
}

// Vec2 is a continuous board-local or world position.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// CoordinateFromOffset maps a board-local offset measured from the board centre to
// a square. Boundaries round down.
func CoordinateFromOffset(offset Vec2, squareSize float64) Coordinate {
	return Coordinate{
		File: int(math.Floor(offset.X/squareSize)) + BoardSize/2,
		Rank: int(math.Floor(offset.Y/squareSize)) + BoardSize/2,
	}
}

// Geometry converts between squares and continuous positions at the
// presentation boundary.
type Geometry struct {
	Origin     Vec2 // world position of the a1 square
	SquareSize float64
}

var DefaultGeometry = Geometry{
	Origin:     Vec2{X: -3.5, Y: -3.5},
	SquareSize: 1,
}

func (g Geometry) PositionOf(c Coordinate) Vec2 {
	return Vec2{
		X: g.Origin.X + float64(c.File)*g.SquareSize,
		Y: g.Origin.Y + float64(c.Rank)*g.SquareSize,
	}
}

func (g Geometry) CoordinateOf(local Vec2) Coordinate {
	return CoordinateFromOffset(local, g.SquareSize)
}
