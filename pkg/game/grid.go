package game

// Grid stores piece placement. It does not own the pieces, rosters do.
type Grid struct {
	squares [BoardSize][BoardSize]*Piece
}

func NewGrid() *Grid {
	return &Grid{}
}

func (g *Grid) IsOnBoard(c Coordinate) bool {
	return c.IsOnBoard()
}

// PieceAt returns nil for empty and off-board squares.
func (g *Grid) PieceAt(c Coordinate) *Piece {
	if !c.IsOnBoard() {
		return nil
	}
	return g.squares[c.File][c.Rank]
}

// Place puts p on c and records c as its square. If p already stood
// elsewhere that square is vacated. A piece already on c is taken off the grid
// and returned; removing it from its roster is up to the caller.
// A nil piece clears the square. Off-board coordinates are ignored.
func (g *Grid) Place(c Coordinate, p *Piece) *Piece {
	if !c.IsOnBoard() {
		return nil
	}
	if p != nil {
		g.Remove(p)
	}
	displaced := g.squares[c.File][c.Rank]
	g.squares[c.File][c.Rank] = p
	if p != nil {
		p.square = c
	}
	return displaced
}

// Move relocates the piece on from to to in one step and marks it moved.
// Whatever stood on to is overwritten, captures are resolved by the caller first.
func (g *Grid) Move(from, to Coordinate) *Piece {
	p := g.PieceAt(from)
	if p == nil || !to.IsOnBoard() {
		return nil
	}
	g.squares[from.File][from.Rank] = nil
	g.squares[to.File][to.Rank] = p
	p.square = to
	p.moved = true
	return p
}

// Remove clears the square holding p, if any.
func (g *Grid) Remove(p *Piece) {
	if p == nil {
		return
	}
	if g.PieceAt(p.square) == p {
		g.squares[p.square.File][p.square.Rank] = nil
		return
	}
	for f := range g.squares {
		for r := range g.squares[f] {
			if g.squares[f][r] == p {
				g.squares[f][r] = nil
			}
		}
	}
}

func (g *Grid) HasPiece(p *Piece) bool {
	for f := 0; f < BoardSize; f++ {
		for r := 0; r < BoardSize; r++ {
			if g.squares[f][r] == p {
				return true
			}
		}
	}
	return false
}

// Pieces lists occupied squares rank by rank from a1.
func (g *Grid) Pieces() []*Piece {
	var pieces []*Piece
	for r := 0; r < BoardSize; r++ {
		for f := 0; f < BoardSize; f++ {
			if p := g.squares[f][r]; p != nil {
				pieces = append(pieces, p)
			}
		}
	}
	return pieces
}

func (g *Grid) Reset() {
	g.squares = [BoardSize][BoardSize]*Piece{}
}
