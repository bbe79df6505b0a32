package game

import "golang.org/x/exp/slices"

// Roster is one team's set of live pieces.
type Roster struct {
	Team   Team
	grid   *Grid
	pieces []*Piece
}

func NewRoster(team Team, grid *Grid) *Roster {
	return &Roster{Team: team, grid: grid}
}

func (r *Roster) AddPiece(p *Piece) {
	if p == nil || slices.Contains(r.pieces, p) {
		return
	}
	r.pieces = append(r.pieces, p)
}

func (r *Roster) RemovePiece(p *Piece) {
	if i := slices.Index(r.pieces, p); i >= 0 {
		r.pieces = slices.Delete(r.pieces, i, i+1)
	}
}

func (r *Roster) Has(p *Piece) bool {
	return slices.Contains(r.pieces, p)
}

// RegenerateMoves recomputes the moves of every piece still on the grid.
func (r *Roster) RegenerateMoves() {
	for _, p := range r.pieces {
		if r.grid.HasPiece(p) {
			p.generateMoves(r.grid)
		}
	}
}

func (r *Roster) Pieces() []*Piece {
	return slices.Clone(r.pieces)
}

func (r *Roster) Len() int {
	return len(r.pieces)
}

func (r *Roster) PiecesOfKind(k Kind) []*Piece {
	var out []*Piece
	for _, p := range r.pieces {
		if p.Kind == k {
			out = append(out, p)
		}
	}
	return out
}

// PiecesThreateningKind returns pieces with a destination occupied by a piece of kind k.
func (r *Roster) PiecesThreateningKind(k Kind) []*Piece {
	var out []*Piece
	for _, p := range r.pieces {
		for _, sq := range p.availableMoves {
			if target := r.grid.PieceAt(sq); target != nil && target.Kind == k {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

func (r *Roster) Clear() {
	r.pieces = nil
}
