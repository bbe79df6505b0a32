package game

import "fmt"

// Rule computes the legal destination squares of one piece kind.
type Rule interface {
	SelectAvailableSquares(p *Piece, g *Grid) []Coordinate
}

type RuleFunc func(p *Piece, g *Grid) []Coordinate

func (f RuleFunc) SelectAvailableSquares(p *Piece, g *Grid) []Coordinate {
	return f(p, g)
}

var rules = map[Kind]Rule{
	Pawn: RuleFunc(pawnSquares),
}

// RegisterRule installs or replaces the rule of a kind. The name is what layouts use.
// Not safe to call while games are running.
func RegisterRule(k Kind, name string, r Rule) {
	rules[k] = r
	kindNames[k] = name
}

func RuleFor(k Kind) (Rule, error) {
	r, ok := rules[k]
	if !ok {
		return nil, fmt.Errorf("%s: %w", k, ErrUnknownKind)
	}
	return r, nil
}

// pawnSquares: one square forward onto an empty square, and both forward
// diagonals onto a square that is empty or holds an opposing piece.
func pawnSquares(p *Piece, g *Grid) []Coordinate {
	moves := make([]Coordinate, 0, 3)
	forward := p.square.Add(Coordinate{Rank: p.Team.Forward()})
	if g.IsOnBoard(forward) && g.PieceAt(forward) == nil {
		moves = append(moves, forward)
	}

	for _, df := range [...]int{-1, 1} {
		diag := p.square.Add(Coordinate{File: df, Rank: p.Team.Forward()})
		if !g.IsOnBoard(diag) {
			continue
		}
		if other := g.PieceAt(diag); other == nil || !other.IsFromSameTeam(p) {
			moves = append(moves, diag)
		}
	}
	return moves
}
