package game

import (
	"fmt"
	"strings"

	"github.com/notnil/chess"
	"golang.org/x/exp/slices"
)

type Team int

const (
	First Team = iota
	Second
)

func (t Team) String() string {
	switch t {
	case First:
		return "White"
	case Second:
		return "Black"
	default:
		return "Unknown"
	}
}

func (t Team) Opponent() Team {
	if t == First {
		return Second
	}
	return First
}

// Forward is the rank direction the team's pieces advance in.
func (t Team) Forward() int {
	if t == First {
		return 1
	}
	return -1
}

// HomeRank is the back row an opposing piece must reach to finish the game.
func (t Team) HomeRank() int {
	if t == First {
		return 0
	}
	return BoardSize - 1
}

func ParseTeam(s string) (Team, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "first":
		return First, nil
	case "black", "second":
		return Second, nil
	}
	return 0, fmt.Errorf("%q: %w", s, ErrInvalidTeam)
}

type Kind int

const (
	Pawn Kind = iota
)

var kindNames = map[Kind]string{
	Pawn: "Pawn",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// ParseKind resolves a piece kind name. Only kinds with a registered rule resolve.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			if _, err := RuleFor(k); err != nil {
				return 0, err
			}
			return k, nil
		}
	}
	return 0, fmt.Errorf("%q: %w", name, ErrUnknownKind)
}

type Piece struct {
	ID   int
	Team Team
	Kind Kind

	square         Coordinate
	moved          bool
	availableMoves []Coordinate
}

func (p *Piece) Square() Coordinate { return p.square }
func (p *Piece) HasMoved() bool { return p.moved }

// AvailableMoves returns a copy of the last generated destinations.
func (p *Piece) AvailableMoves() []Coordinate {
	return slices.Clone(p.availableMoves)
}

func (p *Piece) CanMoveTo(c Coordinate) bool {
	return slices.Contains(p.availableMoves, c)
}

func (p *Piece) IsFromSameTeam(other *Piece) bool {
	return other != nil && p.Team == other.Team
}

// generateMoves discards the previous destinations and recomputes them.
func (p *Piece) generateMoves(g *Grid) []Coordinate {
	p.availableMoves = nil
	rule, err := RuleFor(p.Kind)
	if err != nil {
		return nil
	}
	p.availableMoves = rule.SelectAvailableSquares(p, g)
	return p.availableMoves
}

// Glyph is the unicode symbol used by the text and terminal renderers.
func (p *Piece) Glyph() string {
	switch p.Kind {
	case Pawn:
		if p.Team == First {
			return chess.WhitePawn.String()
		}
		return chess.BlackPawn.String()
	}
	return "?"
}

func (p *Piece) String() string {
	return fmt.Sprintf("%s %s@%s", p.Team, p.Kind, p.square)
}
