package game

import (
	"errors"
	"reflect"
	"testing"
)

func TestPawnSquares(t *testing.T) {
	type placed struct {
		sq   Coordinate
		team Team
	}
	tests := []struct {
		name   string
		pawn   placed
		others []placed
		want   []Coordinate
	}{
		{
			name: "EmptyBoard",
			pawn: placed{Coordinate{3, 1}, First},
			want: []Coordinate{{3, 2}, {2, 2}, {4, 2}},
		},
		{
			name:   "OpposingDiagonal",
			pawn:   placed{Coordinate{3, 1}, First},
			others: []placed{{Coordinate{4, 2}, Second}},
			want:   []Coordinate{{3, 2}, {2, 2}, {4, 2}},
		},
		{
			name:   "OwnDiagonal",
			pawn:   placed{Coordinate{3, 1}, First},
			others: []placed{{Coordinate{4, 2}, First}},
			want:   []Coordinate{{3, 2}, {2, 2}},
		},
		{
			name:   "ForwardBlockedByOpponent",
			pawn:   placed{Coordinate{3, 1}, First},
			others: []placed{{Coordinate{3, 2}, Second}},
			want:   []Coordinate{{2, 2}, {4, 2}},
		},
		{
			name: "SecondMovesDown",
			pawn: placed{Coordinate{5, 6}, Second},
			want: []Coordinate{{5, 5}, {4, 5}, {6, 5}},
		},
		{
			name: "EdgeFile",
			pawn: placed{Coordinate{0, 6}, Second},
			want: []Coordinate{{0, 5}, {1, 5}},
		},
		{
			name: "LastRank",
			pawn: placed{Coordinate{7, 7}, First},
			want: []Coordinate{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			g := NewGrid()
			pawn := &Piece{Team: tt.pawn.team, Kind: Pawn}
			g.Place(tt.pawn.sq, pawn)
			for _, o := range tt.others {
				g.Place(o.sq, &Piece{Team: o.team, Kind: Pawn})
			}

			rule, err := RuleFor(Pawn)
			if err != nil {
				t.Fatalf("RuleFor(Pawn): %v", err)
			}
			got := rule.SelectAvailableSquares(pawn, g)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("SelectAvailableSquares = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGenerateMovesRecomputes(t *testing.T) {
	g := NewGrid()
	pawn := &Piece{Team: First, Kind: Pawn}
	g.Place(Coordinate{3, 1}, pawn)
	if n := len(pawn.generateMoves(g)); n != 3 {
		t.Fatalf("first generation returned %d moves, want 3", n)
	}

	g.Place(Coordinate{3, 2}, &Piece{Team: Second, Kind: Pawn})
	g.Place(Coordinate{2, 2}, &Piece{Team: First, Kind: Pawn})
	moves := pawn.generateMoves(g)
	want := []Coordinate{{4, 2}}
	if !reflect.DeepEqual(moves, want) {
		t.Fatalf("regenerated moves = %v, want %v", moves, want)
	}
	if pawn.CanMoveTo(Coordinate{3, 2}) {
		t.Fatal("stale forward move survived regeneration")
	}
}

func TestUnknownKind(t *testing.T) {
	if _, err := RuleFor(Kind(42)); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("RuleFor(42) err = %v, want ErrUnknownKind", err)
	}
	if _, err := ParseKind("Queen"); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("ParseKind(Queen) err = %v, want ErrUnknownKind", err)
	}
	if k, err := ParseKind("pawn"); err != nil || k != Pawn {
		t.Fatalf("ParseKind(pawn) = %v, %v", k, err)
	}
}
