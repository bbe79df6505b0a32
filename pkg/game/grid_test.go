package game

import (
	"strings"
	"testing"
)

func TestIsOnBoard(t *testing.T) {
	g := NewGrid()
	for x := -2; x < BoardSize+2; x++ {
		for y := -2; y < BoardSize+2; y++ {
			want := x >= 0 && x < 8 && y >= 0 && y < 8
			if got := g.IsOnBoard(Coordinate{x, y}); got != want {
				t.Errorf("IsOnBoard(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestPlaceAndPieceAt(t *testing.T) {
	g := NewGrid()
	p := &Piece{Team: First, Kind: Pawn}
	c := Coordinate{File: 2, Rank: 5}

	g.Place(c, p)
	if got := g.PieceAt(c); got != p {
		t.Fatalf("PieceAt(%s) = %v, want %v", c, got, p)
	}
	if p.Square() != c {
		t.Fatalf("piece square = %s, want %s", p.Square(), c)
	}
	if !g.HasPiece(p) {
		t.Fatal("HasPiece = false after Place")
	}

	g.Place(c, nil)
	if got := g.PieceAt(c); got != nil {
		t.Fatalf("PieceAt after clearing = %v, want nil", got)
	}
	if g.HasPiece(p) {
		t.Fatal("HasPiece = true after clearing")
	}
}

func TestPlaceKeepsOneSquarePerPiece(t *testing.T) {
	g := NewGrid()
	p := &Piece{Team: First, Kind: Pawn}
	a2, a3 := Coordinate{0, 1}, Coordinate{0, 2}

	g.Place(a2, p)
	g.Place(a3, p)
	if g.PieceAt(a2) != nil {
		t.Fatal("old square still holds the piece")
	}
	if g.PieceAt(a3) != p || p.Square() != a3 {
		t.Fatalf("PieceAt(a3) = %v, square = %s", g.PieceAt(a3), p.Square())
	}
	if n := len(g.Pieces()); n != 1 {
		t.Fatalf("grid holds %d pieces, want 1", n)
	}

	if displaced := g.Place(a3, p); displaced != nil {
		t.Fatalf("placing a piece on its own square displaced %v", displaced)
	}
	if g.PieceAt(a3) != p {
		t.Fatal("piece lost when placed on its own square")
	}
}

func TestPlaceDisplacesOccupant(t *testing.T) {
	g := NewGrid()
	q := &Piece{Team: Second, Kind: Pawn}
	p := &Piece{Team: First, Kind: Pawn}
	a2 := Coordinate{0, 1}

	g.Place(a2, q)
	if displaced := g.Place(a2, p); displaced != q {
		t.Fatalf("Place returned %v, want the previous occupant", displaced)
	}
	if g.HasPiece(q) {
		t.Fatal("displaced piece still on the grid")
	}
	if g.PieceAt(a2) != p || p.Square() != a2 {
		t.Fatal("new piece not stored on its square")
	}
	for _, piece := range g.Pieces() {
		if g.PieceAt(piece.Square()) != piece {
			t.Fatalf("%v is not stored under its own square", piece)
		}
	}
}

func TestOffBoardDegradesToNoPiece(t *testing.T) {
	g := NewGrid()
	p := &Piece{Team: First, Kind: Pawn}
	for _, c := range []Coordinate{{-1, 0}, {0, -1}, {8, 0}, {0, 8}, {100, 100}} {
		g.Place(c, p)
		if got := g.PieceAt(c); got != nil {
			t.Errorf("PieceAt(%s) = %v, want nil", c, got)
		}
	}
	if g.HasPiece(p) {
		t.Error("off-board Place stored the piece")
	}
	if n := len(g.Pieces()); n != 0 {
		t.Errorf("grid holds %d pieces, want 0", n)
	}
}

func TestMoveIsAtomic(t *testing.T) {
	g := NewGrid()
	p := &Piece{Team: Second, Kind: Pawn}
	from, to := Coordinate{1, 6}, Coordinate{1, 5}
	g.Place(from, p)

	if moved := g.Move(from, to); moved != p {
		t.Fatalf("Move returned %v, want %v", moved, p)
	}
	if g.PieceAt(from) != nil {
		t.Error("source square still occupied")
	}
	if g.PieceAt(to) != p {
		t.Error("destination square does not hold the piece")
	}
	if p.Square() != to || !p.HasMoved() {
		t.Errorf("piece square=%s moved=%v, want %s true", p.Square(), p.HasMoved(), to)
	}

	if moved := g.Move(Coordinate{4, 4}, to); moved != nil {
		t.Errorf("Move from empty square returned %v", moved)
	}
	if moved := g.Move(to, Coordinate{1, -1}); moved != nil || g.PieceAt(to) != p {
		t.Error("Move off the board changed the grid")
	}
}

func TestRemoveAndReset(t *testing.T) {
	g := NewGrid()
	a := &Piece{Team: First}
	b := &Piece{Team: Second}
	g.Place(Coordinate{0, 0}, a)
	g.Place(Coordinate{7, 7}, b)

	g.Remove(a)
	if g.HasPiece(a) || !g.HasPiece(b) {
		t.Fatal("Remove cleared the wrong square")
	}
	g.Remove(nil)

	g.Reset()
	if len(g.Pieces()) != 0 {
		t.Fatal("Reset left pieces on the grid")
	}
}

func TestCoordinateFromOffset(t *testing.T) {
	tests := []struct {
		offset Vec2
		size   float64
		want   Coordinate
	}{
		{Vec2{0, 0}, 1, Coordinate{4, 4}},
		{Vec2{-0.0001, 0}, 1, Coordinate{3, 4}},
		{Vec2{0.999, -1}, 1, Coordinate{4, 3}},
		{Vec2{-1, -1}, 1, Coordinate{3, 3}},
		{Vec2{-4, -4}, 1, Coordinate{0, 0}},
		{Vec2{3.5, 3.99}, 1, Coordinate{7, 7}},
		{Vec2{4, 4}, 1, Coordinate{8, 8}},
		{Vec2{-5, 2.5}, 2.5, Coordinate{2, 5}},
	}
	for _, tt := range tests {
		if got := CoordinateFromOffset(tt.offset, tt.size); got != tt.want {
			t.Errorf("CoordinateFromOffset(%v, %v) = %v, want %v", tt.offset, tt.size, got, tt.want)
		}
	}
}

func TestGeometryRoundTrip(t *testing.T) {
	g := DefaultGeometry
	for f := 0; f < BoardSize; f++ {
		for r := 0; r < BoardSize; r++ {
			c := Coordinate{f, r}
			if got := g.CoordinateOf(g.PositionOf(c)); got != c {
				t.Errorf("CoordinateOf(PositionOf(%s)) = %s", c, got)
			}
		}
	}
}

func TestParseCoordinate(t *testing.T) {
	tests := []struct {
		in   string
		want Coordinate
		ok   bool
	}{
		{"a1", Coordinate{0, 0}, true},
		{"H8", Coordinate{7, 7}, true},
		{" e2 ", Coordinate{4, 1}, true},
		{"i1", Coordinate{}, false},
		{"a9", Coordinate{}, false},
		{"", Coordinate{}, false},
	}
	for _, tt := range tests {
		got, err := ParseCoordinate(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("ParseCoordinate(%q) err = %v", tt.in, err)
			continue
		}
		if tt.ok && got != tt.want {
			t.Errorf("ParseCoordinate(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if tt.ok && got.String() != strings.ToLower(strings.TrimSpace(tt.in)) {
			t.Errorf("String() = %q, want %q", got.String(), tt.in)
		}
	}
	if s := (Coordinate{-1, 3}).String(); s != "(-1,3)" {
		t.Errorf("off-board String() = %q", s)
	}
}
