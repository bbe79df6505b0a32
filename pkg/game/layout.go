package game

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Placement is one entry of a starting layout.
type Placement struct {
	Square Coordinate
	Team   Team
	Kind   string
}

type Layout []Placement

// DefaultLayout is a row of pawns for each team on its second rank.
func DefaultLayout() Layout {
	layout := make(Layout, 0, 2*BoardSize)
	for f := 0; f < BoardSize; f++ {
		layout = append(layout, Placement{Square: Coordinate{File: f, Rank: 1}, Team: First, Kind: Pawn.String()})
	}
	for f := 0; f < BoardSize; f++ {
		layout = append(layout, Placement{Square: Coordinate{File: f, Rank: BoardSize - 2}, Team: Second, Kind: Pawn.String()})
	}
	return layout
}

type placementJSON struct {
	Square string `json:"square"`
	Team   string `json:"team"`
	Kind   string `json:"kind"`
}

// LoadLayout reads a JSON array of {"square":"a2","team":"white","kind":"Pawn"}.
func LoadLayout(r io.Reader) (Layout, error) {
	var raw []placementJSON
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode layout: %w", err)
	}
	layout := make(Layout, 0, len(raw))
	for i, entry := range raw {
		sq, err := ParseCoordinate(entry.Square)
		if err != nil {
			return nil, fmt.Errorf("layout entry %d: %w", i, err)
		}
		team, err := ParseTeam(entry.Team)
		if err != nil {
			return nil, fmt.Errorf("layout entry %d: %w", i, err)
		}
		if _, err := ParseKind(entry.Kind); err != nil {
			return nil, fmt.Errorf("layout entry %d: %w", i, err)
		}
		layout = append(layout, Placement{Square: sq, Team: team, Kind: entry.Kind})
	}
	return layout, nil
}

func LoadLayoutFile(path string) (Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open layout: %w", err)
	}
	defer f.Close()
	return LoadLayout(f)
}

// Validate checks every placement before anything is put on a board.
func (l Layout) Validate() error {
	seen := make(map[Coordinate]int, len(l))
	for i, pl := range l {
		if !pl.Square.IsOnBoard() {
			return fmt.Errorf("layout entry %d: %s: %w", i, pl.Square, ErrInvalidCoordinate)
		}
		if pl.Team != First && pl.Team != Second {
			return fmt.Errorf("layout entry %d: %d: %w", i, pl.Team, ErrInvalidTeam)
		}
		if _, err := ParseKind(pl.Kind); err != nil {
			return fmt.Errorf("layout entry %d: %w", i, err)
		}
		if j, ok := seen[pl.Square]; ok {
			return fmt.Errorf("layout entries %d and %d share %s: %w", j, i, pl.Square, ErrInvalidLayout)
		}
		seen[pl.Square] = i
	}
	return nil
}
