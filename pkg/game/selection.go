package game

import "log"

// Outcome reports what a click did.
type Outcome int

const (
	Ignored Outcome = iota
	Selected
	Deselected
	Moved
	Captured
)

func (o Outcome) String() string {
	switch o {
	case Selected:
		return "Selected"
	case Deselected:
		return "Deselected"
	case Moved:
		return "Moved"
	case Captured:
		return "Captured"
	default:
		return "Ignored"
	}
}

// Selector mediates select, reselect, deselect and move-or-capture clicks on
// the controller's board.
type Selector struct {
	gc       *Controller
	geometry Geometry
	selected *Piece
}

func NewSelector(gc *Controller, geometry Geometry) *Selector {
	return &Selector{gc: gc, geometry: geometry}
}

func (s *Selector) Selected() *Piece {
	return s.selected
}

// OnSquareSelected handles one resolved board click.
func (s *Selector) OnSquareSelected(c Coordinate) Outcome {
	if !s.gc.IsGameInProgress() {
		return Ignored
	}

	grid := s.gc.Grid()
	piece := grid.PieceAt(c)
	if s.selected == nil {
		if piece != nil && s.gc.IsTeamTurnActive(piece.Team) {
			s.selectPiece(piece)
			return Selected
		}
		return Ignored
	}

	switch {
	case piece != nil && piece == s.selected: // Deselect on double click
		s.gc.presenter.DropPiece(s.selected)
		s.deselect()
		return Deselected
	case piece != nil && s.gc.IsTeamTurnActive(piece.Team):
		s.gc.presenter.DropPiece(s.selected)
		s.selectPiece(piece)
		return Selected
	case s.selected.CanMoveTo(c):
		return s.moveSelected(c)
	}
	return Ignored
}

func (s *Selector) selectPiece(p *Piece) {
	s.selected = p
	s.gc.presenter.LiftPiece(p)
	p.generateMoves(s.gc.Grid())
	s.gc.presenter.ShowSelection(s.highlights(p))
}

func (s *Selector) highlights(p *Piece) []Highlight {
	grid := s.gc.Grid()
	out := make([]Highlight, 0, len(p.availableMoves))
	for _, sq := range p.availableMoves {
		out = append(out, Highlight{
			Square:   sq,
			Position: s.geometry.PositionOf(sq),
			Free:     grid.PieceAt(sq) == nil,
		})
	}
	return out
}

func (s *Selector) deselect() {
	s.selected = nil
	s.gc.presenter.ClearSelection()
}

// moveSelected applies capture, move and turn end as one step.
func (s *Selector) moveSelected(to Coordinate) Outcome {
	grid := s.gc.Grid()
	piece := s.selected
	from := piece.Square()
	outcome := Moved

	if target := grid.PieceAt(to); target != nil && !piece.IsFromSameTeam(target) {
		grid.Remove(target)
		s.gc.OnPieceRemoved(target)
		outcome = Captured
	}
	grid.Move(from, to)
	s.gc.presenter.MovePiece(piece, to)
	log.Printf("%s %s: %s -> %s", piece.Team, outcome, from, to)

	s.deselect()
	s.gc.EndTurn()
	return outcome
}

// Reset forgets the selection without notifying the presenter.
func (s *Selector) Reset() {
	s.selected = nil
}
