package game

// Highlight is one destination of the selected piece. Free is false when an
// opposing piece stands on the square.
type Highlight struct {
	Square   Coordinate `json:"square"`
	Position Vec2       `json:"position"`
	Free     bool       `json:"free"`
}

// Presenter receives everything the engine reports toward rendering.
type Presenter interface {
	ShowSelection(squares []Highlight)
	ClearSelection()
	LiftPiece(p *Piece)
	DropPiece(p *Piece)
	MovePiece(p *Piece, to Coordinate)
	GameStarted()
	GameFinished(winner Team)
}

// NopPresenter ignores all output.
type NopPresenter struct{}

func (NopPresenter) ShowSelection([]Highlight) {}
func (NopPresenter) ClearSelection() {}
func (NopPresenter) LiftPiece(*Piece) {}
func (NopPresenter) DropPiece(*Piece) {}
func (NopPresenter) MovePiece(*Piece, Coordinate) {}
func (NopPresenter) GameStarted() {}
func (NopPresenter) GameFinished(Team) {}
