package game

import "fmt"

// Session owns one game: the grid, both rosters through the controller, and the
// selection state. It is not safe for concurrent use.
type Session struct {
	grid       *Grid
	controller *Controller
	selector   *Selector
	geometry   Geometry
}

type Option func(*Session)

func WithPresenter(p Presenter) Option {
	return func(s *Session) {
		s.controller.setPresenter(p)
	}
}

func WithGeometry(g Geometry) Option {
	return func(s *Session) {
		s.geometry = g
	}
}

// NewSession builds the board from layout and enters Play.
func NewSession(layout Layout, opts ...Option) (*Session, error) {
	grid := NewGrid()
	s := &Session{
		grid:       grid,
		controller: NewController(grid, layout, nil),
		geometry:   DefaultGeometry,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.selector = NewSelector(s.controller, s.geometry)
	if err := s.controller.Start(); err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}
	return s, nil
}

// SetPresenter swaps the presentation sink, for front ends built after the session.
func (s *Session) SetPresenter(p Presenter) {
	s.controller.setPresenter(p)
}

func (s *Session) Click(c Coordinate) Outcome {
	return s.selector.OnSquareSelected(c)
}

// ClickAt resolves a board-local position to a square first.
func (s *Session) ClickAt(local Vec2) Outcome {
	return s.Click(s.geometry.CoordinateOf(local))
}

func (s *Session) Restart() error {
	s.selector.Reset()
	return s.controller.Restart()
}

func (s *Session) Grid() *Grid { return s.grid }
func (s *Session) Controller() *Controller { return s.controller }
func (s *Session) Selector() *Selector { return s.selector }
func (s *Session) Geometry() Geometry { return s.geometry }
func (s *Session) State() State { return s.controller.State() }
func (s *Session) ActiveTeam() Team { return s.controller.ActiveTeam() }
func (s *Session) Winner() (Team, bool) { return s.controller.Winner() }
func (s *Session) Player(t Team) *Roster { return s.controller.Player(t) }

// PieceState is the serializable form of a piece.
type PieceState struct {
	ID       int          `json:"id"`
	Team     Team         `json:"team"`
	TeamName string       `json:"teamName"`
	Kind     string       `json:"kind"`
	Square   Coordinate   `json:"square"`
	HasMoved bool         `json:"hasMoved"`
	Moves    []Coordinate `json:"moves,omitempty"`
}

// BoardState is the serializable form of a session.
type BoardState struct {
	Pieces     []PieceState `json:"pieces"`
	State      string       `json:"state"`
	Active     Team         `json:"active"`
	ActiveName string       `json:"activeName"`
	Plies      int          `json:"plies"`
	Selected   *Coordinate  `json:"selected,omitempty"`
	HasWinner  bool         `json:"hasWinner"`
	Winner     Team         `json:"winner"`
	WinnerName string       `json:"winnerName,omitempty"`
}

func (s *Session) Snapshot() BoardState {
	bs := BoardState{
		State:      s.controller.State().String(),
		Active:     s.controller.ActiveTeam(),
		ActiveName: s.controller.ActiveTeam().String(),
		Plies:      s.controller.Plies(),
	}
	for _, p := range s.grid.Pieces() {
		bs.Pieces = append(bs.Pieces, PieceState{
			ID:       p.ID,
			Team:     p.Team,
			TeamName: p.Team.String(),
			Kind:     p.Kind.String(),
			Square:   p.Square(),
			HasMoved: p.HasMoved(),
			Moves:    p.AvailableMoves(),
		})
	}
	if sel := s.selector.Selected(); sel != nil {
		sq := sel.Square()
		bs.Selected = &sq
	}
	if w, ok := s.controller.Winner(); ok {
		bs.HasWinner = true
		bs.Winner = w
		bs.WinnerName = w.String()
	}
	return bs
}
