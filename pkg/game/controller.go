package game

import (
	"fmt"
	"log"
)

type State int

const (
	Init State = iota
	Play
	Finished
)

func (s State) String() string {
	switch s {
	case Init:
		return "Init"
	case Play:
		return "Play"
	case Finished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// Controller runs the turn-based game-state machine over one grid and two rosters.
type Controller struct {
	grid      *Grid
	players   [2]*Roster
	active    Team
	state     State
	layout    Layout
	presenter Presenter
	plies     int
	nextID    int
}

func NewController(grid *Grid, layout Layout, presenter Presenter) *Controller {
	if presenter == nil {
		presenter = NopPresenter{}
	}
	return &Controller{
		grid:      grid,
		players:   [2]*Roster{NewRoster(First, grid), NewRoster(Second, grid)},
		layout:    layout,
		presenter: presenter,
	}
}

// Start populates the board from the layout and enters Play. A layout error
// leaves the controller in Init with an empty board.
func (gc *Controller) Start() error {
	gc.presenter.GameStarted()
	gc.state = Init
	if err := gc.layout.Validate(); err != nil {
		return fmt.Errorf("start game: %w", err)
	}
	for _, pl := range gc.layout {
		if err := gc.createPiece(pl); err != nil {
			gc.clear()
			return fmt.Errorf("start game: %w", err)
		}
	}
	gc.active = First
	gc.plies = 0
	gc.Player(First).RegenerateMoves()
	gc.Player(Second).RegenerateMoves()
	gc.state = Play
	return nil
}

func (gc *Controller) createPiece(pl Placement) error {
	kind, err := ParseKind(pl.Kind)
	if err != nil {
		return err
	}
	gc.nextID++
	p := &Piece{ID: gc.nextID, Team: pl.Team, Kind: kind}
	gc.grid.Place(pl.Square, p)
	gc.Player(pl.Team).AddPiece(p)
	return nil
}

// EndTurn is called once per ply after the move has been applied.
func (gc *Controller) EndTurn() {
	if gc.state != Play {
		return
	}
	gc.plies++
	gc.Player(gc.active).RegenerateMoves()
	gc.Player(gc.active.Opponent()).RegenerateMoves()
	if gc.isFinished() {
		gc.endGame()
		return
	}
	gc.active = gc.active.Opponent()
}

func (gc *Controller) isFinished() bool {
	for _, team := range [...]Team{First, Second} {
		rank := team.Opponent().HomeRank()
		for f := 0; f < BoardSize; f++ {
			p := gc.grid.PieceAt(Coordinate{File: f, Rank: rank})
			if p != nil && p.Team == team {
				return true
			}
		}
	}
	return false
}

func (gc *Controller) endGame() {
	gc.state = Finished
	log.Printf("Game is over, %s wins after %d plies", gc.active, gc.plies)
	gc.presenter.GameFinished(gc.active)
}

// Restart discards every piece and starts again from the layout.
func (gc *Controller) Restart() error {
	gc.clear()
	return gc.Start()
}

func (gc *Controller) clear() {
	gc.Player(First).Clear()
	gc.Player(Second).Clear()
	gc.grid.Reset()
	gc.nextID = 0
	gc.state = Init
}

// OnPieceRemoved drops a captured piece from its owner's roster.
func (gc *Controller) OnPieceRemoved(p *Piece) {
	gc.Player(p.Team).RemovePiece(p)
}

func (gc *Controller) Player(t Team) *Roster {
	if t == Second {
		return gc.players[1]
	}
	return gc.players[0]
}

func (gc *Controller) State() State { return gc.state }
func (gc *Controller) IsGameInProgress() bool { return gc.state == Play }
func (gc *Controller) ActiveTeam() Team { return gc.active }
func (gc *Controller) Plies() int { return gc.plies }
func (gc *Controller) Grid() *Grid { return gc.grid }
func (gc *Controller) IsTeamTurnActive(t Team) bool { return gc.active == t }

// Winner is the team that made the finishing ply.
func (gc *Controller) Winner() (Team, bool) {
	if gc.state != Finished {
		return 0, false
	}
	return gc.active, true
}

func (gc *Controller) setPresenter(p Presenter) {
	if p == nil {
		p = NopPresenter{}
	}
	gc.presenter = p
}
