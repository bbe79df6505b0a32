package gui

import (
	"log"

	"github.com/qnkhuat/pawnrace/pkg/game"
)

// Local plays a session on this terminal. It is both the session's presenter
// and the GUI's handler, so every click runs on the tview event loop.
type Local struct {
	GUI     *GUI
	session *game.Session
}

func NewLocal(session *game.Session, theme Theme) *Local {
	l := &Local{session: session}
	l.GUI = New(theme, l)
	session.SetPresenter(l)
	l.GUI.Update(session.Snapshot())
	return l
}

func (l *Local) Run() error {
	return l.GUI.Run()
}

func (l *Local) Click(c game.Coordinate) {
	outcome := l.session.Click(c)
	if outcome == game.Ignored {
		return
	}
	l.GUI.Update(l.session.Snapshot())
}

func (l *Local) Restart() {
	if err := l.session.Restart(); err != nil {
		log.Printf("Restart failed: %v", err)
		l.GUI.Stop()
		return
	}
	l.GUI.Update(l.session.Snapshot())
}

func (l *Local) Quit() {
	l.GUI.Stop()
}

func (l *Local) ShowSelection(squares []game.Highlight) { l.GUI.SetHighlights(squares) }
func (l *Local) ClearSelection() { l.GUI.SetHighlights(nil) }
func (l *Local) LiftPiece(p *game.Piece) { log.Printf("Lifted %s", p) }
func (l *Local) DropPiece(p *game.Piece) { log.Printf("Dropped %s", p) }
func (l *Local) MovePiece(*game.Piece, game.Coordinate) {}
func (l *Local) GameStarted() { l.GUI.HideWinner() }
func (l *Local) GameFinished(winner game.Team) { l.GUI.ShowWinner(winner.String()) }
