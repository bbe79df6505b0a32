package gui

import (
	"fmt"
	"log"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/qnkhuat/pawnrace/pkg/game"
)

const pageFinished = "finished"

// Handler receives what the player does on the board.
type Handler interface {
	Click(c game.Coordinate)
	Restart()
	Quit()
}

// GUI is the terminal board. It renders a game.BoardState and reports cell
// selections to its Handler. All methods must run on the tview event loop
// once Run has been called.
type GUI struct {
	App    *tview.Application
	Board  *tview.Table
	Status *tview.TextView
	Pages  *tview.Pages
	Layout *tview.Grid
	Winner *tview.Modal

	handler    Handler
	theme      Theme
	flipped    bool
	state      game.BoardState
	highlights map[game.Coordinate]bool
}

func New(theme Theme, handler Handler) *GUI {
	app := tview.NewApplication()
	board := tview.NewTable()
	status := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetTextColor(theme.Status)

	layout := tview.NewGrid().
		SetRows(-1, numrows+1, 1, -1).
		SetColumns(-1, 3*(numcols+1), -1).
		AddItem(tview.NewBox(), 0, 0, 1, 3, 0, 0, false).
		AddItem(board, 1, 1, 1, 1, 0, 0, true).
		AddItem(status, 2, 0, 1, 3, 0, 0, false).
		AddItem(tview.NewBox(), 3, 0, 1, 3, 0, 0, false)

	g := &GUI{
		App:        app,
		Board:      board,
		Status:     status,
		Layout:     layout,
		handler:    handler,
		theme:      theme,
		highlights: make(map[game.Coordinate]bool),
	}

	g.Winner = tview.NewModal().
		AddButtons([]string{"Restart", "Quit"}).
		SetDoneFunc(func(_ int, label string) {
			switch label {
			case "Restart":
				g.handler.Restart()
			case "Quit":
				g.handler.Quit()
			}
		})

	g.Pages = tview.NewPages().
		AddPage("board", layout, true, true).
		AddPage(pageFinished, g.Winner, false, false)

	g.initTable()
	return g
}

func (g *GUI) initTable() {
	g.render()
	g.Board.SetSelectable(true, true)
	g.Board.Select(0, 1).SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEscape {
			g.handler.Quit()
		}
	}).SetSelectedFunc(g.onSelected)
}

func (g *GUI) onSelected(row, col int) {
	if col == 0 || row >= numrows {
		return
	}
	sq := posToSquare(row, col, g.flipped)
	log.Printf("Clicked %s", sq)
	g.handler.Click(sq)
}

// SetFlipped puts the Second team's home rank at the bottom.
func (g *GUI) SetFlipped(flipped bool) {
	g.flipped = flipped
	g.render()
}

// Update replaces the rendered state.
func (g *GUI) Update(state game.BoardState) {
	g.state = state
	if state.Selected == nil {
		g.highlights = make(map[game.Coordinate]bool)
	}
	g.render()
}

// SetHighlights marks the destinations of the selected piece.
func (g *GUI) SetHighlights(squares []game.Highlight) {
	g.highlights = make(map[game.Coordinate]bool, len(squares))
	for _, h := range squares {
		g.highlights[h.Square] = h.Free
	}
	g.render()
}

func (g *GUI) Highlights() map[game.Coordinate]bool {
	return g.highlights
}

// ShowWinner brings up the winner panel with its Restart and Quit buttons.
func (g *GUI) ShowWinner(winner string) {
	g.Winner.SetText(fmt.Sprintf("%s wins!", winner))
	g.Pages.ShowPage(pageFinished)
	g.App.SetFocus(g.Winner)
}

// HideWinner returns to the board.
func (g *GUI) HideWinner() {
	g.Pages.HidePage(pageFinished)
	g.App.SetFocus(g.Board)
}

func (g *GUI) WinnerShown() bool {
	name, _ := g.Pages.GetFrontPage()
	return name == pageFinished
}

func (g *GUI) render() {
	RenderTable(g.Board, g.state, g.highlights, g.flipped, g.theme)
	g.Status.SetText(statusText(g.state))
}

func (g *GUI) Run() error {
	return g.App.SetRoot(g.Pages, true).EnableMouse(true).Run()
}

func (g *GUI) Stop() {
	g.App.Stop()
}
