package gui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/notnil/chess"
	"github.com/rivo/tview"

	"github.com/qnkhuat/pawnrace/pkg/game"
)

const (
	numrows = game.BoardSize
	numcols = game.BoardSize
)

// posToSquare maps a table cell to the board. Column 0 holds the rank labels
// and row numrows the file labels.
func posToSquare(row, col int, flipped bool) game.Coordinate {
	rank := numrows - row - 1
	if flipped {
		rank = row
	}
	return game.Coordinate{File: col - 1, Rank: rank}
}

// squareToPos is the inverse of posToSquare.
func squareToPos(c game.Coordinate, flipped bool) (row, col int) {
	row = numrows - c.Rank - 1
	if flipped {
		row = c.Rank
	}
	return row, c.File + 1
}

// squareBg returns the theme colour of a square, highlights first.
func squareBg(c game.Coordinate, selected *game.Coordinate, highlights map[game.Coordinate]bool, t Theme) tcell.Color {
	if selected != nil && *selected == c {
		return t.SquareSelected
	}
	if free, ok := highlights[c]; ok {
		if free {
			return t.SquareFree
		}
		return t.SquareEnemy
	}
	if (c.File+c.Rank)%2 == 0 {
		return t.SquareDark
	}
	return t.SquareLight
}

func glyph(ps game.PieceState) string {
	kind, err := game.ParseKind(ps.Kind)
	if err != nil {
		return "?"
	}
	p := &game.Piece{Team: ps.Team, Kind: kind}
	return p.Glyph()
}

func pieceColor(team game.Team, t Theme) tcell.Color {
	if team == game.First {
		return t.White
	}
	return t.Black
}

// RenderTable draws state into table.
func RenderTable(table *tview.Table, state game.BoardState, highlights map[game.Coordinate]bool, flipped bool, t Theme) {
	pieces := make(map[game.Coordinate]game.PieceState, len(state.Pieces))
	for _, ps := range state.Pieces {
		pieces[ps.Square] = ps
	}

	for r := 0; r <= numrows; r++ {
		for f := 0; f <= numcols; f++ {
			if f == 0 && r != numrows { // rank label
				rank := chess.Rank(posToSquare(r, 1, flipped).Rank)
				cell := tview.NewTableCell(rank.String()).
					SetAlign(tview.AlignCenter).
					SetTextColor(t.Rank).
					SetSelectable(false)
				table.SetCell(r, f, cell)
				continue
			}
			if r == numrows && f > 0 { // file label
				file := chess.File(f - 1)
				cell := tview.NewTableCell(fmt.Sprintf(" %s", file.String())).
					SetAlign(tview.AlignCenter).
					SetTextColor(t.File).
					SetSelectable(false)
				table.SetCell(r, f, cell)
				continue
			}
			if r == numrows && f == 0 {
				table.SetCell(r, f, tview.NewTableCell("").SetSelectable(false))
				continue
			}

			sq := posToSquare(r, f, flipped)
			bg := squareBg(sq, state.Selected, highlights, t)
			text := "  "
			fg := tcell.ColorDefault
			if ps, ok := pieces[sq]; ok {
				text = " " + glyph(ps)
				fg = pieceColor(ps.Team, t)
			}
			cell := tview.NewTableCell(text).
				SetAlign(tview.AlignCenter).
				SetTextColor(fg).
				SetBackgroundColor(bg)
			table.SetCell(r, f, cell)
		}
	}
}

// statusText describes whose turn it is.
func statusText(state game.BoardState) string {
	if state.HasWinner {
		return fmt.Sprintf("%s wins after %d plies", state.WinnerName, state.Plies)
	}
	return fmt.Sprintf("%s to move (ply %d)", state.ActiveName, state.Plies+1)
}
