package pkg

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/qnkhuat/pawnrace/pkg/game"
)

var (
	whiteStyle = color.New(color.FgHiWhite, color.Bold)
	blackStyle = color.New(color.FgHiBlue, color.Bold)
	freeStyle  = color.New(color.FgGreen)
	enemyStyle = color.New(color.FgRed)
	labelStyle = color.New(color.FgHiBlack)
)

// RenderText draws the board with rank 8 on top. Highlighted squares show a
// dot when free and a bracketed piece when occupied.
func RenderText(w io.Writer, g *game.Grid, highlights []game.Highlight) {
	marks := make(map[game.Coordinate]bool, len(highlights))
	for _, h := range highlights {
		marks[h.Square] = h.Free
	}
	var b strings.Builder
	for r := game.BoardSize - 1; r >= 0; r-- {
		b.WriteString(labelStyle.Sprintf("%d ", r+1))
		for f := 0; f < game.BoardSize; f++ {
			c := game.Coordinate{File: f, Rank: r}
			p := g.PieceAt(c)
			free, marked := marks[c]
			switch {
			case marked && free:
				b.WriteString(freeStyle.Sprint(" * "))
			case marked && p != nil:
				b.WriteString(enemyStyle.Sprintf("[%s]", p.Glyph()))
			case p == nil:
				b.WriteString(" . ")
			case p.Team == game.First:
				b.WriteString(whiteStyle.Sprintf(" %s ", p.Glyph()))
			default:
				b.WriteString(blackStyle.Sprintf(" %s ", p.Glyph()))
			}
		}
		b.WriteString("\n")
	}
	b.WriteString(labelStyle.Sprint("   a  b  c  d  e  f  g  h\n"))
	io.WriteString(w, b.String())
}

// Console plays a session over line based input: a square name clicks it,
// "restart" and "quit" are commands.
type Console struct {
	session    *game.Session
	out        io.Writer
	highlights []game.Highlight
}

func NewConsole(session *game.Session, out io.Writer) *Console {
	c := &Console{session: session, out: out}
	session.SetPresenter(c)
	return c
}

func (c *Console) Run(in io.Reader) error {
	c.prompt()
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch action, _ := ParseAction(line); action {
		case ActionQuit:
			return nil
		case ActionRestart:
			if err := c.session.Restart(); err != nil {
				return err
			}
		default:
			sq, err := game.ParseCoordinate(line)
			if err != nil {
				fmt.Fprintf(c.out, "%v\n", err)
				break
			}
			if outcome := c.session.Click(sq); outcome == game.Ignored {
				fmt.Fprintf(c.out, "%s ignored\n", sq)
			}
		}
		c.prompt()
	}
	return scanner.Err()
}

func (c *Console) prompt() {
	RenderText(c.out, c.session.Grid(), c.highlights)
	if winner, ok := c.session.Winner(); ok {
		fmt.Fprintf(c.out, "%s wins! restart or quit\n", winner)
		return
	}
	fmt.Fprintf(c.out, "%s to move> ", c.session.ActiveTeam())
}

func (c *Console) ShowSelection(squares []game.Highlight) { c.highlights = squares }
func (c *Console) ClearSelection() { c.highlights = nil }
func (c *Console) LiftPiece(*game.Piece) {}
func (c *Console) DropPiece(*game.Piece) {}

func (c *Console) MovePiece(p *game.Piece, to game.Coordinate) {
	fmt.Fprintf(c.out, "%s -> %s\n", p.Kind, to)
}

func (c *Console) GameStarted() { c.highlights = nil }

func (c *Console) GameFinished(winner game.Team) {
	fmt.Fprintf(c.out, "Game is over, %s wins\n", winner)
}
