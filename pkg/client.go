package pkg

import (
	"bufio"
	"fmt"
	"log"
	"net"
	"sync"

	"github.com/qnkhuat/pawnrace/pkg/game"
	"github.com/qnkhuat/pawnrace/pkg/gui"
)

// Client plays a match hosted by a Server. It is the GUI's handler and turns
// server messages into GUI updates.
type Client struct {
	GUI     *gui.GUI
	Conn    net.Conn
	Out     chan MessageInterface
	Team    PlayerTeam
	MatchId string
	Name    string

	once sync.Once
}

func NewClient(theme gui.Theme) *Client {
	cl := &Client{
		Out: make(chan MessageInterface, ConnQueueSize),
	}
	cl.GUI = gui.New(theme, cl)
	return cl
}

// Connect dials the server and asks to join matchId. An empty id asks the
// server for a new match.
func (cl *Client) Connect(addr, matchId, name string) error {
	log.Printf("Connecting to %s", addr)
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("connect %s: %w", addr, err)
	}
	cl.Conn = conn
	if _, err := conn.Write(Frame(MessageJoin{MatchId: matchId, Name: name}, 0)); err != nil {
		conn.Close()
		return fmt.Errorf("join %s: %w", addr, err)
	}
	return nil
}

func (cl *Client) HandleWrite() {
	for m := range cl.Out {
		if _, err := cl.Conn.Write(Frame(m, 0)); err != nil {
			log.Printf("Failed to send %s: %v", m.Type(), err)
			cl.Disconnect()
			return
		}
		log.Printf("Sent a msg type: %s", m.Type())
	}
}

// HandleRead applies server messages on the GUI event loop until the
// connection closes, then stops the GUI.
func (cl *Client) HandleRead() {
	scanner := bufio.NewScanner(cl.Conn)
	for scanner.Scan() {
		var mt MessageTransport
		if err := Decode(scanner.Bytes(), &mt); err != nil {
			log.Printf("Failed to decode message: %v", err)
			continue
		}
		cl.GUI.App.QueueUpdateDraw(func() { cl.Apply(mt) })
	}
	log.Printf("Connection closed")
	cl.GUI.Stop()
}

// Apply updates the GUI with one server message.
func (cl *Client) Apply(mt MessageTransport) {
	switch mt.MsgType {
	case TypeMessageConnect:
		var m MessageConnect
		if err := Decode(mt.Data, &m); err != nil {
			log.Printf("Bad connect: %v", err)
			return
		}
		cl.Team = m.Team
		cl.MatchId = m.MatchId
		cl.Name = m.Name
		cl.GUI.SetFlipped(m.Team == Black)
		cl.applyState(m.State)

	case TypeMessageState:
		var m MessageState
		if err := Decode(mt.Data, &m); err != nil {
			log.Printf("Bad state: %v", err)
			return
		}
		cl.applyState(m.State)

	case TypeMessageHighlight:
		var m MessageHighlight
		if err := Decode(mt.Data, &m); err != nil {
			log.Printf("Bad highlight: %v", err)
			return
		}
		cl.GUI.SetHighlights(m.Squares)

	case TypeMessageFinished:
		var m MessageFinished
		if err := Decode(mt.Data, &m); err != nil {
			log.Printf("Bad finished: %v", err)
			return
		}
		cl.GUI.ShowWinner(m.Winner)

	default:
		log.Printf("Received unknown message %s", mt.MsgType)
	}
}

func (cl *Client) applyState(state game.BoardState) {
	cl.GUI.Update(state)
	if state.HasWinner {
		cl.GUI.ShowWinner(state.WinnerName)
	} else if cl.GUI.WinnerShown() {
		cl.GUI.HideWinner()
	}
}

func (cl *Client) send(m MessageInterface) {
	select {
	case cl.Out <- m:
	default:
		log.Printf("Dropped %s: send queue full", m.Type())
	}
}

func (cl *Client) Click(c game.Coordinate) {
	if _, ok := cl.Team.GameTeam(); !ok {
		return
	}
	cl.send(MessageClick{File: c.File, Rank: c.Rank})
}

func (cl *Client) Restart() {
	cl.send(MessageCommand{Action: ActionRestart})
}

func (cl *Client) Quit() {
	cl.send(MessageCommand{Action: ActionQuit})
	cl.GUI.Stop()
}

func (cl *Client) Disconnect() {
	cl.once.Do(func() {
		if cl.Conn != nil {
			cl.Conn.Close()
		}
	})
}
