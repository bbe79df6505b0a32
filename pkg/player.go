package pkg

import (
	"bufio"
	"log"
	"net"
	"sync"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/qnkhuat/pawnrace/pkg/game"
)

const ConnQueueSize = 10

type PlayerTeam int

const (
	White PlayerTeam = iota
	Black
	Viewer
)

func (pt PlayerTeam) String() string {
	switch pt {
	case White:
		return "White"
	case Black:
		return "Black"
	case Viewer:
		return "Viewer"
	default:
		return "Unknown"
	}
}

// GameTeam maps a seat to the engine team; viewers have none.
func (pt PlayerTeam) GameTeam() (game.Team, bool) {
	switch pt {
	case White:
		return game.First, true
	case Black:
		return game.Second, true
	}
	return 0, false
}

type Player struct {
	Conn   net.Conn
	Team   PlayerTeam
	Out    chan MessageInterface
	Id     int
	Name   string
	reader *bufio.Reader
	once   sync.Once
}

func NewPlayer(conn net.Conn) *Player {
	p := &Player{
		Conn:   conn,
		Out:    make(chan MessageInterface, ConnQueueSize),
		Name:   petname.Generate(2, "-"),
		reader: bufio.NewReader(conn),
	}
	return p
}

// ReadTransport reads one envelope, used for the join handshake.
func (p *Player) ReadTransport() (MessageTransport, error) {
	var mt MessageTransport
	line, err := p.reader.ReadBytes('\n')
	if err != nil {
		return mt, err
	}
	err = Decode(line, &mt)
	return mt, err
}

// HandleRead stamps every incoming message with the player id and forwards it
// until the connection closes.
func (p *Player) HandleRead(in chan<- MessageTransport) {
	scanner := bufio.NewScanner(p.reader)
	for scanner.Scan() {
		var mt MessageTransport
		if err := Decode(scanner.Bytes(), &mt); err != nil {
			log.Printf("Player %s sent a malformed message: %v", p.Name, err)
			continue
		}
		mt.PlayerId = p.Id
		in <- mt
	}
}

func (p *Player) HandleWrite() {
	for message := range p.Out {
		if _, err := p.Conn.Write(Frame(message, p.Id)); err != nil {
			log.Printf("Failed to write: %s to %s Error: %v", message.Type(), p.Name, err)
			p.Disconnect()
		}
	}
}

// Send queues a message without blocking; a player that cannot keep up is dropped.
func (p *Player) Send(m MessageInterface) bool {
	select {
	case p.Out <- m:
		return true
	default:
		log.Printf("Player %s queue full, dropping", p.Name)
		p.Disconnect()
		return false
	}
}

func (p *Player) Disconnect() {
	p.once.Do(func() {
		p.Conn.Close()
	})
}
