package pkg

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/qnkhuat/pawnrace/pkg/game"
	"github.com/qnkhuat/pawnrace/pkg/store"
)

const (
	MessageQueueSize = 20
	// RecordTimeout bounds how long a result write may hold up the match loop.
	RecordTimeout = 2 * time.Second
)

// ResultRecorder persists finished games. *store.Store implements it.
type ResultRecorder interface {
	RecordResult(ctx context.Context, r store.Result) error
}

type nopRecorder struct{}

func (nopRecorder) RecordResult(context.Context, store.Result) error { return nil }

// Match hosts one game session for remote players. Every message is handled on
// the goroutine running Run, so the session sees one input at a time.
type Match struct {
	Id      string
	Players []*Player
	In      chan MessageTransport

	session *game.Session
	results ResultRecorder
	join    chan *Player
	leave   chan *Player
	done    chan struct{}
	nextId  int
	clicker *Player

	mu         sync.Mutex
	lastActive time.Time
	numPlayers int
}

func NewMatch(id string, layout game.Layout, results ResultRecorder) (*Match, error) {
	if results == nil {
		results = nopRecorder{}
	}
	m := &Match{
		Id:         id,
		In:         make(chan MessageTransport, MessageQueueSize),
		results:    results,
		join:       make(chan *Player),
		leave:      make(chan *Player),
		done:       make(chan struct{}),
		lastActive: time.Now(),
	}
	session, err := game.NewSession(layout, game.WithPresenter(matchPresenter{m}))
	if err != nil {
		return nil, err
	}
	m.session = session
	return m, nil
}

// Join hands a connected player to the match loop.
func (m *Match) Join(p *Player) bool {
	select {
	case m.join <- p:
		return true
	case <-m.done:
		return false
	}
}

func (m *Match) Run(ctx context.Context) {
	defer close(m.done)
	for {
		select {
		case <-ctx.Done():
			for _, p := range m.Players {
				m.drop(p)
			}
			m.Players = nil
			return
		case p := <-m.join:
			m.addPlayer(p)
		case p := <-m.leave:
			m.removePlayer(p)
		case msg := <-m.In:
			m.touch()
			m.handle(msg)
		}
	}
}

func (m *Match) addPlayer(p *Player) {
	m.nextId++
	p.Id = m.nextId
	p.Team = m.freeSeat()
	m.Players = append(m.Players, p)
	m.touch()

	go p.HandleWrite()
	go func() {
		p.HandleRead(m.In)
		select {
		case m.leave <- p:
		case <-m.done:
		}
	}()

	p.Send(MessageConnect{Team: p.Team, MatchId: m.Id, Name: p.Name, State: m.session.Snapshot()})
	log.Printf("Match %s: %s joined as %s", m.Id, p.Name, p.Team)
	m.broadcastState()
}

func (m *Match) freeSeat() PlayerTeam {
	taken := map[PlayerTeam]bool{}
	for _, p := range m.Players {
		taken[p.Team] = true
	}
	for _, seat := range []PlayerTeam{White, Black} {
		if !taken[seat] {
			return seat
		}
	}
	return Viewer
}

func (m *Match) removePlayer(p *Player) {
	for i, other := range m.Players {
		if other == p {
			m.Players = append(m.Players[:i], m.Players[i+1:]...)
			m.drop(p)
			m.touch()
			log.Printf("Match %s: %s left", m.Id, p.Name)
			return
		}
	}
}

func (m *Match) drop(p *Player) {
	if m.clicker == p {
		m.clicker = nil
	}
	p.Disconnect()
	close(p.Out)
}

func (m *Match) player(id int) *Player {
	for _, p := range m.Players {
		if p.Id == id {
			return p
		}
	}
	return nil
}

func (m *Match) handle(msg MessageTransport) {
	p := m.player(msg.PlayerId)
	if p == nil {
		return
	}
	switch msg.MsgType {
	case TypeMessageClick:
		var click MessageClick
		if err := Decode(msg.Data, &click); err != nil {
			log.Printf("Match %s: bad click from %s: %v", m.Id, p.Name, err)
			return
		}
		team, ok := p.Team.GameTeam()
		if !ok || !m.session.Controller().IsTeamTurnActive(team) {
			return
		}
		m.clicker = p
		if outcome := m.session.Click(game.Coordinate{File: click.File, Rank: click.Rank}); outcome != game.Ignored {
			m.broadcastState()
		}
		m.clicker = nil

	case TypeMessageCommand:
		var cmd MessageCommand
		if err := Decode(msg.Data, &cmd); err != nil {
			log.Printf("Match %s: bad command from %s: %v", m.Id, p.Name, err)
			return
		}
		switch cmd.Action {
		case ActionRestart:
			if _, ok := p.Team.GameTeam(); !ok {
				return
			}
			if err := m.session.Restart(); err != nil {
				log.Printf("Match %s: restart failed: %v", m.Id, err)
				return
			}
			m.broadcastState()
		case ActionQuit:
			m.removePlayer(p)
		}

	default:
		log.Printf("Match %s: received unknown message %s", m.Id, msg.MsgType)
	}
}

func (m *Match) broadcast(msg MessageInterface) {
	for _, p := range m.Players {
		p.Send(msg)
	}
}

func (m *Match) broadcastState() {
	m.broadcast(MessageState{State: m.session.Snapshot()})
}

func (m *Match) touch() {
	m.mu.Lock()
	m.lastActive = time.Now()
	m.numPlayers = len(m.Players)
	m.mu.Unlock()
}

// Idle reports whether the match has had no players and no traffic for d.
func (m *Match) Idle(d time.Duration) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.numPlayers == 0 && time.Since(m.lastActive) > d
}

// matchPresenter routes engine output to the players.
type matchPresenter struct {
	m *Match
}

func (mp matchPresenter) ShowSelection(squares []game.Highlight) {
	if mp.m.clicker != nil {
		mp.m.clicker.Send(MessageHighlight{Squares: squares})
	}
}

func (mp matchPresenter) ClearSelection() {
	if mp.m.clicker != nil {
		mp.m.clicker.Send(MessageHighlight{})
	}
}

func (mp matchPresenter) LiftPiece(*game.Piece) {}
func (mp matchPresenter) DropPiece(*game.Piece) {}
func (mp matchPresenter) MovePiece(*game.Piece, game.Coordinate) {}
func (mp matchPresenter) GameStarted() {}

func (mp matchPresenter) GameFinished(winner game.Team) {
	m := mp.m
	m.broadcast(MessageFinished{Winner: winner.String()})
	ctx, cancel := context.WithTimeout(context.Background(), RecordTimeout)
	defer cancel()
	err := m.results.RecordResult(ctx, store.Result{
		MatchID:    m.Id,
		Winner:     winner.String(),
		Plies:      m.session.Controller().Plies(),
		FinishedAt: time.Now(),
	})
	if err != nil {
		log.Printf("Match %s: failed to record result: %v", m.Id, err)
	}
}
