package pkg

import (
	"bufio"
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/qnkhuat/pawnrace/pkg/config"
	"github.com/qnkhuat/pawnrace/pkg/game"
	"github.com/qnkhuat/pawnrace/pkg/store"
)

type memRecorder struct {
	mu        sync.Mutex
	results   []store.Result
	deadlines []time.Duration
}

func (r *memRecorder) RecordResult(ctx context.Context, res store.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, res)
	var left time.Duration
	if deadline, ok := ctx.Deadline(); ok {
		left = time.Until(deadline)
	}
	r.deadlines = append(r.deadlines, left)
	return nil
}

func (r *memRecorder) all() []store.Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]store.Result(nil), r.results...)
}

type testClient struct {
	t      *testing.T
	conn   net.Conn
	reader *bufio.Reader
}

func dial(t *testing.T, s *Server, matchId, name string) *testClient {
	t.Helper()
	clientSide, serverSide := net.Pipe()
	go s.HandleConn(serverSide)
	c := &testClient{t: t, conn: clientSide, reader: bufio.NewReader(clientSide)}
	t.Cleanup(func() { clientSide.Close() })
	c.send(MessageJoin{MatchId: matchId, Name: name})
	return c
}

func (c *testClient) send(m MessageInterface) {
	c.t.Helper()
	c.conn.SetWriteDeadline(time.Now().Add(2 * time.Second))
	if _, err := c.conn.Write(Frame(m, 0)); err != nil {
		c.t.Fatalf("write %s: %v", m.Type(), err)
	}
}

// next reads envelopes until one of type want arrives.
func (c *testClient) next(want MessageType) MessageTransport {
	c.t.Helper()
	c.conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		line, err := c.reader.ReadBytes('\n')
		if err != nil {
			c.t.Fatalf("waiting for %s: %v", want, err)
		}
		var mt MessageTransport
		if err := Decode(line, &mt); err != nil {
			c.t.Fatalf("decode: %v", err)
		}
		if mt.MsgType == want {
			return mt
		}
	}
}

func (c *testClient) connect() MessageConnect {
	c.t.Helper()
	var mc MessageConnect
	if err := Decode(c.next(TypeMessageConnect).Data, &mc); err != nil {
		c.t.Fatal(err)
	}
	return mc
}

func (c *testClient) state() game.BoardState {
	c.t.Helper()
	var ms MessageState
	if err := Decode(c.next(TypeMessageState).Data, &ms); err != nil {
		c.t.Fatal(err)
	}
	return ms.State
}

func newTestServer(t *testing.T, layout game.Layout, rec ResultRecorder) *Server {
	t.Helper()
	cfg := config.Config{SSHAddr: "127.0.0.1:0", IdleTimeout: time.Minute}
	s, err := NewServer(cfg, layout, rec)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestMatchSeatsAndTurns(t *testing.T) {
	s := newTestServer(t, game.Layout{
		{Square: game.Coordinate{File: 4, Rank: 1}, Team: game.First, Kind: "Pawn"},
		{Square: game.Coordinate{File: 3, Rank: 6}, Team: game.Second, Kind: "Pawn"},
	}, nil)

	white := dial(t, s, "duel", "alice")
	wc := white.connect()
	if wc.Team != White || wc.MatchId != "duel" || wc.Name != "alice" {
		t.Fatalf("white connect = %+v", wc)
	}
	white.state()

	black := dial(t, s, "duel", "")
	bc := black.connect()
	if bc.Team != Black || bc.Name == "" {
		t.Fatalf("black connect = %+v", bc)
	}
	black.state()
	white.state()

	// Black may not move on White's turn, even White's own pieces.
	black.send(MessageClick{File: 4, Rank: 1})
	white.send(MessageClick{File: 4, Rank: 1})

	var hl MessageHighlight
	if err := Decode(white.next(TypeMessageHighlight).Data, &hl); err != nil {
		t.Fatal(err)
	}
	if len(hl.Squares) != 3 {
		t.Fatalf("highlights = %+v", hl.Squares)
	}
	if st := white.state(); st.Selected == nil || *st.Selected != (game.Coordinate{File: 4, Rank: 1}) {
		t.Fatalf("selection after white click = %+v", st.Selected)
	}
	black.state()

	white.send(MessageClick{File: 4, Rank: 2})
	st := white.state()
	if st.Active != game.Second || st.Plies != 1 {
		t.Fatalf("after move: active=%v plies=%d", st.Active, st.Plies)
	}
	if got := black.state(); got.Plies != 1 {
		t.Fatalf("black saw plies=%d", got.Plies)
	}
}

func TestMatchRecordsResult(t *testing.T) {
	rec := &memRecorder{}
	s := newTestServer(t, game.Layout{
		{Square: game.Coordinate{File: 0, Rank: 6}, Team: game.First, Kind: "Pawn"},
	}, rec)

	white := dial(t, s, "", "solo")
	mc := white.connect()
	if mc.MatchId == "" {
		t.Fatal("no generated match id")
	}
	white.send(MessageClick{File: 0, Rank: 6})
	white.send(MessageClick{File: 0, Rank: 7})

	var fin MessageFinished
	if err := Decode(white.next(TypeMessageFinished).Data, &fin); err != nil {
		t.Fatal(err)
	}
	if fin.Winner != "White" {
		t.Fatalf("winner = %q", fin.Winner)
	}
	st := white.state()
	if !st.HasWinner || st.State != "Finished" {
		t.Fatalf("final state = %+v", st)
	}

	results := rec.all()
	if len(results) != 1 || results[0].MatchID != mc.MatchId || results[0].Winner != "White" || results[0].Plies != 1 {
		t.Fatalf("results = %+v", results)
	}
	rec.mu.Lock()
	left := rec.deadlines[0]
	rec.mu.Unlock()
	if left <= 0 || left > RecordTimeout {
		t.Fatalf("result written with %v left, want a deadline within %v", left, RecordTimeout)
	}

	white.send(MessageCommand{Action: ActionRestart})
	if st := white.state(); st.State != "Play" || st.HasWinner {
		t.Fatalf("after restart = %+v", st)
	}
}

func TestViewerIsSeatedAndCanQuit(t *testing.T) {
	s := newTestServer(t, game.DefaultLayout(), nil)
	a := dial(t, s, "crowd", "")
	a.connect()
	b := dial(t, s, "crowd", "")
	b.connect()
	v := dial(t, s, "crowd", "")
	if vc := v.connect(); vc.Team != Viewer {
		t.Fatalf("third joiner seated as %s", vc.Team)
	}
	v.state()

	m, err := s.Match("crowd")
	if err != nil {
		t.Fatal(err)
	}
	v.send(MessageClick{File: 0, Rank: 1})
	v.send(MessageCommand{Action: ActionRestart})
	v.send(MessageCommand{Action: ActionQuit})
	// The loop closes the viewer connection when it reaches the quit.
	v.conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		if _, err := v.reader.ReadBytes('\n'); err != nil {
			break
		}
	}
	if len(s.Matches) != 1 || m.Id != "crowd" {
		t.Fatalf("matches = %v", s.Matches)
	}
}

func TestHandleConnRejectsMissingJoin(t *testing.T) {
	s := newTestServer(t, game.DefaultLayout(), nil)
	clientSide, serverSide := net.Pipe()
	defer clientSide.Close()
	go s.HandleConn(serverSide)

	clientSide.SetWriteDeadline(time.Now().Add(2 * time.Second))
	if _, err := clientSide.Write(Frame(MessageClick{}, 0)); err != nil {
		t.Fatal(err)
	}
	clientSide.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, err := bufio.NewReader(clientSide).ReadBytes('\n'); err == nil {
		t.Fatal("connection without join was served")
	}
	if len(s.Matches) != 0 {
		t.Fatal("match created without join")
	}
}

func TestIdleMatchesAreCleaned(t *testing.T) {
	s := newTestServer(t, game.DefaultLayout(), nil)
	s.cfg.IdleTimeout = 0
	m, err := s.Match("ghost")
	if err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	s.cleanIdle()
	if _, ok := s.Matches["ghost"]; ok {
		t.Fatal("idle match kept")
	}
	select {
	case <-m.done:
	case <-time.After(2 * time.Second):
		t.Fatal("idle match loop still running")
	}
}
