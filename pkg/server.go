package pkg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/creack/pty"
	petname "github.com/dustinkirkland/golang-petname"
	"github.com/gliderlabs/ssh"
	gossh "golang.org/x/crypto/ssh"

	"github.com/qnkhuat/pawnrace/pkg/config"
	"github.com/qnkhuat/pawnrace/pkg/game"
)

const (
	JoinTimeout   = 10 * time.Second
	CleanInterval = time.Minute
)

type Server struct {
	SSH     *ssh.Server
	Matches map[string]*Match

	cfg     config.Config
	layout  game.Layout
	results ResultRecorder
	ctx     context.Context
	cancel  context.CancelFunc
	stops   map[string]context.CancelFunc
	mu      sync.Mutex
}

func NewServer(cfg config.Config, layout game.Layout, results ResultRecorder) (*Server, error) {
	if err := layout.Validate(); err != nil {
		return nil, fmt.Errorf("server layout: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		Matches: make(map[string]*Match),
		stops:   make(map[string]context.CancelFunc),
		cfg:     cfg,
		layout:  layout,
		results: results,
		ctx:     ctx,
		cancel:  cancel,
	}

	sshServer := &ssh.Server{
		Addr:        cfg.SSHAddr,
		IdleTimeout: cfg.IdleTimeout,
		Handler:     s.sshHandle,
	}
	if cfg.HostKeyPath != "" {
		signer, err := loadHostKey(cfg.HostKeyPath)
		if err != nil {
			cancel()
			return nil, err
		}
		sshServer.AddHostKey(signer)
	}
	s.SSH = sshServer
	return s, nil
}

func loadHostKey(path string) (gossh.Signer, error) {
	pem, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read host key: %w", err)
	}
	signer, err := gossh.ParsePrivateKey(pem)
	if err != nil {
		return nil, fmt.Errorf("parse host key: %w", err)
	}
	return signer, nil
}

// ListenAndServeSSH serves the terminal client, one local game per session.
func (s *Server) ListenAndServeSSH() error {
	err := s.SSH.ListenAndServe()
	if err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) sshHandle(sess ssh.Session) {
	ptyReq, winCh, isPty := sess.Pty()
	if !isPty {
		io.WriteString(sess, "non-interactive terminals are not supported\n")
		sess.Exit(1)
		return
	}

	cmdCtx, cancelCmd := context.WithCancel(sess.Context())
	defer cancelCmd()

	cmd := exec.CommandContext(cmdCtx, s.cfg.ClientBinary)
	cmd.Env = append(sess.Environ(), fmt.Sprintf("TERM=%s", ptyReq.Term))

	f, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(ptyReq.Window.Height), Cols: uint16(ptyReq.Window.Width)})
	if err != nil {
		io.WriteString(sess, fmt.Sprintf("failed to initialize pseudo-terminal: %s\n", err))
		sess.Exit(1)
		return
	}
	defer f.Close()

	go func() {
		for win := range winCh {
			pty.Setsize(f, &pty.Winsize{Rows: uint16(win.Height), Cols: uint16(win.Width)})
		}
	}()

	go func() {
		io.Copy(f, sess)
	}()
	io.Copy(sess, f)

	f.Close()
	cmd.Wait()
}

// Serve accepts protocol connections until the listener closes.
func (s *Server) Serve(listener net.Listener) error {
	for {
		conn, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}
		go s.HandleConn(conn)
	}
}

// HandleConn performs the join handshake and hands the connection to its match.
func (s *Server) HandleConn(conn net.Conn) {
	p := NewPlayer(conn)
	conn.SetReadDeadline(time.Now().Add(JoinTimeout))
	mt, err := p.ReadTransport()
	conn.SetReadDeadline(time.Time{})
	if err != nil || mt.MsgType != TypeMessageJoin {
		log.Printf("Rejecting %s: expected join, err=%v", conn.RemoteAddr(), err)
		conn.Close()
		return
	}

	var join MessageJoin
	if err := Decode(mt.Data, &join); err != nil {
		log.Printf("Rejecting %s: bad join: %v", conn.RemoteAddr(), err)
		conn.Close()
		return
	}
	if name := strings.TrimSpace(join.Name); name != "" {
		p.Name = name
	}

	m, err := s.Match(join.MatchId)
	if err != nil {
		log.Printf("Failed to create match %q: %v", join.MatchId, err)
		conn.Close()
		return
	}
	if !m.Join(p) {
		conn.Close()
	}
}

// Match returns the match with id, creating and starting it if needed.
// An empty id gets a generated one.
func (s *Server) Match(id string) (*Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id = strings.TrimSpace(id)
	if id == "" {
		for {
			id = petname.Generate(3, "-")
			if _, ok := s.Matches[id]; !ok {
				break
			}
		}
	}
	if m, ok := s.Matches[id]; ok {
		return m, nil
	}
	m, err := NewMatch(id, s.layout, s.results)
	if err != nil {
		return nil, err
	}
	mctx, stop := context.WithCancel(s.ctx)
	s.Matches[id] = m
	s.stops[id] = stop
	go m.Run(mctx)
	log.Printf("Created match %s", id)
	return m, nil
}

// CleanIdleMatches drops empty matches that saw no traffic within the idle timeout.
func (s *Server) CleanIdleMatches() {
	tick := time.NewTicker(CleanInterval)
	defer tick.Stop()
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-tick.C:
			s.cleanIdle()
		}
	}
}

func (s *Server) cleanIdle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, m := range s.Matches {
		if m.Idle(s.cfg.IdleTimeout) {
			s.stops[id]()
			delete(s.Matches, id)
			delete(s.stops, id)
			log.Printf("Removed idle match %s", id)
		}
	}
}

// Close stops every match and the ssh front door.
func (s *Server) Close() error {
	s.cancel()
	return s.SSH.Close()
}
