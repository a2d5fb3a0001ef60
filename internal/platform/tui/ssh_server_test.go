package tui

import (
	"bytes"
	"errors"
	"io"
	"net"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
)

// fakeSession implements the parts of ssh.Session the handler touches.
type fakeSession struct {
	ssh.Session
	noPty    bool
	stderr   bytes.Buffer
	exitCode int
	closed   bool
}

func (s *fakeSession) Pty() (ssh.Pty, <-chan ssh.Window, bool) {
	if s.noPty {
		return ssh.Pty{}, nil, false
	}
	return ssh.Pty{Term: "xterm", Window: ssh.Window{Width: 80, Height: 24}}, nil, true
}

func (s *fakeSession) User() string { return "tester" }

func (s *fakeSession) RemoteAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 40000}
}

func (s *fakeSession) Stderr() io.ReadWriter { return &s.stderr }

func (s *fakeSession) Exit(code int) error {
	s.exitCode = code
	return nil
}

func (s *fakeSession) Close() error {
	s.closed = true
	return nil
}

func newHandlerServer(newGame func() (Game, error)) *SSHServer {
	return &SSHServer{
		config: SSHServerConfig{TickRate: 60, NewGame: newGame},
		logger: log.New(io.Discard),
	}
}

func TestTeaHandlerStartsSession(t *testing.T) {
	g := &fakeGame{}
	srv := newHandlerServer(func() (Game, error) { return g, nil })

	model, opts := srv.teaHandler(&fakeSession{})
	if model == nil {
		t.Fatal("Expected a model for a session with a PTY")
	}
	if len(opts) == 0 {
		t.Error("Expected program options")
	}
	if m := model.(Model); m.player != "tester" {
		t.Errorf("player = %q, want %q", m.player, "tester")
	}
}

func TestTeaHandlerGameError(t *testing.T) {
	srv := newHandlerServer(func() (Game, error) { return nil, errors.New("bad board") })
	sess := &fakeSession{}

	model, _ := srv.teaHandler(sess)
	if model != nil {
		t.Error("Expected no model when the game cannot be built")
	}
	if sess.exitCode != 1 || !sess.closed {
		t.Errorf("Session exit=%d closed=%v, want exit 1 and closed", sess.exitCode, sess.closed)
	}
	if !strings.Contains(sess.stderr.String(), "bad board") {
		t.Errorf("stderr = %q, want the game error", sess.stderr.String())
	}
}

func TestTeaHandlerRequiresPty(t *testing.T) {
	built := false
	srv := newHandlerServer(func() (Game, error) {
		built = true
		return &fakeGame{}, nil
	})
	sess := &fakeSession{noPty: true}

	if model, _ := srv.teaHandler(sess); model != nil {
		t.Error("Expected no model without a PTY")
	}
	if built {
		t.Error("Game should not be built without a PTY")
	}
	if sess.exitCode != 1 {
		t.Errorf("exit = %d, want 1", sess.exitCode)
	}
}

func TestNewSSHServer(t *testing.T) {
	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(t.TempDir(), "keys", "host_key")

	if _, err := NewSSHServer(cfg, nil, nil); err == nil {
		t.Error("Expected an error without a game factory")
	}

	cfg.NewGame = func() (Game, error) { return &fakeGame{}, nil }
	srv, err := NewSSHServer(cfg, nil, nil)
	if err != nil {
		t.Fatalf("NewSSHServer() failed: %v", err)
	}
	if got := srv.Addr(); got != "127.0.0.1:0" {
		t.Errorf("Addr() = %q, want %q", got, "127.0.0.1:0")
	}
}
