// Package control lets other processes drive a running dir-diff UI over a
// unix datagram socket. Each datagram is one JSON Command.
package control

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"sync"

	"github.com/timvw/dir-diff/internal/logging"
)

const (
	defaultMaxPayloadBytes = 1024
	defaultQueueSize       = 16
)

// Listener receives commands on a unix datagram socket and queues them for
// the UI event loop. It never applies a command itself.
type Listener struct {
	path   string
	logger *slog.Logger
	queue  chan Command

	MaxPayloadBytes int

	mu     sync.Mutex
	conn   *net.UnixConn
	closed bool
}

// NewListener creates a listener for socketPath. A nil logger discards
// diagnostics. Call Start to bind the socket.
func NewListener(socketPath string, logger *slog.Logger) *Listener {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Listener{
		path:            socketPath,
		logger:          logger,
		queue:           make(chan Command, defaultQueueSize),
		MaxPayloadBytes: defaultMaxPayloadBytes,
	}
}

// SocketPath returns the path the listener binds to.
func (l *Listener) SocketPath() string {
	return l.path
}

// Commands yields validated commands in arrival order.
func (l *Listener) Commands() <-chan Command {
	return l.queue
}

// Start binds the socket and reads until ctx is done.
func (l *Listener) Start(ctx context.Context) error {
	if l.path == "" {
		return fmt.Errorf("socket path is required")
	}
	if l.MaxPayloadBytes <= 0 {
		l.MaxPayloadBytes = defaultMaxPayloadBytes
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0o700); err != nil {
		return fmt.Errorf("create socket dir: %w", err)
	}
	if err := os.Chmod(filepath.Dir(l.path), 0o700); err != nil {
		return fmt.Errorf("chmod socket dir: %w", err)
	}
	if err := os.Remove(l.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove stale socket: %w", err)
	}

	addr, err := net.ResolveUnixAddr("unixgram", l.path)
	if err != nil {
		return fmt.Errorf("resolve unix addr: %w", err)
	}
	conn, err := net.ListenUnixgram("unixgram", addr)
	if err != nil {
		return fmt.Errorf("listen unixgram: %w", err)
	}
	if err := os.Chmod(l.path, 0o600); err != nil {
		_ = conn.Close()
		return fmt.Errorf("chmod socket: %w", err)
	}

	l.mu.Lock()
	l.conn = conn
	l.closed = false
	l.mu.Unlock()

	go func() {
		<-ctx.Done()
		l.close()
	}()

	go l.readLoop()

	l.logger.Debug("control socket listening", "path", l.path)
	return nil
}

func (l *Listener) readLoop() {
	buf := make([]byte, l.MaxPayloadBytes)
	for {
		l.mu.Lock()
		conn := l.conn
		l.mu.Unlock()
		if conn == nil {
			return
		}

		n, _, err := conn.ReadFromUnix(buf)
		if err != nil {
			if l.isClosed() {
				return
			}
			continue
		}

		if n <= 0 || n >= l.MaxPayloadBytes {
			l.logger.Warn("dropping oversized control message", "bytes", n)
			continue
		}

		var c Command
		if err := json.Unmarshal(buf[:n], &c); err != nil {
			l.logger.Warn("dropping malformed control message", "err", err)
			continue
		}
		if err := c.Validate(); err != nil {
			l.logger.Warn("dropping invalid control message", "err", err)
			continue
		}

		select {
		case l.queue <- c:
		default:
			l.logger.Warn("control queue full, dropping command", "op", c.Op, "pane", c.Pane)
		}
	}
}

func (l *Listener) isClosed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}

func (l *Listener) close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	if l.conn != nil {
		_ = l.conn.Close()
		l.conn = nil
	}
	_ = os.Remove(l.path)
}

// Send delivers one command to the listener bound at socketPath.
func Send(socketPath string, c Command) error {
	if err := c.Validate(); err != nil {
		return err
	}
	payload, err := json.Marshal(c)
	if err != nil {
		return err
	}
	addr, err := net.ResolveUnixAddr("unixgram", socketPath)
	if err != nil {
		return fmt.Errorf("resolve unix addr: %w", err)
	}
	conn, err := net.DialUnix("unixgram", nil, addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", socketPath, err)
	}
	defer conn.Close()
	if _, err := conn.Write(payload); err != nil {
		return fmt.Errorf("send command: %w", err)
	}
	return nil
}
