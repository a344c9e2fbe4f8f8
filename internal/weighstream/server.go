package weighstream

import (
	"bufio"
	"log/slog"
	"net"
	"regexp"
	"strconv"
	"sync"
	"time"
)

// Push-mode bridges prefix every line with a millisecond wall clock, e.g.
// "[14:03:22.118]IN: )0   480   12540".
var framePattern = regexp.MustCompile(`\[(\d{2}:\d{2}:\d{2}\.\d{3})\]IN.*\)\d+\s+(\d+)\s+\d+`)

func parseFrame(line string, now time.Time) (Reading, bool) {
	m := framePattern.FindStringSubmatch(line)
	if m == nil {
		return Reading{}, false
	}
	w, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return Reading{}, false
	}
	at := now
	if clock, err := time.Parse("15:04:05.000", m[1]); err == nil {
		y, mo, d := now.Date()
		at = time.Date(y, mo, d, clock.Hour(), clock.Minute(), clock.Second(), clock.Nanosecond(), now.Location())
	}
	return Reading{Weight: w, At: at}, true
}

// Server accepts push-mode bridge connections and fans their readings out to
// subscribers. Delivery is best effort: a subscriber that falls behind loses
// readings rather than stalling the bridge socket.
type Server struct {
	addr string
	log  *slog.Logger

	mu     sync.Mutex
	ln     net.Listener
	conns  map[net.Conn]struct{}
	subs   map[chan Reading]struct{}
	closed bool
}

func NewServer(addr string, log *slog.Logger) *Server {
	return &Server{
		addr:  addr,
		log:   log.With("component", "weighstream-server"),
		conns: make(map[net.Conn]struct{}),
		subs:  make(map[chan Reading]struct{}),
	}
}

// Start opens the listener and serves until Stop.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		ln.Close()
		return nil
	}
	s.ln = ln
	s.mu.Unlock()

	s.log.Info("weight stream server listening", "addr", ln.Addr().String())
	go s.acceptLoop(ln)
	return nil
}

// Addr returns the bound listener address, empty before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

func (s *Server) acceptLoop(ln net.Listener) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			s.mu.Lock()
			closed := s.closed
			s.mu.Unlock()
			if !closed {
				s.log.Error("accept failed", "error", err)
			}
			return
		}

		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			conn.Close()
			return
		}
		s.conns[conn] = struct{}{}
		s.mu.Unlock()

		s.log.Info("bridge connected", "remote", conn.RemoteAddr().String())
		go s.serveConn(conn)
	}
}

func (s *Server) serveConn(conn net.Conn) {
	defer func() {
		s.mu.Lock()
		delete(s.conns, conn)
		s.mu.Unlock()
		conn.Close()
	}()

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		r, ok := parseFrame(scanner.Text(), time.Now())
		if !ok {
			continue
		}
		s.broadcast(r)
	}
}

func (s *Server) broadcast(r Reading) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.subs {
		select {
		case ch <- r:
		default:
		}
	}
}

// Subscribe registers a buffered reading channel. The returned func removes
// the subscription; call it exactly once.
func (s *Server) Subscribe() (<-chan Reading, func()) {
	ch := make(chan Reading, 16)

	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		delete(s.subs, ch)
		s.mu.Unlock()
	}
	return ch, cancel
}

// Stop closes the listener and every bridge connection. Idempotent.
func (s *Server) Stop() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	ln := s.ln
	conns := make([]net.Conn, 0, len(s.conns))
	for c := range s.conns {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	if ln != nil {
		ln.Close()
	}
	for _, c := range conns {
		c.Close()
	}
}
