// Package weighstream moves weight readings between the service and the
// serial-to-Ethernet bridges sitting on the weighbridge indicators. The
// Client dials a bridge and streams its readings; the Server accepts
// bridges that push instead of being polled.
package weighstream

import (
	"bufio"
	"context"
	"log/slog"
	"net"
	"regexp"
	"strconv"
	"sync"
	"time"
)

// Reading is one stable-weight sample from an indicator, in kilograms.
type Reading struct {
	Weight float64
	At     time.Time
}

// Callback receives readings on the client's read goroutine. It must not
// block for long; slow consumers stall the stream.
type Callback func(Reading)

// DialFunc lets tests substitute the network.
type DialFunc func(ctx context.Context, network, addr string) (net.Conn, error)

// Indicator frames look like ")0   480   0" where the middle token is the
// weight. The trailing 0 marks a stable reading.
var readingPattern = regexp.MustCompile(`\)\d+\s+(\d+)\s+0`)

func parseReading(line string) (float64, bool) {
	m := readingPattern.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	w, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return w, true
}

type ClientConfig struct {
	Addr        string
	Handshake   string
	DialTimeout time.Duration
}

// Client is a single-session connection to one weighbridge bridge. A Client
// serves exactly one Start/Stop cycle; correlations create a fresh one per
// session.
type Client struct {
	cfg  ClientConfig
	dial DialFunc
	log  *slog.Logger

	mu      sync.Mutex
	conn    net.Conn
	stopped bool
	done    chan struct{}
}

func NewClient(cfg ClientConfig, log *slog.Logger) *Client {
	if cfg.Handshake == "" {
		cfg.Handshake = "START\n"
	}
	if cfg.DialTimeout == 0 {
		cfg.DialTimeout = 3 * time.Second
	}
	d := net.Dialer{Timeout: cfg.DialTimeout}
	return &Client{
		cfg:  cfg,
		dial: d.DialContext,
		log:  log.With("component", "weighstream-client", "addr", cfg.Addr),
		done: make(chan struct{}),
	}
}

// SetDialFunc replaces the dialer. Test hook.
func (c *Client) SetDialFunc(d DialFunc) { c.dial = d }

// Start dials the bridge, sends the handshake and streams readings to cb
// until the connection drops, Stop is called or ctx is cancelled.
func (c *Client) Start(ctx context.Context, cb Callback) error {
	conn, err := c.dial(ctx, "tcp", c.cfg.Addr)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		conn.Close()
		return nil
	}
	c.conn = conn
	c.mu.Unlock()

	// The watcher must be live before the handshake write: cancelling ctx
	// closes the connection and unblocks a stalled Write.
	go func() {
		<-ctx.Done()
		c.Stop()
	}()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetWriteDeadline(deadline)
	}
	if _, err := conn.Write([]byte(c.cfg.Handshake)); err != nil {
		c.Stop()
		return err
	}
	conn.SetWriteDeadline(time.Time{})

	go c.readLoop(conn, cb)
	return nil
}

func (c *Client) readLoop(conn net.Conn, cb Callback) {
	defer c.Stop()

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		w, ok := parseReading(scanner.Text())
		if !ok {
			continue
		}
		cb(Reading{Weight: w, At: time.Now()})
	}
	if err := scanner.Err(); err != nil {
		c.mu.Lock()
		stopped := c.stopped
		c.mu.Unlock()
		if !stopped {
			c.log.Warn("weight stream read failed", "error", err)
		}
	}
}

// Stop closes the connection. Safe to call more than once and before Start.
func (c *Client) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return
	}
	c.stopped = true
	if c.conn != nil {
		c.conn.Close()
	}
	close(c.done)
}

// Done is closed once the session has ended for any reason.
func (c *Client) Done() <-chan struct{} { return c.done }
