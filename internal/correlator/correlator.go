// Package correlator ties a plate detection at a gate to the weight the
// bridge reports moments later. Each gate holds at most one live correlation
// session; the first stable reading wins and later ones are ignored.
package correlator

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gatelogix/tos-gate-service/internal/domain"
	"github.com/gatelogix/tos-gate-service/internal/infrastructure/metrics"
	"github.com/gatelogix/tos-gate-service/internal/weighstream"
)

// WeightSource is one dialed weight stream session.
type WeightSource interface {
	Start(ctx context.Context, cb weighstream.Callback) error
	Stop()
}

// ClientFactory builds a fresh WeightSource per correlation session.
type ClientFactory func(addr string) WeightSource

// WeightSink persists a correlated weight onto both detection records.
type WeightSink interface {
	AttachWeight(ctx context.Context, logID, detectionID uint, weight float64) error
}

// Input identifies one detection awaiting its weight.
type Input struct {
	GateID      uint
	BridgeAddr  string
	LogID       uint
	DetectionID uint
}

type session struct {
	client  WeightSource
	cancel  context.CancelFunc
	once    sync.Once
	started time.Time
}

type Config struct {
	// Wait bounds how long a session listens for a reading before the
	// correlation is abandoned with the weight left unset.
	Wait time.Duration
	// ArmTTL bounds how long an armed snapshot signal stays consumable.
	ArmTTL time.Duration
}

// Correlator owns the per-gate session registry and the one-shot snapshot
// arming signals.
type Correlator struct {
	cfg       Config
	newClient ClientFactory
	sink      WeightSink
	log       *slog.Logger
	metrics   *metrics.GateMetrics
	now       func() time.Time

	mu       sync.Mutex
	sessions map[uint]*session
	armed    map[string]time.Time
}

func New(cfg Config, factory ClientFactory, sink WeightSink, log *slog.Logger) *Correlator {
	if cfg.Wait == 0 {
		cfg.Wait = 8 * time.Second
	}
	if cfg.ArmTTL == 0 {
		cfg.ArmTTL = 30 * time.Second
	}
	return &Correlator{
		cfg:       cfg,
		newClient: factory,
		sink:      sink,
		log:       log.With("component", "correlator"),
		now:       time.Now,
		sessions:  make(map[uint]*session),
		armed:     make(map[string]time.Time),
	}
}

// SetMetrics attaches correlation outcome counters. Optional.
func (c *Correlator) SetMetrics(m *metrics.GateMetrics) { c.metrics = m }

func (c *Correlator) recordOutcome(outcome string, started time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.RecordCorrelation(outcome, c.now().Sub(started).Seconds())
}

// ArmSnapshot raises the one-shot signal for a camera type. A manual capture
// request arms it; the next detection from that camera consumes it.
func (c *Correlator) ArmSnapshot(cameraType string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.armed[cameraType] = c.now().Add(c.cfg.ArmTTL)
}

// ConsumeSnapshot lowers the signal and reports whether it was live. Expired
// signals are dropped, not consumed.
func (c *Correlator) ConsumeSnapshot(cameraType string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	expiry, ok := c.armed[cameraType]
	if !ok {
		return false
	}
	delete(c.armed, cameraType)
	return expiry.After(c.now())
}

// Busy reports whether the gate has a live correlation session.
func (c *Correlator) Busy(gateID uint) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.sessions[gateID]
	return ok
}

// Correlate opens a weight stream session for the detection's gate and
// returns once the stream is up. The first reading is written onto both
// detection records and the session torn down; hitting the wait deadline
// abandons the correlation silently. ErrSessionBusy when the gate already
// has a session.
func (c *Correlator) Correlate(ctx context.Context, in Input) error {
	c.mu.Lock()
	if _, exists := c.sessions[in.GateID]; exists {
		c.mu.Unlock()
		return domain.ErrSessionBusy
	}
	sess := &session{started: c.now()}
	c.sessions[in.GateID] = sess
	c.mu.Unlock()

	sctx, cancel := context.WithTimeout(ctx, c.cfg.Wait)
	sess.cancel = cancel
	sess.client = c.newClient(in.BridgeAddr)

	err := sess.client.Start(sctx, func(r weighstream.Reading) {
		sess.once.Do(func() {
			c.attach(in, r.Weight)
			c.recordOutcome("matched", sess.started)
			go c.teardown(in.GateID)
		})
	})
	if err != nil {
		c.teardown(in.GateID)
		c.recordOutcome("dial_failed", sess.started)
		c.log.Warn("weighbridge dial failed", "gate_id", in.GateID, "addr", in.BridgeAddr, "error", err)
		return err
	}

	go func() {
		<-sctx.Done()
		if sctx.Err() == context.DeadlineExceeded && c.Busy(in.GateID) {
			c.recordOutcome("timeout", sess.started)
			c.log.Info("correlation timed out", "gate_id", in.GateID, "detection_id", in.DetectionID)
		}
		c.teardown(in.GateID)
	}()
	return nil
}

func (c *Correlator) attach(in Input, weight float64) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.sink.AttachWeight(ctx, in.LogID, in.DetectionID, weight); err != nil {
		c.log.Error("failed to attach weight", "gate_id", in.GateID, "detection_id", in.DetectionID, "error", err)
		return
	}
	c.log.Info("weight correlated", "gate_id", in.GateID, "detection_id", in.DetectionID, "weight", weight)
}

// Abort tears down the gate's session, if any.
func (c *Correlator) Abort(gateID uint) { c.teardown(gateID) }

func (c *Correlator) teardown(gateID uint) {
	c.mu.Lock()
	sess, ok := c.sessions[gateID]
	if ok {
		delete(c.sessions, gateID)
	}
	c.mu.Unlock()
	if !ok {
		return
	}
	sess.cancel()
	sess.client.Stop()
}
