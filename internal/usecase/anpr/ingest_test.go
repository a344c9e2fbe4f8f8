package anpr

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gatelogix/tos-gate-service/internal/correlator"
	"github.com/gatelogix/tos-gate-service/internal/domain"
	"github.com/gatelogix/tos-gate-service/internal/infrastructure/metrics"
	anprdto "github.com/gatelogix/tos-gate-service/internal/usecase/dto/anpr"
)

var testMetrics = metrics.NewGateMetrics()

type fakeDetectionRepo struct {
	mu         sync.Mutex
	seq        uint
	logs       []*domain.DetectionLog
	detections []*domain.Detection
	failAudit  bool
}

func (r *fakeDetectionRepo) CreateLog(ctx context.Context, log *domain.DetectionLog) (uint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	log.ID = r.seq
	r.logs = append(r.logs, log)
	return log.ID, nil
}

func (r *fakeDetectionRepo) CreateDetection(ctx context.Context, det *domain.Detection) (uint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAudit {
		return 0, context.DeadlineExceeded
	}
	r.seq++
	det.ID = r.seq
	r.detections = append(r.detections, det)
	return det.ID, nil
}

func (r *fakeDetectionRepo) AttachWeight(ctx context.Context, logID, detectionID uint, weight float64) error {
	return nil
}

func (r *fakeDetectionRepo) TrucksAtGate(ctx context.Context, gateID uint, search string, lookback time.Duration) ([]*domain.TruckAtGate, error) {
	return nil, nil
}

func (r *fakeDetectionRepo) LatestByPlate(ctx context.Context, truckNo string) (*domain.Detection, error) {
	return nil, domain.ErrTruckNotFound
}

type fakeGateRepo struct {
	gate *domain.ActivityPoint
}

func (r *fakeGateRepo) ByName(ctx context.Context, name string) (*domain.ActivityPoint, error) {
	return nil, domain.ErrGateNotFound
}

func (r *fakeGateRepo) ByID(ctx context.Context, id uint) (*domain.ActivityPoint, error) {
	if r.gate != nil && r.gate.ID == id {
		return r.gate, nil
	}
	return nil, domain.ErrGateNotFound
}

func (r *fakeGateRepo) ByCamera(ctx context.Context, cameraID int64) (*domain.ActivityPoint, error) {
	if r.gate != nil {
		for _, id := range r.gate.CameraIDs {
			if id == cameraID {
				return r.gate, nil
			}
		}
	}
	return nil, domain.ErrGateNotFound
}

func (r *fakeGateRepo) Upsert(ctx context.Context, point *domain.ActivityPoint) error { return nil }

func (r *fakeGateRepo) List(ctx context.Context, search string) ([]*domain.ActivityPoint, error) {
	return nil, nil
}

func (r *fakeGateRepo) UpsertCamera(ctx context.Context, cam *domain.Camera) (uint, error) {
	return 0, nil
}

func (r *fakeGateRepo) ListCameras(ctx context.Context) ([]*domain.Camera, error) { return nil, nil }

type fakeCorrelation struct {
	mu       sync.Mutex
	armed    map[string]bool
	sessions chan correlator.Input
}

func newFakeCorrelation() *fakeCorrelation {
	return &fakeCorrelation{armed: make(map[string]bool), sessions: make(chan correlator.Input, 4)}
}

func (c *fakeCorrelation) ConsumeSnapshot(cameraType string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.armed[cameraType] {
		delete(c.armed, cameraType)
		return true
	}
	return false
}

func (c *fakeCorrelation) arm(cameraType string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.armed[cameraType] = true
}

func (c *fakeCorrelation) Correlate(ctx context.Context, in correlator.Input) error {
	c.sessions <- in
	return nil
}

type env struct {
	detections  *fakeDetectionRepo
	correlation *fakeCorrelation
	uc          *DefaultUsecase
}

func newEnv() *env {
	detections := &fakeDetectionRepo{}
	gates := &fakeGateRepo{gate: &domain.ActivityPoint{
		ID: 1, Name: "WB-1", Address: "10.0.0.10", IsActive: true, CameraIDs: []int64{101},
	}}
	correlation := newFakeCorrelation()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	uc := NewDefaultUsecase(detections, gates, correlation, testMetrics, log, "4660")
	return &env{detections: detections, correlation: correlation, uc: uc}
}

func detection(plate, cameraID string) *anprdto.DetectionInput {
	return &anprdto.DetectionInput{
		Plate:      plate,
		CameraID:   cameraID,
		CameraType: "1",
		SnapTime:   time.Now(),
	}
}

func TestIngestValidPlate(t *testing.T) {
	e := newEnv()

	out, err := e.uc.Ingest(context.Background(), detection("kda 123b", "101"))
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if out.Success != "True" || out.Error != "" {
		t.Fatalf("output = %+v, want Success True", out)
	}

	if len(e.detections.logs) != 1 || e.detections.logs[0].TruckNo != "kda 123b" {
		t.Fatalf("log rows = %+v, want the raw plate", e.detections.logs)
	}
	if len(e.detections.detections) != 1 {
		t.Fatalf("audit rows = %d, want 1", len(e.detections.detections))
	}
	det := e.detections.detections[0]
	if det.TruckNo != "KDA123B" {
		t.Errorf("audit plate = %q, want normalized KDA123B", det.TruckNo)
	}
	if det.GateID != 1 {
		t.Errorf("audit gate = %d, want camera's gate", det.GateID)
	}

	select {
	case in := <-e.correlation.sessions:
		if in.GateID != 1 || in.BridgeAddr != "10.0.0.10:4660" {
			t.Errorf("correlation input = %+v", in)
		}
		if in.LogID != e.detections.logs[0].ID || in.DetectionID != det.ID {
			t.Errorf("correlation rows = (%d, %d), want both stored rows", in.LogID, in.DetectionID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no correlation handoff")
	}
}

func TestIngestInvalidPlateStillAcknowledged(t *testing.T) {
	e := newEnv()

	out, err := e.uc.Ingest(context.Background(), detection("NOTAPLATE99", "101"))
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if out.Success != "False" {
		t.Fatalf("Success = %q, want False for an invalid plate", out.Success)
	}
	if len(e.detections.detections) != 1 {
		t.Fatalf("audit rows = %d, invalid plates are still recorded", len(e.detections.detections))
	}
	if got := e.detections.detections[0].TruckNo; got != "NOTAPLATE99" {
		t.Errorf("audit plate = %q, want raw when validation failed", got)
	}
}

func TestIngestMissingPlateRejected(t *testing.T) {
	e := newEnv()

	_, err := e.uc.Ingest(context.Background(), detection("", "101"))
	if _, ok := domain.RejectionReason(err); !ok {
		t.Fatalf("err = %v, want a rejection", err)
	}
	if len(e.detections.logs) != 0 {
		t.Fatal("nothing may be written for a rejected frame")
	}
}

func TestIngestMissingCameraRejected(t *testing.T) {
	e := newEnv()

	_, err := e.uc.Ingest(context.Background(), detection("KDA123B", ""))
	if _, ok := domain.RejectionReason(err); !ok {
		t.Fatalf("err = %v, want a rejection", err)
	}
}

func TestIngestDummyPlateWhenArmed(t *testing.T) {
	e := newEnv()
	e.correlation.arm("1")

	in := detection("", "101")
	in.BoxPositive = true
	out, err := e.uc.Ingest(context.Background(), in)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if out.Success != "False" {
		t.Errorf("Success = %q, a synthesized plate is not a valid read", out.Success)
	}

	if len(e.detections.detections) != 1 {
		t.Fatalf("audit rows = %d, want 1", len(e.detections.detections))
	}
	det := e.detections.detections[0]
	if !strings.HasPrefix(det.TruckNo, "DUMMY_") {
		t.Errorf("plate = %q, want DUMMY_ prefix", det.TruckNo)
	}
	if !det.IsUnlicensed {
		t.Error("dummy detection must be flagged unlicensed")
	}

	// The signal is one-shot: the next plate-less frame is rejected.
	in2 := detection("", "101")
	in2.BoxPositive = true
	if _, err := e.uc.Ingest(context.Background(), in2); err == nil {
		t.Fatal("second plate-less frame consumed a spent signal")
	}
}

func TestIngestBoxWithoutArmRejected(t *testing.T) {
	e := newEnv()

	in := detection("", "101")
	in.BoxPositive = true
	if _, err := e.uc.Ingest(context.Background(), in); err == nil {
		t.Fatal("plate-less frame accepted without an armed capture")
	}
}

func TestIngestUnknownCameraIsPartialSuccess(t *testing.T) {
	e := newEnv()

	out, err := e.uc.Ingest(context.Background(), detection("KDA123B", "999"))
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if out.Success != "True" {
		t.Errorf("Success = %q, the raw log write succeeded", out.Success)
	}
	if len(e.detections.logs) != 1 {
		t.Fatal("raw log must survive an unresolved gate")
	}
	if len(e.detections.detections) != 0 {
		t.Fatal("no audit row may be written without a gate")
	}

	select {
	case <-e.correlation.sessions:
		t.Fatal("correlation started without an audit row")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestIngestAuditFailureStillAcknowledged(t *testing.T) {
	e := newEnv()
	e.detections.failAudit = true

	out, err := e.uc.Ingest(context.Background(), detection("KDA123B", "101"))
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if out.Success != "True" {
		t.Errorf("Success = %q, partial success is still acknowledged", out.Success)
	}
}
