package manualmode

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/gatelogix/tos-gate-service/internal/domain"
	"github.com/gatelogix/tos-gate-service/internal/infrastructure/metrics"
	anprdto "github.com/gatelogix/tos-gate-service/internal/usecase/dto/anpr"
)

var testMetrics = metrics.NewGateMetrics()

type fakeSessionRepo struct {
	mu       sync.Mutex
	seq      uint
	sessions map[uint]*domain.ManualModeSession
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[uint]*domain.ManualModeSession)}
}

func (r *fakeSessionRepo) Request(ctx context.Context, userID uint, reason string) (*domain.ManualModeSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		if s.UserID == userID && (s.Status == domain.ManualPending || s.Status == domain.ManualApproved) {
			return nil, domain.ErrManualSessionExists
		}
	}
	r.seq++
	s := &domain.ManualModeSession{
		ID:        r.seq,
		UserID:    userID,
		Status:    domain.ManualPending,
		Reason:    reason,
		CreatedAt: time.Now(),
	}
	r.sessions[s.ID] = s
	cp := *s
	return &cp, nil
}

func (r *fakeSessionRepo) Approve(ctx context.Context, id uint, expiresAt time.Time) (*domain.ManualModeSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok || s.Status != domain.ManualPending {
		return nil, domain.ErrManualSessionState
	}
	s.Status = domain.ManualApproved
	s.ExpiresAt = &expiresAt
	cp := *s
	return &cp, nil
}

func (r *fakeSessionRepo) Reject(ctx context.Context, id uint, reason string) (*domain.ManualModeSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok || s.Status != domain.ManualPending {
		return nil, domain.ErrManualSessionState
	}
	s.Status = domain.ManualRejected
	s.Reason = reason
	cp := *s
	return &cp, nil
}

func (r *fakeSessionRepo) Extend(ctx context.Context, id uint, newExpiry time.Time) (*domain.ManualModeSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok || s.Status != domain.ManualApproved {
		return nil, domain.ErrManualSessionState
	}
	s.ExpiresAt = &newExpiry
	cp := *s
	return &cp, nil
}

func (r *fakeSessionRepo) End(ctx context.Context, id uint) (*domain.ManualModeSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	now := time.Now()
	s.Status = domain.ManualEnded
	s.ExpiresAt = &now
	cp := *s
	return &cp, nil
}

func (r *fakeSessionRepo) LiveByUser(ctx context.Context, userID uint) (*domain.ManualModeSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		if s.UserID == userID && s.Status == domain.ManualApproved {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) List(ctx context.Context) ([]*domain.ManualModeSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.ManualModeSession, 0, len(r.sessions))
	for _, s := range r.sessions {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

type fakeDetectionRepo struct {
	mu         sync.Mutex
	detections []*domain.Detection
}

func (r *fakeDetectionRepo) CreateLog(ctx context.Context, log *domain.DetectionLog) (uint, error) {
	return 0, nil
}

func (r *fakeDetectionRepo) CreateDetection(ctx context.Context, det *domain.Detection) (uint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	det.ID = uint(len(r.detections) + 1)
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
	gates map[uint]*domain.ActivityPoint
}

func (r *fakeGateRepo) ByName(ctx context.Context, name string) (*domain.ActivityPoint, error) {
	return nil, domain.ErrGateNotFound
}

func (r *fakeGateRepo) ByID(ctx context.Context, id uint) (*domain.ActivityPoint, error) {
	g, ok := r.gates[id]
	if !ok {
		return nil, domain.ErrGateNotFound
	}
	return g, nil
}

func (r *fakeGateRepo) ByCamera(ctx context.Context, cameraID int64) (*domain.ActivityPoint, error) {
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

func newTestUsecase() (*DefaultUsecase, *fakeDetectionRepo) {
	detections := &fakeDetectionRepo{}
	gates := &fakeGateRepo{gates: map[uint]*domain.ActivityPoint{
		1: {ID: 1, Name: "WB-1", IsActive: true},
		2: {ID: 2, Name: "WB-2", IsActive: false},
	}}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewDefaultUsecase(newFakeSessionRepo(), detections, gates, testMetrics, log), detections
}

func TestRequestRequiresReason(t *testing.T) {
	uc, _ := newTestUsecase()

	if _, err := uc.Request(context.Background(), 1, ""); err == nil {
		t.Fatal("request without reason accepted")
	}
}

func TestSingleLiveSessionPerUser(t *testing.T) {
	uc, _ := newTestUsecase()

	first, err := uc.Request(context.Background(), 1, "camera offline")
	if err != nil {
		t.Fatalf("Request: %v", err)
	}

	if _, err := uc.Request(context.Background(), 1, "still offline"); !errors.Is(err, domain.ErrManualSessionExists) {
		t.Fatalf("second pending request err = %v, want ErrManualSessionExists", err)
	}

	if _, err := uc.Approve(context.Background(), first.ID, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if _, err := uc.Request(context.Background(), 1, "again"); !errors.Is(err, domain.ErrManualSessionExists) {
		t.Fatalf("request during approved session err = %v, want ErrManualSessionExists", err)
	}

	// A different user is unaffected.
	if _, err := uc.Request(context.Background(), 2, "camera offline"); err != nil {
		t.Fatalf("other user's request: %v", err)
	}
}

func TestLifecyclePendingApprovedEnded(t *testing.T) {
	uc, _ := newTestUsecase()

	s, _ := uc.Request(context.Background(), 1, "camera offline")

	approved, err := uc.Approve(context.Background(), s.ID, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if approved.Status != domain.ManualApproved {
		t.Fatalf("status = %q, want approved", approved.Status)
	}

	live, err := uc.IsUserInManualMode(context.Background(), 1)
	if err != nil || !live {
		t.Fatalf("IsUserInManualMode = (%v, %v), want true", live, err)
	}

	ended, err := uc.End(context.Background(), s.ID)
	if err != nil {
		t.Fatalf("End: %v", err)
	}
	if ended.Status != domain.ManualEnded {
		t.Fatalf("status = %q, want ended", ended.Status)
	}

	live, _ = uc.IsUserInManualMode(context.Background(), 1)
	if live {
		t.Fatal("user still in manual mode after End")
	}
}

func TestEndWorksFromAnyState(t *testing.T) {
	uc, _ := newTestUsecase()

	// A rejected session can still be ended; End is the unconditional
	// kill switch and must stamp the expiry.
	s, _ := uc.Request(context.Background(), 1, "camera offline")
	if _, err := uc.Reject(context.Background(), s.ID, "not needed"); err != nil {
		t.Fatalf("Reject: %v", err)
	}

	ended, err := uc.End(context.Background(), s.ID)
	if err != nil {
		t.Fatalf("End after reject: %v", err)
	}
	if ended.Status != domain.ManualEnded {
		t.Fatalf("status = %q, want ended", ended.Status)
	}
	if ended.ExpiresAt == nil || ended.ExpiresAt.After(time.Now()) {
		t.Fatalf("expiry not stamped to now on End: %v", ended.ExpiresAt)
	}

	// Ending an already ended session is a no-op transition, not an error.
	if _, err := uc.End(context.Background(), s.ID); err != nil {
		t.Fatalf("End twice: %v", err)
	}
}

func TestConcurrentRequestsSingleWinner(t *testing.T) {
	uc, _ := newTestUsecase()

	const attempts = 16
	var wg sync.WaitGroup
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Request(context.Background(), 1, "camera offline")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var won, lost int
	for err := range errs {
		switch {
		case err == nil:
			won++
		case errors.Is(err, domain.ErrManualSessionExists):
			lost++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if won != 1 || lost != attempts-1 {
		t.Fatalf("winners = %d, losers = %d, want exactly one winner", won, lost)
	}
}

func TestRejectOnlyFromPending(t *testing.T) {
	uc, _ := newTestUsecase()

	s, _ := uc.Request(context.Background(), 1, "camera offline")
	uc.Approve(context.Background(), s.ID, time.Now().Add(time.Hour))

	if _, err := uc.Reject(context.Background(), s.ID, "too late"); !errors.Is(err, domain.ErrManualSessionState) {
		t.Fatalf("err = %v, want ErrManualSessionState", err)
	}
}

func TestExtendOnlyFromApproved(t *testing.T) {
	uc, _ := newTestUsecase()

	s, _ := uc.Request(context.Background(), 1, "camera offline")
	if _, err := uc.Extend(context.Background(), s.ID, time.Now().Add(time.Hour)); !errors.Is(err, domain.ErrManualSessionState) {
		t.Fatalf("extend pending err = %v, want ErrManualSessionState", err)
	}

	uc.Approve(context.Background(), s.ID, time.Now().Add(time.Hour))
	extended, err := uc.Extend(context.Background(), s.ID, time.Now().Add(2*time.Hour))
	if err != nil {
		t.Fatalf("Extend: %v", err)
	}
	if extended.ExpiresAt == nil || !extended.ExpiresAt.After(time.Now().Add(90*time.Minute)) {
		t.Fatal("expiry not extended")
	}
}

func TestExpiredSessionIsNotLive(t *testing.T) {
	uc, _ := newTestUsecase()

	s, _ := uc.Request(context.Background(), 1, "camera offline")

	// Approve with a future expiry, then age the session out directly.
	uc.Approve(context.Background(), s.ID, time.Now().Add(time.Minute))
	repo := uc.SessionRepo.(*fakeSessionRepo)
	repo.mu.Lock()
	past := time.Now().Add(-time.Minute)
	repo.sessions[s.ID].ExpiresAt = &past
	repo.mu.Unlock()

	live, err := uc.IsUserInManualMode(context.Background(), 1)
	if err != nil {
		t.Fatalf("IsUserInManualMode: %v", err)
	}
	if live {
		t.Fatal("expired session reported live")
	}
}

func TestPostManualModeLog(t *testing.T) {
	uc, detections := newTestUsecase()

	err := uc.PostManualModeLog(context.Background(), &anprdto.ManualLogInput{Plate: "KDA123B", GateID: 1})
	if err != nil {
		t.Fatalf("PostManualModeLog: %v", err)
	}
	if len(detections.detections) != 1 {
		t.Fatalf("detections = %d, want 1", len(detections.detections))
	}
	det := detections.detections[0]
	if det.Mode != domain.ModeManual || det.TruckNo != "KDA123B" || det.GateID != 1 {
		t.Errorf("detection = %+v", det)
	}

	if err := uc.PostManualModeLog(context.Background(), &anprdto.ManualLogInput{Plate: "KDA123B", GateID: 2}); !errors.Is(err, domain.ErrGateInactive) {
		t.Fatalf("inactive gate err = %v, want ErrGateInactive", err)
	}
	if err := uc.PostManualModeLog(context.Background(), &anprdto.ManualLogInput{GateID: 1}); err == nil {
		t.Fatal("missing plate accepted")
	}
}
