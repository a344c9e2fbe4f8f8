package activity

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/gatelogix/tos-gate-service/internal/domain"
	"github.com/gatelogix/tos-gate-service/internal/infrastructure/kafka"
	"github.com/gatelogix/tos-gate-service/internal/infrastructure/metrics"
	"github.com/gatelogix/tos-gate-service/internal/usecase/order"
)

// One metrics instance per test binary; promauto registers globally.
var testMetrics = metrics.NewGateMetrics()

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	seq    uint
	orders map[uint]*domain.DeliveryOrder
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uint]*domain.DeliveryOrder)}
}

func (r *fakeOrderRepo) CreateOrder(ctx context.Context, o *domain.DeliveryOrder) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	o.ID = r.seq
	o.OrderNumber = fmt.Sprintf("%s%04d", time.Now().Format("20060102"), r.seq)
	o.CreatedAt = time.Now()
	cp := *o
	r.orders[o.ID] = &cp
	return o.OrderNumber, nil
}

func (r *fakeOrderRepo) GetByRef(ctx context.Context, ref domain.OrderRef) (*domain.DeliveryOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if (ref.ID != 0 && o.ID == ref.ID) || (ref.Number != "" && o.OrderNumber == ref.Number) {
			cp := *o
			return &cp, nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

func (r *fakeOrderRepo) UpdateFields(ctx context.Context, orderID uint, update domain.OrderUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[orderID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	if update.TruckNo != nil {
		o.TruckNo = *update.TruckNo
	}
	if update.TrailerNo != nil {
		o.TrailerNo = *update.TrailerNo
	}
	if update.CustomerID != nil {
		o.CustomerID = update.CustomerID
	}
	if update.OrderType != nil {
		o.OrderType = *update.OrderType
	}
	return nil
}

func (r *fakeOrderRepo) AppendItems(ctx context.Context, orderID uint, items []domain.OrderItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[orderID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	o.Items = append(o.Items, items...)
	return nil
}

func (r *fakeOrderRepo) SetActive(ctx context.Context, orderNumber string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.OrderNumber == orderNumber {
			if active && !o.IsActive {
				return domain.ErrOrderReactivate
			}
			o.IsActive = active
			return nil
		}
	}
	return domain.ErrOrderNotFound
}

func (r *fakeOrderRepo) List(ctx context.Context, filter domain.OrderFilter) ([]*domain.DeliveryOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.DeliveryOrder
	for _, o := range r.orders {
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeOrderRepo) CorrectPlate(ctx context.Context, orderNumber, oldPlate, newPlate string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.OrderNumber == orderNumber {
			o.OldTruckNo = oldPlate
			o.TruckNo = newPlate
			return nil
		}
	}
	return domain.ErrOrderNotFound
}

// mutate applies fn to the stored order under the lock. Test and repo-cascade
// helper.
func (r *fakeOrderRepo) mutate(orderID uint, fn func(*domain.DeliveryOrder)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[orderID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	fn(o)
	return nil
}

type fakeActivityRepo struct {
	mu     sync.Mutex
	seq    uint
	acts   map[uint]*domain.Activity
	orders *fakeOrderRepo
}

func newFakeActivityRepo(orders *fakeOrderRepo) *fakeActivityRepo {
	return &fakeActivityRepo{acts: make(map[uint]*domain.Activity), orders: orders}
}

func (r *fakeActivityRepo) ActiveByOrderAndType(ctx context.Context, orderID uint, t domain.ActivityType) (*domain.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.activeLocked(orderID, t), nil
}

func (r *fakeActivityRepo) activeLocked(orderID uint, t domain.ActivityType) *domain.Activity {
	for _, a := range r.acts {
		if a.DeliveryOrderID == orderID && a.Type == t && a.IsActive {
			cp := *a
			return &cp
		}
	}
	return nil
}

func (r *fakeActivityRepo) ByID(ctx context.Context, id uint) (*domain.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.acts[id]
	if !ok {
		return nil, domain.ErrActivityNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeActivityRepo) CreateFirstWeight(ctx context.Context, act *domain.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.activeLocked(act.DeliveryOrderID, domain.ActivityTare) != nil {
		return domain.ErrActivityExists
	}
	r.seq++
	act.ID = r.seq
	act.CreatedAt = time.Now()
	cp := *act
	r.acts[act.ID] = &cp
	return r.orders.mutate(act.DeliveryOrderID, func(o *domain.DeliveryOrder) {
		o.ActivityCheck = domain.CheckTare
	})
}

func (r *fakeActivityRepo) CaptureSecondWeight(ctx context.Context, cap domain.SecondWeightCapture) (*domain.SecondWeightResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var tare *domain.Activity
	for _, a := range r.acts {
		if a.DeliveryOrderID == cap.OrderID && a.Type == domain.ActivityTare && a.IsActive && a.TareWeight != nil {
			tare = a
			break
		}
	}
	if tare == nil {
		return nil, domain.ErrNoTareWeight
	}

	gross := cap.GrossWeight
	net := math.Abs(gross - *tare.TareWeight)
	tare.GrossWeight = &gross
	tare.Qty = &net
	tare.SecondTruckNo = cap.TruckNo
	tare.SecondWeight = cap.Stamp
	tare.IsActive = cap.KeepActive

	var orderNumber string
	err := r.orders.mutate(cap.OrderID, func(o *domain.DeliveryOrder) {
		o.ActivityCheck = domain.CheckGross
		o.Measurement = net
		orderNumber = o.OrderNumber
	})
	if err != nil {
		return nil, err
	}
	return &domain.SecondWeightResult{ActivityID: tare.ID, OrderNumber: orderNumber, NetWeight: net}, nil
}

func (r *fakeActivityRepo) Approve(ctx context.Context, activityID, approvedBy uint, reason string) (*domain.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.acts[activityID]
	if !ok {
		return nil, domain.ErrActivityNotFound
	}
	now := time.Now()
	a.ApprovedBy = &approvedBy
	a.ApprovedAt = &now
	a.Reason = reason
	a.IsActive = false
	if err := r.orders.mutate(a.DeliveryOrderID, func(o *domain.DeliveryOrder) {
		o.IsActive = false
	}); err != nil {
		return nil, err
	}
	cp := *a
	return &cp, nil
}

func (r *fakeActivityRepo) ListByOrder(ctx context.Context, orderID uint) ([]*domain.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Activity
	for _, a := range r.acts {
		if a.DeliveryOrderID == orderID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeActivityRepo) LatestSnapshots(ctx context.Context, truckNo string) ([]string, error) {
	return nil, nil
}

type fakeDetectionRepo struct {
	mu         sync.Mutex
	seq        uint
	logs       []*domain.DetectionLog
	detections []*domain.Detection
	atGate     []*domain.TruckAtGate
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
	r.seq++
	det.ID = r.seq
	r.detections = append(r.detections, det)
	return det.ID, nil
}

func (r *fakeDetectionRepo) AttachWeight(ctx context.Context, logID, detectionID uint, weight float64) error {
	return nil
}

func (r *fakeDetectionRepo) TrucksAtGate(ctx context.Context, gateID uint, search string, lookback time.Duration) ([]*domain.TruckAtGate, error) {
	return r.atGate, nil
}

func (r *fakeDetectionRepo) LatestByPlate(ctx context.Context, truckNo string) (*domain.Detection, error) {
	return nil, domain.ErrTruckNotFound
}

type fakeGateRepo struct {
	gates map[uint]*domain.ActivityPoint
}

func (r *fakeGateRepo) ByName(ctx context.Context, name string) (*domain.ActivityPoint, error) {
	for _, g := range r.gates {
		if g.Name == name {
			return g, nil
		}
	}
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
	for _, g := range r.gates {
		for _, id := range g.CameraIDs {
			if id == cameraID {
				return g, nil
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

type fakeRefRepo struct {
	mu       sync.Mutex
	seq      uint
	products map[string]uint
	inactive map[domain.ReferenceKind]uint
}

func newFakeRefRepo() *fakeRefRepo {
	return &fakeRefRepo{products: make(map[string]uint), inactive: make(map[domain.ReferenceKind]uint)}
}

func (r *fakeRefRepo) ValidateActive(ctx context.Context, kind domain.ReferenceKind, id uint) error {
	if bad, ok := r.inactive[kind]; ok && bad == id {
		return domain.NewRejection(string(kind) + " is not active")
	}
	return nil
}

func (r *fakeRefRepo) FindOrCreateProductByCode(ctx context.Context, code, name string) (uint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.products[code]; ok {
		return id, nil
	}
	r.seq++
	r.products[code] = r.seq
	return r.seq, nil
}

type fakePublisher struct {
	events chan kafka.WeighingEvent
}

func newFakePublisher() *fakePublisher {
	return &fakePublisher{events: make(chan kafka.WeighingEvent, 8)}
}

func (p *fakePublisher) PublishWeighing(ctx context.Context, event kafka.WeighingEvent) error {
	p.events <- event
	return nil
}

// env bundles a fully wired usecase over in-memory storage.
type env struct {
	orders     *fakeOrderRepo
	activities *fakeActivityRepo
	detections *fakeDetectionRepo
	gates      *fakeGateRepo
	publisher  *fakePublisher
	uc         *DefaultUsecase
}

func newEnv() *env {
	orders := newFakeOrderRepo()
	activities := newFakeActivityRepo(orders)
	detections := &fakeDetectionRepo{}
	gates := &fakeGateRepo{gates: map[uint]*domain.ActivityPoint{
		1: {ID: 1, Name: "WB-1", Address: "10.0.0.10", IsActive: true, CameraIDs: []int64{101}},
	}}
	publisher := newFakePublisher()

	orderUC := order.NewDefaultUsecase(orders, detections, newFakeRefRepo(), testMetrics, testLogger())
	uc := NewDefaultUsecase(activities, orders, detections, gates, orderUC, publisher, nil, testMetrics, testLogger())

	return &env{
		orders:     orders,
		activities: activities,
		detections: detections,
		gates:      gates,
		publisher:  publisher,
		uc:         uc,
	}
}
