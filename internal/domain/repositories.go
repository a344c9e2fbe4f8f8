package domain

import (
	"context"
	"time"
)

type DeliveryOrderRepository interface {
	// CreateOrder inserts the order with a generated date+sequence order
	// number and its resolved item lines in one transaction. Returns the
	// order number.
	CreateOrder(ctx context.Context, order *DeliveryOrder) (string, error)
	GetByRef(ctx context.Context, ref OrderRef) (*DeliveryOrder, error)
	// UpdateFields merges non-nil fields into an active order; weight and
	// phase columns are never touched here.
	UpdateFields(ctx context.Context, orderID uint, update OrderUpdate) error
	// AppendItems inserts additional resolved item lines for an order.
	AppendItems(ctx context.Context, orderID uint, items []OrderItem) error
	// SetActive flips isactive by order number. Reactivating an inactive
	// order is rejected.
	SetActive(ctx context.Context, orderNumber string, active bool) error
	List(ctx context.Context, filter OrderFilter) ([]*DeliveryOrder, error)
	// CorrectPlate swaps the truck number on an order and backfills the
	// detection trail in one transaction.
	CorrectPlate(ctx context.Context, orderNumber, oldPlate, newPlate string) error
}

type ActivityRepository interface {
	ActiveByOrderAndType(ctx context.Context, orderID uint, t ActivityType) (*Activity, error)
	ByID(ctx context.Context, id uint) (*Activity, error)
	// CreateFirstWeight inserts the tare activity and advances the order's
	// activity check in one transaction. The duplicate-active-tare guard is
	// re-checked under the order row lock.
	CreateFirstWeight(ctx context.Context, act *Activity) error
	// CaptureSecondWeight locks the order row, requires an active tare
	// activity, writes the gross fields onto it, and cascades measurement
	// and phase to the order. Net weight is abs(gross - tare).
	CaptureSecondWeight(ctx context.Context, cap SecondWeightCapture) (*SecondWeightResult, error)
	// Approve closes the activity under administrative override and
	// soft-deletes its delivery order in one transaction.
	Approve(ctx context.Context, activityID, approvedBy uint, reason string) (*Activity, error)
	ListByOrder(ctx context.Context, orderID uint) ([]*Activity, error)
	LatestSnapshots(ctx context.Context, truckNo string) ([]string, error)
}

type DetectionRepository interface {
	CreateLog(ctx context.Context, log *DetectionLog) (uint, error)
	CreateDetection(ctx context.Context, det *Detection) (uint, error)
	// AttachWeight writes the correlated weight onto both records of one
	// plate read. Idempotence is the caller's concern: the correlator
	// invokes it at most once per session.
	AttachWeight(ctx context.Context, logID, detectionID uint, weight float64) error
	// TrucksAtGate returns detections within the rolling lookback window,
	// newest first, optionally filtered by gate and plate fragment.
	TrucksAtGate(ctx context.Context, gateID uint, search string, lookback time.Duration) ([]*TruckAtGate, error)
	LatestByPlate(ctx context.Context, truckNo string) (*Detection, error)
}

type GateRepository interface {
	ByName(ctx context.Context, name string) (*ActivityPoint, error)
	ByID(ctx context.Context, id uint) (*ActivityPoint, error)
	// ByCamera finds the gate owning a camera id, feeding the weight
	// correlation handoff.
	ByCamera(ctx context.Context, cameraID int64) (*ActivityPoint, error)
	Upsert(ctx context.Context, point *ActivityPoint) error
	List(ctx context.Context, search string) ([]*ActivityPoint, error)
	UpsertCamera(ctx context.Context, cam *Camera) (uint, error)
	ListCameras(ctx context.Context) ([]*Camera, error)
}

type ManualModeRepository interface {
	// Request inserts a pending session unless the user already holds a
	// pending or approved one; the check and insert share one transaction.
	Request(ctx context.Context, userID uint, reason string) (*ManualModeSession, error)
	Approve(ctx context.Context, id uint, expiresAt time.Time) (*ManualModeSession, error)
	Reject(ctx context.Context, id uint, reason string) (*ManualModeSession, error)
	Extend(ctx context.Context, id uint, newExpiry time.Time) (*ManualModeSession, error)
	End(ctx context.Context, id uint) (*ManualModeSession, error)
	LiveByUser(ctx context.Context, userID uint) (*ManualModeSession, error)
	List(ctx context.Context) ([]*ManualModeSession, error)
}

// ReferenceKind names an external reference-data entity consumed through the
// lookup contract.
type ReferenceKind string

const (
	RefCustomer     ReferenceKind = "customer"
	RefDriver       ReferenceKind = "driver"
	RefProductType  ReferenceKind = "product type"
	RefPackingType  ReferenceKind = "packing type"
	RefVessel       ReferenceKind = "vessel"
	RefWheatType    ReferenceKind = "wheat type"
	RefTransporter  ReferenceKind = "transporter"
	RefBuyingCenter ReferenceKind = "buying center"
	RefSupplier     ReferenceKind = "supplier"
	RefPurchaseType ReferenceKind = "purchase type"
)

type ReferenceRepository interface {
	// ValidateActive confirms the referenced row exists and is active,
	// returning a rejection naming the kind otherwise.
	ValidateActive(ctx context.Context, kind ReferenceKind, id uint) error
	// FindOrCreateProductByCode resolves an item code to a product id,
	// creating the product when missing. Idempotent under concurrent
	// identical codes: first writer wins, later writers read the winner.
	FindOrCreateProductByCode(ctx context.Context, code, name string) (uint, error)
}
