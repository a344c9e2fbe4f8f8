package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// GateMetrics holds every metric of the gate service.
type GateMetrics struct {
	// Plate detections
	DetectionsTotal    prometheus.CounterVec
	DummyPlatesTotal   prometheus.Counter
	InvalidPlatesTotal prometheus.Counter

	// Weighings by phase
	WeighingsTotal  prometheus.CounterVec
	RejectionsTotal prometheus.CounterVec

	// Weight correlation
	CorrelationsTotal   prometheus.CounterVec
	CorrelationDuration prometheus.Histogram

	// Orders
	OrdersCreatedTotal    prometheus.Counter
	OrdersApprovedTotal   prometheus.Counter
	PlateCorrectionsTotal prometheus.Counter

	// Manual mode
	ManualSessionsTotal prometheus.CounterVec
}

func NewGateMetrics() *GateMetrics {
	return &GateMetrics{
		DetectionsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "anpr_detections_total",
				Help: "Plate detections received, by camera type and mode",
			},
			[]string{"camera_type", "mode"},
		),

		DummyPlatesTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "anpr_dummy_plates_total",
				Help: "Unlicensed vehicle detections recorded with a synthesized plate",
			},
		),

		InvalidPlatesTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "anpr_invalid_plates_total",
				Help: "Detections whose plate failed validation",
			},
		),

		WeighingsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "weighings_total",
				Help: "Completed weighbridge captures by phase",
			},
			[]string{"phase"},
		),

		RejectionsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "weighing_rejections_total",
				Help: "Business rejections by operation",
			},
			[]string{"operation"},
		),

		CorrelationsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "weight_correlations_total",
				Help: "Weight correlation sessions by outcome",
			},
			[]string{"outcome"},
		),

		CorrelationDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "weight_correlation_duration_seconds",
				Help:    "Time from detection to correlated weight",
				Buckets: prometheus.ExponentialBuckets(0.1, 2, 8), // 100ms, 200ms, 400ms...
			},
		),

		OrdersCreatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "delivery_orders_created_total",
				Help: "Delivery orders created, explicit and gate-synthesized",
			},
		),

		OrdersApprovedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "delivery_orders_approved_total",
				Help: "Delivery orders closed by administrative approval",
			},
		),

		PlateCorrectionsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "plate_corrections_total",
				Help: "Misread plates corrected after the fact",
			},
		),

		ManualSessionsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "manual_mode_sessions_total",
				Help: "Manual mode session transitions by status",
			},
			[]string{"status"},
		),
	}
}

func (m *GateMetrics) RecordDetection(cameraType, mode string) {
	m.DetectionsTotal.WithLabelValues(cameraType, mode).Inc()
}

func (m *GateMetrics) RecordDummyPlate() {
	m.DummyPlatesTotal.Inc()
}

func (m *GateMetrics) RecordInvalidPlate() {
	m.InvalidPlatesTotal.Inc()
}

func (m *GateMetrics) RecordWeighing(phase string) {
	m.WeighingsTotal.WithLabelValues(phase).Inc()
}

func (m *GateMetrics) RecordRejection(operation string) {
	m.RejectionsTotal.WithLabelValues(operation).Inc()
}

func (m *GateMetrics) RecordCorrelation(outcome string, durationSeconds float64) {
	m.CorrelationsTotal.WithLabelValues(outcome).Inc()
	if outcome == "matched" {
		m.CorrelationDuration.Observe(durationSeconds)
	}
}

func (m *GateMetrics) RecordOrderCreated() {
	m.OrdersCreatedTotal.Inc()
}

func (m *GateMetrics) RecordOrderApproved() {
	m.OrdersApprovedTotal.Inc()
}

func (m *GateMetrics) RecordPlateCorrection() {
	m.PlateCorrectionsTotal.Inc()
}

func (m *GateMetrics) RecordManualSession(status string) {
	m.ManualSessionsTotal.WithLabelValues(status).Inc()
}
