package httpapi

import (
	"log/slog"

	"github.com/gatelogix/tos-gate-service/internal/config"
	"github.com/gatelogix/tos-gate-service/internal/delivery/httpapi/middleware"
	"github.com/gatelogix/tos-gate-service/internal/usecase/activity"
	"github.com/gatelogix/tos-gate-service/internal/usecase/anpr"
	"github.com/gatelogix/tos-gate-service/internal/usecase/gate"
	"github.com/gatelogix/tos-gate-service/internal/usecase/manualmode"
	"github.com/gatelogix/tos-gate-service/internal/usecase/order"
	"github.com/gatelogix/tos-gate-service/internal/weighstream"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handler struct {
	Orders     order.Usecase
	Activities activity.Usecase
	ANPR       anpr.Usecase
	ManualMode manualmode.Usecase
	Gates      gate.Usecase
	Weights    *weighstream.Server
	Log        *slog.Logger
}

func NewRouter(cfg *config.GateConfig, h *Handler) *gin.Engine {
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	// Camera firmwares cannot attach auth headers; the detection push stays
	// open and is only reachable from the camera VLAN.
	router.POST("/api/v1/anpr/detections", h.postDetection)

	v1 := router.Group("/api/v1", middleware.Auth(cfg.Auth.JWTSecret))
	{
		orders := v1.Group("/orders")
		{
			orders.POST("", h.createOrder)
			orders.GET("", h.listOrders)
			orders.GET("/:ref", h.getOrder)
			orders.PATCH("/:ref", h.updateOrder)
			orders.POST("/:ref/active", h.setOrderActive)
			orders.GET("/:ref/activities", h.activitiesByOrder)
		}
		v1.POST("/plate-corrections", h.correctPlate)

		activities := v1.Group("/activities")
		{
			activities.POST("/weighings", h.recordWeighing)
			activities.POST("/:id/approve", middleware.AdminOnly(), h.approveActivity)
		}
		v1.GET("/trucks-at-gate", h.trucksAtGate)

		gates := v1.Group("/gates")
		{
			gates.POST("", middleware.AdminOnly(), h.upsertGate)
			gates.GET("", h.listGates)
			gates.GET("/:id", h.getGate)
			gates.POST("/:id/capture", h.armCapture)
		}
		cameras := v1.Group("/cameras")
		{
			cameras.POST("", middleware.AdminOnly(), h.upsertCamera)
			cameras.GET("", h.listCameras)
		}

		manual := v1.Group("/manual-mode")
		{
			manual.POST("/requests", h.requestManualMode)
			manual.GET("/status", h.manualModeStatus)
			manual.POST("/logs", h.postManualLog)
			manual.GET("/sessions", middleware.AdminOnly(), h.listManualSessions)
			manual.POST("/sessions/:id/approve", middleware.AdminOnly(), h.approveManualMode)
			manual.POST("/sessions/:id/reject", middleware.AdminOnly(), h.rejectManualMode)
			manual.POST("/sessions/:id/extend", middleware.AdminOnly(), h.extendManualMode)
			manual.POST("/sessions/:id/end", h.endManualMode)
		}
	}

	if h.Weights != nil {
		router.GET("/ws/weights", middleware.Auth(cfg.Auth.JWTSecret), h.streamWeights)
	}

	return router
}
