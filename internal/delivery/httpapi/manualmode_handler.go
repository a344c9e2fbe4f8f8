package httpapi

import (
	"strconv"
	"time"

	"github.com/gatelogix/tos-gate-service/internal/delivery/httpapi/middleware"
	anprdto "github.com/gatelogix/tos-gate-service/internal/usecase/dto/anpr"
	"github.com/gin-gonic/gin"
)

type manualRequestBody struct {
	Reason string `json:"reason" binding:"required"`
}

func (h *Handler) requestManualMode(c *gin.Context) {
	user, _ := middleware.UserFrom(c)

	var req manualRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "reason is required")
		return
	}
	session, err := h.ManualMode.Request(c.Request.Context(), user.ID, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, session)
}

type manualApproveBody struct {
	// DurationMinutes bounds the override window. Defaults to 30.
	DurationMinutes int `json:"duration_minutes"`
}

func (h *Handler) approveManualMode(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid session id")
		return
	}
	var req manualApproveBody
	_ = c.ShouldBindJSON(&req)
	if req.DurationMinutes <= 0 {
		req.DurationMinutes = 30
	}

	expiresAt := time.Now().Add(time.Duration(req.DurationMinutes) * time.Minute)
	session, err := h.ManualMode.Approve(c.Request.Context(), uint(id), expiresAt)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, session)
}

type manualRejectBody struct {
	Reason string `json:"reason"`
}

func (h *Handler) rejectManualMode(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid session id")
		return
	}
	var req manualRejectBody
	_ = c.ShouldBindJSON(&req)

	session, err := h.ManualMode.Reject(c.Request.Context(), uint(id), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, session)
}

func (h *Handler) extendManualMode(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid session id")
		return
	}
	var req manualApproveBody
	_ = c.ShouldBindJSON(&req)
	if req.DurationMinutes <= 0 {
		req.DurationMinutes = 30
	}

	session, err := h.ManualMode.Extend(c.Request.Context(), uint(id),
		time.Now().Add(time.Duration(req.DurationMinutes)*time.Minute))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, session)
}

func (h *Handler) endManualMode(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid session id")
		return
	}
	session, err := h.ManualMode.End(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, session)
}

func (h *Handler) manualModeStatus(c *gin.Context) {
	user, _ := middleware.UserFrom(c)
	live, err := h.ManualMode.IsUserInManualMode(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"manual_mode": live})
}

func (h *Handler) listManualSessions(c *gin.Context) {
	sessions, err := h.ManualMode.ListSessions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, sessions)
}

type manualLogBody struct {
	Plate  string `json:"plate" binding:"required"`
	GateID uint   `json:"gate_id" binding:"required"`
}

// postManualLog records an operator-entered plate while the gate runs in
// manual mode.
func (h *Handler) postManualLog(c *gin.Context) {
	var req manualLogBody
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "plate and gate_id are required")
		return
	}
	err := h.ManualMode.PostManualModeLog(c.Request.Context(), &anprdto.ManualLogInput{
		Plate:  req.Plate,
		GateID: req.GateID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"plate": req.Plate})
}
