package httpapi

import (
	"strconv"

	"github.com/gatelogix/tos-gate-service/internal/domain"
	"github.com/gin-gonic/gin"
)

type upsertGateRequest struct {
	Name      string  `json:"name" binding:"required"`
	Address   string  `json:"address" binding:"required"`
	IsActive  *bool   `json:"is_active"`
	CameraIDs []int64 `json:"camera_ids"`
}

func (h *Handler) upsertGate(c *gin.Context) {
	var req upsertGateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "name and address are required")
		return
	}
	point := &domain.ActivityPoint{
		Name:      req.Name,
		Address:   req.Address,
		IsActive:  true,
		CameraIDs: req.CameraIDs,
	}
	if req.IsActive != nil {
		point.IsActive = *req.IsActive
	}
	if err := h.Gates.UpsertGate(c.Request.Context(), point); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, point)
}

func (h *Handler) getGate(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid gate id")
		return
	}
	point, err := h.Gates.GetGate(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, point)
}

func (h *Handler) listGates(c *gin.Context) {
	points, err := h.Gates.ListGates(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, points)
}

// armCapture primes the one-shot snapshot signal for a gate's camera lane so
// the next dummy-plate read is accepted as an unlicensed vehicle.
func (h *Handler) armCapture(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid gate id")
		return
	}
	cameraType := c.DefaultQuery("camera_type", "1")

	ref, err := h.Gates.ArmCapture(c.Request.Context(), uint(id), cameraType)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"capture_ref": ref})
}

type upsertCameraRequest struct {
	Model         string `json:"model"`
	IPAddress     string `json:"ip_address" binding:"required"`
	RTSPURL       string `json:"rtsp_url"`
	Status        string `json:"status"`
	Configuration string `json:"configuration"`
	Username      string `json:"username"`
	Password      string `json:"password"`
}

func (h *Handler) upsertCamera(c *gin.Context) {
	var req upsertCameraRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "ip_address is required")
		return
	}
	cam := &domain.Camera{
		Model:         req.Model,
		IPAddress:     req.IPAddress,
		RTSPURL:       req.RTSPURL,
		Status:        req.Status,
		Configuration: req.Configuration,
		Username:      req.Username,
		Password:      req.Password,
	}
	id, err := h.Gates.UpsertCamera(c.Request.Context(), cam)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"camera_id": id})
}

func (h *Handler) listCameras(c *gin.Context) {
	cams, err := h.Gates.ListCameras(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, cams)
}
