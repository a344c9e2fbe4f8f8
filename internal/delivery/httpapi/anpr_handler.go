package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gatelogix/tos-gate-service/internal/domain"
	anprdto "github.com/gatelogix/tos-gate-service/internal/usecase/dto/anpr"
	"github.com/gin-gonic/gin"
)

// vendorDetection accepts both wire shapes the deployed cameras produce: the
// flat push format and the nested Picture envelope.
type vendorDetection struct {
	RegNo    string `json:"reg_no"`
	CameraID string `json:"camera_id"`
	SnapTime string `json:"snap_time"`

	Picture *struct {
		Plate *struct {
			PlateNumber string `json:"PlateNumber"`
		} `json:"Plate"`
		SnapInfo *struct {
			DeviceID     string `json:"DeviceID"`
			AccurateTime string `json:"AccurateTime"`
		} `json:"SnapInfo"`
		Vehicle *struct {
			VehicleBoundingBox []float64 `json:"VehicleBoundingBox"`
		} `json:"Vehicle"`
	} `json:"Picture"`
}

// resolveDetection flattens whichever vendor shape arrived into the single
// internal input. The flat fields win only when all three are present, the
// same precedence the cameras were certified against.
func resolveDetection(payload vendorDetection, cameraType string) *anprdto.DetectionInput {
	in := &anprdto.DetectionInput{
		Plate:      payload.RegNo,
		CameraID:   payload.CameraID,
		CameraType: cameraType,
	}

	rawTime := payload.SnapTime
	if payload.RegNo == "" || payload.CameraID == "" || payload.SnapTime == "" {
		if pic := payload.Picture; pic != nil {
			if pic.Plate != nil {
				in.Plate = pic.Plate.PlateNumber
			}
			if pic.SnapInfo != nil {
				in.CameraID = pic.SnapInfo.DeviceID
				rawTime = pic.SnapInfo.AccurateTime
			}
			if pic.Vehicle != nil {
				for _, v := range pic.Vehicle.VehicleBoundingBox {
					if v > 0 {
						in.BoxPositive = true
						break
					}
				}
			}
		}
	}

	// An absent snap time stays zero so the required-field check fires; an
	// unparseable one degrades to receipt time.
	if rawTime != "" {
		in.SnapTime = parseSnapTime(rawTime)
	}
	return in
}

func parseSnapTime(raw string) time.Time {
	if at, err := time.Parse(time.RFC3339, raw); err == nil {
		return at
	}
	if at, err := time.Parse("2006-01-02 15:04:05", raw); err == nil {
		return at
	}
	if unix, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.Unix(unix, 0)
	}
	return time.Now()
}

// postDetection ingests one camera push. Missing required fields come back
// as 400 with the vendor's distinct error bodies; a missing plate is excused
// only when a vehicle bounding box is present, in which case the unlicensed
// decision is deferred to the snapshot-arming check downstream.
func (h *Handler) postDetection(c *gin.Context) {
	var payload vendorDetection
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, anprdto.DetectionOutput{Success: "False", Error: "malformed payload"})
		return
	}

	cameraType := c.DefaultQuery("camera_type", "1")
	in := resolveDetection(payload, cameraType)

	if in.Plate == "" && !in.BoxPositive {
		c.JSON(http.StatusBadRequest, anprdto.DetectionOutput{Success: "False", Error: "Plate number is required"})
		return
	}
	if in.CameraID == "" {
		c.JSON(http.StatusBadRequest, anprdto.DetectionOutput{Success: "False", Error: "Activity point is required"})
		return
	}
	if in.SnapTime.IsZero() {
		c.JSON(http.StatusBadRequest, anprdto.DetectionOutput{Success: "False", Error: "Snap time is required"})
		return
	}

	out, err := h.ANPR.Ingest(c.Request.Context(), in)
	if err != nil {
		if reason, rejected := domain.RejectionReason(err); rejected {
			c.JSON(http.StatusBadRequest, anprdto.DetectionOutput{Success: "False", Error: reason})
			return
		}
		// Cameras retry forever on non-200; infrastructure trouble is
		// acknowledged and logged instead.
		h.Log.Error("detection ingest failed", "error", err)
		c.JSON(http.StatusOK, anprdto.DetectionOutput{Success: "False", Error: "internal error"})
		return
	}
	c.JSON(http.StatusOK, out)
}
