package httpapi

import (
	"strconv"

	"github.com/gatelogix/tos-gate-service/internal/delivery/httpapi/middleware"
	activitydto "github.com/gatelogix/tos-gate-service/internal/usecase/dto/activity"
	"github.com/gin-gonic/gin"
)

type recordWeighingRequest struct {
	OrderRef     string  `json:"order_ref"`
	ActivityType string  `json:"activity_type" binding:"required"`
	Weight       float64 `json:"weight"`

	TruckNo            string   `json:"truck_no"`
	TrailerNo          string   `json:"trailer_no"`
	SecondTruckNo      string   `json:"second_truck_no"`
	AvgWeight          float64  `json:"avg_weight"`
	Snapshots          []string `json:"snapshots"`
	WeighbridgeDetails string   `json:"weighbridge_details"`

	GateID uint `json:"gate_id" binding:"required"`

	Order  *createOrderRequest `json:"order"`
	Update *updateOrderRequest `json:"update"`
}

func (h *Handler) recordWeighing(c *gin.Context) {
	user, _ := middleware.UserFrom(c)

	var req recordWeighingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "activity_type and gate_id are required")
		return
	}

	input := &activitydto.RecordWeighingInput{
		OrderRef:           req.OrderRef,
		ActivityType:       req.ActivityType,
		Weight:             req.Weight,
		TruckNo:            req.TruckNo,
		TrailerNo:          req.TrailerNo,
		SecondTruckNo:      req.SecondTruckNo,
		AvgWeight:          req.AvgWeight,
		Snapshots:          req.Snapshots,
		WeighbridgeDetails: req.WeighbridgeDetails,
		OperatorID:         user.ID,
		GateID:             req.GateID,
	}
	if req.Order != nil {
		input.Order = req.Order.toInput()
	}
	if req.Update != nil {
		input.Update = req.Update.toInput(req.OrderRef)
	}

	out, err := h.Activities.RecordWeighing(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, out)
}

type approveActivityRequest struct {
	Reason string `json:"reason"`
}

func (h *Handler) approveActivity(c *gin.Context) {
	user, _ := middleware.UserFrom(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid activity id")
		return
	}
	var req approveActivityRequest
	_ = c.ShouldBindJSON(&req)

	out, err := h.Activities.ApproveActivity(c.Request.Context(), &activitydto.ApproveActivityInput{
		ActivityID: uint(id),
		ApprovedBy: user.ID,
		Reason:     req.Reason,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, out)
}

func (h *Handler) activitiesByOrder(c *gin.Context) {
	out, err := h.Activities.ActivitiesByOrder(c.Request.Context(), c.Param("ref"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, out)
}

func (h *Handler) trucksAtGate(c *gin.Context) {
	gateID, _ := strconv.ParseUint(c.Query("gate_id"), 10, 32)
	out, err := h.Activities.TrucksAtGate(c.Request.Context(), &activitydto.TruckAtGateInput{
		GateID: uint(gateID),
		Search: c.Query("search"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, out)
}
