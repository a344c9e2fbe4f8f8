package httpapi

import (
	"strconv"

	orderdto "github.com/gatelogix/tos-gate-service/internal/usecase/dto/order"
	"github.com/gin-gonic/gin"
)

type itemRequest struct {
	ProductID       *uint   `json:"product_id"`
	ProductCode     string  `json:"product_code"`
	ProductName     string  `json:"product_name"`
	PackingTypeID   uint    `json:"packing_type_id"`
	Unit            string  `json:"unit"`
	Quantity        float64 `json:"quantity"`
	Source          string  `json:"source"`
	Destination     string  `json:"destination"`
	TransactionType string  `json:"transaction_type"`
}

func toItemInputs(items []itemRequest) []orderdto.ItemInput {
	out := make([]orderdto.ItemInput, 0, len(items))
	for _, it := range items {
		out = append(out, orderdto.ItemInput{
			ProductID:       it.ProductID,
			ProductCode:     it.ProductCode,
			ProductName:     it.ProductName,
			PackingTypeID:   it.PackingTypeID,
			Unit:            it.Unit,
			Quantity:        it.Quantity,
			Source:          it.Source,
			Destination:     it.Destination,
			TransactionType: it.TransactionType,
		})
	}
	return out
}

type createOrderRequest struct {
	TruckNo           string `json:"truck_no" binding:"required"`
	TrailerNo         string `json:"trailer_no"`
	DONumber          string `json:"do_number"`
	OrderType         string `json:"order_type"`
	StockTransferCode string `json:"stock_transfer_code"`

	CustomerID     *uint `json:"customer_id"`
	DriverID       *uint `json:"driver_id"`
	ProductTypeID  *uint `json:"product_type_id"`
	PackingTypeID  *uint `json:"packing_type_id"`
	VesselID       *uint `json:"vessel_id"`
	WheatTypeID    *uint `json:"wheat_type_id"`
	TransporterID  *uint `json:"transporter_id"`
	BuyingCenterID *uint `json:"buying_center_id"`
	SupplierID     *uint `json:"supplier_id"`
	PurchaseTypeID *uint `json:"purchase_type_id"`

	Items []itemRequest `json:"items"`
}

func (r createOrderRequest) toInput() *orderdto.CreateOrderInput {
	return &orderdto.CreateOrderInput{
		TruckNo:           r.TruckNo,
		TrailerNo:         r.TrailerNo,
		DONumber:          r.DONumber,
		OrderType:         r.OrderType,
		StockTransferCode: r.StockTransferCode,
		CustomerID:        r.CustomerID,
		DriverID:          r.DriverID,
		ProductTypeID:     r.ProductTypeID,
		PackingTypeID:     r.PackingTypeID,
		VesselID:          r.VesselID,
		WheatTypeID:       r.WheatTypeID,
		TransporterID:     r.TransporterID,
		BuyingCenterID:    r.BuyingCenterID,
		SupplierID:        r.SupplierID,
		PurchaseTypeID:    r.PurchaseTypeID,
		Items:             toItemInputs(r.Items),
	}
}

func (h *Handler) createOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "truck_no is required")
		return
	}
	out, err := h.Orders.CreateOrder(c.Request.Context(), req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, out)
}

type updateOrderRequest struct {
	TruckNo           *string `json:"truck_no"`
	TrailerNo         *string `json:"trailer_no"`
	DONumber          *string `json:"do_number"`
	OrderType         *string `json:"order_type"`
	StockTransferCode *string `json:"stock_transfer_code"`

	CustomerID     *uint `json:"customer_id"`
	DriverID       *uint `json:"driver_id"`
	ProductTypeID  *uint `json:"product_type_id"`
	PackingTypeID  *uint `json:"packing_type_id"`
	VesselID       *uint `json:"vessel_id"`
	WheatTypeID    *uint `json:"wheat_type_id"`
	TransporterID  *uint `json:"transporter_id"`
	BuyingCenterID *uint `json:"buying_center_id"`
	SupplierID     *uint `json:"supplier_id"`
	PurchaseTypeID *uint `json:"purchase_type_id"`

	Items []itemRequest `json:"items"`
}

func (r updateOrderRequest) toInput(ref string) *orderdto.UpdateOrderInput {
	return &orderdto.UpdateOrderInput{
		OrderRef:          ref,
		TruckNo:           r.TruckNo,
		TrailerNo:         r.TrailerNo,
		DONumber:          r.DONumber,
		OrderType:         r.OrderType,
		StockTransferCode: r.StockTransferCode,
		CustomerID:        r.CustomerID,
		DriverID:          r.DriverID,
		ProductTypeID:     r.ProductTypeID,
		PackingTypeID:     r.PackingTypeID,
		VesselID:          r.VesselID,
		WheatTypeID:       r.WheatTypeID,
		TransporterID:     r.TransporterID,
		BuyingCenterID:    r.BuyingCenterID,
		SupplierID:        r.SupplierID,
		PurchaseTypeID:    r.PurchaseTypeID,
		Items:             toItemInputs(r.Items),
	}
}

func (h *Handler) updateOrder(c *gin.Context) {
	var req updateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "malformed payload")
		return
	}
	input := req.toInput(c.Param("ref"))
	if err := h.Orders.UpdateOrder(c.Request.Context(), input); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"order_ref": input.OrderRef})
}

type setActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

func (h *Handler) setOrderActive(c *gin.Context) {
	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "active is required")
		return
	}
	number := c.Param("ref")
	if err := h.Orders.SetOrderActive(c.Request.Context(), number, *req.Active); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"order_number": number, "active": *req.Active})
}

type correctPlateRequest struct {
	OrderNumber string `json:"order_number" binding:"required"`
	OldPlate    string `json:"old_plate"`
	NewPlate    string `json:"new_plate" binding:"required"`
	GateID      uint   `json:"gate_id"`
}

func (h *Handler) correctPlate(c *gin.Context) {
	var req correctPlateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "order_number and new_plate are required")
		return
	}
	err := h.Orders.CorrectPlate(c.Request.Context(), &orderdto.CorrectPlateInput{
		OrderNumber: req.OrderNumber,
		OldPlate:    req.OldPlate,
		NewPlate:    req.NewPlate,
		GateID:      req.GateID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"order_number": req.OrderNumber})
}

func (h *Handler) getOrder(c *gin.Context) {
	order, err := h.Orders.GetOrder(c.Request.Context(), c.Param("ref"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, order)
}

func (h *Handler) listOrders(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	input := &orderdto.ListOrdersInput{
		TruckNo:     c.Query("truck_no"),
		OrderNumber: c.Query("order_number"),
		ActiveOnly:  c.Query("active") == "true",
		Page:        page,
		Limit:       limit,
	}
	orders, err := h.Orders.ListOrders(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, orders)
}
