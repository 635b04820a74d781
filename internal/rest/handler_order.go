package rest

import (
	"net/http"

	"shopcore-be/internal/metrics"
	"shopcore-be/internal/order"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	svc order.Service
}

func NewOrderHandler(svc order.Service) *OrderHandler {
	return &OrderHandler{svc: svc}
}

type createOrderRequest struct {
	ShippingAddress string  `json:"shippingAddress" binding:"required"`
	PhoneNumber     *string `json:"phoneNumber"`
	Notes           *string `json:"notes"`
}

func (h *OrderHandler) Create(c *gin.Context) {
	p, _ := GetPrincipal(c)

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	o, err := h.svc.Create(c.Request.Context(), order.CreateOrderParams{
		UserID:          p.UserID,
		ShippingAddress: req.ShippingAddress,
		PhoneNumber:     req.PhoneNumber,
		Notes:           req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

func (h *OrderHandler) List(c *gin.Context) {
	p, _ := GetPrincipal(c)

	orders, err := h.svc.ListByUser(c.Request.Context(), p.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Get(c *gin.Context) {
	p, _ := GetPrincipal(c)

	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}

	o, err := h.svc.GetByID(c.Request.Context(), p.UserID, orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *OrderHandler) Cancel(c *gin.Context) {
	p, _ := GetPrincipal(c)

	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Cancel(c.Request.Context(), p.UserID, orderID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "order cancelled"})
}

func (h *OrderHandler) ListAll(c *gin.Context) {
	orders, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}

	status := c.Query("status")
	if status == "" {
		respondBadRequest(c, "status is required")
		return
	}

	o, err := h.svc.UpdateStatus(c.Request.Context(), orderID, status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// Stats reports the in-process application counters. Admin only.
func Stats(c *gin.Context) {
	c.JSON(http.StatusOK, metrics.Snapshot())
}
