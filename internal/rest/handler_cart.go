package rest

import (
	"net/http"
	"strconv"

	"shopcore-be/internal/cart"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	svc cart.Service
}

func NewCartHandler(svc cart.Service) *CartHandler {
	return &CartHandler{svc: svc}
}

type addToCartRequest struct {
	ProductID int64 `json:"productId" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,min=1"`
}

func (h *CartHandler) Get(c *gin.Context) {
	p, _ := GetPrincipal(c)

	result, err := h.svc.GetCart(c.Request.Context(), p.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *CartHandler) Add(c *gin.Context) {
	p, _ := GetPrincipal(c)

	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	result, err := h.svc.AddToCart(c.Request.Context(), cart.AddToCartParams{
		UserID:    p.UserID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *CartHandler) UpdateItem(c *gin.Context) {
	p, _ := GetPrincipal(c)

	itemID, ok := paramID(c, "id")
	if !ok {
		return
	}

	quantity, err := strconv.Atoi(c.Query("quantity"))
	if err != nil {
		respondBadRequest(c, "quantity must be an integer")
		return
	}

	result, err := h.svc.UpdateItem(c.Request.Context(), cart.UpdateItemParams{
		UserID:   p.UserID,
		ItemID:   itemID,
		Quantity: quantity,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	p, _ := GetPrincipal(c)

	itemID, ok := paramID(c, "id")
	if !ok {
		return
	}

	result, err := h.svc.RemoveItem(c.Request.Context(), p.UserID, itemID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *CartHandler) Clear(c *gin.Context) {
	p, _ := GetPrincipal(c)

	if err := h.svc.ClearCart(c.Request.Context(), p.UserID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
}
