package rest

import (
	"net/http"
	"strconv"

	"shopcore-be/internal/product"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ProductHandler struct {
	svc product.Service
}

func NewProductHandler(svc product.Service) *ProductHandler {
	return &ProductHandler{svc: svc}
}

type productRequest struct {
	Name          string          `json:"name" binding:"required,max=200"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price" binding:"required"`
	StockQuantity int             `json:"stockQuantity"`
	ImageURL      *string         `json:"imageUrl"`
	Active        *bool           `json:"active"`
	CategoryID    int64           `json:"categoryId" binding:"required"`
}

func (r productRequest) params() product.ProductParams {
	return product.ProductParams{
		Name:          r.Name,
		Description:   r.Description,
		Price:         r.Price,
		StockQuantity: r.StockQuantity,
		ImageURL:      r.ImageURL,
		Active:        r.Active,
		CategoryID:    r.CategoryID,
	}
}

func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.svc.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) ListAll(c *gin.Context) {
	products, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	p, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) ListByCategory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	products, err := h.svc.ListByCategory(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Search(c *gin.Context) {
	products, err := h.svc.Search(c.Request.Context(), c.Query("keyword"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	p, err := h.svc.Create(c.Request.Context(), req.params())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	p, err := h.svc.Update(c.Request.Context(), id, req.params())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}

func (h *ProductHandler) AdjustStock(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	delta, err := strconv.Atoi(c.Query("delta"))
	if err != nil || delta == 0 {
		respondBadRequest(c, "delta must be a non-zero integer")
		return
	}

	p, err := h.svc.AdjustStock(c.Request.Context(), id, delta)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
