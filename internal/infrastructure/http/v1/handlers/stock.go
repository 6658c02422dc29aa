package handlers

import (
	"github.com/gin-gonic/gin"

	"paneerflow/internal/domain/stock"
	"paneerflow/internal/infrastructure/http/v1/dto"
)

// StockHandler handles stock ledger and batch log endpoints.
type StockHandler struct {
	*BaseHandler
	service *stock.Service
}

// NewStockHandler creates a new stock handler.
func NewStockHandler(base *BaseHandler, service *stock.Service) *StockHandler {
	return &StockHandler{
		BaseHandler: base,
		service:     service,
	}
}

// GetStock handles GET /api/stock
func (h *StockHandler) GetStock(c *gin.Context) {
	ledger, err := h.service.Get(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, ledger)
}

// ReceiveBatch handles POST /api/batch
func (h *StockHandler) ReceiveBatch(c *gin.Context) {
	var req dto.ReceiveBatchRequest
	if !h.BindJSON(c, &req) {
		return
	}

	_, err := h.service.ReceiveBatch(c.Request.Context(), req.Quantity, req.PurchasePrice, req.ReceivedAt)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "")
}

// ListBatches handles GET /api/batches
func (h *StockHandler) ListBatches(c *gin.Context) {
	limit := h.ParseIntQuery(c, "limit", 0)

	batches, err := h.service.ListBatches(c.Request.Context(), limit)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, batches)
}

// SetPrice handles PUT /api/stock/price
func (h *StockHandler) SetPrice(c *gin.Context) {
	var req dto.SetPriceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.SetSellingPrice(c.Request.Context(), req.SellingPricePerKg); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "")
}
