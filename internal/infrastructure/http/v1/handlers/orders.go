package handlers

import (
	"github.com/gin-gonic/gin"

	"paneerflow/internal/domain/orders"
	"paneerflow/internal/infrastructure/http/v1/dto"
)

// OrdersHandler handles order book endpoints.
type OrdersHandler struct {
	*BaseHandler
	service *orders.Service
}

// NewOrdersHandler creates a new orders handler.
func NewOrdersHandler(base *BaseHandler, service *orders.Service) *OrdersHandler {
	return &OrdersHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Create handles POST /api/orders
func (h *OrdersHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	order, err := h.service.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.OrderCreatedResponse{Success: true, OrderID: order.ID})
}

// List handles GET /api/orders
func (h *OrdersHandler) List(c *gin.Context) {
	result, err := h.service.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		h.Error(c, err)
		return
	}

	// Empty list marshals as [], not null.
	if result == nil {
		result = []orders.Order{}
	}
	h.OK(c, result)
}

// Deliver handles POST /api/deliver
func (h *OrdersHandler) Deliver(c *gin.Context) {
	var req dto.DeliverRequest
	if !h.BindJSON(c, &req) {
		return
	}

	_, err := h.service.Deliver(c.Request.Context(), req.OrderID, orders.PaymentMode(req.PaymentMode))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "")
}
