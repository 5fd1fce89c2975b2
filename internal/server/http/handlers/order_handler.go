package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/sanda/internal/domain/model"
	"github.com/polkiloo/sanda/internal/server/http/dto"
	"github.com/polkiloo/sanda/internal/usecase"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid order payload")
		return
	}

	item := model.NoItem()
	switch {
	case req.ProductID != nil && req.ServiceID != nil:
		badRequest(c, "order may reference a product or a service, not both")
		return
	case req.ProductID != nil:
		item = model.ProductItem(*req.ProductID)
	case req.ServiceID != nil:
		item = model.ServiceItem(*req.ServiceID)
	}

	order, err := h.facade.CreateOrder(c.Request.Context(), usecase.NewOrder{
		RequesterID:      req.RequesterID,
		Name:             req.Name,
		Comment:          req.Comment,
		PhoneNumber:      req.PhoneNumber,
		Location:         req.Location,
		Category:         req.Category,
		Item:             item,
		GenderPreference: req.GenderPreference,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.OK("order created", dto.NewOrderResponse(*order)))
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.facade.ListOrders(c.Request.Context(), c.Query("status"))
	if err != nil {
		fail(c, err)
		return
	}
	success(c, "orders", dto.NewOrderResponses(orders))
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	order, err := h.facade.GetOrder(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, "order", dto.NewOrderResponse(*order))
}

// AdvanceStatus handles POST /api/orders/:id/status.
func (h *OrderHandler) AdvanceStatus(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req dto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "status is required")
		return
	}
	order, err := h.facade.AdvanceStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, "order status updated", dto.NewOrderResponse(*order))
}

// Cancel handles POST /api/orders/:id/cancel.
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	if err := h.facade.CancelOrderByRequester(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	success(c, "order cancelled", nil)
}

// DeleteDone handles DELETE /api/orders/:id/done.
func (h *OrderHandler) DeleteDone(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	if err := h.facade.MarkDoneAndDelete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	success(c, "order deleted", nil)
}

// UserOrders handles GET /api/users/:id/orders.
func (h *OrderHandler) UserOrders(c *gin.Context) {
	userID, valid := pathID(c, "id")
	if !valid {
		return
	}
	orders, err := h.facade.UserOrders(c.Request.Context(), userID, c.Query("status"), queryBool(c, "exclude"))
	if err != nil {
		fail(c, err)
		return
	}
	success(c, "orders", dto.NewOrderResponses(orders))
}

// UserOrderCount handles GET /api/users/:id/orders/count.
func (h *OrderHandler) UserOrderCount(c *gin.Context) {
	userID, valid := pathID(c, "id")
	if !valid {
		return
	}
	count, err := h.facade.UserOrderCount(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, "order count", dto.CountResponse{Count: count})
}

// Cleanup handles POST /api/users/:id/orders/cleanup.
func (h *OrderHandler) Cleanup(c *gin.Context) {
	userID, valid := pathID(c, "id")
	if !valid {
		return
	}
	report, err := h.facade.CleanupDoneOrders(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, "done orders removed", dto.NewCleanupResponse(*report))
}
