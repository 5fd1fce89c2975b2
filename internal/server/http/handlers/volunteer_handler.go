package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/sanda/internal/domain/model"
	"github.com/polkiloo/sanda/internal/server/http/dto"
	"github.com/polkiloo/sanda/internal/usecase"
)

// VolunteerHandler manages volunteer profiles and their orders.
type VolunteerHandler struct {
	facade VolunteerFacade
}

// NewVolunteerHandler constructs VolunteerHandler.
func NewVolunteerHandler(facade VolunteerFacade) *VolunteerHandler {
	return &VolunteerHandler{facade: facade}
}

// Register handles POST /api/volunteers.
func (h *VolunteerHandler) Register(c *gin.Context) {
	var req dto.VolunteerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid volunteer payload")
		return
	}
	v, err := h.facade.RegisterVolunteer(c.Request.Context(), usecase.VolunteerRegistration{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		PhoneNumber:     req.PhoneNumber,
		Email:           req.Email,
		NationalID:      req.NationalID,
		Age:             req.Age,
		Gender:          req.Gender,
		Address:         req.Address,
		Password:        req.Password,
		Nursing:         req.Nursing,
		PhysicalTherapy: req.PhysicalTherapy,
		MaxActiveOrders: req.MaxActiveOrders,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.OK("volunteer registered", dto.NewVolunteerResponse(*v)))
}

// List handles GET /api/volunteers.
func (h *VolunteerHandler) List(c *gin.Context) {
	list, err := h.facade.Volunteers(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	success(c, "volunteers", dto.NewVolunteerResponses(list))
}

// Get handles GET /api/volunteers/:id.
func (h *VolunteerHandler) Get(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	v, err := h.facade.Volunteer(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, "volunteer", dto.NewVolunteerResponse(*v))
}

// Update handles PUT /api/volunteers/:id.
func (h *VolunteerHandler) Update(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req dto.VolunteerUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid volunteer payload")
		return
	}
	v, err := h.facade.UpdateVolunteer(c.Request.Context(), id, usecase.VolunteerChanges{
		VolunteerUpdate: model.VolunteerUpdate{
			FirstName:       req.FirstName,
			LastName:        req.LastName,
			PhoneNumber:     req.PhoneNumber,
			Email:           req.Email,
			NationalID:      req.NationalID,
			Age:             req.Age,
			Gender:          req.Gender,
			Address:         req.Address,
			Nursing:         req.Nursing,
			PhysicalTherapy: req.PhysicalTherapy,
			MaxActiveOrders: req.MaxActiveOrders,
		},
		Password: req.Password,
	})
	if err != nil {
		fail(c, err)
		return
	}
	success(c, "volunteer updated", dto.NewVolunteerResponse(*v))
}

// Delete handles DELETE /api/volunteers/:id.
func (h *VolunteerHandler) Delete(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	if err := h.facade.DeleteVolunteer(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	success(c, "volunteer deleted", nil)
}

// Available handles GET /api/volunteers/:id/available-orders.
func (h *VolunteerHandler) Available(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	orders, err := h.facade.AvailableOrders(c.Request.Context(), id, c.Query("category"))
	if err != nil {
		fail(c, err)
		return
	}
	success(c, "available orders", dto.NewOrderResponses(orders))
}

// Accept handles POST /api/volunteers/:id/accept-order/:orderId.
func (h *VolunteerHandler) Accept(c *gin.Context) {
	volunteerID, valid := pathID(c, "id")
	if !valid {
		return
	}
	orderID, valid := pathID(c, "orderId")
	if !valid {
		return
	}
	order, err := h.facade.AcceptOrder(c.Request.Context(), volunteerID, orderID)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, "order accepted", dto.NewOrderResponse(*order))
}

// Cancel handles POST /api/volunteers/:id/cancel-order/:orderId.
func (h *VolunteerHandler) Cancel(c *gin.Context) {
	volunteerID, valid := pathID(c, "id")
	if !valid {
		return
	}
	orderID, valid := pathID(c, "orderId")
	if !valid {
		return
	}
	order, err := h.facade.CancelOrderByVolunteer(c.Request.Context(), volunteerID, orderID)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, "order released", dto.NewOrderResponse(*order))
}

// Accepted handles GET /api/volunteers/:id/accepted-orders.
func (h *VolunteerHandler) Accepted(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	orders, err := h.facade.AcceptedOrders(c.Request.Context(), id, c.Query("category"))
	if err != nil {
		fail(c, err)
		return
	}
	success(c, "accepted orders", dto.NewOrderResponses(orders))
}
