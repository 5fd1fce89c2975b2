package dto

import (
	"time"

	"github.com/polkiloo/sanda/internal/domain/model"
)

// OrderRequest describes a new assistance request. At most one of ProductID and ServiceID may be set.
type OrderRequest struct {
	RequesterID      int64  `json:"requester_id" binding:"required,gt=0"`
	Name             string `json:"name"`
	Comment          string `json:"comment"`
	PhoneNumber      string `json:"phone_number"`
	Location         string `json:"location"`
	Category         string `json:"category"`
	ProductID        *int64 `json:"product_id"`
	ServiceID        *int64 `json:"service_id"`
	GenderPreference string `json:"gender_preference"`
}

// StatusRequest asks for a lifecycle step.
type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderResponse is the public view of an order.
type OrderResponse struct {
	ID               int64      `json:"id"`
	RequesterID      int64      `json:"requester_id"`
	RequesterName    string     `json:"requester_name"`
	Name             string     `json:"name,omitempty"`
	Comment          string     `json:"comment,omitempty"`
	PhoneNumber      string     `json:"phone_number,omitempty"`
	Location         string     `json:"location"`
	Category         string     `json:"category"`
	ProductID        *int64     `json:"product_id,omitempty"`
	ServiceID        *int64     `json:"service_id,omitempty"`
	ItemImage        string     `json:"item_image,omitempty"`
	GenderPreference string     `json:"gender_preference,omitempty"`
	Status           string     `json:"status"`
	VolunteerID      *int64     `json:"volunteer_id"`
	CreatedAt        time.Time  `json:"created_at"`
	StatusUpdatedAt  time.Time  `json:"status_updated_at"`
	InProgressAt     *time.Time `json:"in_progress_at,omitempty"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
}

// CountResponse carries an order count.
type CountResponse struct {
	Count int `json:"count"`
}

// CleanupResponse reports a cleanup run.
type CleanupResponse struct {
	RequesterID int64   `json:"requester_id"`
	Count       int     `json:"count"`
	Removed     []int64 `json:"removed"`
}

func NewOrderResponse(o model.Order) OrderResponse {
	return OrderResponse{
		ID:               o.ID,
		RequesterID:      o.RequesterID,
		RequesterName:    o.RequesterName,
		Name:             o.Name,
		Comment:          o.Comment,
		PhoneNumber:      o.PhoneNumber,
		Location:         o.Location,
		Category:         o.Category,
		ProductID:        o.Item.ProductID(),
		ServiceID:        o.Item.ServiceID(),
		ItemImage:        o.ItemImage,
		GenderPreference: o.GenderPreference,
		Status:           string(o.Status),
		VolunteerID:      o.VolunteerID,
		CreatedAt:        o.CreatedAt,
		StatusUpdatedAt:  o.StatusUpdatedAt,
		InProgressAt:     o.InProgressAt,
		CompletedAt:      o.CompletedAt,
	}
}

func NewOrderResponses(orders []model.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, NewOrderResponse(o))
	}
	return out
}

func NewCleanupResponse(r model.CleanupReport) CleanupResponse {
	removed := r.Removed
	if removed == nil {
		removed = []int64{}
	}
	return CleanupResponse{RequesterID: r.RequesterID, Count: r.Count(), Removed: removed}
}
