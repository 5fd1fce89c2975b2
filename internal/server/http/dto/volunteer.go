package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/sanda/internal/domain/model"
)

// VolunteerRequest describes a volunteer registration payload.
type VolunteerRequest struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	PhoneNumber     string `json:"phone_number"`
	Email           string `json:"email"`
	NationalID      string `json:"national_id"`
	Age             int    `json:"age"`
	Gender          string `json:"gender"`
	Address         string `json:"address"`
	Password        string `json:"password"`
	Nursing         bool   `json:"nursing"`
	PhysicalTherapy bool   `json:"physical_therapy"`
	MaxActiveOrders int    `json:"max_active_orders"`
}

// VolunteerUpdateRequest carries a partial profile update; omitted fields keep their value.
type VolunteerUpdateRequest struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	PhoneNumber     string `json:"phone_number"`
	Email           string `json:"email"`
	NationalID      string `json:"national_id"`
	Age             int    `json:"age"`
	Gender          string `json:"gender"`
	Address         string `json:"address"`
	Password        string `json:"password"`
	Nursing         *bool  `json:"nursing"`
	PhysicalTherapy *bool  `json:"physical_therapy"`
	MaxActiveOrders int    `json:"max_active_orders"`
}

// VolunteerResponse is the public view of a volunteer. The password hash is never exposed.
type VolunteerResponse struct {
	ID                  int64           `json:"id"`
	FirstName           string          `json:"first_name"`
	LastName            string          `json:"last_name"`
	PhoneNumber         string          `json:"phone_number"`
	Email               string          `json:"email"`
	NationalID          string          `json:"national_id"`
	Age                 int             `json:"age"`
	Gender              string          `json:"gender"`
	Address             string          `json:"address,omitempty"`
	Nursing             bool            `json:"nursing"`
	PhysicalTherapy     bool            `json:"physical_therapy"`
	MaxActiveOrders     int             `json:"max_active_orders"`
	CurrentActiveOrders int             `json:"current_active_orders"`
	LastOrderAcceptedAt *time.Time      `json:"last_order_accepted_at,omitempty"`
	Balance             decimal.Decimal `json:"balance"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

func NewVolunteerResponse(v model.Volunteer) VolunteerResponse {
	return VolunteerResponse{
		ID:                  v.ID,
		FirstName:           v.FirstName,
		LastName:            v.LastName,
		PhoneNumber:         v.PhoneNumber,
		Email:               v.Email,
		NationalID:          v.NationalID,
		Age:                 v.Age,
		Gender:              v.Gender,
		Address:             v.Address,
		Nursing:             v.Nursing,
		PhysicalTherapy:     v.PhysicalTherapy,
		MaxActiveOrders:     v.MaxActiveOrders,
		CurrentActiveOrders: v.CurrentActiveOrders,
		LastOrderAcceptedAt: v.LastOrderAcceptedAt,
		Balance:             v.Balance,
		CreatedAt:           v.CreatedAt,
		UpdatedAt:           v.UpdatedAt,
	}
}

func NewVolunteerResponses(list []model.Volunteer) []VolunteerResponse {
	out := make([]VolunteerResponse, 0, len(list))
	for _, v := range list {
		out = append(out, NewVolunteerResponse(v))
	}
	return out
}
