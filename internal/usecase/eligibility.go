package usecase

import (
	"strings"

	"github.com/polkiloo/sanda/internal/domain/model"
)

const (
	CategoryNursing         = "Nursing"
	CategoryPhysicalTherapy = "PhysicalTherapy"
)

// Eligible reports whether the volunteer may see and claim the order.
// A gender preference must match first, then specialised categories require the matching flag.
func Eligible(order model.Order, v model.Volunteer) bool {
	if pref := strings.TrimSpace(order.GenderPreference); pref != "" {
		if !strings.EqualFold(pref, strings.TrimSpace(v.Gender)) {
			return false
		}
	}

	switch {
	case strings.EqualFold(order.Category, CategoryNursing):
		return v.Nursing
	case strings.EqualFold(order.Category, CategoryPhysicalTherapy):
		return v.PhysicalTherapy
	default:
		return true
	}
}

func inCategory(order model.Order, category string) bool {
	category = strings.TrimSpace(category)
	return category == "" || strings.EqualFold(order.Category, category)
}

func filterOrders(orders []model.Order, keep func(model.Order) bool) []model.Order {
	out := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if keep(o) {
			out = append(out, o)
		}
	}
	return out
}
