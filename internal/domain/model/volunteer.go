package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultMaxActiveOrders caps concurrent orders for a volunteer unless configured otherwise.
const DefaultMaxActiveOrders = 3

const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// NormalizeGender lower-cases a gender value and reports whether it is recognised.
func NormalizeGender(g string) (string, bool) {
	g = strings.ToLower(strings.TrimSpace(g))
	return g, g == GenderMale || g == GenderFemale
}

// Volunteer claims and fulfils orders matching its specialization and capacity.
type Volunteer struct {
	ID                  int64
	FirstName           string
	LastName            string
	PhoneNumber         string
	Email               string
	NationalID          string
	Age                 int
	Gender              string
	Address             string
	PasswordHash        string
	Nursing             bool
	PhysicalTherapy     bool
	MaxActiveOrders     int
	CurrentActiveOrders int
	LastOrderAcceptedAt *time.Time
	Balance             decimal.Decimal
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Name joins first and last name.
func (v Volunteer) Name() string {
	return strings.TrimSpace(v.FirstName + " " + v.LastName)
}

// HasCapacity reports whether the volunteer may take one more order.
func (v Volunteer) HasCapacity() bool {
	return v.CurrentActiveOrders < v.MaxActiveOrders
}

// VolunteerUpdate carries a partial update; nil or empty fields keep the stored value.
type VolunteerUpdate struct {
	FirstName       string
	LastName        string
	PhoneNumber     string
	Email           string
	NationalID      string
	Age             int
	Gender          string
	Address         string
	PasswordHash    string
	Nursing         *bool
	PhysicalTherapy *bool
	MaxActiveOrders int
}

// Apply merges the update into v. Counters and balance are never touched.
func (u VolunteerUpdate) Apply(v *Volunteer) {
	setString(&v.FirstName, u.FirstName)
	setString(&v.LastName, u.LastName)
	setString(&v.PhoneNumber, u.PhoneNumber)
	setString(&v.Email, u.Email)
	setString(&v.NationalID, u.NationalID)
	setString(&v.Gender, u.Gender)
	setString(&v.Address, u.Address)
	setString(&v.PasswordHash, u.PasswordHash)
	if u.Age > 0 {
		v.Age = u.Age
	}
	if u.Nursing != nil {
		v.Nursing = *u.Nursing
	}
	if u.PhysicalTherapy != nil {
		v.PhysicalTherapy = *u.PhysicalTherapy
	}
	if u.MaxActiveOrders > 0 {
		v.MaxActiveOrders = u.MaxActiveOrders
	}
}

func setString(dst *string, val string) {
	if strings.TrimSpace(val) != "" {
		*dst = val
	}
}
