package usecase

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"go.uber.org/zap"

	"github.com/polkiloo/sanda/internal/config"
	domainErrors "github.com/polkiloo/sanda/internal/domain/errors"
	"github.com/polkiloo/sanda/internal/domain/model"
	"github.com/polkiloo/sanda/internal/domain/repository"
	"github.com/polkiloo/sanda/internal/pkg/auth"
)

const (
	nationalIDLength = 14
	minVolunteerAge  = 18
	maxVolunteerAge  = 100
)

// VolunteerRegistration is the input for a new volunteer account.
type VolunteerRegistration struct {
	FirstName       string
	LastName        string
	PhoneNumber     string
	Email           string
	NationalID      string
	Age             int
	Gender          string
	Address         string
	Password        string
	Nursing         bool
	PhysicalTherapy bool
	MaxActiveOrders int
}

// VolunteerChanges is a partial profile update. An empty Password keeps the stored hash.
type VolunteerChanges struct {
	model.VolunteerUpdate
	Password string
}

// VolunteerUseCase manages volunteer profiles.
type VolunteerUseCase struct {
	volunteers      repository.VolunteerRepository
	hasher          auth.PasswordHasher
	defaultCapacity int
	logger          *zap.Logger
}

// NewVolunteerUseCase constructs VolunteerUseCase.
func NewVolunteerUseCase(volunteers repository.VolunteerRepository, hasher auth.PasswordHasher, cfg *config.Config, logger *zap.Logger) *VolunteerUseCase {
	capacity := model.DefaultMaxActiveOrders
	if cfg != nil && cfg.DefaultMaxActiveOrders > 0 {
		capacity = cfg.DefaultMaxActiveOrders
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VolunteerUseCase{
		volunteers:      volunteers,
		hasher:          hasher,
		defaultCapacity: capacity,
		logger:          logger.Named("volunteers"),
	}
}

// Register validates and stores a new volunteer.
func (u *VolunteerUseCase) Register(ctx context.Context, in VolunteerRegistration) (*model.Volunteer, error) {
	v := &model.Volunteer{
		FirstName:       strings.TrimSpace(in.FirstName),
		LastName:        strings.TrimSpace(in.LastName),
		PhoneNumber:     strings.TrimSpace(in.PhoneNumber),
		Email:           strings.TrimSpace(in.Email),
		NationalID:      strings.TrimSpace(in.NationalID),
		Age:             in.Age,
		Gender:          in.Gender,
		Address:         strings.TrimSpace(in.Address),
		Nursing:         in.Nursing,
		PhysicalTherapy: in.PhysicalTherapy,
		MaxActiveOrders: in.MaxActiveOrders,
	}
	if v.MaxActiveOrders <= 0 {
		v.MaxActiveOrders = u.defaultCapacity
	}

	details := validateVolunteer(v)
	if in.Password == "" {
		details = append(details, domainErrors.ValidationDetail{Field: "password", Message: "is required"})
	}
	if len(details) > 0 {
		return nil, domainErrors.NewValidationError("invalid volunteer", details...)
	}

	hash, err := u.hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	v.PasswordHash = hash

	created, err := u.volunteers.Create(ctx, v)
	if err != nil {
		return nil, domainErrors.Wrap("create volunteer", err)
	}
	u.logger.Info("volunteer registered", zap.Int64("volunteer_id", created.ID))
	return created, nil
}

// Update merges changes into the stored profile and validates the result.
func (u *VolunteerUseCase) Update(ctx context.Context, id int64, changes VolunteerChanges) (*model.Volunteer, error) {
	v, err := u.volunteers.GetByID(ctx, id)
	if err != nil {
		return nil, domainErrors.Wrap("get volunteer", err)
	}

	changes.Apply(v)
	if details := validateVolunteer(v); len(details) > 0 {
		return nil, domainErrors.NewValidationError("invalid volunteer", details...)
	}
	if changes.Password != "" {
		if v.PasswordHash, err = u.hashPassword(changes.Password); err != nil {
			return nil, err
		}
	}

	updated, err := u.volunteers.Update(ctx, v)
	if err != nil {
		return nil, domainErrors.Wrap("update volunteer", err)
	}
	u.logger.Info("volunteer updated", zap.Int64("volunteer_id", id))
	return updated, nil
}

// Delete releases the volunteer's active orders and removes it.
func (u *VolunteerUseCase) Delete(ctx context.Context, id int64) error {
	if err := u.volunteers.Delete(ctx, id); err != nil {
		return domainErrors.Wrap("delete volunteer", err)
	}
	u.logger.Info("volunteer deleted", zap.Int64("volunteer_id", id))
	return nil
}

// Volunteer returns a single volunteer.
func (u *VolunteerUseCase) Volunteer(ctx context.Context, id int64) (*model.Volunteer, error) {
	v, err := u.volunteers.GetByID(ctx, id)
	return v, domainErrors.Wrap("get volunteer", err)
}

// Volunteers lists every volunteer.
func (u *VolunteerUseCase) Volunteers(ctx context.Context) ([]model.Volunteer, error) {
	list, err := u.volunteers.List(ctx)
	return list, domainErrors.Wrap("list volunteers", err)
}

func (u *VolunteerUseCase) hashPassword(password string) (string, error) {
	hash, err := u.hasher.Hash(password)
	if errors.Is(err, auth.ErrWeakPassword) {
		return "", domainErrors.NewValidationError("invalid volunteer",
			domainErrors.ValidationDetail{Field: "password", Message: err.Error()})
	}
	if err != nil {
		return "", domainErrors.Wrap("hash password", err)
	}
	return hash, nil
}

// validateVolunteer normalizes gender in place and lists every problem found.
func validateVolunteer(v *model.Volunteer) []domainErrors.ValidationDetail {
	var details []domainErrors.ValidationDetail
	add := func(field, message string) {
		details = append(details, domainErrors.ValidationDetail{Field: field, Message: message})
	}

	if v.FirstName == "" {
		add("first_name", "is required")
	}
	if v.LastName == "" {
		add("last_name", "is required")
	}
	if v.PhoneNumber == "" {
		add("phone_number", "is required")
	}
	if _, err := mail.ParseAddress(v.Email); err != nil {
		add("email", "must be a valid address")
	}
	if !validNationalID(v.NationalID) {
		add("national_id", "must be 14 digits")
	}
	if v.Age < minVolunteerAge || v.Age > maxVolunteerAge {
		add("age", "must be between 18 and 100")
	}
	if g, ok := model.NormalizeGender(v.Gender); ok {
		v.Gender = g
	} else {
		add("gender", "must be male or female")
	}
	if v.Nursing && v.PhysicalTherapy {
		add("specialization", "nursing and physical therapy are mutually exclusive")
	}
	return details
}

func validNationalID(id string) bool {
	if len(id) != nationalIDLength {
		return false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
