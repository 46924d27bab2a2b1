package licenses

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/arkawidia/lisensia-backend/pkg/db/models"
	pkgerrors "github.com/arkawidia/lisensia-backend/pkg/errors"
)

// Service defines license management operations for the dashboard.
type Service interface {
	Create(ctx context.Context, input CreateLicenseInput) (*models.License, error)
	Get(ctx context.Context, id uuid.UUID) (*models.License, error)
	List(ctx context.Context) ([]models.License, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.License, error)
	ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]models.License, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.License, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateLicenseInput) (*models.License, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository interface {
	Create(ctx context.Context, license *models.License) (*models.License, error)
	Get(ctx context.Context, id uuid.UUID) (*models.License, error)
	List(ctx context.Context) ([]models.License, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.License, error)
	ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]models.License, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.License, error)
	Update(ctx context.Context, license *models.License) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo repository
	now  func() time.Time
}

// NewService wires license dependencies.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "license repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

// CreateLicenseInput carries the fields for a new license.
type CreateLicenseInput struct {
	ApplicationID uuid.UUID
	CustomerID    uuid.UUID
	UserID        uuid.UUID
	StartDate     time.Time
	EndDate       time.Time
	ContractValue decimal.Decimal
}

// UpdateLicenseInput carries the mutable license fields. The reminder flag is
// deliberately absent: it only ever moves forward, and only the reminder run
// moves it.
type UpdateLicenseInput struct {
	ApplicationID uuid.UUID
	CustomerID    uuid.UUID
	UserID        uuid.UUID
	StartDate     time.Time
	EndDate       time.Time
	ContractValue decimal.Decimal
}

func (s *service) Create(ctx context.Context, input CreateLicenseInput) (*models.License, error) {
	if err := validateLicenseFields(input.ApplicationID, input.CustomerID, input.UserID, input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	license := &models.License{
		ID:            uuid.New(),
		ApplicationID: input.ApplicationID,
		CustomerID:    input.CustomerID,
		UserID:        input.UserID,
		StartDate:     DateOnly(input.StartDate),
		EndDate:       DateOnly(input.EndDate),
		Status:        ClassifyStatus(input.EndDate, s.now()),
		ContractValue: input.ContractValue,
	}

	created, err := s.repo.Create(ctx, license)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create license")
	}
	return created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.License, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "license id required")
	}
	license, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "license not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get license")
	}
	return license, nil
}

func (s *service) List(ctx context.Context) ([]models.License, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list licenses")
	}
	return rows, nil
}

func (s *service) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.License, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	rows, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list customer licenses")
	}
	return rows, nil
}

func (s *service) ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]models.License, error) {
	if applicationID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "application id required")
	}
	rows, err := s.repo.ListByApplication(ctx, applicationID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list application licenses")
	}
	return rows, nil
}

func (s *service) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.License, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list user licenses")
	}
	return rows, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateLicenseInput) (*models.License, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "license id required")
	}
	if err := validateLicenseFields(input.ApplicationID, input.CustomerID, input.UserID, input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	license, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	license.ApplicationID = input.ApplicationID
	license.CustomerID = input.CustomerID
	license.UserID = input.UserID
	license.StartDate = DateOnly(input.StartDate)
	license.EndDate = DateOnly(input.EndDate)
	license.Status = ClassifyStatus(input.EndDate, s.now())
	license.ContractValue = input.ContractValue

	if err := s.repo.Update(ctx, license); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update license")
	}
	return license, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "license id required")
	}
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete license")
	}
	return nil
}

func validateLicenseFields(applicationID, customerID, userID uuid.UUID, startDate, endDate time.Time) error {
	if applicationID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "application id required")
	}
	if customerID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "responsible user id required")
	}
	if startDate.IsZero() || endDate.IsZero() {
		return pkgerrors.New(pkgerrors.CodeValidation, "start and end dates required")
	}
	if DateOnly(endDate).Before(DateOnly(startDate)) {
		return pkgerrors.New(pkgerrors.CodeValidation, "end date must not precede start date")
	}
	return nil
}
