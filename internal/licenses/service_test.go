package licenses

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/arkawidia/lisensia-backend/pkg/db/models"
	"github.com/arkawidia/lisensia-backend/pkg/enums"
	pkgerrors "github.com/arkawidia/lisensia-backend/pkg/errors"
)

type fakeRepository struct {
	created *models.License
	updated *models.License
	byID    map[uuid.UUID]*models.License
	err     error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{byID: map[uuid.UUID]*models.License{}}
}

func (f *fakeRepository) Create(ctx context.Context, license *models.License) (*models.License, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = license
	f.byID[license.ID] = license
	return license, nil
}

func (f *fakeRepository) Get(ctx context.Context, id uuid.UUID) (*models.License, error) {
	if f.err != nil {
		return nil, f.err
	}
	if row, ok := f.byID[id]; ok {
		copied := *row
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) List(ctx context.Context) ([]models.License, error) { return nil, f.err }

func (f *fakeRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.License, error) {
	return nil, f.err
}

func (f *fakeRepository) ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]models.License, error) {
	return nil, f.err
}

func (f *fakeRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.License, error) {
	return nil, f.err
}

func (f *fakeRepository) Update(ctx context.Context, license *models.License) error {
	if f.err != nil {
		return f.err
	}
	f.updated = license
	f.byID[license.ID] = license
	return nil
}

func (f *fakeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.byID, id)
	return f.err
}

func validInput() CreateLicenseInput {
	return CreateLicenseInput{
		ApplicationID: uuid.New(),
		CustomerID:    uuid.New(),
		UserID:        uuid.New(),
		StartDate:     date(2024, time.January, 1),
		EndDate:       date(2024, time.December, 31),
		ContractValue: decimal.NewFromInt(1500),
	}
}

func newTestService(t *testing.T, repo *fakeRepository, today time.Time) *service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("construct service: %v", err)
	}
	typed := svc.(*service)
	typed.now = func() time.Time { return today }
	return typed
}

func TestCreateSetsStatusFromEndDate(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(t, repo, date(2024, time.June, 1))

	created, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Status != enums.LicenseStatusActive {
		t.Fatalf("expected active status, got %s", created.Status)
	}
	if created.ReminderSent {
		t.Fatal("new licenses must start with the reminder flag unset")
	}
	if created.ID == uuid.Nil {
		t.Fatal("expected generated id")
	}
}

func TestCreateBackdatedLicenseIsExpired(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(t, repo, date(2025, time.June, 1))

	created, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Status != enums.LicenseStatusExpired {
		t.Fatalf("expected expired status for a backdated license, got %s", created.Status)
	}
}

func TestCreateRejectsReversedDates(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(t, repo, date(2024, time.June, 1))

	input := validInput()
	input.StartDate, input.EndDate = input.EndDate, input.StartDate
	_, err := svc.Create(context.Background(), input)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateDoesNotTouchReminderFlag(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(t, repo, date(2024, time.June, 1))

	created, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	repo.byID[created.ID].ReminderSent = true

	updated, err := svc.Update(context.Background(), created.ID, UpdateLicenseInput{
		ApplicationID: created.ApplicationID,
		CustomerID:    created.CustomerID,
		UserID:        created.UserID,
		StartDate:     created.StartDate,
		EndDate:       date(2025, time.June, 30),
		ContractValue: created.ContractValue,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.ReminderSent {
		t.Fatal("update must not reset the reminder flag")
	}
}

func TestGetMapsMissingRowToNotFound(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(t, repo, date(2024, time.June, 1))

	_, err := svc.Get(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestListWrapsRepositoryFailure(t *testing.T) {
	repo := newFakeRepository()
	repo.err = errors.New("connection reset")
	svc := newTestService(t, repo, date(2024, time.June, 1))

	_, err := svc.List(context.Background())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
