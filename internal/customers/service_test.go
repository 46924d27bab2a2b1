package customers

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arkawidia/lisensia-backend/pkg/db/models"
	pkgerrors "github.com/arkawidia/lisensia-backend/pkg/errors"
)

type fakeRepository struct {
	byID map[uuid.UUID]*models.Customer
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{byID: map[uuid.UUID]*models.Customer{}}
}

func (f *fakeRepository) Create(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	f.byID[customer.ID] = customer
	return customer, nil
}

func (f *fakeRepository) Get(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	customer, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return customer, nil
}

func (f *fakeRepository) List(ctx context.Context) ([]models.Customer, error) {
	out := make([]models.Customer, 0, len(f.byID))
	for _, customer := range f.byID {
		out = append(out, *customer)
	}
	return out, nil
}

func (f *fakeRepository) Update(ctx context.Context, customer *models.Customer) error {
	f.byID[customer.ID] = customer
	return nil
}

func (f *fakeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.byID, id)
	return nil
}

func TestCreateNormalizesPhone(t *testing.T) {
	svc, err := NewService(newFakeRepository())
	if err != nil {
		t.Fatalf("construct service: %v", err)
	}
	phone := "+62 812-3456-789"

	customer, err := svc.Create(context.Background(), Input{Name: "Toko Makmur", Phone: &phone})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if customer.Phone == nil || *customer.Phone != "628123456789" {
		t.Fatalf("phone not normalized: %v", customer.Phone)
	}
}

func TestCreateRequiresName(t *testing.T) {
	svc, err := NewService(newFakeRepository())
	if err != nil {
		t.Fatalf("construct service: %v", err)
	}
	_, err = svc.Create(context.Background(), Input{Name: "   "})
	if got := pkgerrors.As(err); got == nil || got.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateUnknownCustomerIsNotFound(t *testing.T) {
	svc, err := NewService(newFakeRepository())
	if err != nil {
		t.Fatalf("construct service: %v", err)
	}
	_, err = svc.Update(context.Background(), uuid.New(), Input{Name: "Toko Makmur"})
	if got := pkgerrors.As(err); got == nil || got.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteRemovesCustomer(t *testing.T) {
	repo := newFakeRepository()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("construct service: %v", err)
	}
	customer, err := svc.Create(context.Background(), Input{Name: "Toko Makmur"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(context.Background(), customer.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(repo.byID) != 0 {
		t.Fatal("customer row not removed")
	}
}
