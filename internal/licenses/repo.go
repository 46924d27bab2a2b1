package licenses

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arkawidia/lisensia-backend/pkg/db/models"
	"github.com/arkawidia/lisensia-backend/pkg/enums"
)

// Repository exposes license persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a license repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new license row.
func (r *Repository) Create(ctx context.Context, license *models.License) (*models.License, error) {
	if err := r.db.WithContext(ctx).Create(license).Error; err != nil {
		return nil, err
	}
	return license, nil
}

// Get returns one license by id, or gorm.ErrRecordNotFound.
func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*models.License, error) {
	var row models.License
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// List returns all licenses, newest first.
func (r *Repository) List(ctx context.Context) ([]models.License, error) {
	var rows []models.License
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListByCustomer returns a customer's licenses, newest first.
func (r *Repository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.License, error) {
	var rows []models.License
	if err := r.db.WithContext(ctx).Where("customer_id = ?", customerID).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListByApplication returns an application's licenses, newest first.
func (r *Repository) ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]models.License, error) {
	var rows []models.License
	if err := r.db.WithContext(ctx).Where("application_id = ?", applicationID).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListByUser returns the licenses a user is responsible for, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.License, error) {
	var rows []models.License
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Update saves the mutable license fields.
func (r *Repository) Update(ctx context.Context, license *models.License) error {
	return r.db.WithContext(ctx).Model(&models.License{}).
		Where("id = ?", license.ID).
		Updates(map[string]any{
			"application_id": license.ApplicationID,
			"customer_id":    license.CustomerID,
			"user_id":        license.UserID,
			"start_date":     license.StartDate,
			"end_date":       license.EndDate,
			"status":         license.Status,
			"contract_value": license.ContractValue,
		}).Error
}

// Delete removes a license row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.License{}, "id = ?", id).Error
}

// FindDueForReminder joins licenses with their customer, application and
// responsible user display fields, returning every active, not-yet-reminded
// license whose end date falls exactly on the target date. Order is by
// license id so runs are reproducible.
func (r *Repository) FindDueForReminder(ctx context.Context, target time.Time) ([]ReminderCandidate, error) {
	var rows []ReminderCandidate
	err := r.db.WithContext(ctx).
		Table("licenses AS l").
		Select(`l.id AS license_id,
			l.end_date AS end_date,
			c.name AS customer_name,
			COALESCE(c.phone, '') AS customer_phone,
			u.name AS user_name,
			COALESCE(u.phone, '') AS user_phone,
			a.name AS app_name`).
		Joins("JOIN customers c ON c.id = l.customer_id").
		Joins("JOIN applications a ON a.id = l.application_id").
		Joins("JOIN users u ON u.id = l.user_id").
		Where("l.end_date = ? AND l.reminder_sent = ? AND l.status = ?", DateOnly(target), false, enums.LicenseStatusActive).
		Order("l.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// MarkReminderSent flips the reminder flag for one license. The flag only
// moves forward; a row already marked is left untouched.
func (r *Repository) MarkReminderSent(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.License{}).
		Where("id = ? AND reminder_sent = ?", id, false).
		UpdateColumn("reminder_sent", true).Error
}

// MarkExpiredBefore flips the denormalized status to expired for every active
// license whose end date lies strictly before today. Returns the number of
// rows updated.
func (r *Repository) MarkExpiredBefore(ctx context.Context, today time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.License{}).
		Where("end_date < ? AND status = ?", DateOnly(today), enums.LicenseStatusActive).
		UpdateColumn("status", enums.LicenseStatusExpired)
	return result.RowsAffected, result.Error
}
