package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/arkawidia/lisensia-backend/api/responses"
	"github.com/arkawidia/lisensia-backend/api/validators"
	"github.com/arkawidia/lisensia-backend/internal/licenses"
	"github.com/arkawidia/lisensia-backend/pkg/db/models"
	"github.com/arkawidia/lisensia-backend/pkg/enums"
	pkgerrors "github.com/arkawidia/lisensia-backend/pkg/errors"
	"github.com/arkawidia/lisensia-backend/pkg/logger"
)

type licenseRequest struct {
	ApplicationID string `json:"application_id" validate:"required,uuid"`
	CustomerID    string `json:"customer_id" validate:"required,uuid"`
	UserID        string `json:"user_id" validate:"required,uuid"`
	StartDate     string `json:"start_date" validate:"required"`
	EndDate       string `json:"end_date" validate:"required"`
	ContractValue string `json:"contract_value"`
}

func (r licenseRequest) toFields() (uuid.UUID, uuid.UUID, uuid.UUID, time.Time, time.Time, decimal.Decimal, error) {
	var zero decimal.Decimal

	appID, err := uuid.Parse(r.ApplicationID)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, zero, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid application_id")
	}
	customerID, err := uuid.Parse(r.CustomerID)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, zero, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid customer_id")
	}
	userID, err := uuid.Parse(r.UserID)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, zero, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user_id")
	}
	startDate, err := time.Parse(time.DateOnly, r.StartDate)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, zero, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "start_date must be YYYY-MM-DD")
	}
	endDate, err := time.Parse(time.DateOnly, r.EndDate)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, zero, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "end_date must be YYYY-MM-DD")
	}

	value := decimal.Zero
	if r.ContractValue != "" {
		value, err = decimal.NewFromString(r.ContractValue)
		if err != nil {
			return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, zero, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid contract_value")
		}
	}
	return appID, customerID, userID, startDate, endDate, value, nil
}

type licenseResponse struct {
	ID            uuid.UUID           `json:"id"`
	ApplicationID uuid.UUID           `json:"application_id"`
	CustomerID    uuid.UUID           `json:"customer_id"`
	UserID        uuid.UUID           `json:"user_id"`
	StartDate     string              `json:"start_date"`
	EndDate       string              `json:"end_date"`
	Status        enums.LicenseStatus `json:"status"`
	ReminderSent  bool                `json:"reminder_sent"`
	ContractValue decimal.Decimal     `json:"contract_value"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

func licenseResponseFromModel(m *models.License) licenseResponse {
	return licenseResponse{
		ID:            m.ID,
		ApplicationID: m.ApplicationID,
		CustomerID:    m.CustomerID,
		UserID:        m.UserID,
		StartDate:     m.StartDate.Format(time.DateOnly),
		EndDate:       m.EndDate.Format(time.DateOnly),
		Status:        m.Status,
		ReminderSent:  m.ReminderSent,
		ContractValue: m.ContractValue,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func licenseListResponse(rows []models.License) []licenseResponse {
	out := make([]licenseResponse, 0, len(rows))
	for i := range rows {
		out = append(out, licenseResponseFromModel(&rows[i]))
	}
	return out
}

func LicenseCreate(svc licenses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload licenseRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		appID, customerID, userID, startDate, endDate, value, err := payload.toFields()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		created, err := svc.Create(r.Context(), licenses.CreateLicenseInput{
			ApplicationID: appID,
			CustomerID:    customerID,
			UserID:        userID,
			StartDate:     startDate,
			EndDate:       endDate,
			ContractValue: value,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, licenseResponseFromModel(created))
	}
}

func LicenseList(svc licenses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, licenseListResponse(rows))
	}
}

func LicenseGet(svc licenses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "licenseId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		license, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, licenseResponseFromModel(license))
	}
}

func LicenseUpdate(svc licenses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "licenseId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload licenseRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		appID, customerID, userID, startDate, endDate, value, err := payload.toFields()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		updated, err := svc.Update(r.Context(), id, licenses.UpdateLicenseInput{
			ApplicationID: appID,
			CustomerID:    customerID,
			UserID:        userID,
			StartDate:     startDate,
			EndDate:       endDate,
			ContractValue: value,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, licenseResponseFromModel(updated))
	}
}

func LicenseDelete(svc licenses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "licenseId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// LicenseListByCustomer serves the nested customer license collection.
func LicenseListByCustomer(svc licenses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "customerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rows, err := svc.ListByCustomer(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, licenseListResponse(rows))
	}
}

func LicenseListByApplication(svc licenses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "applicationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rows, err := svc.ListByApplication(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, licenseListResponse(rows))
	}
}

func LicenseListByUser(svc licenses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rows, err := svc.ListByUser(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, licenseListResponse(rows))
	}
}
