package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/arkawidia/lisensia-backend/api/responses"
	"github.com/arkawidia/lisensia-backend/api/validators"
	"github.com/arkawidia/lisensia-backend/internal/applications"
	"github.com/arkawidia/lisensia-backend/pkg/db/models"
	"github.com/arkawidia/lisensia-backend/pkg/enums"
	"github.com/arkawidia/lisensia-backend/pkg/logger"
)

type applicationRequest struct {
	Name        string  `json:"name" validate:"required"`
	Platform    string  `json:"platform" validate:"required,oneof=android ios web"`
	Version     string  `json:"version" validate:"required"`
	Description *string `json:"description"`
}

func (r applicationRequest) toInput() applications.Input {
	return applications.Input{
		Name:        r.Name,
		Platform:    r.Platform,
		Version:     r.Version,
		Description: r.Description,
	}
}

type applicationResponse struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Platform    enums.AppPlatform `json:"platform"`
	Version     string            `json:"version"`
	Description *string           `json:"description"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func applicationResponseFromModel(m *models.Application) applicationResponse {
	return applicationResponse{
		ID:          m.ID,
		Name:        m.Name,
		Platform:    m.Platform,
		Version:     m.Version,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func ApplicationCreate(svc applications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload applicationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		created, err := svc.Create(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, applicationResponseFromModel(created))
	}
}

func ApplicationList(svc applications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		out := make([]applicationResponse, 0, len(rows))
		for i := range rows {
			out = append(out, applicationResponseFromModel(&rows[i]))
		}
		responses.WriteSuccess(w, out)
	}
}

func ApplicationGet(svc applications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "applicationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		app, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, applicationResponseFromModel(app))
	}
}

func ApplicationUpdate(svc applications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "applicationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload applicationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		updated, err := svc.Update(r.Context(), id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, applicationResponseFromModel(updated))
	}
}

func ApplicationDelete(svc applications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "applicationId")
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
