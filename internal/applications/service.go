package applications

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arkawidia/lisensia-backend/pkg/db/models"
	"github.com/arkawidia/lisensia-backend/pkg/enums"
	pkgerrors "github.com/arkawidia/lisensia-backend/pkg/errors"
)

// Service defines application catalog operations.
type Service interface {
	Create(ctx context.Context, input Input) (*models.Application, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Application, error)
	List(ctx context.Context) ([]models.Application, error)
	Update(ctx context.Context, id uuid.UUID, input Input) (*models.Application, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository interface {
	Create(ctx context.Context, app *models.Application) (*models.Application, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Application, error)
	List(ctx context.Context) ([]models.Application, error)
	Update(ctx context.Context, app *models.Application) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo repository
}

func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "application repository required")
	}
	return &service{repo: repo}, nil
}

// Input carries the writable application fields.
type Input struct {
	Name        string
	Platform    string
	Version     string
	Description *string
}

func (s *service) Create(ctx context.Context, input Input) (*models.Application, error) {
	platform, err := validate(input)
	if err != nil {
		return nil, err
	}

	app := &models.Application{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(input.Name),
		Platform:    platform,
		Version:     strings.TrimSpace(input.Version),
		Description: input.Description,
	}
	created, err := s.repo.Create(ctx, app)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create application")
	}
	return created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "application id required")
	}
	app, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "application not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get application")
	}
	return app, nil
}

func (s *service) List(ctx context.Context) ([]models.Application, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list applications")
	}
	return rows, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input Input) (*models.Application, error) {
	platform, err := validate(input)
	if err != nil {
		return nil, err
	}
	app, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	app.Name = strings.TrimSpace(input.Name)
	app.Platform = platform
	app.Version = strings.TrimSpace(input.Version)
	app.Description = input.Description

	if err := s.repo.Update(ctx, app); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update application")
	}
	return app, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete application")
	}
	return nil
}

func validate(input Input) (enums.AppPlatform, error) {
	if strings.TrimSpace(input.Name) == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "application name required")
	}
	if strings.TrimSpace(input.Version) == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "application version required")
	}
	platform, err := enums.ParseAppPlatform(input.Platform)
	if err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}
	return platform, nil
}
