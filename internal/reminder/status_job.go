package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/arkawidia/lisensia-backend/internal/licenses"
	"github.com/arkawidia/lisensia-backend/pkg/logger"
)

// StatusJobParams configures the status reconcile run.
type StatusJobParams struct {
	Logger   *logger.Logger
	Licenses statusStore
}

type statusStore interface {
	MarkExpiredBefore(ctx context.Context, today time.Time) (int64, error)
}

// StatusJob keeps the denormalized license status in line with the end date:
// storage never recomputes it, so a daily sweep flips overdue active rows to
// expired.
type StatusJob struct {
	logg  *logger.Logger
	store statusStore
	now   func() time.Time
}

// NewStatusJob constructs the license status reconcile job.
func NewStatusJob(params StatusJobParams) (*StatusJob, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Licenses == nil {
		return nil, fmt.Errorf("license store required")
	}
	return &StatusJob{
		logg:  params.Logger,
		store: params.Licenses,
		now:   time.Now,
	}, nil
}

func (j *StatusJob) Name() string { return "license-status-reconcile" }

func (j *StatusJob) Run(ctx context.Context) error {
	today := licenses.DateOnly(j.now().UTC())
	updated, err := j.store.MarkExpiredBefore(ctx, today)
	if err != nil {
		return fmt.Errorf("mark expired licenses: %w", err)
	}
	ctx = j.logg.WithField(ctx, "expired", updated)
	j.logg.Info(ctx, "license status reconcile complete")
	return nil
}
