package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/arkawidia/lisensia-backend/internal/licenses"
	"github.com/arkawidia/lisensia-backend/internal/whatsapp"
	"github.com/arkawidia/lisensia-backend/pkg/logger"
	"github.com/arkawidia/lisensia-backend/pkg/phone"
)

const defaultLeadDays = 3

// JobParams configures the expiry reminder run.
type JobParams struct {
	Logger   *logger.Logger
	Licenses licenseStore
	Channel  whatsapp.Channel
	LeadDays int
}

type licenseStore interface {
	FindDueForReminder(ctx context.Context, target time.Time) ([]licenses.ReminderCandidate, error)
	MarkReminderSent(ctx context.Context, id uuid.UUID) error
}

// Job is the scheduled reminder run: select licenses crossing the reminder
// threshold, send one message per license, and mark the flag only after a
// confirmed send. Marking after dispatch is what makes the run safe to repeat:
// a crash mid-run leaves unmarked rows to be picked up by the next invocation,
// and no row is ever notified twice.
type Job struct {
	logg     *logger.Logger
	store    licenseStore
	channel  whatsapp.Channel
	leadDays int
	now      func() time.Time
}

// NewJob constructs the license expiry reminder job.
func NewJob(params JobParams) (*Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Licenses == nil {
		return nil, fmt.Errorf("license store required")
	}
	if params.Channel == nil {
		return nil, fmt.Errorf("notification channel required")
	}
	leadDays := params.LeadDays
	if leadDays <= 0 {
		leadDays = defaultLeadDays
	}
	return &Job{
		logg:     params.Logger,
		store:    params.Licenses,
		channel:  params.Channel,
		leadDays: leadDays,
		now:      time.Now,
	}, nil
}

func (j *Job) Name() string { return "license-expiry-reminder" }

// Run performs one single-pass reminder sweep. A selection failure aborts the
// run; a per-candidate failure is logged and the loop continues.
func (j *Job) Run(ctx context.Context) error {
	today := licenses.DateOnly(j.now().UTC())
	target := today.AddDate(0, 0, j.leadDays)

	candidates, err := j.store.FindDueForReminder(ctx, target)
	if err != nil {
		return fmt.Errorf("select licenses due for reminder: %w", err)
	}

	runCtx := j.logg.WithFields(ctx, map[string]any{
		"target_date": target.Format(time.DateOnly),
		"candidates":  len(candidates),
	})
	j.logg.Info(runCtx, "reminder selection complete")

	sent := 0
	for _, candidate := range candidates {
		if j.process(ctx, candidate) {
			sent++
		}
	}

	runCtx = j.logg.WithField(runCtx, "sent", sent)
	j.logg.Info(runCtx, "reminder run complete")
	return nil
}

func (j *Job) process(ctx context.Context, candidate licenses.ReminderCandidate) bool {
	recipient := phone.Normalize(candidate.UserPhone)
	ctx = j.logg.WithFields(ctx, map[string]any{
		"license_id": candidate.LicenseID.String(),
		"recipient":  recipient,
		"customer":   candidate.CustomerName,
	})

	if recipient == "" {
		j.logg.Warn(ctx, "responsible user has no phone number; skipping reminder")
		return false
	}

	if err := j.channel.Send(ctx, recipient, FormatMessage(candidate)); err != nil {
		j.logg.Error(ctx, "reminder dispatch failed", err)
		return false
	}

	if err := j.store.MarkReminderSent(ctx, candidate.LicenseID); err != nil {
		// The message went out but the flag write failed: the next run will
		// send a duplicate. Logged on its own event so operators can reconcile.
		ctx = j.logg.WithField(ctx, "event", "reminder.mark_failed_after_send")
		j.logg.Error(ctx, "reminder sent but flag update failed", err)
		return false
	}

	j.logg.Info(ctx, "reminder sent")
	return true
}
