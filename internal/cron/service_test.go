package cron

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/arkawidia/lisensia-backend/pkg/logger"
)

type fakeLock struct {
	held     bool
	busy     bool
	releases int
}

func (f *fakeLock) Acquire(context.Context) (bool, error) {
	if f.busy {
		return false, nil
	}
	f.held = true
	return true, nil
}

func (f *fakeLock) Release(context.Context) error {
	f.held = false
	f.releases++
	return nil
}

type testJob struct {
	name  string
	err   error
	panic bool
	runs  int
}

func (j *testJob) Name() string { return j.name }

func (j *testJob) Run(context.Context) error {
	j.runs++
	if j.panic {
		panic("job blew up")
	}
	return j.err
}

func newTestService(t *testing.T, lock Lock, jobs ...Job) *Service {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "cron-test", Level: zerolog.Disabled, Output: io.Discard})
	service, err := NewService(ServiceParams{
		Logger:   logg,
		Registry: NewRegistry(jobs...),
		Lock:     lock,
	})
	if err != nil {
		t.Fatalf("construct service: %v", err)
	}
	return service
}

func TestRunCycleRunsAllJobsAndAggregatesFailures(t *testing.T) {
	healthy := &testJob{name: "healthy"}
	broken := &testJob{name: "broken", err: errors.New("boom")}
	tail := &testJob{name: "tail"}
	lock := &fakeLock{}
	service := newTestService(t, lock, healthy, broken, tail)

	err := service.runCycle(context.Background())
	if err == nil {
		t.Fatal("expected aggregated cycle error")
	}
	if !strings.Contains(err.Error(), "broken") {
		t.Fatalf("expected failing job named in error, got %v", err)
	}
	for _, job := range []*testJob{healthy, broken, tail} {
		if job.runs != 1 {
			t.Fatalf("job %s ran %d times", job.name, job.runs)
		}
	}
	if lock.releases != 1 {
		t.Fatalf("lock released %d times", lock.releases)
	}
}

func TestRunCycleRecoversFromPanickingJob(t *testing.T) {
	wild := &testJob{name: "wild", panic: true}
	tail := &testJob{name: "tail"}
	service := newTestService(t, &fakeLock{}, wild, tail)

	err := service.runCycle(context.Background())
	if err == nil || !strings.Contains(err.Error(), "panic") {
		t.Fatalf("expected panic surfaced as error, got %v", err)
	}
	if tail.runs != 1 {
		t.Fatal("panic must not stop the remaining jobs")
	}
}

func TestRunCycleSkipsWhenLockHeldElsewhere(t *testing.T) {
	job := &testJob{name: "job"}
	service := newTestService(t, &fakeLock{busy: true}, job)

	if err := service.runCycle(context.Background()); err != nil {
		t.Fatalf("a busy lock is not an error: %v", err)
	}
	if job.runs != 0 {
		t.Fatal("jobs must not run without the lock")
	}
}
