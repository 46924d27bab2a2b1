package reminder

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/arkawidia/lisensia-backend/internal/licenses"
	"github.com/arkawidia/lisensia-backend/pkg/logger"
)

type fakeStore struct {
	candidates []licenses.ReminderCandidate
	findErr    error
	gotTarget  time.Time
	marked     []uuid.UUID
	markErrFor map[uuid.UUID]error
}

func (f *fakeStore) FindDueForReminder(ctx context.Context, target time.Time) ([]licenses.ReminderCandidate, error) {
	f.gotTarget = target
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.candidates, nil
}

func (f *fakeStore) MarkReminderSent(ctx context.Context, id uuid.UUID) error {
	if err := f.markErrFor[id]; err != nil {
		return err
	}
	f.marked = append(f.marked, id)
	return nil
}

type fakeChannel struct {
	sent    []string
	errFor  map[string]error
	gotMsgs map[string]string
}

func (f *fakeChannel) Send(ctx context.Context, phone, message string) error {
	if err := f.errFor[phone]; err != nil {
		return err
	}
	f.sent = append(f.sent, phone)
	if f.gotMsgs == nil {
		f.gotMsgs = map[string]string{}
	}
	f.gotMsgs[phone] = message
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled, Output: io.Discard})
}

func candidate(userPhone string) licenses.ReminderCandidate {
	return licenses.ReminderCandidate{
		LicenseID:     uuid.New(),
		EndDate:       time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC),
		CustomerName:  "Toko Makmur",
		CustomerPhone: "0812-1111-2222",
		UserName:      "Dewi",
		UserPhone:     userPhone,
		AppName:       "KasirKu",
	}
}

func newTestJob(t *testing.T, store *fakeStore, channel *fakeChannel) *Job {
	t.Helper()
	job, err := NewJob(JobParams{
		Logger:   testLogger(),
		Licenses: store,
		Channel:  channel,
		LeadDays: 3,
	})
	if err != nil {
		t.Fatalf("construct job: %v", err)
	}
	job.now = func() time.Time {
		return time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)
	}
	return job
}

func TestRunTargetsExactLeadWindow(t *testing.T) {
	store := &fakeStore{}
	job := newTestJob(t, store, &fakeChannel{})

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	want := time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC)
	if !store.gotTarget.Equal(want) {
		t.Fatalf("target = %s, want %s", store.gotTarget, want)
	}
}

func TestRunMarksOnlyAfterConfirmedSend(t *testing.T) {
	c := candidate("08123456789")
	store := &fakeStore{candidates: []licenses.ReminderCandidate{c}}
	channel := &fakeChannel{}
	job := newTestJob(t, store, channel)

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(channel.sent) != 1 || channel.sent[0] != "628123456789" {
		t.Fatalf("unexpected recipients %v", channel.sent)
	}
	if len(store.marked) != 1 || store.marked[0] != c.LicenseID {
		t.Fatalf("unexpected marks %v", store.marked)
	}
	msg := channel.gotMsgs["628123456789"]
	if !strings.Contains(msg, "2026-03-13") || !strings.Contains(msg, "Toko Makmur") {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestRunLeavesFlagUntouchedOnSendFailure(t *testing.T) {
	c := candidate("08123456789")
	store := &fakeStore{candidates: []licenses.ReminderCandidate{c}}
	channel := &fakeChannel{errFor: map[string]error{"628123456789": errors.New("worker down")}}
	job := newTestJob(t, store, channel)

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run should not fail on a per-candidate send error: %v", err)
	}
	if len(store.marked) != 0 {
		t.Fatalf("flag must not be set after a failed send, got %v", store.marked)
	}
}

func TestRunContinuesPastFailingCandidate(t *testing.T) {
	first := candidate("0811")
	second := candidate("0822")
	third := candidate("0833")
	store := &fakeStore{candidates: []licenses.ReminderCandidate{first, second, third}}
	channel := &fakeChannel{errFor: map[string]error{"62822": errors.New("worker down")}}
	job := newTestJob(t, store, channel)

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(store.marked) != 2 {
		t.Fatalf("expected the two healthy candidates marked, got %v", store.marked)
	}
	if store.marked[0] != first.LicenseID || store.marked[1] != third.LicenseID {
		t.Fatalf("unexpected marks %v", store.marked)
	}
}

func TestRunSkipsCandidateWithoutUserPhone(t *testing.T) {
	c := candidate("")
	store := &fakeStore{candidates: []licenses.ReminderCandidate{c}}
	channel := &fakeChannel{}
	job := newTestJob(t, store, channel)

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(channel.sent) != 0 || len(store.marked) != 0 {
		t.Fatalf("candidate without a recipient must be skipped entirely")
	}
}

func TestRunSurvivesMarkFailureAfterSend(t *testing.T) {
	broken := candidate("0811")
	healthy := candidate("0822")
	store := &fakeStore{
		candidates: []licenses.ReminderCandidate{broken, healthy},
		markErrFor: map[uuid.UUID]error{broken.LicenseID: errors.New("connection reset")},
	}
	channel := &fakeChannel{}
	job := newTestJob(t, store, channel)

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(channel.sent) != 2 {
		t.Fatalf("both messages should have been dispatched, got %v", channel.sent)
	}
	if len(store.marked) != 1 || store.marked[0] != healthy.LicenseID {
		t.Fatalf("unexpected marks %v", store.marked)
	}
}

func TestRunAbortsWhenSelectionFails(t *testing.T) {
	store := &fakeStore{findErr: errors.New("db gone")}
	job := newTestJob(t, store, &fakeChannel{})

	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected run to fail when selection fails")
	}
}
