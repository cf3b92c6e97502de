package reminder

import (
	"errors"
	"testing"
	"time"

	"github.com/julianstephens/daylog/internal/journal"
	"github.com/julianstephens/daylog/internal/models"
	"github.com/julianstephens/daylog/internal/storage"
	"github.com/julianstephens/daylog/internal/validation"
)

type fakeNotifications struct {
	granted    bool
	scheduleOK bool
	scheduled  [][2]int
	cancels    int
	tests      int
}

func (f *fakeNotifications) RequestPermission() bool { return f.granted }

func (f *fakeNotifications) ScheduleDaily(hour, minute int) (string, bool) {
	if !f.scheduleOK {
		return "", false
	}
	f.scheduled = append(f.scheduled, [2]int{hour, minute})
	return "handle", true
}

func (f *fakeNotifications) CancelAll() { f.cancels++ }

func (f *fakeNotifications) SendTest() error {
	f.tests++
	return nil
}

func setupService(t *testing.T, n *fakeNotifications, now time.Time) (*Service, *journal.SettingsRepository, *journal.AnswerRepository) {
	t.Helper()
	store := storage.NewMemoryStore()
	settings := journal.NewSettingsRepository(store)
	answers := journal.NewAnswerRepository(store, func() time.Time { return now })
	return NewService(settings, answers, n), settings, answers
}

func TestEnableAndChangeTimeScenario(t *testing.T) {
	n := &fakeNotifications{granted: true, scheduleOK: true}
	svc, settings, _ := setupService(t, n, time.Now())

	if err := svc.SetEnabled(true); err != nil {
		t.Fatalf("SetEnabled(true) error = %v", err)
	}
	if err := svc.SetTime("09:30"); err != nil {
		t.Fatalf("SetTime() error = %v", err)
	}

	want := models.NotificationSettings{Enabled: true, Time: "09:30"}
	if got := settings.GetSettings(); got != want {
		t.Errorf("GetSettings() = %+v, want %+v", got, want)
	}
	if len(n.scheduled) != 2 || n.scheduled[0] != [2]int{20, 0} || n.scheduled[1] != [2]int{9, 30} {
		t.Errorf("scheduled = %v, want [[20 0] [9 30]]", n.scheduled)
	}
}

func TestEnablePermissionDenied(t *testing.T) {
	n := &fakeNotifications{granted: false, scheduleOK: true}
	svc, settings, _ := setupService(t, n, time.Now())

	if err := svc.SetEnabled(true); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("SetEnabled(true) error = %v, want %v", err, ErrPermissionDenied)
	}
	if settings.GetSettings().Enabled {
		t.Error("settings enabled despite denied permission")
	}
	if len(n.scheduled) != 0 {
		t.Error("scheduled despite denied permission")
	}
}

func TestEnableScheduleFailure(t *testing.T) {
	n := &fakeNotifications{granted: true, scheduleOK: false}
	svc, settings, _ := setupService(t, n, time.Now())

	if err := svc.SetEnabled(true); !errors.Is(err, ErrScheduleFailed) {
		t.Fatalf("SetEnabled(true) error = %v, want %v", err, ErrScheduleFailed)
	}
	if settings.GetSettings().Enabled {
		t.Error("settings enabled despite schedule failure")
	}
}

func TestDisable(t *testing.T) {
	n := &fakeNotifications{granted: true, scheduleOK: true}
	svc, settings, _ := setupService(t, n, time.Now())
	if err := svc.SetEnabled(true); err != nil {
		t.Fatal(err)
	}

	if err := svc.SetEnabled(false); err != nil {
		t.Fatalf("SetEnabled(false) error = %v", err)
	}
	if n.cancels != 1 {
		t.Errorf("CancelAll() called %d times, want 1", n.cancels)
	}
	if got := settings.GetSettings(); got.Enabled || got.Time != "20:00" {
		t.Errorf("GetSettings() = %+v", got)
	}
}

func TestSetTimeWhileDisabled(t *testing.T) {
	n := &fakeNotifications{granted: true, scheduleOK: true}
	svc, settings, _ := setupService(t, n, time.Now())

	if err := svc.SetTime("07:45"); err != nil {
		t.Fatalf("SetTime() error = %v", err)
	}
	if len(n.scheduled) != 0 {
		t.Error("SetTime() scheduled while disabled")
	}
	if settings.GetSettings().Time != "07:45" {
		t.Errorf("Time = %q", settings.GetSettings().Time)
	}

	if err := svc.SetTime("7:45pm"); !errors.Is(err, validation.ErrInvalidTime) {
		t.Errorf("SetTime(bad) error = %v, want %v", err, validation.ErrInvalidTime)
	}
	if settings.GetSettings().Time != "07:45" {
		t.Error("invalid time was stored")
	}
}

func TestSync(t *testing.T) {
	n := &fakeNotifications{granted: true, scheduleOK: true}
	svc, settings, _ := setupService(t, n, time.Now())

	if err := svc.Sync(); err != nil {
		t.Fatal(err)
	}
	if n.cancels != 1 || len(n.scheduled) != 0 {
		t.Errorf("disabled Sync() cancels=%d scheduled=%v", n.cancels, n.scheduled)
	}

	if err := settings.SaveSettings(models.NotificationSettings{Enabled: true, Time: "06:15"}); err != nil {
		t.Fatal(err)
	}
	if err := svc.Sync(); err != nil {
		t.Fatal(err)
	}
	if len(n.scheduled) != 1 || n.scheduled[0] != [2]int{6, 15} {
		t.Errorf("scheduled = %v", n.scheduled)
	}
}

func TestDue(t *testing.T) {
	at := func(hm string) time.Time {
		ts, _ := time.ParseInLocation("2006-01-02 15:04", "2024-06-01 "+hm, time.Local)
		return ts
	}

	n := &fakeNotifications{granted: true, scheduleOK: true}
	svc, settings, answers := setupService(t, n, at("12:00"))

	if svc.Due(at("20:00")) {
		t.Error("Due() while disabled")
	}
	if err := settings.SaveSettings(models.NotificationSettings{Enabled: true, Time: "20:00"}); err != nil {
		t.Fatal(err)
	}
	if !svc.Due(at("20:00")) {
		t.Error("Due() = false at the reminder time")
	}
	if svc.Due(at("20:01")) {
		t.Error("Due() = true a minute late")
	}

	if err := answers.SaveAnswer("done", 1, "q"); err != nil {
		t.Fatal(err)
	}
	if svc.Due(at("20:00")) {
		t.Error("Due() = true after answering today")
	}
}

func TestServiceSendTest(t *testing.T) {
	n := &fakeNotifications{}
	svc, _, _ := setupService(t, n, time.Now())
	if err := svc.SendTest(); err != nil || n.tests != 1 {
		t.Errorf("SendTest() = %v, tests = %d", err, n.tests)
	}
}
