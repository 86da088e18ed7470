package rules

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/nerrad567/plain-automation/internal/audit"
	"github.com/nerrad567/plain-automation/internal/hass"
	"github.com/nerrad567/plain-automation/internal/translator"
)

// fakeReloader records reload calls and returns a configured error.
type fakeReloader struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakeReloader) ReloadAutomations(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.err
}

func (f *fakeReloader) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakeAudit collects audit entries in memory.
type fakeAudit struct {
	mu      sync.Mutex
	entries []audit.AuditLog
}

func (f *fakeAudit) Create(_ context.Context, log *audit.AuditLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, *log)
	return nil
}

func (f *fakeAudit) List(_ context.Context, _ audit.Filter) (*audit.ListResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &audit.ListResult{Logs: f.entries, Total: len(f.entries)}, nil
}

// fakeNotifier collects change events.
type fakeNotifier struct {
	mu     sync.Mutex
	events []ChangeEvent
}

func (f *fakeNotifier) NotifyChange(event ChangeEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

func timeModel(name string) translator.Automation {
	return translator.Automation{
		Name:    name,
		Trigger: translator.Trigger{Type: translator.TriggerTime, At: "07:00"},
		Action:  translator.Action{Type: translator.ActionTurnOn, Entity: "light.slaapkamer"},
	}
}

func newTestService(reloader Reloader) (*Service, *fakeAudit, *fakeNotifier) {
	auditRepo := &fakeAudit{}
	notifier := &fakeNotifier{}
	svc := NewService(Deps{
		Store:     NewMemoryStore(),
		Reloader:  reloader,
		Audit:     auditRepo,
		Notifiers: []Notifier{notifier},
	})
	return svc, auditRepo, notifier
}

func TestServiceCreate(t *testing.T) {
	reloader := &fakeReloader{}
	svc, auditRepo, notifier := newTestService(reloader)
	ctx := context.Background()

	result, err := svc.Create(ctx, timeModel("Goedemorgen"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if result.Automation.ID != "goedemorgen.yaml" {
		t.Errorf("id = %q, want goedemorgen.yaml", result.Automation.ID)
	}
	if result.Automation.Name != "Goedemorgen" {
		t.Errorf("name = %q", result.Automation.Name)
	}
	if !result.Reloaded || result.ReloadError != "" {
		t.Errorf("reload outcome = %v/%q, want true and empty", result.Reloaded, result.ReloadError)
	}
	if reloader.callCount() != 1 {
		t.Errorf("reload calls = %d, want 1", reloader.callCount())
	}

	if len(auditRepo.entries) != 1 || auditRepo.entries[0].Action != audit.ActionCreate {
		t.Errorf("audit entries = %+v", auditRepo.entries)
	}
	if len(notifier.events) != 1 || notifier.events[0].Type != ChangeCreated ||
		notifier.events[0].ID != "goedemorgen.yaml" {
		t.Errorf("events = %+v", notifier.events)
	}

	got, err := svc.Get(ctx, "goedemorgen.yaml")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Trigger.At != "07:00" {
		t.Errorf("stored trigger = %+v", got.Trigger)
	}
}

func TestServiceCreateCollision(t *testing.T) {
	svc, _, _ := newTestService(nil)
	ctx := context.Background()

	if _, err := svc.Create(ctx, timeModel("Avondlamp")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// A different name that sanitizes to the same identifier collides.
	_, err := svc.Create(ctx, timeModel("avondlamp"))
	if !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("Create() error = %v, want ErrAlreadyExists", err)
	}
}

func TestServiceCreateInvalidModel(t *testing.T) {
	reloader := &fakeReloader{}
	svc, auditRepo, _ := newTestService(reloader)

	model := timeModel("Kapot")
	model.Trigger = translator.Trigger{Type: translator.TriggerUnknown}

	_, err := svc.Create(context.Background(), model)
	if !errors.Is(err, translator.ErrInvalidFieldValue) {
		t.Fatalf("Create() error = %v, want ErrInvalidFieldValue", err)
	}

	// Nothing happened: no file, no reload, no audit.
	if reloader.callCount() != 0 {
		t.Error("reload should not run for a rejected model")
	}
	if len(auditRepo.entries) != 0 {
		t.Error("audit should not record a rejected model")
	}
}

func TestServiceUpdate(t *testing.T) {
	svc, _, notifier := newTestService(&fakeReloader{})
	ctx := context.Background()

	if _, err := svc.Create(ctx, timeModel("Wekker")); err != nil {
		t.Fatal(err)
	}

	updated := timeModel("Wekker")
	updated.Trigger.At = "06:30"
	result, err := svc.Update(ctx, "wekker.yaml", updated)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if result.Automation.Trigger.At != "06:30" {
		t.Errorf("updated trigger = %+v", result.Automation.Trigger)
	}

	if _, err := svc.Update(ctx, "bestaat_niet.yaml", updated); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update() on missing id error = %v, want ErrNotFound", err)
	}

	last := notifier.events[len(notifier.events)-1]
	if last.Type != ChangeUpdated {
		t.Errorf("last event = %+v, want updated", last)
	}
}

// TestServiceUpdateKeepsIdentifier pins the rename behaviour: renaming
// via update changes the alias, never the file identifier.
func TestServiceUpdateKeepsIdentifier(t *testing.T) {
	svc, _, _ := newTestService(nil)
	ctx := context.Background()

	if _, err := svc.Create(ctx, timeModel("Wekker")); err != nil {
		t.Fatal(err)
	}

	renamed := timeModel("Wekker doordeweeks")
	result, err := svc.Update(ctx, "wekker.yaml", renamed)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if result.Automation.ID != "wekker.yaml" {
		t.Errorf("id = %q, want unchanged wekker.yaml", result.Automation.ID)
	}

	got, err := svc.Get(ctx, "wekker.yaml")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Name != "Wekker doordeweeks" {
		t.Errorf("name = %q, want renamed alias", got.Name)
	}
}

func TestServiceDelete(t *testing.T) {
	svc, auditRepo, notifier := newTestService(&fakeReloader{})
	ctx := context.Background()

	if _, err := svc.Create(ctx, timeModel("Wekker")); err != nil {
		t.Fatal(err)
	}

	result, err := svc.Delete(ctx, "wekker.yaml")
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if result.Automation.ID != "wekker.yaml" {
		t.Errorf("result = %+v", result)
	}

	if _, err := svc.Get(ctx, "wekker.yaml"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}
	if _, err := svc.Delete(ctx, "wekker.yaml"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}

	last := notifier.events[len(notifier.events)-1]
	if last.Type != ChangeDeleted || last.Name != "Wekker" {
		t.Errorf("last event = %+v, want deleted Wekker", last)
	}
	lastAudit := auditRepo.entries[len(auditRepo.entries)-1]
	if lastAudit.Action != audit.ActionDelete {
		t.Errorf("last audit action = %q, want delete", lastAudit.Action)
	}
}

// TestServiceReloadFailureDoesNotRollBack pins the write-then-reload
// contract: the file change stands even when the reload call fails.
func TestServiceReloadFailureDoesNotRollBack(t *testing.T) {
	reloader := &fakeReloader{err: errors.New("connection refused")}
	svc, _, _ := newTestService(reloader)
	ctx := context.Background()

	result, err := svc.Create(ctx, timeModel("Goedemorgen"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if result.Reloaded {
		t.Error("Reloaded should be false when the reload call fails")
	}
	if result.ReloadError == "" {
		t.Error("ReloadError should carry the failure")
	}

	// The automation was still written.
	if _, err := svc.Get(ctx, "goedemorgen.yaml"); err != nil {
		t.Errorf("Get() after failed reload error = %v", err)
	}
}

// TestServiceUnconfiguredReloaderIsQuiet pins the optional-integration
// case: no Home Assistant connection means no reload and no error.
func TestServiceUnconfiguredReloaderIsQuiet(t *testing.T) {
	reloader := &fakeReloader{err: hass.ErrNotConfigured}
	svc, _, _ := newTestService(reloader)

	result, err := svc.Create(context.Background(), timeModel("Goedemorgen"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if result.Reloaded || result.ReloadError != "" {
		t.Errorf("reload outcome = %v/%q, want quiet skip", result.Reloaded, result.ReloadError)
	}
}

func TestServiceList(t *testing.T) {
	svc, _, _ := newTestService(nil)
	ctx := context.Background()

	if _, err := svc.Create(ctx, timeModel("Wekker")); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Create(ctx, timeModel("Avondlamp")); err != nil {
		t.Fatal(err)
	}

	automations, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(automations) != 2 {
		t.Fatalf("List() returned %d automations, want 2", len(automations))
	}
	if automations[0].ID != "avondlamp.yaml" || automations[1].ID != "wekker.yaml" {
		t.Errorf("order = %s, %s", automations[0].ID, automations[1].ID)
	}
}
