package rules

import (
	"context"
	"errors"
	"fmt"

	"github.com/nerrad567/plain-automation/internal/audit"
	"github.com/nerrad567/plain-automation/internal/hass"
	"github.com/nerrad567/plain-automation/internal/infrastructure/logging"
	"github.com/nerrad567/plain-automation/internal/translator"
)

// Change event types delivered to notifiers.
const (
	ChangeCreated = "created"
	ChangeUpdated = "updated"
	ChangeDeleted = "deleted"
)

// ChangeEvent describes a mutation to the automation set.
type ChangeEvent struct {
	Type string `json:"type"`
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// Reloader asks Home Assistant to re-read automation YAML from disk.
// Satisfied by hass.Client.
type Reloader interface {
	ReloadAutomations(ctx context.Context) error
}

// Notifier receives change events after successful writes. Delivery is
// best effort; implementations must not block.
type Notifier interface {
	NotifyChange(event ChangeEvent)
}

// Automation is the flat rule model plus its file identifier.
type Automation struct {
	ID string `json:"id"`
	translator.Automation
}

// WriteResult reports the outcome of a mutating operation. A failed
// reload never rolls the write back; the file change stands and the
// reload error is reported alongside it.
type WriteResult struct {
	Automation  Automation `json:"automation"`
	Reloaded    bool       `json:"reloaded"`
	ReloadError string     `json:"reload_error,omitempty"`
}

// Deps carries the service's collaborators. Store is required; the
// rest may be nil and the matching behaviour is skipped.
type Deps struct {
	Store     Store
	Reloader  Reloader
	Audit     audit.Repository
	Logger    *logging.Logger
	Notifiers []Notifier
}

// Service implements the automation lifecycle on top of a Store.
type Service struct {
	store     Store
	reloader  Reloader
	audit     audit.Repository
	logger    *logging.Logger
	notifiers []Notifier
}

// NewService creates an automation service.
func NewService(deps Deps) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = logging.Default()
	}

	return &Service{
		store:     deps.Store,
		reloader:  deps.Reloader,
		audit:     deps.Audit,
		logger:    logger.With("component", "rules"),
		notifiers: deps.Notifiers,
	}
}

// Get returns a single automation decoded into the flat model.
func (s *Service) Get(ctx context.Context, id string) (Automation, error) {
	doc, err := s.store.Get(ctx, id)
	if err != nil {
		return Automation{}, err
	}
	return Automation{ID: id, Automation: translator.DecodeDocument(doc)}, nil
}

// List returns all stored automations decoded into the flat model.
func (s *Service) List(ctx context.Context) ([]Automation, error) {
	stored, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	automations := make([]Automation, 0, len(stored))
	for _, st := range stored {
		automations = append(automations, Automation{
			ID:         st.ID,
			Automation: translator.DecodeDocument(st.Document),
		})
	}
	return automations, nil
}

// Create encodes the model, derives its file identifier from the name,
// and writes a new automation file. Two names that sanitize to the
// same identifier collide with ErrAlreadyExists.
func (s *Service) Create(ctx context.Context, model translator.Automation) (*WriteResult, error) {
	doc, err := translator.EncodeDocument(model)
	if err != nil {
		return nil, err
	}

	id := DeriveID(model.Name)
	if err := s.store.Create(ctx, id, doc); err != nil {
		return nil, err
	}

	s.logger.Info("automation created", "id", id, "name", model.Name)

	result := s.finishWrite(ctx, audit.ActionCreate, ChangeCreated, id, model.Name)
	result.Automation = Automation{ID: id, Automation: translator.DecodeDocument(doc)}
	return result, nil
}

// Update encodes the model and overwrites an existing automation file.
// The identifier is the address and never changes, even when the name
// does; only the alias inside the document moves.
func (s *Service) Update(ctx context.Context, id string, model translator.Automation) (*WriteResult, error) {
	doc, err := translator.EncodeDocument(model)
	if err != nil {
		return nil, err
	}

	if err := s.store.Replace(ctx, id, doc); err != nil {
		return nil, err
	}

	s.logger.Info("automation updated", "id", id, "name", model.Name)

	result := s.finishWrite(ctx, audit.ActionUpdate, ChangeUpdated, id, model.Name)
	result.Automation = Automation{ID: id, Automation: translator.DecodeDocument(doc)}
	return result, nil
}

// Delete removes an automation file.
func (s *Service) Delete(ctx context.Context, id string) (*WriteResult, error) {
	// Best effort: pick up the name for the change event before the
	// file disappears.
	name := ""
	if doc, err := s.store.Get(ctx, id); err == nil {
		name = translator.DecodeDocument(doc).Name
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return nil, err
	}

	s.logger.Info("automation deleted", "id", id, "name", name)

	result := s.finishWrite(ctx, audit.ActionDelete, ChangeDeleted, id, name)
	result.Automation = Automation{ID: id}
	return result, nil
}

// Reload explicitly asks Home Assistant to re-read automation YAML.
// Used by the manual reload endpoint.
func (s *Service) Reload(ctx context.Context) error {
	if s.reloader == nil {
		return nil
	}

	err := s.reloader.ReloadAutomations(ctx)
	if err != nil && !isNotConfigured(err) {
		s.recordAudit(ctx, audit.ActionReload, "", map[string]any{"error": err.Error()})
		return fmt.Errorf("reloading automations: %w", err)
	}

	s.recordAudit(ctx, audit.ActionReload, "", nil)
	return nil
}

// finishWrite runs the shared post-write steps: reload, audit entry,
// change notification. None of them can fail the write itself.
func (s *Service) finishWrite(ctx context.Context, action, change, id, name string) *WriteResult {
	result := &WriteResult{}

	if s.reloader != nil {
		if err := s.reloader.ReloadAutomations(ctx); err != nil {
			if !isNotConfigured(err) {
				s.logger.Warn("automation reload failed", "id", id, "error", err)
				result.ReloadError = err.Error()
			}
		} else {
			result.Reloaded = true
		}
	}

	details := map[string]any{"reloaded": result.Reloaded}
	if name != "" {
		details["name"] = name
	}
	if result.ReloadError != "" {
		details["reload_error"] = result.ReloadError
	}
	s.recordAudit(ctx, action, id, details)

	event := ChangeEvent{Type: change, ID: id, Name: name}
	for _, n := range s.notifiers {
		n.NotifyChange(event)
	}

	return result
}

// recordAudit writes an audit entry; failures are logged, never
// surfaced to the caller.
func (s *Service) recordAudit(ctx context.Context, action, id string, details map[string]any) {
	if s.audit == nil {
		return
	}

	entry := &audit.AuditLog{
		Action:       action,
		AutomationID: id,
		Source:       "api",
		Details:      details,
	}
	if err := s.audit.Create(ctx, entry); err != nil {
		s.logger.Warn("recording audit entry failed", "action", action, "error", err)
	}
}

// isNotConfigured hides the optional-integration case: a missing Home
// Assistant connection is not a reload failure.
func isNotConfigured(err error) bool {
	return errors.Is(err, hass.ErrNotConfigured)
}
