package rules

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nerrad567/plain-automation/internal/translator"
)

func testDocument(alias string) translator.NativeDocument {
	return translator.NativeDocument{
		Alias:       alias,
		Description: "Managed by Plain Automation",
		Triggers:    []translator.NativeTrigger{{"platform": "time", "at": "07:00"}},
		Actions: []translator.NativeAction{{
			"service": "homeassistant.turn_on",
			"target":  map[string]any{"entity_id": "light.woonkamer"},
		}},
		Mode: "single",
	}
}

func newTestStore(t *testing.T) (*FileStore, string) {
	t.Helper()

	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	return store, dir
}

func TestFileStoreCreateAndGet(t *testing.T) {
	store, dir := newTestStore(t)
	ctx := context.Background()

	doc := testDocument("Goedemorgen")
	if err := store.Create(ctx, "goedemorgen.yaml", doc); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// The file must be a YAML list with a single element.
	data, err := os.ReadFile(filepath.Join(dir, "goedemorgen.yaml"))
	if err != nil {
		t.Fatalf("reading written file: %v", err)
	}
	if !strings.HasPrefix(string(data), "- alias: Goedemorgen") {
		t.Errorf("file should start with a list element, got:\n%s", data)
	}

	got, err := store.Get(ctx, "goedemorgen.yaml")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Alias != "Goedemorgen" || got.Mode != "single" {
		t.Errorf("Get() = %+v", got)
	}
	if len(got.Triggers) != 1 || got.Triggers[0]["platform"] != "time" {
		t.Errorf("triggers = %v", got.Triggers)
	}
}

func TestFileStoreCreateDuplicate(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Create(ctx, "lamp.yaml", testDocument("Lamp")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	err := store.Create(ctx, "lamp.yaml", testDocument("Andere lamp"))
	if !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("second Create() error = %v, want ErrAlreadyExists", err)
	}
}

func TestFileStoreReplace(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	t.Run("missing file", func(t *testing.T) {
		err := store.Replace(ctx, "nope.yaml", testDocument("Nope"))
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Replace() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("overwrites existing", func(t *testing.T) {
		if err := store.Create(ctx, "lamp.yaml", testDocument("Lamp")); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if err := store.Replace(ctx, "lamp.yaml", testDocument("Lamp v2")); err != nil {
			t.Fatalf("Replace() error = %v", err)
		}

		got, err := store.Get(ctx, "lamp.yaml")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got.Alias != "Lamp v2" {
			t.Errorf("alias = %q, want Lamp v2", got.Alias)
		}
	})
}

func TestFileStoreDelete(t *testing.T) {
	store, dir := newTestStore(t)
	ctx := context.Background()

	if err := store.Create(ctx, "lamp.yaml", testDocument("Lamp")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := store.Delete(ctx, "lamp.yaml"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "lamp.yaml")); !os.IsNotExist(err) {
		t.Error("file should be gone after Delete()")
	}
	if err := store.Delete(ctx, "lamp.yaml"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}

func TestFileStoreGetErrors(t *testing.T) {
	store, dir := newTestStore(t)
	ctx := context.Background()

	t.Run("missing file", func(t *testing.T) {
		_, err := store.Get(ctx, "nope.yaml")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Get() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("invalid identifier", func(t *testing.T) {
		_, err := store.Get(ctx, "../outside.yaml")
		if !errors.Is(err, ErrInvalidID) {
			t.Errorf("Get() error = %v, want ErrInvalidID", err)
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(dir, "kapot.yaml")
		if err := os.WriteFile(path, []byte("{not valid yaml"), 0644); err != nil {
			t.Fatal(err)
		}
		_, err := store.Get(ctx, "kapot.yaml")
		if !errors.Is(err, ErrInvalidDocument) {
			t.Errorf("Get() error = %v, want ErrInvalidDocument", err)
		}
	})

	t.Run("empty document list", func(t *testing.T) {
		path := filepath.Join(dir, "leeg.yaml")
		if err := os.WriteFile(path, []byte("[]\n"), 0644); err != nil {
			t.Fatal(err)
		}
		_, err := store.Get(ctx, "leeg.yaml")
		if !errors.Is(err, ErrInvalidDocument) {
			t.Errorf("Get() error = %v, want ErrInvalidDocument", err)
		}
	})
}

func TestFileStoreList(t *testing.T) {
	store, dir := newTestStore(t)
	ctx := context.Background()

	if err := store.Create(ctx, "wekker.yaml", testDocument("Wekker")); err != nil {
		t.Fatal(err)
	}
	if err := store.Create(ctx, "avondlamp.yaml", testDocument("Avondlamp")); err != nil {
		t.Fatal(err)
	}

	// Files that are not valid automation documents are skipped.
	if err := os.WriteFile(filepath.Join(dir, "kapot.yaml"), []byte("{broken"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notities.txt"), []byte("hoi"), 0644); err != nil {
		t.Fatal(err)
	}

	stored, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("List() returned %d documents, want 2", len(stored))
	}
	// Sorted by identifier.
	if stored[0].ID != "avondlamp.yaml" || stored[1].ID != "wekker.yaml" {
		t.Errorf("List() order = %s, %s", stored[0].ID, stored[1].ID)
	}
}

// TestFileStoreRoundTripThroughTranslator pins the full path: encode a
// flat model, persist it, read it back, decode it.
func TestFileStoreRoundTripThroughTranslator(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	model := translator.Automation{
		Name: "Avondlamp",
		Trigger: translator.Trigger{
			Type:          translator.TriggerSun,
			Event:         translator.SunEventSunset,
			OffsetSign:    translator.OffsetBefore,
			OffsetMinutes: 20,
		},
		Action: translator.Action{Type: translator.ActionTurnOn, Entity: "light.woonkamer"},
	}

	doc, err := translator.EncodeDocument(model)
	if err != nil {
		t.Fatalf("EncodeDocument() error = %v", err)
	}

	id := DeriveID(model.Name)
	if err := store.Create(ctx, id, doc); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	persisted, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	got := translator.DecodeDocument(persisted)
	if got.Name != "Avondlamp" {
		t.Errorf("name = %q", got.Name)
	}
	if got.Trigger.Type != translator.TriggerSun || got.Trigger.OffsetMinutes != 20 ||
		got.Trigger.OffsetSign != translator.OffsetBefore {
		t.Errorf("trigger = %+v", got.Trigger)
	}
	if got.Action.Entity != "light.woonkamer" {
		t.Errorf("action = %+v", got.Action)
	}
}
