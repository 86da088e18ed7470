package rules

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nerrad567/plain-automation/internal/translator"
)

// File permission modes for the automations directory and its files.
const (
	storeDirPermissions  = 0750
	storeFilePermissions = 0644
)

// Stored pairs an automation's file identifier with its native document.
type Stored struct {
	ID       string
	Document translator.NativeDocument
}

// Store persists native automation documents keyed by file identifier.
type Store interface {
	Get(ctx context.Context, id string) (translator.NativeDocument, error)
	Create(ctx context.Context, id string, doc translator.NativeDocument) error
	Replace(ctx context.Context, id string, doc translator.NativeDocument) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Stored, error)
}

// FileStore keeps one YAML file per automation in a single directory,
// typically the automations folder of a Home Assistant config. Each
// file contains a single-element list so Home Assistant can include
// the whole directory.
//
// No locking: the last writer wins, the same as hand-editing the YAML.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed and returns a store
// rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, storeDirPermissions); err != nil {
		return nil, fmt.Errorf("creating automations directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the directory the store reads and writes.
func (s *FileStore) Dir() string {
	return s.dir
}

// Get reads and parses a single automation file.
func (s *FileStore) Get(_ context.Context, id string) (translator.NativeDocument, error) {
	if !ValidID(id) {
		return translator.NativeDocument{}, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	data, err := os.ReadFile(filepath.Join(s.dir, id))
	if err != nil {
		if os.IsNotExist(err) {
			return translator.NativeDocument{}, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return translator.NativeDocument{}, fmt.Errorf("reading %s: %w", id, err)
	}

	return parseDocument(id, data)
}

// Create writes a new automation file. Fails if the identifier is
// already taken.
func (s *FileStore) Create(_ context.Context, id string, doc translator.NativeDocument) error {
	if !ValidID(id) {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	data, err := marshalDocument(doc)
	if err != nil {
		return err
	}

	// O_EXCL makes existence the atomic uniqueness check.
	f, err := os.OpenFile(filepath.Join(s.dir, id), os.O_WRONLY|os.O_CREATE|os.O_EXCL, storeFilePermissions)
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("%w: %s", ErrAlreadyExists, id)
		}
		return fmt.Errorf("creating %s: %w", id, err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close() //nolint:errcheck // Best effort cleanup on error path
		return fmt.Errorf("writing %s: %w", id, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", id, err)
	}
	return nil
}

// Replace overwrites an existing automation file. Fails if the
// identifier is unknown.
func (s *FileStore) Replace(_ context.Context, id string, doc translator.NativeDocument) error {
	if !ValidID(id) {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	path := filepath.Join(s.dir, id)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return fmt.Errorf("checking %s: %w", id, err)
	}

	data, err := marshalDocument(doc)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, storeFilePermissions); err != nil {
		return fmt.Errorf("writing %s: %w", id, err)
	}
	return nil
}

// Delete removes an automation file.
func (s *FileStore) Delete(_ context.Context, id string) error {
	if !ValidID(id) {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	if err := os.Remove(filepath.Join(s.dir, id)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return fmt.Errorf("deleting %s: %w", id, err)
	}
	return nil
}

// List reads every automation file in the directory, sorted by
// identifier. Files that are not valid automation documents are
// skipped rather than failing the whole listing; hand-edited YAML
// should not take the rule list down.
func (s *FileStore) List(_ context.Context) ([]Stored, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading automations directory: %w", err)
	}

	var stored []Stored
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), idSuffix) {
			continue
		}
		if !ValidID(entry.Name()) {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			continue
		}
		doc, err := parseDocument(entry.Name(), data)
		if err != nil {
			continue
		}

		stored = append(stored, Stored{ID: entry.Name(), Document: doc})
	}

	sort.Slice(stored, func(i, j int) bool {
		return stored[i].ID < stored[j].ID
	})

	return stored, nil
}

// marshalDocument renders the single-element list form Home Assistant
// expects when including a directory of automation files.
func marshalDocument(doc translator.NativeDocument) ([]byte, error) {
	data, err := yaml.Marshal([]translator.NativeDocument{doc})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return data, nil
}

// parseDocument unmarshals a file's contents into its first (and
// normally only) native document.
func parseDocument(id string, data []byte) (translator.NativeDocument, error) {
	var docs []translator.NativeDocument
	if err := yaml.Unmarshal(data, &docs); err != nil {
		return translator.NativeDocument{}, fmt.Errorf("%w: %s: %v", ErrInvalidDocument, id, err)
	}
	if len(docs) == 0 {
		return translator.NativeDocument{}, fmt.Errorf("%w: %s: empty document list", ErrInvalidDocument, id)
	}
	return docs[0], nil
}
