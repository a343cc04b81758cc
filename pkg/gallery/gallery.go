// Package gallery stores named infographic specs.
//
// A gallery entry is a spec saved under a generated ID so it can be
// rendered again later, by the CLI or through the HTTP API. Three backends
// implement Store:
//   - MemoryStore: in-process storage for tests and ephemeral servers
//   - FileStore: one JSON file per entry, for the CLI and single-node servers
//   - MongoStore: a MongoDB collection, for shared deployments
//
// # Usage
//
//	store, err := gallery.NewFileStore("")
//	if err != nil {
//	    return err
//	}
//	entry, err := gallery.New("Q3 roadmap", spec)
//	if err != nil {
//	    return err
//	}
//	if err := store.Save(ctx, entry); err != nil {
//	    return err
//	}
//	got, err := store.Get(ctx, entry.ID)
package gallery

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/infographic/pkg/errors"
	"github.com/matzehuels/infographic/pkg/options"
)

// Entry is a saved infographic.
type Entry struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Template  string          `json:"template,omitempty"`
	Spec      options.Options `json:"spec"`
	CreatedAt time.Time       `json:"created_at"`
}

// Store is the interface for gallery backends. Implementations are safe for
// concurrent use.
type Store interface {
	// Save stores an entry, replacing any entry with the same ID.
	Save(ctx context.Context, e *Entry) error

	// Get retrieves an entry by ID. A missing entry is an
	// ENTRY_NOT_FOUND error.
	Get(ctx context.Context, id string) (*Entry, error)

	// List returns every entry, newest first.
	List(ctx context.Context) ([]*Entry, error)

	// Delete removes an entry. A missing entry is an ENTRY_NOT_FOUND error.
	Delete(ctx context.Context, id string) error

	Close() error
}

// New creates an entry with a fresh ID. An empty name falls back to the
// spec's title, then its template.
func New(name string, spec options.Options) (*Entry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = spec.Data.Title
	}
	if name == "" {
		name = spec.Template
	}
	if err := errors.ValidateEntryName(name); err != nil {
		return nil, err
	}
	return &Entry{
		ID:        uuid.NewString(),
		Name:      name,
		Template:  spec.Template,
		Spec:      spec,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}, nil
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeEntryNotFound, "gallery entry %q not found", id)
}

// validate checks an entry before it is written.
func validate(e *Entry) error {
	if e == nil {
		return errors.New(errors.ErrCodeInvalidInput, "entry is nil")
	}
	if err := errors.ValidateEntryID(e.ID); err != nil {
		return err
	}
	return errors.ValidateEntryName(e.Name)
}

// sortEntries orders entries newest first, breaking ties by ID.
func sortEntries(entries []*Entry) {
	slices.SortFunc(entries, func(a, b *Entry) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}
