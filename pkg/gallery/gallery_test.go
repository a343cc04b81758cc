package gallery

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/infographic/pkg/data"
	"github.com/matzehuels/infographic/pkg/errors"
	"github.com/matzehuels/infographic/pkg/options"
)

func testSpec() options.Options {
	return options.Options{
		Template: "list-row-simple",
		Theme:    "dark",
		Data: data.Data{
			Title: "Roadmap",
			Items: []data.Item{{Label: "Plan"}, {Label: "Build"}},
		},
	}
}

func stores(t *testing.T) map[string]Store {
	t.Helper()
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	out := map[string]Store{
		"memory": NewMemoryStore(),
		"file":   fs,
	}
	if uri := os.Getenv("INFOGRAPHIC_TEST_MONGO"); uri != "" {
		ms, err := NewMongoStore(context.Background(), MongoConfig{
			URI:        uri,
			Collection: "gallery_test_" + time.Now().Format("150405.000000"),
		})
		if err != nil {
			t.Fatalf("NewMongoStore: %v", err)
		}
		t.Cleanup(func() {
			ms.coll.Drop(context.Background())
			ms.Close()
		})
		out["mongo"] = ms
	}
	return out
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		given   string
		spec    options.Options
		want    string
		wantErr bool
	}{
		{"explicit", "  Launch  ", testSpec(), "Launch", false},
		{"from title", "", testSpec(), "Roadmap", false},
		{"from template", "", options.Options{Template: "list-row-simple"}, "list-row-simple", false},
		{"nothing", "", options.Options{}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := New(tt.given, tt.spec)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if e.Name != tt.want {
				t.Errorf("Name = %q, want %q", e.Name, tt.want)
			}
			if err := errors.ValidateEntryID(e.ID); err != nil {
				t.Errorf("generated ID %q rejected: %v", e.ID, err)
			}
		})
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			e, err := New("Roadmap", testSpec())
			if err != nil {
				t.Fatal(err)
			}
			if err := s.Save(ctx, e); err != nil {
				t.Fatalf("Save: %v", err)
			}
			got, err := s.Get(ctx, e.ID)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got.Name != e.Name || got.Template != "list-row-simple" {
				t.Errorf("entry = %+v", got)
			}
			if !got.CreatedAt.Equal(e.CreatedAt) {
				t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, e.CreatedAt)
			}
			if got.Spec.Theme != "dark" || got.Spec.Data.Count() != 2 {
				t.Errorf("spec = %+v", got.Spec)
			}

			e.Name = "Renamed"
			if err := s.Save(ctx, e); err != nil {
				t.Fatal(err)
			}
			if got, _ := s.Get(ctx, e.ID); got.Name != "Renamed" {
				t.Errorf("Save did not replace: %q", got.Name)
			}

			if err := s.Delete(ctx, e.ID); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if _, err := s.Get(ctx, e.ID); !errors.Is(err, errors.ErrCodeEntryNotFound) {
				t.Errorf("Get after delete: %v", err)
			}
			if err := s.Delete(ctx, e.ID); !errors.Is(err, errors.ErrCodeEntryNotFound) {
				t.Errorf("second Delete: %v", err)
			}
		})
	}
}

func TestStoreListNewestFirst(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			var ids []string
			for i, n := range []string{"old", "mid", "new"} {
				e, err := New(n, testSpec())
				if err != nil {
					t.Fatal(err)
				}
				e.CreatedAt = base.Add(time.Duration(i) * time.Hour)
				if err := s.Save(ctx, e); err != nil {
					t.Fatal(err)
				}
				ids = append(ids, e.ID)
			}
			list, err := s.List(ctx)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(list) != 3 {
				t.Fatalf("List returned %d entries", len(list))
			}
			for i, want := range []string{"new", "mid", "old"} {
				if list[i].Name != want {
					t.Errorf("list[%d] = %q, want %q", i, list[i].Name, want)
				}
			}
		})
	}
}

func TestStoreRejectsBadIDs(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			for _, id := range []string{"", "../etc/passwd", "ABC", "a/b"} {
				if _, err := s.Get(ctx, id); !errors.Is(err, errors.ErrCodeInvalidInput) {
					t.Errorf("Get(%q) error = %v", id, err)
				}
				if err := s.Delete(ctx, id); !errors.Is(err, errors.ErrCodeInvalidInput) {
					t.Errorf("Delete(%q) error = %v", id, err)
				}
			}
			if err := s.Save(ctx, &Entry{ID: "../x", Name: "x"}); !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Save with bad ID: %v", err)
			}
		})
	}
}

func TestFileStoreSkipsCorruptEntries(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	e, _ := New("good", testSpec())
	if err := s.Save(ctx, e); err != nil {
		t.Fatal(err)
	}
	bad := "0123abcd"
	if err := os.WriteFile(filepath.Join(dir, bad+".json"), []byte("{"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].ID != e.ID {
		t.Errorf("List = %+v", list)
	}
	if _, err := s.Get(ctx, bad); !errors.Is(err, errors.ErrCodeStorage) {
		t.Errorf("Get corrupt entry: %v", err)
	}
	if s.Path() != dir {
		t.Errorf("Path() = %s", s.Path())
	}
}
