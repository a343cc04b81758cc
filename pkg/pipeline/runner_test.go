package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/infographic/pkg/cache"
	"github.com/matzehuels/infographic/pkg/data"
	"github.com/matzehuels/infographic/pkg/element"
	"github.com/matzehuels/infographic/pkg/errors"
	"github.com/matzehuels/infographic/pkg/observability"
	"github.com/matzehuels/infographic/pkg/options"
	"github.com/matzehuels/infographic/pkg/render"
)

// memCache is an in-memory cache.Cache for tests.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

var _ cache.Cache = (*memCache)(nil)

func testLogger() *log.Logger { return log.NewWithOptions(io.Discard, log.Options{}) }

func testSpec() options.Options {
	return options.Options{
		Template: "list-row-simple",
		Data: data.Data{
			Title: "Release",
			Items: []data.Item{{Label: "Plan"}, {Label: "Build"}, {Label: "Ship"}},
		},
		Measurer: element.HeuristicMeasurer{},
	}
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if r.Logger != log.Default() {
		t.Error("nil logger should default to log.Default()")
	}
	if _, ok := r.Cache.(cache.NullCache); !ok {
		t.Errorf("nil cache = %T, want cache.NullCache", r.Cache)
	}
	if r.Keyer == nil {
		t.Error("nil keyer should get the default keyer")
	}
}

func TestExecute(t *testing.T) {
	r := NewRunner(nil, nil, testLogger())
	res, err := r.Execute(context.Background(), Options{
		Spec:    testSpec(),
		Formats: []string{FormatSVG, FormatJSON, FormatDOT},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if !bytes.HasPrefix(res.Artifacts[FormatSVG], []byte("<svg")) {
		t.Errorf("svg artifact = %.40q", res.Artifacts[FormatSVG])
	}
	if !json.Valid(res.Artifacts[FormatJSON]) {
		t.Error("json artifact is not valid JSON")
	}
	if !strings.HasPrefix(string(res.Artifacts[FormatDOT]), "digraph") {
		t.Errorf("dot artifact = %.40q", res.Artifacts[FormatDOT])
	}
	if res.Stats.ItemCount != 3 || res.Stats.Depth != 1 {
		t.Errorf("stats = %+v", res.Stats)
	}
	if res.Parsed == nil || res.Parsed.StructureType != "list-row" {
		t.Errorf("parsed = %+v", res.Parsed)
	}
	if res.SpecHash == "" {
		t.Error("spec hash missing")
	}
}

func TestExecuteBackgroundOverride(t *testing.T) {
	r := NewRunner(nil, nil, testLogger())
	res, err := r.Execute(context.Background(), Options{Spec: testSpec(), Background: "#101010"})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(res.Artifacts[FormatSVG], []byte(`fill="#101010"`)) {
		t.Error("background override not applied")
	}
}

func TestExecuteEmbedFonts(t *testing.T) {
	r := NewRunner(nil, nil, testLogger())
	res, err := r.Execute(context.Background(), Options{Spec: testSpec(), EmbedFonts: true})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(res.Artifacts[FormatSVG], []byte("@font-face")) {
		t.Error("fonts not embedded")
	}
}

func TestExecuteCaches(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	r := NewRunner(c, nil, testLogger())
	opts := Options{Spec: testSpec(), Formats: []string{FormatSVG, FormatDOT}}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.RenderHit || c.sets != 2 {
		t.Fatalf("first run: hit=%v sets=%d", first.CacheInfo.RenderHit, c.sets)
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.RenderHit || second.Parsed != nil {
		t.Errorf("second run should be served from cache: %+v", second.CacheInfo)
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached svg differs")
	}

	// A new format renders only what is missing.
	third, err := r.Execute(ctx, Options{Spec: testSpec(), Formats: []string{FormatSVG, FormatJSON}})
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.RenderHit || len(third.CacheInfo.Hits) != 1 || third.CacheInfo.Hits[0] != FormatSVG {
		t.Errorf("partial hit = %+v", third.CacheInfo)
	}
	if len(third.Artifacts) != 2 {
		t.Errorf("artifacts = %d, want 2", len(third.Artifacts))
	}

	refreshed, err := r.Execute(ctx, Options{Spec: testSpec(), Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(refreshed.CacheInfo.Hits) != 0 {
		t.Error("refresh should skip cache reads")
	}
}

func TestExecuteKeysDependOnSpec(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	r := NewRunner(c, nil, testLogger())

	if _, err := r.Execute(ctx, Options{Spec: testSpec()}); err != nil {
		t.Fatal(err)
	}
	other := testSpec()
	other.Theme = "dark"
	res, err := r.Execute(ctx, Options{Spec: other})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.RenderHit {
		t.Error("a different spec must not hit the cache")
	}
}

func TestExecuteErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"bad format", Options{Spec: testSpec(), Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"bad template", Options{Spec: options.Options{Template: "nope"}}, errors.ErrCodeInvalidTemplate},
		{"bad theme", Options{Spec: options.Options{Template: "list-row-simple", Theme: "neon"}}, errors.ErrCodeInvalidTheme},
	}
	r := NewRunner(nil, nil, testLogger())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Execute(context.Background(), tt.opts)
			if !errors.Is(err, tt.code) {
				t.Errorf("Execute() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestExecuteRaster(t *testing.T) {
	if !render.Available() {
		t.Skip("rsvg-convert not installed")
	}
	r := NewRunner(nil, nil, testLogger())
	res, err := r.Execute(context.Background(), Options{Spec: testSpec(), Formats: []string{FormatPNG, FormatPDF}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !bytes.HasPrefix(res.Artifacts[FormatPNG], []byte("\x89PNG")) {
		t.Error("png artifact lacks PNG signature")
	}
	if !bytes.HasPrefix(res.Artifacts[FormatPDF], []byte("%PDF")) {
		t.Error("pdf artifact lacks PDF header")
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) record(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *recordingHooks) OnParseStart(context.Context, string) { h.record("parse") }
func (h *recordingHooks) OnComposeStart(context.Context, string, int) {
	h.record("compose")
}
func (h *recordingHooks) OnRenderStart(context.Context, []string) { h.record("render") }

func TestExecuteHooks(t *testing.T) {
	h := &recordingHooks{}
	observability.SetPipelineHooks(h)
	defer observability.Reset()

	r := NewRunner(nil, nil, testLogger())
	if _, err := r.Execute(context.Background(), Options{Spec: testSpec()}); err != nil {
		t.Fatal(err)
	}
	want := "parse,compose,render"
	if got := strings.Join(h.events, ","); got != want {
		t.Errorf("hook order = %s, want %s", got, want)
	}
}

func TestExecuteExampleSpecs(t *testing.T) {
	tests := []struct {
		file      string
		structure string
		items     int
	}{
		{"roadmap.yaml", "list-row", 4},
		{"org.json", "hierarchy-tree", 7},
		{"onboarding.toml", "sequence-cylinders-3d", 4},
	}
	r := NewRunner(nil, nil, testLogger())
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			spec, err := options.Load(filepath.Join("..", "..", "examples", "specs", tt.file))
			if err != nil {
				t.Fatal(err)
			}
			spec.Measurer = element.HeuristicMeasurer{}
			res, err := r.Execute(context.Background(), Options{Spec: spec, Formats: []string{FormatSVG, FormatDOT}})
			if err != nil {
				t.Fatal(err)
			}
			if res.Parsed.StructureType != tt.structure {
				t.Errorf("structure = %q, want %q", res.Parsed.StructureType, tt.structure)
			}
			if res.Stats.ItemCount != tt.items {
				t.Errorf("items = %d, want %d", res.Stats.ItemCount, tt.items)
			}
			if !bytes.HasPrefix(res.Artifacts[FormatSVG], []byte("<svg")) {
				t.Error("svg artifact missing")
			}
		})
	}
}
