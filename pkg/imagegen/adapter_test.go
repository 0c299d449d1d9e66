package imagegen

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dtnitsch/sitemap-icons/pkg/artifacts"
	"github.com/dtnitsch/sitemap-icons/pkg/fetcher"
	"github.com/dtnitsch/sitemap-icons/pkg/thumbnail"
)

type fakeProvider struct {
	resource Resource
	err      error
	calls    int
	prompts  []string
}

func (p *fakeProvider) Generate(_ context.Context, prompt string) (Resource, error) {
	p.calls++
	p.prompts = append(p.prompts, prompt)
	if p.err != nil {
		return Resource{}, p.err
	}
	return p.resource, nil
}

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("failed to encode test PNG: %v", err)
	}
	return buf.Bytes()
}

func testAdapter(t *testing.T, provider Provider) (*Adapter, *artifacts.Manager) {
	t.Helper()
	manager, err := artifacts.NewManager(filepath.Join(t.TempDir(), "icons"))
	if err != nil {
		t.Fatalf("failed to create artifacts manager: %v", err)
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return NewAdapter(logger, provider, fetcher.NewFetcher(), manager, thumbnail.DefaultSize), manager
}

func TestPromptEmbedsSlugVerbatim(t *testing.T) {
	p := Prompt("wallet basics")
	if !strings.Contains(p, "'wallet basics'") {
		t.Errorf("Prompt() = %q, want the slug embedded verbatim", p)
	}
}

func TestGenerateFromInlineBytes(t *testing.T) {
	provider := &fakeProvider{resource: Resource{Bytes: testPNG(t, 1024, 1024)}}
	adapter, manager := testAdapter(t, provider)

	path, err := adapter.Generate(context.Background(), "wallet basics")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if path != manager.IconPath("wallet basics") {
		t.Errorf("Generate() path = %q, want %q", path, manager.IconPath("wallet basics"))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read generated icon: %v", err)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("generated icon does not decode: %v", err)
	}
	if cfg.Width != thumbnail.DefaultSize || cfg.Height != thumbnail.DefaultSize {
		t.Errorf("icon dimensions = %dx%d, want %dx%d", cfg.Width, cfg.Height, thumbnail.DefaultSize, thumbnail.DefaultSize)
	}
}

func TestGenerateDownloadsURLResource(t *testing.T) {
	raw := testPNG(t, 512, 512)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(raw)
	}))
	defer server.Close()

	provider := &fakeProvider{resource: Resource{URL: server.URL}}
	adapter, manager := testAdapter(t, provider)

	if _, err := adapter.Generate(context.Background(), "mining"); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !manager.HasIcon("mining") {
		t.Error("icon file missing after URL-resource generation")
	}
}

func TestGenerateProviderFailure(t *testing.T) {
	wantErr := errors.New("provider exploded")
	provider := &fakeProvider{err: wantErr}
	adapter, manager := testAdapter(t, provider)

	_, err := adapter.Generate(context.Background(), "mining")
	if !errors.Is(err, wantErr) {
		t.Fatalf("Generate() error = %v, want %v", err, wantErr)
	}
	if manager.HasIcon("mining") {
		t.Error("icon file exists after provider failure")
	}
}

func TestGenerateUndecodableImageFailsWithoutArtifact(t *testing.T) {
	provider := &fakeProvider{resource: Resource{Bytes: []byte("not an image at all")}}
	adapter, manager := testAdapter(t, provider)

	if _, err := adapter.Generate(context.Background(), "mining"); err == nil {
		t.Fatal("Generate() = nil error, want decode failure")
	}
	if manager.HasIcon("mining") {
		t.Error("partial icon file left behind after decode failure")
	}
}

func TestGenerateEmptyResource(t *testing.T) {
	provider := &fakeProvider{resource: Resource{}}
	adapter, _ := testAdapter(t, provider)

	if _, err := adapter.Generate(context.Background(), "mining"); !errors.Is(err, ErrNoImage) {
		t.Fatalf("Generate() error = %v, want ErrNoImage", err)
	}
}

func TestGenerateDownloadFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	provider := &fakeProvider{resource: Resource{URL: server.URL}}
	adapter, manager := testAdapter(t, provider)

	if _, err := adapter.Generate(context.Background(), "mining"); err == nil {
		t.Fatal("Generate() = nil error, want download failure")
	}
	if manager.HasIcon("mining") {
		t.Error("icon file exists after download failure")
	}
}
