package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ats-backend/internal/history"
	"ats-backend/internal/shared/config"
	"ats-backend/internal/suggestions"
	"ats-backend/internal/suggestions/groq"
)

func testConfig() config.Config {
	return config.Config{
		Port:            "0",
		Env:             "test",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		LLMProvider:     "none",
		LLMTimeout:      time.Second,
		RateLimitRPS:    100,
		RateLimitBurst:  100,
	}
}

func TestBuildUsesMemoryStorageWithoutDatabase(t *testing.T) {
	app, err := Build(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer app.Close()

	if app.DB != nil {
		t.Fatalf("expected no database")
	}
	if st := app.Health.Status(context.Background()); st.TaxonomyCategories != app.Engine.Taxonomy().Len() || st.TaxonomyCategories != 25 {
		t.Fatalf("unexpected health taxonomy count %d", st.TaxonomyCategories)
	}
	if _, ok := app.HistoryRepo.(*history.MemoryRepo); !ok {
		t.Fatalf("expected memory repo, got %T", app.HistoryRepo)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze-resume", strings.NewReader(`{"resumeText":"Skills: Python, Docker"}`))
	req.Header.Set("Content-Type", "application/json")
	app.Router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestBuildRequiresDatabaseInProduction(t *testing.T) {
	cfg := testConfig()
	cfg.Env = "production"
	if _, err := Build(context.Background(), cfg); err == nil {
		t.Fatalf("expected error without DATABASE_URL in production")
	}
}

func TestBuildTaxonomyFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxonomy.yaml")
	if err := os.WriteFile(path, []byte("categories:\n  - name: data\n    keywords: [sql]\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg := testConfig()
	cfg.TaxonomyFile = path

	tax, err := BuildTaxonomy(cfg)
	if err != nil {
		t.Fatalf("taxonomy: %v", err)
	}
	if tax.Len() != 1 || tax.Names()[0] != "data" {
		t.Fatalf("unexpected taxonomy %v", tax.Names())
	}

	cfg.TaxonomyFile = filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := BuildTaxonomy(cfg); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestBuildGeneratorFallsBackWithoutKey(t *testing.T) {
	for _, provider := range []string{"groq", "gemini", "none"} {
		cfg := testConfig()
		cfg.LLMProvider = provider
		gen, err := BuildGenerator(context.Background(), cfg)
		if err != nil {
			t.Fatalf("%s: %v", provider, err)
		}
		if _, ok := gen.(suggestions.Disabled); !ok {
			t.Fatalf("%s: expected Disabled, got %T", provider, gen)
		}
	}
}

func TestBuildGeneratorSelectsGroq(t *testing.T) {
	cfg := testConfig()
	cfg.LLMProvider = "groq"
	cfg.GroqAPIKey = "test-key"
	gen, err := BuildGenerator(context.Background(), cfg)
	if err != nil {
		t.Fatalf("generator: %v", err)
	}
	if gen.Name() != "groq" {
		t.Fatalf("expected groq, got %s", gen.Name())
	}
	if model := suggestions.ModelOf(gen); model != groq.DefaultModel {
		t.Fatalf("expected default model %s, got %q", groq.DefaultModel, model)
	}
	if model := suggestions.ModelOf(suggestions.Disabled{}); model != "" {
		t.Fatalf("expected no model for disabled provider, got %q", model)
	}
}

func TestBuildGeneratorRejectsUnknownProvider(t *testing.T) {
	cfg := testConfig()
	cfg.LLMProvider = "openai"
	if _, err := BuildGenerator(context.Background(), cfg); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}
