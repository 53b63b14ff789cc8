package config

import (
	"os"
	"path/filepath"
	"testing"
)

func validConfig() Config {
	cfg := Config{
		HTTP:      HTTPConfig{Port: 8080},
		Database:  DatabaseConfig{URI: "mongodb://localhost:27017"},
		Embedding: EmbeddingConfig{APIKey: "sk-test"},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_OK(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	for _, port := range []int{0, -1, 70000} {
		cfg := validConfig()
		cfg.HTTP.Port = port
		if err := cfg.Validate(); err == nil {
			t.Errorf("expected error for port %d", port)
		}
	}
}

func TestValidate_MissingMongoURI(t *testing.T) {
	cfg := validConfig()
	cfg.Database.URI = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing uri")
	}
	if want := "database.uri is required"; err.Error() != want {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), want)
	}
}

func TestValidate_MissingAPIKey(t *testing.T) {
	cfg := validConfig()
	cfg.Embedding.APIKey = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing api key")
	}
	if want := "embedding.api_key is required"; err.Error() != want {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), want)
	}
}

func TestValidate_LogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown log level")
	}

	cfg.Logging.Level = "debug"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_BaseURL(t *testing.T) {
	cfg := validConfig()
	cfg.Embedding.BaseURL = "not a url"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid base url")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.Port != 8080 {
		t.Errorf("expected Port=8080, got %d", cfg.HTTP.Port)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if len(cfg.HTTP.CORSAllowedOrigins) != 1 || cfg.HTTP.CORSAllowedOrigins[0] != "*" {
		t.Errorf("expected CORS origins [*], got %v", cfg.HTTP.CORSAllowedOrigins)
	}
	if cfg.Database.Name != "vector-search" {
		t.Errorf("expected Name='vector-search', got %q", cfg.Database.Name)
	}
	if cfg.Database.Collection != "posts" {
		t.Errorf("expected Collection='posts', got %q", cfg.Database.Collection)
	}
	if cfg.Database.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Database.ReadinessTimeout)
	}
	if cfg.Embedding.Model != "text-embedding-ada-002" {
		t.Errorf("expected ada-002 model, got %q", cfg.Embedding.Model)
	}
	if cfg.Search.Index != "default" || cfg.Search.Path != "plot_embedding" || cfg.Search.K != 1000 {
		t.Errorf("unexpected search defaults: %+v", cfg.Search)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 9000, ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Database: DatabaseConfig{Name: "blog", Collection: "articles", ReadinessTimeout: 15},
		Search:   SearchConfig{Index: "posts_vectors", Path: "vec", K: 50},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.Port != 9000 || cfg.HTTP.ReadTimeoutSec != 30 || cfg.HTTP.WriteTimeoutSec != 60 || cfg.HTTP.ShutdownSec != 5 {
		t.Errorf("http overridden: %+v", cfg.HTTP)
	}
	if cfg.Database.Name != "blog" || cfg.Database.Collection != "articles" || cfg.Database.ReadinessTimeout != 15 {
		t.Errorf("database overridden: %+v", cfg.Database)
	}
	if cfg.Search.Index != "posts_vectors" || cfg.Search.Path != "vec" || cfg.Search.K != 50 {
		t.Errorf("search overridden: %+v", cfg.Search)
	}
}

func TestLoadFile_ExpandsEnvVars(t *testing.T) {
	t.Setenv("TEST_MONGO_URI", "mongodb://db:27017")

	path := filepath.Join(t.TempDir(), "test.yaml")
	data := `
http:
  port: ${TEST_PORT:-5000}
database:
  uri: ${TEST_MONGO_URI}
search:
  k: 250
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.HTTP.Port != 5000 {
		t.Errorf("expected Port=5000 from default, got %d", cfg.HTTP.Port)
	}
	if cfg.Database.URI != "mongodb://db:27017" {
		t.Errorf("expected expanded uri, got %q", cfg.Database.URI)
	}
	if cfg.Search.K != 250 {
		t.Errorf("expected K=250, got %d", cfg.Search.K)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if cfg.HTTP.Port != 0 {
		t.Errorf("expected zero config, got %+v", cfg)
	}
}

func TestLoadFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("http: [oops"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestApplyEnv_OverridesFile(t *testing.T) {
	t.Setenv("PORT", "7070")
	t.Setenv("MONGODB_DATABASE", "staging")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com,https://b.example.com")

	cfg := Config{
		HTTP:     HTTPConfig{Port: 5000},
		Database: DatabaseConfig{URI: "mongodb://file", Name: "from-file"},
	}
	if err := applyEnv(&cfg); err != nil {
		t.Fatalf("applyEnv: %v", err)
	}

	if cfg.HTTP.Port != 7070 {
		t.Errorf("expected Port=7070, got %d", cfg.HTTP.Port)
	}
	if cfg.Database.Name != "staging" {
		t.Errorf("expected Name='staging', got %q", cfg.Database.Name)
	}
	if cfg.Database.URI != "mongodb://file" {
		t.Errorf("unset variable must keep file value, got %q", cfg.Database.URI)
	}
	if len(cfg.HTTP.CORSAllowedOrigins) != 2 {
		t.Errorf("expected 2 origins, got %v", cfg.HTTP.CORSAllowedOrigins)
	}
}

func TestLoad_FromEnvironmentOnly(t *testing.T) {
	t.Setenv("PORT", "5001")
	t.Setenv("MONGODB_URI", "mongodb+srv://cluster.example.net")
	t.Setenv("OPENAI_API_KEY", "sk-env")

	cfg, err := Load("no-such-env")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Port != 5001 {
		t.Errorf("expected Port=5001, got %d", cfg.HTTP.Port)
	}
	if cfg.Database.URI != "mongodb+srv://cluster.example.net" {
		t.Errorf("unexpected uri %q", cfg.Database.URI)
	}
	if cfg.Embedding.APIKey != "sk-env" {
		t.Errorf("unexpected api key %q", cfg.Embedding.APIKey)
	}
	if cfg.Database.Name != "vector-search" {
		t.Errorf("expected default database, got %q", cfg.Database.Name)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("MONGODB_URI", "")
	t.Setenv("OPENAI_API_KEY", "sk-env")

	if _, err := Load("no-such-env"); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestMustLoad_PanicsOnInvalidConfig(t *testing.T) {
	t.Setenv("MONGODB_URI", "")
	t.Setenv("OPENAI_API_KEY", "sk-env")

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	MustLoad("no-such-env")
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("SET_VAR", "value")

	got := string(expandEnvVars([]byte("a=${SET_VAR} b=${UNSET_VAR_XYZ:-fallback} c=${UNSET_VAR_XYZ}")))
	if want := "a=value b=fallback c="; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if got := GetEnv(); got != "local" {
		t.Errorf("expected local, got %q", got)
	}
	t.Setenv("ENV", "prod")
	if got := GetEnv(); got != "prod" {
		t.Errorf("expected prod, got %q", got)
	}
}
