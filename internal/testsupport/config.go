package testsupport

import (
	"path/filepath"
	"testing"

	"curator/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.LibraryDir = filepath.Join(base, "library")
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}

	return builder.cfg
}

// WithImageExtensions overrides the recognized image extensions.
func WithImageExtensions(exts ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Library.ImageExtensions = exts
	}
}

// WithVideoExtensions overrides the recognized video extensions.
func WithVideoExtensions(exts ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Library.VideoExtensions = exts
	}
}

// WithDebounce overrides the search debounce interval in milliseconds.
func WithDebounce(ms int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Search.DebounceMS = ms
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
