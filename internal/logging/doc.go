// Package logging assembles structured slog loggers and formatting helpers
// used across curator.
//
// It owns the configurable console/JSON handlers and centralizes level and
// output plumbing so every component emits log lines with the same shape.
// The package also provides a no-op logger for tests and wiring code that
// cannot fail, and a component-logger helper that tags lines with a stable
// component attribute.
//
// Prefer these constructors over hand-rolled slog setup.
package logging
