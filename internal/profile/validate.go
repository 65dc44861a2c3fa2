package profile

import (
	"encoding/json"
	"os"
	"strings"
)

// Validation is the structured result of checking a bundle file before
// import. Malformed input is reported through Error rather than a Go error
// so callers can render the message directly.
type Validation struct {
	Valid   bool   `json:"valid"`
	Version string `json:"version,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Validation messages are stable; callers match on them.
const (
	validationUnreadable     = "Invalid JSON format or file not readable"
	validationMissingVersion = "Missing version information"
	validationMissingDate    = "Missing export date"
	validationNoData         = "No importable data found"
)

// ValidateImportFile checks that a file looks like an importable bundle:
// parseable JSON carrying a version, an export date, and at least one
// non-trivial section.
func ValidateImportFile(path string) Validation {
	data, err := os.ReadFile(path)
	if err != nil {
		return Validation{Error: validationUnreadable}
	}

	var doc struct {
		Version        string          `json:"version"`
		ExportDate     json.RawMessage `json:"exportDate"`
		Settings       json.RawMessage `json:"settings"`
		TagDefinitions json.RawMessage `json:"tagDefinitions"`
		Favorites      json.RawMessage `json:"favorites"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return Validation{Error: validationUnreadable}
	}

	if strings.TrimSpace(doc.Version) == "" {
		return Validation{Error: validationMissingVersion}
	}
	if !present(doc.ExportDate) {
		return Validation{Error: validationMissingDate}
	}
	if !nonTrivial(doc.Settings) && !nonTrivial(doc.TagDefinitions) && !nonTrivial(doc.Favorites) {
		return Validation{Error: validationNoData}
	}
	return Validation{Valid: true, Version: doc.Version}
}

func present(raw json.RawMessage) bool {
	value := strings.TrimSpace(string(raw))
	return value != "" && value != "null"
}

// nonTrivial reports whether a section carries importable content: present,
// non-null, and not an empty object or array.
func nonTrivial(raw json.RawMessage) bool {
	value := strings.Join(strings.Fields(string(raw)), "")
	switch value {
	case "", "null", "{}", "[]":
		return false
	}
	return true
}
