// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ConvertConfig holds settings that apply to every job in a batch run.
type ConvertConfig struct {
	// StylePath is an optional style overlay applied when loading inputs.
	StylePath string `json:"style_path" yaml:"style_path"`

	// ForceMode bypasses document version and compatibility checks on load.
	ForceMode bool `json:"force_mode" yaml:"force_mode"`

	// SoundProfile, when non-empty, overrides the active sound profile of
	// every loaded document before conversion.
	SoundProfile string `json:"sound_profile" yaml:"sound_profile"`

	// ExtensionURI, when non-empty, names an extension (with query
	// parameters) run against each loaded document before export.
	ExtensionURI string `json:"extension_uri" yaml:"extension_uri"`
}

// HistoryConfig holds settings for the run-history store.
type HistoryConfig struct {
	// Dir is the directory holding the history database (default "history").
	Dir string `json:"dir" yaml:"dir"`

	// Disabled turns off run recording entirely.
	Disabled bool `json:"disabled" yaml:"disabled"`
}
