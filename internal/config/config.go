// Package config defines the persisted shellman configuration: the API
// provider settings stored in ~/.shellman/config.json, the store that reads
// and writes that file, and the initializer that fills in whatever is missing.
package config

// Provenance values recorded in Config.Source.
const (
	SourceDefaults         = "defaults"
	SourceUserInput        = "user input"
	SourceExistingValid    = "existing (valid)"
	SourceExistingDefaults = "existing + defaults"
	SourceExistingInput    = "existing + user input"
	SourceFallback         = "defaults (fallback)"
)

// Static defaults used in non-interactive mode and as prompt fallbacks.
const (
	DefaultAPIKey   = ""
	DefaultProvider = "openai"
	DefaultHistory  = true
)

// Config holds the API-provider settings persisted between runs.
type Config struct {
	// APIKey is the credential for the selected provider.
	APIKey string `json:"API_KEY"`

	// APIProvider names an entry of the provider table (e.g. "openai").
	APIProvider string `json:"API_PROVIDER"`

	// APIModel is a model identifier; normally one of ModelsFor(APIProvider).
	APIModel string `json:"API_MODEL"`

	// APICustomEndpoint overrides the provider's base URL. Optional.
	APICustomEndpoint string `json:"API_CUSTOM_ENDPOINT,omitempty"`

	// HistoryEnable is nil when the file never defined it.
	HistoryEnable *bool `json:"HISTORY_ENABLE,omitempty"`

	// Source records how this configuration was derived. Diagnostic only.
	Source string `json:"source,omitempty"`
}

// Defaults returns the static default configuration.
func Defaults() Config {
	return Config{
		APIKey:        DefaultAPIKey,
		APIProvider:   DefaultProvider,
		APIModel:      DefaultModel(DefaultProvider),
		HistoryEnable: Bool(DefaultHistory),
		Source:        SourceDefaults,
	}
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}

// History reports the history toggle, treating an undefined value as false.
func (c Config) History() bool {
	return c.HistoryEnable != nil && *c.HistoryEnable
}

// Field identifies a single configuration entry.
type Field int

const (
	FieldAPIKey Field = iota
	FieldProvider
	FieldModel
	FieldCustomEndpoint
	FieldHistory
)

// RequiredFields lists the fields that must be set for a configuration to be
// considered complete, in prompt order.
var RequiredFields = []Field{FieldAPIKey, FieldProvider, FieldModel, FieldHistory}

// String returns the JSON key of the field.
func (f Field) String() string {
	switch f {
	case FieldAPIKey:
		return "API_KEY"
	case FieldProvider:
		return "API_PROVIDER"
	case FieldModel:
		return "API_MODEL"
	case FieldCustomEndpoint:
		return "API_CUSTOM_ENDPOINT"
	case FieldHistory:
		return "HISTORY_ENABLE"
	default:
		return "UNKNOWN"
	}
}

// MissingFields returns the required fields that are empty or undefined in c,
// in RequiredFields order.
func MissingFields(c Config) []Field {
	var missing []Field
	for _, f := range RequiredFields {
		if !isSet(c, f) {
			missing = append(missing, f)
		}
	}
	return missing
}

// Complete reports whether every required field is set.
func (c Config) Complete() bool {
	return len(MissingFields(c)) == 0
}

func isSet(c Config, f Field) bool {
	switch f {
	case FieldAPIKey:
		return c.APIKey != ""
	case FieldProvider:
		return c.APIProvider != ""
	case FieldModel:
		return c.APIModel != ""
	case FieldCustomEndpoint:
		return c.APICustomEndpoint != ""
	case FieldHistory:
		return c.HistoryEnable != nil
	}
	return false
}

// FillMissing copies the default value of each listed field into c, leaving
// every other field untouched.
func FillMissing(c Config, fields []Field) Config {
	d := Defaults()
	for _, f := range fields {
		switch f {
		case FieldAPIKey:
			c.APIKey = d.APIKey
		case FieldProvider:
			c.APIProvider = d.APIProvider
		case FieldModel:
			c.APIModel = d.APIModel
		case FieldCustomEndpoint:
			c.APICustomEndpoint = d.APICustomEndpoint
		case FieldHistory:
			c.HistoryEnable = Bool(*d.HistoryEnable)
		}
	}
	return c
}

// MaskKey hides all but the last four characters of an API key.
func MaskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}
