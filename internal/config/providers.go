package config

import "slices"

// providerModels maps each supported provider to its models, best first.
// Never mutate it; accessors hand out copies.
var providerModels = map[string][]string{
	"openai":    {"gpt-4o", "gpt-4o-mini", "gpt-4-turbo", "gpt-3.5-turbo"},
	"anthropic": {"claude-3-5-sonnet-latest", "claude-3-5-haiku-latest", "claude-3-opus-latest"},
	"google":    {"gemini-1.5-pro", "gemini-1.5-flash", "gemini-1.0-pro"},
	"mistral":   {"mistral-large-latest", "mistral-small-latest", "codestral-latest"},
	"ollama":    {"llama3.2", "qwen2.5-coder", "mistral"},
}

// fallbackProvider supplies the model list for unknown providers.
const fallbackProvider = "openai"

// providerOrder is the display order for provider selection.
var providerOrder = []string{"openai", "anthropic", "google", "mistral", "ollama"}

// defaultEndpoints holds base URLs suggested when prompting for a custom
// endpoint. Providers without an entry have no suggestion.
var defaultEndpoints = map[string]string{
	"ollama": "http://localhost:11434/v1",
}

// Providers returns the supported provider names in display order.
func Providers() []string {
	return slices.Clone(providerOrder)
}

// KnownProvider reports whether name is in the provider table.
func KnownProvider(name string) bool {
	_, ok := providerModels[name]
	return ok
}

// ModelsFor returns the models offered for provider. Unknown providers get
// the openai list.
func ModelsFor(provider string) []string {
	if models, ok := providerModels[provider]; ok {
		return slices.Clone(models)
	}
	return slices.Clone(providerModels[fallbackProvider])
}

// DefaultModel returns the first model listed for provider.
func DefaultModel(provider string) string {
	return ModelsFor(provider)[0]
}

// HasModel reports whether model is offered for provider.
func HasModel(provider, model string) bool {
	return slices.Contains(ModelsFor(provider), model)
}

// SuggestedEndpoint returns the base URL to prefill for provider, or "".
func SuggestedEndpoint(provider string) string {
	return defaultEndpoints[provider]
}
