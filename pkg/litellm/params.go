package litellm

import (
	"strconv"
	"strings"

	"github.com/language-operator/litellm-configgen/pkg/observability"
	"github.com/language-operator/litellm-configgen/pkg/spec"
)

// PlaceholderAPIKey is emitted for openai-compatible and custom providers
// when no key resolves. Local servers (LM Studio, Ollama, vLLM) need no
// auth, but LiteLLM insists on a non-empty api_key field.
const PlaceholderAPIKey = "sk-local-dummy-key"

// defaultDurationSeconds backs malformed or unitless duration strings.
const defaultDurationSeconds = 300

// ModelForProvider maps a provider and model name to the LiteLLM model
// identifier. Unknown providers pass the model name through unchanged —
// a missing prefix degrades more gracefully than a refused config.
func ModelForProvider(provider, modelName string) string {
	switch provider {
	case "azure":
		return "azure/" + modelName
	case "bedrock":
		return "bedrock/" + modelName
	case "vertex":
		return "vertex_ai/" + modelName
	case "openai-compatible":
		return "openai/" + modelName
	case "openai", "anthropic", "custom":
		return modelName
	default:
		observability.DegradedConditions.WithLabelValues("unknown_provider").Inc()
		return modelName
	}
}

// BuildParams composes the litellm_params for a spec. apiKey may be empty;
// see PlaceholderAPIKey for how the generic providers cover that.
func BuildParams(s *spec.LanguageModelSpec, apiKey string) Params {
	compat := isOpenAICompatible(s.Provider)

	p := Params{Model: ModelForProvider(s.Provider, s.ModelName)}

	if s.Endpoint != "" {
		if compat {
			p.APIBase = ensureV1Suffix(s.Endpoint)
		} else {
			p.APIBase = s.Endpoint
		}
	}

	// Pin the generic endpoint to the OpenAI-compatible transport so
	// LiteLLM skips provider inference and strict validation.
	if compat {
		p.CustomLLMProvider = "openai"
	}

	switch {
	case apiKey != "":
		p.APIKey = apiKey
	case compat:
		p.APIKey = PlaceholderAPIKey
	}

	if c := s.Configuration; c != nil {
		p.MaxTokens = c.MaxTokens
		p.Temperature = c.Temperature
		p.TopP = c.TopP
		p.FrequencyPenalty = c.FrequencyPenalty
		p.PresencePenalty = c.PresencePenalty
		if len(c.StopSequences) > 0 {
			p.Stop = c.StopSequences
		}
	}

	if s.Timeout != "" {
		t := parseDurationSeconds(s.Timeout)
		p.TimeoutSeconds = &t
	}

	return p
}

// isOpenAICompatible reports whether the provider is bridged through the
// generic OpenAI-compatible transport.
func isOpenAICompatible(provider string) bool {
	return provider == "openai-compatible" || provider == "custom"
}

// ensureV1Suffix normalizes a generic endpoint so it ends with /v1, the
// base path the OpenAI-compatible transport expects. Idempotent.
func ensureV1Suffix(endpoint string) string {
	trimmed := strings.TrimRight(endpoint, "/")
	if strings.HasSuffix(trimmed, "/v1") {
		return trimmed
	}
	return trimmed + "/v1"
}

// parseDurationSeconds converts duration strings like "2h", "5m", or
// "30s" to whole seconds. Anything else — unknown suffix, malformed
// number, empty string — falls back to 300 seconds. Never fails: a
// default timeout beats an aborted startup.
func parseDurationSeconds(s string) int {
	if len(s) < 2 {
		observability.DegradedConditions.WithLabelValues("malformed_duration").Inc()
		return defaultDurationSeconds
	}

	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil {
		observability.DegradedConditions.WithLabelValues("malformed_duration").Inc()
		return defaultDurationSeconds
	}

	switch s[len(s)-1] {
	case 'h':
		return n * 3600
	case 'm':
		return n * 60
	case 's':
		return n
	}

	observability.DegradedConditions.WithLabelValues("malformed_duration").Inc()
	return defaultDurationSeconds
}
