package litellm

import (
	"io"

	"gopkg.in/yaml.v3"
)

// Config is the generated LiteLLM proxy configuration document. Field
// order here is emission order; the gateway does not care, but humans
// reading the redirected file do.
type Config struct {
	ModelList       []ModelEntry    `yaml:"model_list"`
	RouterSettings  *RouterSettings `yaml:"router_settings,omitempty"`
	Settings        *Settings       `yaml:"litellm_settings,omitempty"`
	SuccessCallback []string        `yaml:"success_callback,omitempty"`
}

// ModelEntry is one gateway-routable destination for a logical model name.
type ModelEntry struct {
	ModelName string `yaml:"model_name"`
	Params    Params `yaml:"litellm_params"`

	RPM                 *int32 `yaml:"rpm,omitempty"`
	TPM                 *int32 `yaml:"tpm,omitempty"`
	MaxParallelRequests *int32 `yaml:"max_parallel_requests,omitempty"`
}

// Params are the connection parameters for one route entry. Pointer
// fields carry explicit zeros (temperature 0.0 is a real setting) while
// staying omittable.
type Params struct {
	Model             string   `yaml:"model"`
	APIBase           string   `yaml:"api_base,omitempty"`
	APIKey            string   `yaml:"api_key,omitempty"`
	CustomLLMProvider string   `yaml:"custom_llm_provider,omitempty"`
	MaxTokens         *int32   `yaml:"max_tokens,omitempty"`
	Temperature       *float64 `yaml:"temperature,omitempty"`
	TopP              *float64 `yaml:"top_p,omitempty"`
	FrequencyPenalty  *float64 `yaml:"frequency_penalty,omitempty"`
	PresencePenalty   *float64 `yaml:"presence_penalty,omitempty"`
	Stop              []string `yaml:"stop,omitempty"`
	TimeoutSeconds    *int     `yaml:"timeout,omitempty"`
}

// RouterSettings selects the load-balancing strategy.
type RouterSettings struct {
	RoutingStrategy string `yaml:"routing_strategy"`
}

// Settings is the litellm_settings block: cross-cutting retry, fallback,
// caching, and validation behavior. The explicit false and zero values of
// the permissive-validation bundle must survive into the output, so every
// scalar is a pointer.
type Settings struct {
	DropParams                 *bool `yaml:"drop_params,omitempty"`
	DisableStrictValidation    *bool `yaml:"disable_strict_validation,omitempty"`
	AllowedFails               *int  `yaml:"allowed_fails,omitempty"`
	EnableJSONSchemaValidation *bool `yaml:"enable_json_schema_validation,omitempty"`
	HealthCheckInterval        *int  `yaml:"health_check_interval,omitempty"`

	NumRetries *int `yaml:"num_retries,omitempty"`

	// Fallbacks maps the primary model name to its ordered fallback
	// model references.
	Fallbacks []map[string][]string `yaml:"fallbacks,omitempty"`

	Cache       *bool        `yaml:"cache,omitempty"`
	CacheParams *CacheParams `yaml:"cache_kwargs,omitempty"`
}

// CacheParams carries cache tuning nested under cache_kwargs.
type CacheParams struct {
	TTLSeconds int `yaml:"ttl"`
}

// IsZero reports whether no setting was populated. The emitter drops the
// litellm_settings block entirely in that case — downstream consumers may
// treat an explicit empty block differently from a missing one.
func (s *Settings) IsZero() bool {
	return s.DropParams == nil &&
		s.DisableStrictValidation == nil &&
		s.AllowedFails == nil &&
		s.EnableJSONSchemaValidation == nil &&
		s.HealthCheckInterval == nil &&
		s.NumRetries == nil &&
		s.Fallbacks == nil &&
		s.Cache == nil &&
		s.CacheParams == nil
}

// Encode writes the config as YAML to w, keys in struct order.
func (c *Config) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}
