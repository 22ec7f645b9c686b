package litellm

import (
	"github.com/language-operator/litellm-configgen/pkg/observability"
	"github.com/language-operator/litellm-configgen/pkg/spec"
)

// BuildModelList expands the spec into route entries. Without load
// balancing the result is a single entry; with N configured endpoints the
// base entry is duplicated once per endpoint in input order, each copy
// differing only in api_base and re-carrying the rate limits.
func BuildModelList(s *spec.LanguageModelSpec, apiKey string) []ModelEntry {
	base := ModelEntry{
		ModelName: s.ModelName,
		Params:    BuildParams(s, apiKey),
	}
	if rl := s.RateLimits; rl != nil {
		base.RPM = rl.RequestsPerMinute
		base.TPM = rl.TokensPerMinute
		base.MaxParallelRequests = rl.ConcurrentRequests
	}

	lb := s.LoadBalancing
	if lb == nil || len(lb.Endpoints) == 0 {
		return []ModelEntry{base}
	}

	entries := make([]ModelEntry, 0, len(lb.Endpoints))
	for _, ep := range lb.Endpoints {
		entry := base
		entry.Params.APIBase = ep.URL
		entries = append(entries, entry)
	}
	return entries
}

// BuildRouterSettings maps the load-balancing strategy to a LiteLLM
// routing strategy. Returns nil when the spec has no loadBalancing block;
// a present-but-empty block still yields the default strategy, which is a
// different statement to the gateway than no block at all.
func BuildRouterSettings(s *spec.LanguageModelSpec) *RouterSettings {
	lb := s.LoadBalancing
	if lb == nil {
		return nil
	}
	return &RouterSettings{RoutingStrategy: routingStrategy(lb.Strategy)}
}

// routingStrategy translates a strategy name. LiteLLM has no weighted or
// true random strategy, so those collapse to simple-shuffle, as does
// anything unrecognized.
func routingStrategy(name string) string {
	switch name {
	case "round-robin", "random", "weighted":
		return "simple-shuffle"
	case "least-connections":
		return "least-busy"
	case "latency-based":
		return "latency-based-routing"
	case "":
		return "simple-shuffle"
	}
	observability.DegradedConditions.WithLabelValues("unknown_strategy").Inc()
	return "simple-shuffle"
}

// BuildSettings assembles the litellm_settings block. It always returns a
// value; the emitter decides whether an all-empty result is worth a block.
func BuildSettings(s *spec.LanguageModelSpec) Settings {
	var set Settings

	// Blanket permissive-validation bundle for anything bridged through
	// the OpenAI-compatible transport: local backends return response
	// shapes strict validation would reject, and internal health checks
	// pile requests onto single-threaded servers.
	if isOpenAICompatible(s.Provider) {
		set.DropParams = ptr(true)
		set.DisableStrictValidation = ptr(true)
		set.AllowedFails = ptr(3)
		set.EnableJSONSchemaValidation = ptr(false)
		set.HealthCheckInterval = ptr(0)
	}

	if rp := s.RetryPolicy; rp != nil {
		retries := 3
		if rp.MaxAttempts != nil {
			retries = int(*rp.MaxAttempts)
		}
		set.NumRetries = &retries
	}

	if refs := fallbackRefs(s.Fallbacks); len(refs) > 0 {
		set.Fallbacks = []map[string][]string{{s.ModelName: refs}}
	}

	if c := s.Caching; c != nil && c.Enabled {
		set.Cache = ptr(true)
		if c.TTL != "" {
			set.CacheParams = &CacheParams{TTLSeconds: parseDurationSeconds(c.TTL)}
		}
	}

	return set
}

// fallbackRefs collects the usable model references. A fallback list
// whose entries all lack a reference contributes nothing.
func fallbackRefs(fallbacks []spec.ModelFallbackSpec) []string {
	var refs []string
	for _, fb := range fallbacks {
		if fb.ModelRef != "" {
			refs = append(refs, fb.ModelRef)
		}
	}
	return refs
}

// BuildCallbacks returns the success-callback list. Metrics default on
// when the observability block is present; prometheus is the only
// supported callback.
func BuildCallbacks(s *spec.LanguageModelSpec) []string {
	o := s.Observability
	if o == nil {
		return nil
	}
	if o.Metrics != nil && !*o.Metrics {
		return nil
	}
	return []string{"prometheus"}
}

// Generate runs the full translation: model list, router settings,
// runtime settings, and callbacks merged into one document.
func Generate(s *spec.LanguageModelSpec, apiKey string) *Config {
	cfg := &Config{
		ModelList:      BuildModelList(s, apiKey),
		RouterSettings: BuildRouterSettings(s),
	}

	if set := BuildSettings(s); !set.IsZero() {
		cfg.Settings = &set
	}

	cfg.SuccessCallback = BuildCallbacks(s)
	return cfg
}

func ptr[T any](v T) *T {
	return &v
}
