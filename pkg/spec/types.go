// Package spec defines the LanguageModel resource specification and loads it
// from the JSON document the language operator mounts into the pod.
//
// The document arrives in one of two shapes: the bare spec (the operator
// copies model.Spec into the ConfigMap key model.json) or a full
// LanguageModel manifest with the spec nested under "spec". Both are
// accepted; see Load.
package spec

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// LanguageModelSpec is the desired state of a LanguageModel resource.
// Optional blocks are pointers so that "absent" and "present but empty"
// stay distinguishable after parsing.
type LanguageModelSpec struct {
	// Provider is the upstream backend family: openai, anthropic, azure,
	// bedrock, vertex, openai-compatible, or custom. Unknown values are
	// tolerated and treated like custom model names.
	Provider string `json:"provider"`

	// ModelName is the model identifier (e.g. "gpt-4", "claude-3-opus").
	ModelName string `json:"modelName"`

	// Endpoint is the API endpoint URL, required for openai-compatible,
	// azure, and custom providers.
	Endpoint string `json:"endpoint,omitempty"`

	// APIKeySecretRef references the secret holding the API key.
	APIKeySecretRef *SecretReference `json:"apiKeySecretRef,omitempty"`

	// Configuration holds model tuning parameters.
	Configuration *ProviderConfiguration `json:"configuration,omitempty"`

	// RateLimits caps request, token, and concurrency throughput.
	RateLimits *RateLimitSpec `json:"rateLimits,omitempty"`

	// Timeout is a request timeout duration string such as "5m" or "30s".
	Timeout string `json:"timeout,omitempty"`

	// RetryPolicy configures retries executed by the downstream gateway.
	RetryPolicy *RetryPolicySpec `json:"retryPolicy,omitempty"`

	// Fallbacks is an ordered list of models to try when this one fails.
	Fallbacks []ModelFallbackSpec `json:"fallbacks,omitempty"`

	// LoadBalancing fans the model out across multiple endpoints.
	LoadBalancing *LoadBalancingSpec `json:"loadBalancing,omitempty"`

	// Caching configures response caching in the gateway.
	Caching *CachingSpec `json:"caching,omitempty"`

	// Observability toggles monitoring integration.
	Observability *ObservabilitySpec `json:"observability,omitempty"`
}

// SecretReference points at a Kubernetes Secret and a key within it.
type SecretReference struct {
	Name string `json:"name"`

	// Namespace of the secret; informational here, the mount path only
	// uses the name.
	Namespace string `json:"namespace,omitempty"`

	// Key within the secret. Defaults to "api-key".
	Key string `json:"key,omitempty"`
}

// ProviderConfiguration holds tuning parameters forwarded to the gateway.
// Pointer fields distinguish an explicit zero (e.g. temperature 0.0) from
// an absent field.
type ProviderConfiguration struct {
	MaxTokens        *int32   `json:"maxTokens,omitempty"`
	Temperature      *float64 `json:"temperature,omitempty"`
	TopP             *float64 `json:"topP,omitempty"`
	FrequencyPenalty *float64 `json:"frequencyPenalty,omitempty"`
	PresencePenalty  *float64 `json:"presencePenalty,omitempty"`
	StopSequences    []string `json:"stopSequences,omitempty"`
}

// RateLimitSpec caps model throughput.
type RateLimitSpec struct {
	RequestsPerMinute  *int32 `json:"requestsPerMinute,omitempty"`
	TokensPerMinute    *int32 `json:"tokensPerMinute,omitempty"`
	ConcurrentRequests *int32 `json:"concurrentRequests,omitempty"`
}

// RetryPolicySpec configures retry behavior for failed requests.
type RetryPolicySpec struct {
	// MaxAttempts defaults to 3 when the policy block is present but the
	// field is not.
	MaxAttempts *int32 `json:"maxAttempts,omitempty"`
}

// ModelFallbackSpec names an alternate model to invoke on failure.
type ModelFallbackSpec struct {
	ModelRef string `json:"modelRef"`
}

// LoadBalancingSpec spreads requests across multiple endpoints.
type LoadBalancingSpec struct {
	// Strategy is one of round-robin, least-connections, random, weighted,
	// or latency-based. Empty or unknown values fall back to the default
	// routing strategy.
	Strategy string `json:"strategy,omitempty"`

	Endpoints []EndpointSpec `json:"endpoints,omitempty"`
}

// EndpointSpec is one load-balanced endpoint.
type EndpointSpec struct {
	URL string `json:"url"`
}

// CachingSpec configures response caching.
type CachingSpec struct {
	Enabled bool `json:"enabled,omitempty"`

	// TTL is a duration string such as "10m".
	TTL string `json:"ttl,omitempty"`
}

// ObservabilitySpec toggles monitoring integration.
type ObservabilitySpec struct {
	// Metrics enables the metrics success callback. Nil means enabled;
	// only an explicit false disables it.
	Metrics *bool `json:"metrics,omitempty"`
}

// Manifest is the Kubernetes object envelope a LanguageModel may arrive in,
// e.g. from "kubectl get languagemodel -o json".
type Manifest struct {
	metav1.TypeMeta `json:",inline"`

	Metadata metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec LanguageModelSpec `json:"spec,omitempty"`
}
