// Package litellm translates a LanguageModel spec into a LiteLLM proxy
// configuration. The translation is a single pure pass: provider-specific
// model naming, endpoint normalization, load-balancing fan-out, and
// retry/fallback/caching policy mapping. Every builder is total — bad
// input degrades to a default instead of failing, because an imperfect
// config is still more useful to the gateway than none.
package litellm
