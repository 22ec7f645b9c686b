// Command configgen generates a LiteLLM proxy configuration from the
// LanguageModel spec the language operator mounts into the pod. It runs
// once at container startup; the YAML goes to stdout for redirection into
// the gateway's config file, diagnostics go to stderr.
//
// Configuration via flags or environment variables:
//
//	-spec         / LANGOP_MODEL_SPEC    spec path (default /etc/langop/model.json)
//	-secrets-root / LANGOP_SECRETS_ROOT  mounted secrets root (default /etc/secrets)
//	-o                                   write the config to a file instead of stdout
//	-metrics-file / LANGOP_METRICS_FILE  Prometheus textfile collector output (optional)
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/language-operator/litellm-configgen/pkg/litellm"
	"github.com/language-operator/litellm-configgen/pkg/observability"
	"github.com/language-operator/litellm-configgen/pkg/spec"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		slog.Error("config generation failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	// A .env file feeds the environment fallback for API keys during
	// local development; in a pod there is none.
	_ = godotenv.Load()

	fs := flag.NewFlagSet("configgen", flag.ContinueOnError)
	specPath := fs.String("spec", envOrDefault("LANGOP_MODEL_SPEC", spec.DefaultPath), "path to the LanguageModel spec JSON")
	secretsRoot := fs.String("secrets-root", envOrDefault("LANGOP_SECRETS_ROOT", spec.DefaultSecretsRoot), "root directory of mounted secrets")
	outputPath := fs.String("o", "", "write the generated config to this file instead of stdout")
	metricsFile := fs.String("metrics-file", os.Getenv("LANGOP_METRICS_FILE"), "write Prometheus textfile metrics to this path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	slog.Info("generating LiteLLM config", "spec", *specPath)

	model, err := spec.Load(*specPath)
	if err != nil {
		return err
	}

	apiKey, _ := spec.ResolveAPIKey(model.APIKeySecretRef, *secretsRoot)

	cfg := litellm.Generate(model, apiKey)

	out := stdout
	if *outputPath != "" {
		f, err := os.Create(*outputPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}
	if err := cfg.Encode(out); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	observability.RouteEntriesBuilt.Add(float64(len(cfg.ModelList)))
	observability.LastRunTimestamp.SetToCurrentTime()
	if *metricsFile != "" {
		if err := observability.WriteTextfile(*metricsFile); err != nil {
			slog.Warn("writing metrics file failed", "path", *metricsFile, "error", err)
		}
	}

	slog.Info("LiteLLM config generated",
		"provider", model.Provider,
		"model", model.ModelName,
		"entries", len(cfg.ModelList))
	if rl := model.RateLimits; rl != nil {
		slog.Info("rate limits applied",
			"rpm", limitValue(rl.RequestsPerMinute),
			"tpm", limitValue(rl.TokensPerMinute),
			"concurrent", limitValue(rl.ConcurrentRequests))
	}

	return nil
}

func envOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func limitValue(v *int32) any {
	if v == nil {
		return "unset"
	}
	return *v
}
