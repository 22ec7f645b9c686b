package spec

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/language-operator/litellm-configgen/pkg/observability"
)

const (
	// DefaultPath is where the operator mounts the spec ConfigMap.
	DefaultPath = "/etc/langop/model.json"

	// DefaultSecretsRoot is where API key secrets are mounted, one
	// directory per secret name.
	DefaultSecretsRoot = "/etc/secrets"

	// defaultSecretKey is the key read from a secret when the reference
	// does not name one.
	defaultSecretKey = "api-key"
)

// Fatal load failures. These are the only conditions that abort config
// generation; everything downstream degrades instead.
var (
	// ErrNotFound reports a missing spec file.
	ErrNotFound = errors.New("model spec not found")

	// ErrInvalidJSON reports a spec file that is not valid JSON.
	ErrInvalidJSON = errors.New("model spec is not valid JSON")
)

// Load reads and parses the LanguageModel spec at path. It accepts both a
// bare spec document and a full LanguageModel manifest, unwrapping the
// latter. Load fails only for a missing file or invalid JSON.
func Load(path string) (*LanguageModelSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w at %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading model spec %s: %w", path, err)
	}

	s, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing model spec %s: %w", path, err)
	}

	slog.Info("loaded model spec", "path", path)
	return s, nil
}

// parse decodes either document shape. A top-level "kind: LanguageModel"
// or a populated "spec" object selects the manifest envelope; anything
// else is treated as the bare spec.
func parse(data []byte) (*LanguageModelSpec, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if m.Kind == "LanguageModel" || m.Spec.Provider != "" || m.Spec.ModelName != "" {
		return &m.Spec, nil
	}

	var s LanguageModelSpec
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return &s, nil
}

// ResolveAPIKey resolves the API key for a secret reference. The mounted
// secret file under secretsRoot takes precedence; if it does not exist the
// environment variable derived from the secret name (upper-cased, hyphens
// to underscores) is consulted. A nil reference or an unresolvable key
// returns ok=false — callers must tolerate an absent key.
func ResolveAPIKey(ref *SecretReference, secretsRoot string) (key string, ok bool) {
	if ref == nil {
		return "", false
	}

	secretKey := ref.Key
	if secretKey == "" {
		secretKey = defaultSecretKey
	}

	secretPath := filepath.Join(secretsRoot, ref.Name, secretKey)
	if data, err := os.ReadFile(secretPath); err == nil {
		slog.Info("loaded API key from secret", "secret", ref.Name, "key", secretKey)
		return strings.TrimSpace(string(data)), true
	}

	envVar := strings.ToUpper(strings.ReplaceAll(ref.Name, "-", "_"))
	if v, set := os.LookupEnv(envVar); set {
		slog.Info("loaded API key from environment", "var", envVar)
		return v, true
	}

	slog.Warn("API key secret not found", "secret", ref.Name, "key", secretKey)
	observability.DegradedConditions.WithLabelValues("missing_api_key").Inc()
	return "", false
}
