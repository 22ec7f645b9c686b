package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/language-operator/litellm-configgen/pkg/spec"
)

func TestRun_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	specPath := filepath.Join(dir, "model.json")
	specJSON := `{
		"provider": "openai-compatible",
		"modelName": "llama3",
		"endpoint": "http://lmstudio:1234",
		"timeout": "5m",
		"caching": {"enabled": true, "ttl": "10m"},
		"observability": {"metrics": true}
	}`
	if err := os.WriteFile(specPath, []byte(specJSON), 0o644); err != nil {
		t.Fatalf("writing spec: %v", err)
	}

	var stdout bytes.Buffer
	err := run([]string{"-spec", specPath, "-secrets-root", dir}, &stdout)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	var cfg map[string]any
	if err := yaml.Unmarshal(stdout.Bytes(), &cfg); err != nil {
		t.Fatalf("stdout is not valid YAML: %v\n%s", err, stdout.String())
	}

	modelList, ok := cfg["model_list"].([]any)
	if !ok || len(modelList) != 1 {
		t.Fatalf("model_list = %v, want one entry", cfg["model_list"])
	}
	entry := modelList[0].(map[string]any)
	if entry["model_name"] != "llama3" {
		t.Errorf("model_name = %v, want llama3", entry["model_name"])
	}
	params := entry["litellm_params"].(map[string]any)
	if params["api_base"] != "http://lmstudio:1234/v1" {
		t.Errorf("api_base = %v, want http://lmstudio:1234/v1", params["api_base"])
	}
	if params["timeout"] != 300 {
		t.Errorf("timeout = %v, want 300", params["timeout"])
	}

	if _, ok := cfg["litellm_settings"]; !ok {
		t.Error("litellm_settings missing (compat bundle + caching expected)")
	}
	cb, ok := cfg["success_callback"].([]any)
	if !ok || len(cb) != 1 || cb[0] != "prometheus" {
		t.Errorf("success_callback = %v, want [prometheus]", cfg["success_callback"])
	}
}

func TestRun_OutputFile(t *testing.T) {
	dir := t.TempDir()
	specPath := filepath.Join(dir, "model.json")
	if err := os.WriteFile(specPath, []byte(`{"provider":"openai","modelName":"gpt-4"}`), 0o644); err != nil {
		t.Fatalf("writing spec: %v", err)
	}
	outPath := filepath.Join(dir, "config.yaml")

	var stdout bytes.Buffer
	if err := run([]string{"-spec", specPath, "-secrets-root", dir, "-o", outPath}, &stdout); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if stdout.Len() != 0 {
		t.Errorf("stdout not empty with -o: %q", stdout.String())
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading output file: %v", err)
	}
	var cfg map[string]any
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("output file is not valid YAML: %v", err)
	}
}

func TestRun_MetricsFile(t *testing.T) {
	dir := t.TempDir()
	specPath := filepath.Join(dir, "model.json")
	if err := os.WriteFile(specPath, []byte(`{"provider":"openai","modelName":"gpt-4"}`), 0o644); err != nil {
		t.Fatalf("writing spec: %v", err)
	}
	metricsPath := filepath.Join(dir, "configgen.prom")

	var stdout bytes.Buffer
	if err := run([]string{"-spec", specPath, "-secrets-root", dir, "-metrics-file", metricsPath}, &stdout); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if _, err := os.Stat(metricsPath); err != nil {
		t.Errorf("metrics file not written: %v", err)
	}
}

func TestRun_MissingSpecIsFatalAndSilent(t *testing.T) {
	dir := t.TempDir()

	var stdout bytes.Buffer
	err := run([]string{"-spec", filepath.Join(dir, "nope.json"), "-secrets-root", dir}, &stdout)
	if !errors.Is(err, spec.ErrNotFound) {
		t.Fatalf("err = %v, want spec.ErrNotFound", err)
	}

	// The primary stream stays clean on fatal errors.
	if stdout.Len() != 0 {
		t.Errorf("stdout not empty on failure: %q", stdout.String())
	}
}

func TestRun_InvalidJSONIsFatal(t *testing.T) {
	dir := t.TempDir()
	specPath := filepath.Join(dir, "model.json")
	if err := os.WriteFile(specPath, []byte(`{not json`), 0o644); err != nil {
		t.Fatalf("writing spec: %v", err)
	}

	var stdout bytes.Buffer
	err := run([]string{"-spec", specPath, "-secrets-root", dir}, &stdout)
	if !errors.Is(err, spec.ErrInvalidJSON) {
		t.Fatalf("err = %v, want spec.ErrInvalidJSON", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout not empty on failure: %q", stdout.String())
	}
}
