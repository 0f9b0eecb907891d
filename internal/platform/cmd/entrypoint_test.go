package cmd

import (
	"context"
	"errors"
	"flag"
	"testing"
)

type testConfig struct {
	Path string `env:"CMD_TEST_PATH" envDefault:"heroes.db"`
	Mode string `env:"CMD_TEST_MODE" envDefault:"strict"`
}

func TestParseConfigFromArgsLayersFlagsOverEnv(t *testing.T) {
	t.Setenv("HEROSHEET_CMD_TEST_PATH", "env.db")
	t.Setenv("HEROSHEET_CMD_TEST_MODE", "env-mode")

	var cfg testConfig
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.StringVar(&cfg.Path, "path", "", "path")
	if err := ParseConfigFromArgs(&cfg, fs, []string{"-path", "flag.db"}); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Path != "flag.db" {
		t.Fatalf("Path = %q, want flag value", cfg.Path)
	}
	if cfg.Mode != "env-mode" {
		t.Fatalf("Mode = %q, want env value", cfg.Mode)
	}
}

func TestParseConfigFromArgsDefaults(t *testing.T) {
	var cfg testConfig
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	if err := ParseConfigFromArgs(&cfg, fs, nil); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Path != "heroes.db" || cfg.Mode != "strict" {
		t.Fatalf("cfg = %+v, want defaults", cfg)
	}
}

func TestParseConfigFromArgsRejectsMissingInputs(t *testing.T) {
	if err := ParseConfigFromArgs[testConfig](nil, flag.NewFlagSet("x", flag.ContinueOnError), nil); err == nil {
		t.Fatal("expected nil config error")
	}
	if err := ParseConfigFromArgs(&testConfig{}, nil, nil); err == nil {
		t.Fatal("expected nil parser error")
	}
}

func TestRunWithTelemetryRejectsMissingInputs(t *testing.T) {
	if err := RunWithTelemetry(context.Background(), "", func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected missing service error")
	}
	if err := RunWithTelemetry(context.Background(), ServiceMCP, nil); err == nil {
		t.Fatal("expected missing run function error")
	}
}

func TestRunWithTelemetryReturnsRunError(t *testing.T) {
	t.Setenv("HEROSHEET_OTEL_ENDPOINT", "")
	want := errors.New("boom")
	err := RunWithTelemetry(context.Background(), ServiceScenario, func(context.Context) error { return want })
	if !errors.Is(err, want) {
		t.Fatalf("RunWithTelemetry error = %v, want %v", err, want)
	}
}
