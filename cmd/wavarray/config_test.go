package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/wavarray"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "wavarray.yaml")

	err := os.WriteFile(path, []byte(content), 0o644)
	if err != nil {
		t.Fatal(err)
	}

	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatal(err)
	}

	if cfg != defaultConfig() {
		t.Fatalf("loadConfig(\"\")=%+v, want defaults", cfg)
	}

	path := writeConfig(t, "preview_len: 10\noutput: json\nraw: true\n")

	cfg, err = loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}

	want := Config{PreviewLen: 10, Output: outputJSON, Raw: true, LogLevel: "info"}
	if cfg != want {
		t.Fatalf("loadConfig()=%+v, want %+v", cfg, want)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("loadConfig()=%v, want os.ErrNotExist", err)
	}

	_, err = loadConfig(writeConfig(t, "preview_len: [1, 2\n"))
	if err == nil {
		t.Fatal("expected a YAML syntax error")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults", defaultConfig(), false},
		{"json upper case", Config{Output: "JSON", LogLevel: "Debug"}, false},
		{"unknown output", Config{Output: "csv", LogLevel: "info"}, true},
		{"unknown level", Config{Output: outputText, LogLevel: "loud"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("validate()=%v, wantErr %t", err, tt.wantErr)
			}
		})
	}
}

func TestConfigApplyEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")

	cfg := defaultConfig()
	cfg.applyEnv()

	if cfg.LogLevel != "warn" {
		t.Fatalf("log level=%q, want warn", cfg.LogLevel)
	}
}

func TestRunWithConfigFile(t *testing.T) {
	path := writeWav(t, wavarray.Width16, 1, []int64{100, -200, 300, -400})
	configPath := writeConfig(t, "preview_len: 1\noutput: json\n")

	var out, errOut bytes.Buffer

	err := run([]string{"-config", configPath, path}, &out, &errOut)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if got := out.String(); got != "[0.25]\n" {
		t.Fatalf("output=%q, want %q", got, "[0.25]\n")
	}

	out.Reset()

	err = run([]string{"-config", configPath, "-n", "3", "-json=false", path}, &out, &errOut)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if got := out.String(); got != "[0.25, -0.5, 0.75]\n" {
		t.Fatalf("output=%q, want %q", got, "[0.25, -0.5, 0.75]\n")
	}

	err = run([]string{"-config", writeConfig(t, "output: csv\n"), path}, &out, &errOut)
	if !errors.Is(err, errInvalidOutput) {
		t.Fatalf("run()=%v, want %v", err, errInvalidOutput)
	}
}
