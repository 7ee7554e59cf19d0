package config

import "testing"

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if cfg.Multicast != "239.255.0.1" || cfg.Port != 5000 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadAppliesCLIFlags(t *testing.T) {
	cfg, err := Load([]string{"--multicast", "239.1.1.1", "--port", "6000", "--duration", "30"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Multicast != "239.1.1.1" || cfg.Port != 6000 || cfg.DurationSec != 30 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadParsesSymbols(t *testing.T) {
	cfg, err := Load([]string{"--symbols", "1001,1002, 1003"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []uint32{1001, 1002, 1003}
	if len(cfg.Symbols) != len(want) {
		t.Fatalf("unexpected symbols: %v", cfg.Symbols)
	}
	for i := range want {
		if cfg.Symbols[i] != want[i] {
			t.Fatalf("unexpected symbols: %v", cfg.Symbols)
		}
	}
}

func TestEnvOverridesDefaultsButNotFlags(t *testing.T) {
	t.Setenv("MDR_PORT", "7000")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 7000 {
		t.Fatalf("expected env override to apply, got port=%d", cfg.Port)
	}

	cfg, err = Load([]string{"--port", "8000"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 8000 {
		t.Fatalf("expected explicit flag to win over env, got port=%d", cfg.Port)
	}
}

func TestValidateRejectsBadPort(t *testing.T) {
	cfg := Defaults()
	cfg.Port = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for port 0")
	}
}

func TestValidateRejectsNegativeDuration(t *testing.T) {
	cfg := Defaults()
	cfg.DurationSec = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for negative duration")
	}
}
