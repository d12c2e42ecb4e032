package logger

import "testing"

func TestNew_NilConfig(t *testing.T) {
	l, err := New(nil)
	if err != nil {
		t.Fatalf("New(nil) failed: %v", err)
	}
	if l == nil {
		t.Fatal("New(nil) returned nil logger")
	}
	l.Info("test")
}

func TestNew_PartialConfig(t *testing.T) {
	cfg := &Config{
		Level: "debug",
		// Encoding, OutputPaths and ErrorOutputPaths are empty
	}
	l, err := New(cfg)
	if err != nil {
		t.Fatalf("New with partial config failed: %v", err)
	}
	if cfg.Encoding != "json" {
		t.Errorf("expected encoding to default to json, got %q", cfg.Encoding)
	}
	l.Debug("test from partial config")
}

func TestNew_InvalidLevel(t *testing.T) {
	cfg := &Config{
		Level:    "loud",
		Encoding: "json",
	}
	if _, err := New(cfg); err == nil {
		t.Fatal("expected error for invalid level, got nil")
	}
}

func TestNew_InvalidEncoding(t *testing.T) {
	cfg := &Config{
		Level:    "info",
		Encoding: "xml",
	}
	if _, err := New(cfg); err == nil {
		t.Fatal("expected error for invalid encoding, got nil")
	}
}
