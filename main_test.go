package main

import (
	"errors"
	"flag"
	"io"
	"testing"

	"github.com/soocke/distance-collector/config"
)

func TestParseCommand(t *testing.T) {
	cmd, err := parseCommand([]string{"capture", "-source", "screen", "-no-preview", "-metrics", ":9100"}, io.Discard)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg := config.DefaultConfig()
	if err := cmd.apply(cfg); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if cfg.Source != config.SourceScreen || cfg.Preview || cfg.MetricsAddr != ":9100" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestParseCommand_LabelFresh(t *testing.T) {
	cmd, err := parseCommand([]string{"label", "-tty", "-fresh"}, io.Discard)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg := config.DefaultConfig()
	if err := cmd.apply(cfg); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !cmd.tty || cfg.ResumeCounters {
		t.Fatalf("expected tty and fresh counters: %+v %+v", cmd, cfg)
	}
}

func TestParseCommand_Errors(t *testing.T) {
	if _, err := parseCommand(nil, io.Discard); !errors.Is(err, errUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if _, err := parseCommand([]string{"train"}, io.Discard); !errors.Is(err, errUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if _, err := parseCommand([]string{"help"}, io.Discard); !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected help, got %v", err)
	}
	if _, err := parseCommand([]string{"control", "-source", "screen"}, io.Discard); err == nil {
		t.Fatal("capture flag accepted by control")
	}
}

func TestApply_RejectsUnknownSource(t *testing.T) {
	cmd, err := parseCommand([]string{"capture", "-source", "rtsp"}, io.Discard)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.apply(config.DefaultConfig()); err == nil {
		t.Fatal("expected validation error")
	}
}
