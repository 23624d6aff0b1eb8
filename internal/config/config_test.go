package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"tilepuzzle/internal/domain/world"
)

func noEnv(string) string { return "" }

func TestDefault_IsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("expected default config valid, got %v", err)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "editor.yaml")
	raw := `
grid:
  width: 5
  height: 4
  fill: water
  crumble_after: 2
motion:
  move_duration: 150ms
interaction:
  initial_tool: star
  ui:
    - {min_x: 0, min_y: 0, max_x: 100, max_y: 20}
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Grid.Width != 5 || cfg.Grid.Height != 4 || cfg.Grid.TileWidth != 64 {
		t.Fatalf("unexpected grid config: %+v", cfg.Grid)
	}
	if cfg.Motion.MoveDuration != 150*time.Millisecond {
		t.Fatalf("expected 150ms move duration, got %v", cfg.Motion.MoveDuration)
	}
	if len(cfg.Interaction.UI) != 1 || cfg.Interaction.UI[0].MaxX != 100 {
		t.Fatalf("unexpected ui rects: %+v", cfg.Interaction.UI)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Fatalf("expected log level override with default format, got %+v", cfg.Log)
	}
	if got := cfg.Grid.World(); got.Fill != world.TileWater || got.CrumbleAfter != 2 {
		t.Fatalf("unexpected world grid config: %+v", got)
	}
}

func TestDecode_ReportsLineOfTypeError(t *testing.T) {
	cfg := Default()
	err := Decode([]byte("grid:\n  width: wide\n"), &cfg)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("expected line number in error, got %v", err)
	}
}

func TestApplyEnv_Overlay(t *testing.T) {
	env := map[string]string{
		"TILEPUZZLE_GRID_WIDTH":    "9",
		"TILEPUZZLE_MOVE_DURATION": "1s",
		"TILEPUZZLE_INITIAL_TOOL":  "player",
		"TILEPUZZLE_DB_DSN":        "postgres://localhost/tiles",
	}
	cfg := Default()
	if err := ApplyEnv(&cfg, func(k string) string { return env[k] }); err != nil {
		t.Fatalf("apply env: %v", err)
	}
	if cfg.Grid.Width != 9 || cfg.Motion.MoveDuration != time.Second {
		t.Fatalf("env not applied: %+v %+v", cfg.Grid, cfg.Motion)
	}
	if cfg.Interaction.InitialTool != "player" || cfg.Database.DSN != "postgres://localhost/tiles" {
		t.Fatalf("env not applied: %+v %+v", cfg.Interaction, cfg.Database)
	}
}

func TestApplyEnv_RejectsMalformedNumbers(t *testing.T) {
	cfg := Default()
	err := ApplyEnv(&cfg, func(k string) string {
		if k == "TILEPUZZLE_GRID_HEIGHT" {
			return "tall"
		}
		return ""
	})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestValidate_RejectsBadValues(t *testing.T) {
	cases := map[string]func(*Config){
		"zero width":    func(c *Config) { c.Grid.Width = 0 },
		"unknown fill":  func(c *Config) { c.Grid.Fill = "lava" },
		"unknown tool":  func(c *Config) { c.Interaction.InitialTool = "hammer" },
		"origin":        func(c *Config) { c.Motion.OriginY = 2 },
		"inverted ui":   func(c *Config) { c.Interaction.UI = []UIRect{{MinX: 10, MaxX: 0}} },
		"frame":         func(c *Config) { c.Session.FrameInterval = 0 },
		"negative wear": func(c *Config) { c.Grid.CrumbleAfter = -1 },
	}
	for name, mutate := range cases {
		cfg := Default()
		mutate(&cfg)
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("%s: expected ErrInvalidConfig, got %v", name, err)
		}
	}
	cfg := Default()
	if err := ApplyEnv(&cfg, noEnv); err != nil {
		t.Fatalf("empty env: %v", err)
	}
}
