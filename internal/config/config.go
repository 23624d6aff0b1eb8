package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"tilepuzzle/internal/domain/world"
	"tilepuzzle/internal/logger"
)

var ErrInvalidConfig = errors.New("invalid config")

const envPrefix = "TILEPUZZLE_"

type Config struct {
	Grid        GridConfig          `yaml:"grid"`
	Motion      MotionConfig        `yaml:"motion"`
	Interaction InteractionConfig   `yaml:"interaction"`
	Session     SessionConfig       `yaml:"session"`
	Database    DatabaseConfig      `yaml:"database"`
	Log         logger.LoggerConfig `yaml:"log"`
}

type GridConfig struct {
	Width        int    `yaml:"width"`
	Height       int    `yaml:"height"`
	TileWidth    int    `yaml:"tile_width"`
	TileHeight   int    `yaml:"tile_height"`
	Fill         string `yaml:"fill"`
	CrumbleAfter int    `yaml:"crumble_after"`
}

type MotionConfig struct {
	MoveDuration time.Duration `yaml:"move_duration"`
	OriginY      float64       `yaml:"origin_y"`
}

// UIRect is a screen region that swallows pointer input.
type UIRect struct {
	MinX float64 `yaml:"min_x"`
	MinY float64 `yaml:"min_y"`
	MaxX float64 `yaml:"max_x"`
	MaxY float64 `yaml:"max_y"`
}

type InteractionConfig struct {
	InitialTool string   `yaml:"initial_tool"`
	UI          []UIRect `yaml:"ui"`
}

type SessionConfig struct {
	ID            string        `yaml:"id"`
	FrameInterval time.Duration `yaml:"frame_interval"`
	Script        string        `yaml:"script"`
}

// DatabaseConfig is optional; an empty DSN keeps the pickup ledger in memory.
type DatabaseConfig struct {
	DSN           string `yaml:"dsn"`
	MigrationsDir string `yaml:"migrations_dir"`
}

func Default() Config {
	return Config{
		Grid: GridConfig{
			Width:      12,
			Height:     8,
			TileWidth:  64,
			TileHeight: 32,
			Fill:       string(world.TileGround),
		},
		Motion: MotionConfig{
			MoveDuration: 300 * time.Millisecond,
			OriginY:      world.DefaultOriginY,
		},
		Interaction: InteractionConfig{
			InitialTool: string(world.ToolTile),
		},
		Session: SessionConfig{
			FrameInterval: time.Second / 60,
		},
		Database: DatabaseConfig{
			MigrationsDir: "db/migrations",
		},
		Log: logger.DefaultConfig(),
	}
}

// Load reads path over Default, applies the TILEPUZZLE_* environment and
// validates the result. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := Decode(raw, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := ApplyEnv(&cfg, os.Getenv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Decode unmarshals yaml into cfg, reporting the first line-numbered type
// error when there is one.
func Decode(raw []byte, cfg *Config) error {
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) {
			for _, msg := range typeErr.Errors {
				if strings.HasPrefix(msg, "line") {
					return fmt.Errorf("%w: %s", ErrInvalidConfig, msg)
				}
			}
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// ApplyEnv overlays TILEPUZZLE_* variables read through getenv.
func ApplyEnv(cfg *Config, getenv func(string) string) error {
	var errs []error
	env := func(key string) string {
		return strings.TrimSpace(getenv(envPrefix + key))
	}
	intEnv := func(key string, dst *int) {
		v := env(key)
		if v == "" {
			return
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s%s: %w", envPrefix, key, err))
			return
		}
		*dst = n
	}
	durationEnv := func(key string, dst *time.Duration) {
		v := env(key)
		if v == "" {
			return
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s%s: %w", envPrefix, key, err))
			return
		}
		*dst = d
	}
	stringEnv := func(key string, dst *string) {
		if v := env(key); v != "" {
			*dst = v
		}
	}

	intEnv("GRID_WIDTH", &cfg.Grid.Width)
	intEnv("GRID_HEIGHT", &cfg.Grid.Height)
	intEnv("TILE_WIDTH", &cfg.Grid.TileWidth)
	intEnv("TILE_HEIGHT", &cfg.Grid.TileHeight)
	intEnv("CRUMBLE_AFTER", &cfg.Grid.CrumbleAfter)
	stringEnv("GRID_FILL", &cfg.Grid.Fill)
	durationEnv("MOVE_DURATION", &cfg.Motion.MoveDuration)
	stringEnv("INITIAL_TOOL", &cfg.Interaction.InitialTool)
	stringEnv("SESSION_ID", &cfg.Session.ID)
	durationEnv("FRAME_INTERVAL", &cfg.Session.FrameInterval)
	stringEnv("SCRIPT", &cfg.Session.Script)
	stringEnv("DB_DSN", &cfg.Database.DSN)
	stringEnv("MIGRATIONS_DIR", &cfg.Database.MigrationsDir)

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

func (c Config) Validate() error {
	var problems []string
	if c.Grid.Width <= 0 || c.Grid.Height <= 0 {
		problems = append(problems, fmt.Sprintf("grid size %dx%d", c.Grid.Width, c.Grid.Height))
	}
	if c.Grid.TileWidth <= 0 || c.Grid.TileHeight <= 0 {
		problems = append(problems, fmt.Sprintf("tile size %dx%d", c.Grid.TileWidth, c.Grid.TileHeight))
	}
	if c.Grid.CrumbleAfter < 0 {
		problems = append(problems, "crumble_after must not be negative")
	}
	switch world.TileKind(strings.ToUpper(c.Grid.Fill)) {
	case "", world.TileGround, world.TileWater, world.TileWall:
	default:
		problems = append(problems, fmt.Sprintf("unknown fill %q", c.Grid.Fill))
	}
	if c.Motion.MoveDuration < 0 {
		problems = append(problems, "move_duration must not be negative")
	}
	if c.Motion.OriginY < 0 || c.Motion.OriginY > 1 {
		problems = append(problems, fmt.Sprintf("origin_y %v outside [0,1]", c.Motion.OriginY))
	}
	if strings.TrimSpace(c.Interaction.InitialTool) != "" {
		if _, err := world.ParseTool(c.Interaction.InitialTool); err != nil {
			problems = append(problems, err.Error())
		}
	}
	for i, r := range c.Interaction.UI {
		if r.MaxX < r.MinX || r.MaxY < r.MinY {
			problems = append(problems, fmt.Sprintf("ui[%d] is inverted", i))
		}
	}
	if c.Session.FrameInterval <= 0 {
		problems = append(problems, "frame_interval must be positive")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

func (g GridConfig) World() world.GridConfig {
	return world.GridConfig{
		Width:        g.Width,
		Height:       g.Height,
		TileWidth:    g.TileWidth,
		TileHeight:   g.TileHeight,
		Fill:         world.TileKind(strings.ToUpper(strings.TrimSpace(g.Fill))),
		CrumbleAfter: g.CrumbleAfter,
	}
}
