package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"tilepuzzle/internal/adapter/hud/logging"
	metricsinmem "tilepuzzle/internal/adapter/metrics/inmemory"
	"tilepuzzle/internal/adapter/pointer/gridpicker"
	gormrepo "tilepuzzle/internal/adapter/repo/gorm"
	"tilepuzzle/internal/adapter/repo/memory"
	"tilepuzzle/internal/app/editor"
	"tilepuzzle/internal/app/interaction"
	"tilepuzzle/internal/app/motion"
	"tilepuzzle/internal/app/pickup"
	"tilepuzzle/internal/app/ports"
	"tilepuzzle/internal/config"
	"tilepuzzle/internal/domain/world"
	"tilepuzzle/internal/logger"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("load .env: %v", err)
	}

	var configPath, scriptPath string
	flag.StringVar(&configPath, "config", os.Getenv("TILEPUZZLE_CONFIG"), "yaml config file")
	flag.StringVar(&scriptPath, "script", "", "yaml pointer script to replay (defaults to the built-in demo)")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if scriptPath != "" {
		cfg.Session.Script = scriptPath
	}

	l, err := logger.NewLoggerWithComponent(cfg.Log, "editor")
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer func() { _ = l.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, l); err != nil {
		l.Error("editor run failed", logger.F("err", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, l logger.Logger) error {
	ledger, closeLedger, err := openLedger(ctx, cfg.Database, l)
	if err != nil {
		return err
	}
	defer closeLedger()

	if strings.TrimSpace(cfg.Session.ID) == "" {
		cfg.Session.ID = uuid.NewString()
	}
	app, err := buildApp(cfg, ledger, l)
	if err != nil {
		return err
	}

	script, err := loadScript(cfg.Session.Script)
	if err != nil {
		return err
	}
	if err := app.session.Run(ctx, script); err != nil {
		return fmt.Errorf("replay %s: %w", script.Name, err)
	}

	summary, err := app.summary.Execute(ctx, pickup.SummaryRequest{SessionID: cfg.Session.ID, Limit: 10})
	if err != nil {
		return fmt.Errorf("pickup summary: %w", err)
	}
	snap := app.metrics.Snapshot()
	l.Info("session finished",
		logger.F("session_id", cfg.Session.ID),
		logger.F("frames", app.session.Frames()),
		logger.F("elapsed", app.session.Elapsed()),
		logger.F("stars", summary.Score.Stars),
		logger.F("items", summary.Score.Items),
		logger.F("tile_flips", snap.TileFlips),
		logger.F("moves_completed", snap.MovesCompleted),
		logger.F("pickups", snap.PickupTotal),
	)
	return nil
}

type ledger struct {
	tx      ports.TxManager
	pickups ports.PickupRepository
	scores  ports.ScoreRepository
}

// openLedger keeps pickups in memory unless a DSN is configured.
func openLedger(ctx context.Context, cfg config.DatabaseConfig, l logger.Logger) (ledger, func(), error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		store := memory.NewStore()
		l.Info("pickup ledger in memory")
		return ledger{
			tx:      memory.NewTxManager(store),
			pickups: memory.NewPickupRepo(store),
			scores:  memory.NewScoreRepo(store),
		}, func() {}, nil
	}

	db, err := gormrepo.OpenPostgres(dsn)
	if err != nil {
		return ledger{}, nil, err
	}
	closeDB := func() { closeQuietly(db, l) }
	if cfg.MigrationsDir != "" {
		applied, err := gormrepo.ApplyMigrations(ctx, db, os.DirFS(cfg.MigrationsDir))
		if err != nil {
			closeDB()
			return ledger{}, nil, fmt.Errorf("migrate ledger: %w", err)
		}
		l.Info("pickup ledger migrated", logger.F("applied", applied))
	}
	return ledger{
		tx:      gormrepo.NewTxManager(db),
		pickups: gormrepo.NewPickupRepo(db),
		scores:  gormrepo.NewScoreRepo(db),
	}, closeDB, nil
}

func closeQuietly(db *gorm.DB, l logger.Logger) {
	if err := gormrepo.Close(db); err != nil {
		l.Warn("close ledger", logger.F("err", err))
	}
}

type app struct {
	grid    *world.Grid
	picker  *gridpicker.Picker
	game    *logging.Game
	metrics *metricsinmem.Recorder
	session *editor.Session
	summary pickup.SummaryUseCase
}

func buildApp(cfg config.Config, led ledger, l logger.Logger) (*app, error) {
	grid, err := world.NewGrid(cfg.Grid.World())
	if err != nil {
		return nil, fmt.Errorf("build grid: %w", err)
	}
	layout := world.NewLayout(cfg.Grid.TileWidth, cfg.Grid.TileHeight, cfg.Motion.OriginY)

	picker := gridpicker.New(grid, layout)
	for _, r := range cfg.Interaction.UI {
		picker.UI = append(picker.UI, gridpicker.Rect{
			Min: world.Vec2{X: r.MinX, Y: r.MinY},
			Max: world.Vec2{X: r.MaxX, Y: r.MaxY},
		})
	}

	metrics := metricsinmem.NewRecorder()
	game := logging.NewGame(l.With(logger.F("component", "game")))
	collector := pickup.Collector{
		SessionID: cfg.Session.ID,
		Grid:      grid,
		TxManager: led.tx,
		Pickups:   led.pickups,
		Scores:    led.scores,
		Logger:    l.With(logger.F("component", "pickup")),
	}
	scheduler := motion.NewScheduler(motion.Config{
		Grid:    grid,
		Layout:  layout,
		Pickups: collector,
		Metrics: metrics,
		Logger:  l.With(logger.F("component", "motion")),
	})

	var initial world.Tool
	if name := strings.TrimSpace(cfg.Interaction.InitialTool); name != "" {
		if initial, err = world.ParseTool(name); err != nil {
			return nil, fmt.Errorf("initial tool: %w", err)
		}
	}
	controller := interaction.NewController(interaction.Config{
		Grid:         grid,
		Layout:       layout,
		Pointer:      picker,
		HUD:          logging.NewHUD(l.With(logger.F("component", "hud"))),
		Game:         game,
		Players:      game,
		Motion:       scheduler,
		Metrics:      metrics,
		Logger:       l.With(logger.F("component", "interaction")),
		MoveDuration: cfg.Motion.MoveDuration,
		InitialTool:  initial,
	})

	return &app{
		grid:    grid,
		picker:  picker,
		game:    game,
		metrics: metrics,
		session: editor.NewSession(editor.Config{
			ID:            cfg.Session.ID,
			Interaction:   controller,
			Motion:        scheduler,
			Screens:       picker,
			FrameInterval: cfg.Session.FrameInterval,
			Logger:        l,
		}),
		summary: pickup.SummaryUseCase{Pickups: led.pickups, Scores: led.scores},
	}, nil
}

func loadScript(path string) (editor.Script, error) {
	if strings.TrimSpace(path) == "" {
		return demoScript(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return editor.Script{}, fmt.Errorf("open script: %w", err)
	}
	defer func() { _ = f.Close() }()
	script, err := editor.DecodeScript(f)
	if err != nil {
		return editor.Script{}, fmt.Errorf("%s: %w", path, err)
	}
	if script.Name == "" {
		script.Name = path
	}
	return script, nil
}

// demoScript paints a short water channel, drops a star and a player, then
// walks the player across the star.
func demoScript() editor.Script {
	at := func(x, y int) *world.Coord { return &world.Coord{X: x, Y: y} }
	return editor.Script{
		Name:   "demo",
		Settle: 240,
		Steps: []editor.Step{
			{Tool: string(world.ToolTile), Action: editor.ActionDown, Cell: at(0, 2)},
			{Action: editor.ActionDrag, Cell: at(1, 2), Frames: 2},
			{Action: editor.ActionDrag, Cell: at(2, 2), Frames: 2},
			{Action: editor.ActionUp, Cell: at(2, 2)},
			{Tool: string(world.ToolStar), Action: editor.ActionClick, Cell: at(3, 0)},
			{Tool: string(world.ToolItem), Action: editor.ActionClick, Cell: at(5, 0)},
			{Tool: string(world.ToolObstacle), Action: editor.ActionClick, Cell: at(4, 1)},
			{Tool: string(world.ToolPlayer), Action: editor.ActionClick, Cell: at(0, 0)},
			{Action: editor.ActionDown, Cell: at(0, 0)},
			{Action: editor.ActionDrag, Cell: at(6, 0)},
			{Action: editor.ActionUp, Cell: at(6, 0)},
		},
	}
}
