package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/tilegate/config"
	debugui_ebiten "github.com/plus3/tilegate/ecs/debugui/ebiten"
	"github.com/plus3/tilegate/game"
	gameebiten "github.com/plus3/tilegate/game/ebiten"
	"github.com/plus3/tilegate/level"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "config/tilegate.toml", "Path to the TOML configuration file.")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer log.Sync()

	legend, err := loadLegend(cfg.Levels.Legend)
	if err != nil {
		return err
	}

	settings := game.NewSettings(cfg)
	input, err := gameebiten.NewInput(settings.Controls, game.Key(cfg.Controls.Debug))
	if err != nil {
		return fmt.Errorf("controls: %w", err)
	}

	manager := game.NewManager(game.Options{
		Settings:     settings,
		Source:       level.NewDirSource(os.DirFS(cfg.Levels.Dir)),
		Legend:       legend,
		Input:        input,
		Logger:       log,
		ScreenWidth:  cfg.Window.Width,
		ScreenHeight: cfg.Window.Height,
	})
	defer manager.Close()

	g, err := gameebiten.New(manager, gameebiten.Options{
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		TPS:        cfg.Window.TPS,
		Background: manager.Legend.Colours.Background.Color(),
		DebugKey:   game.Key(cfg.Controls.Debug),
	})
	if err != nil {
		return err
	}

	if cfg.Debug.Overlay {
		backend := debugui_ebiten.NewImguiBackend(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)
		g.AttachOverlay(backend, input)
	} else {
		ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
		ebiten.SetWindowTitle(cfg.Window.Title)
	}
	ebiten.SetTPS(cfg.Window.TPS)

	log.Info("starting",
		zap.String("levels", cfg.Levels.Dir),
		zap.Int("first_level", cfg.Levels.First),
		zap.Bool("debug_overlay", cfg.Debug.Overlay))

	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

// loadConfig reads path, falling back to the defaults when it does not
// exist.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Defaults(), nil
	}
	return cfg, err
}

// loadLegend reads the legend at path. A missing legend yields nil, which
// the manager replaces with the built-in one.
func loadLegend(path string) (*level.Legend, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("legend: %w", err)
	}
	defer f.Close()

	legend, err := level.LoadLegend(f)
	if err != nil {
		return nil, fmt.Errorf("legend %s: %w", path, err)
	}
	return legend, nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(cfg.Level)); err != nil {
		lvl = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(lvl)

	return zapCfg.Build()
}
