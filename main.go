package main

import (
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/folio/common"
	"github.com/milk9111/folio/logger"
	"github.com/milk9111/folio/prefabs"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootFlags struct {
	debug      bool
	logLevel   string
	logFormat  string
	prefabsDir string
	width      int
	height     int
	noWatch    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:          "folio",
		Short:        "Interactive portfolio island",
		Long:         "Drag, swipe or use the arrow keys to turn the island. Each landmark facing the camera opens its card.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(flags)
		},
	}
	cmd.Flags().BoolVar(&flags.debug, "debug", false, "show the debug overlay and log in development mode")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&flags.logFormat, "log-format", "", "log format (json or console)")
	cmd.Flags().StringVar(&flags.prefabsDir, "prefabs", "prefabs", "directory whose prefab files override the embedded ones")
	cmd.Flags().IntVar(&flags.width, "width", common.BaseWidth, "initial window width")
	cmd.Flags().IntVar(&flags.height, "height", common.BaseHeight, "initial window height")
	cmd.Flags().BoolVar(&flags.noWatch, "no-watch", false, "disable prefab hot reload")
	return cmd
}

func loggerConfig(flags *rootFlags) logger.Config {
	cfg := logger.DefaultConfig()
	if flags.debug {
		cfg = logger.DevelopmentConfig()
	}
	if flags.logLevel != "" {
		cfg.Level = flags.logLevel
	}
	if flags.logFormat != "" {
		cfg.Format = flags.logFormat
	}
	return cfg
}

func run(flags *rootFlags) error {
	log, err := logger.New(loggerConfig(flags))
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	prefabs.SetDir(flags.prefabsDir)

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(flags.width, flags.height)
	ebiten.SetWindowTitle("folio")

	game, err := NewGame(gameOptions{
		Width:  flags.width,
		Height: flags.height,
		Debug:  flags.debug,
		Watch:  !flags.noWatch,
	}, log)
	if err != nil {
		log.Error("build scene", zap.Error(err))
		return err
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Error("game loop exited", zap.Error(err))
		return err
	}
	return nil
}
