// tractview is an interactive viewer for tractography line data.
package main

import (
	"fmt"
	"os"
	"runtime"

	"go.uber.org/zap"

	"github.com/mangostaniko/Visualization2-17s/internal/config"
	"github.com/mangostaniko/Visualization2-17s/internal/logger"
	"github.com/mangostaniko/Visualization2-17s/internal/viewer"
)

func main() {
	runtime.LockOSThread()

	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Tractview ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	app, err := viewer.NewApp(cfg, nil)
	if err != nil {
		logger.Error("failed to create app", zap.Error(err))
		os.Exit(1)
	}

	tv, err := newTractView(cfg, app)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer tv.Close()

	tv.startup()
	tv.Run()

	logger.Info("viewer closed normally")
}
