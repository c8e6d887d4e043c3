package main

import (
	"log"

	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/bootstrap"
	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/shared/config"
	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/shared/server"
	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	if err := telemetry.Init(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer telemetry.Sync()

	app, err := bootstrap.Build(cfg)
	if err != nil {
		telemetry.Error("bootstrap.failed", map[string]any{"error": err})
		telemetry.Sync()
		log.Fatalf("bootstrap: %v", err)
	}
	defer app.Close()

	addr := server.Addr(cfg.Port)
	telemetry.Info("server.start", map[string]any{"addr": addr, "env": cfg.Env})

	if err := app.Router.Run(addr); err != nil {
		telemetry.Error("server.failed", map[string]any{"error": err})
		telemetry.Sync()
		log.Fatalf("server error: %v", err)
	}
}
