package main

import (
	"fmt"
	"log"

	"github.com/raeesul-erabiz/invoice-extractor/internal/config"
	"github.com/raeesul-erabiz/invoice-extractor/internal/handler"
	"github.com/raeesul-erabiz/invoice-extractor/internal/pipeline"
	"github.com/raeesul-erabiz/invoice-extractor/internal/router"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	pipe := pipeline.New(pipeline.Options{StandardTaxRate: cfg.Tax.Rate()})

	reconcileH := handler.NewReconcileHandler(pipe)
	healthH := handler.NewHealthHandler()

	r := router.Setup(cfg, reconcileH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
