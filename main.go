package main

import (
	"os"

	"housing-dashboard/config"
	"housing-dashboard/loader"
	"housing-dashboard/server"
	"housing-dashboard/storage"
	"housing-dashboard/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()

	logger.Info("=== Housing Dashboard starting ===")
	logger.Info("Config — dataset: %s | addr: %s | default city: %s | share threshold: %.1f%%",
		cfg.DatasetPath, cfg.ListenAddr, cfg.DefaultCity, cfg.SharePercentThreshold)

	listings, err := loader.New(logger).Load(cfg.DatasetPath)
	if err != nil {
		logger.Error("Dataset load failed: %v", err)
		os.Exit(1)
	}
	if len(listings) == 0 {
		logger.Error("Dataset %s contains no usable rows. Exiting.", cfg.DatasetPath)
		os.Exit(1)
	}

	if cfg.PersistToDB {
		pgWriter, err := storage.NewPostgresWriter(cfg.DSN())
		if err != nil {
			logger.Error("Failed to connect to PostgreSQL: %v", err)
			os.Exit(1)
		}
		defer pgWriter.Close()

		if err := pgWriter.Write(listings); err != nil {
			logger.Error("PostgreSQL write failed: %v", err)
		} else {
			logger.Info("Dataset stored in PostgreSQL (table: listings)")
			if stored, err := pgWriter.FetchAll(); err == nil {
				listings = stored
			} else {
				logger.Warn("Could not read listings back from PostgreSQL: %v", err)
			}
		}
	}

	srv, err := server.New(cfg, logger, listings)
	if err != nil {
		logger.Error("Server init failed: %v", err)
		os.Exit(1)
	}

	if err := srv.Start(); err != nil {
		logger.Error("Server stopped: %v", err)
		os.Exit(1)
	}
}
