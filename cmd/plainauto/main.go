// Plain Automation - simplified Home Assistant automation management.
//
// This is the main entry point for the Plain Automation service. It
// translates a flat, UI-friendly rule model into native Home Assistant
// automation YAML, stores one file per automation, and asks Home
// Assistant to reload after every change.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/nerrad567/plain-automation/migrations"

	"github.com/nerrad567/plain-automation/internal/api"
	"github.com/nerrad567/plain-automation/internal/audit"
	"github.com/nerrad567/plain-automation/internal/hass"
	"github.com/nerrad567/plain-automation/internal/infrastructure/config"
	"github.com/nerrad567/plain-automation/internal/infrastructure/database"
	"github.com/nerrad567/plain-automation/internal/infrastructure/logging"
	"github.com/nerrad567/plain-automation/internal/infrastructure/mqtt"
	"github.com/nerrad567/plain-automation/internal/rules"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting Plain Automation",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Open database for the audit trail
	db, err := database.Open(database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	auditRepo := audit.NewSQLiteRepository(db.DB)

	// Open the automation file store
	store, err := rules.NewFileStore(cfg.Store.Dir)
	if err != nil {
		return fmt.Errorf("opening automation store: %w", err)
	}
	log.Info("automation store opened", "dir", cfg.Store.Dir)

	// Home Assistant client; unconfigured means writes skip the reload
	hassClient := hass.NewClient(hass.Config{
		BaseURL: cfg.HomeAssistant.BaseURL,
		Token:   cfg.HomeAssistant.Token,
		Timeout: cfg.HomeAssistant.Timeout,
	})
	if hassClient.Configured() {
		log.Info("home assistant integration enabled", "base_url", cfg.HomeAssistant.BaseURL)
	} else {
		log.Info("home assistant integration disabled")
	}

	// Connect to MQTT broker (optional)
	var notifiers []rules.Notifier
	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		mqttClient, err = mqtt.Connect(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)
		notifiers = append(notifiers, mqtt.NewChangeNotifier(mqttClient, log))
	} else {
		log.Info("MQTT disabled")
	}

	// The WebSocket hub is built ahead of the server so it can double as
	// a change notifier for the rule service.
	hub := api.NewHub(cfg.WebSocket, log)
	notifiers = append(notifiers, hub)

	ruleService := rules.NewService(rules.Deps{
		Store:     store,
		Reloader:  hassClient,
		Audit:     auditRepo,
		Logger:    log,
		Notifiers: notifiers,
	})

	server, err := api.New(api.Deps{
		Config:   cfg.API,
		WS:       cfg.WebSocket,
		Security: cfg.Security,
		Logger:   log,
		Rules:    ruleService,
		Hass:     hassClient,
		Audit:    auditRepo,
		Hub:      hub,
		Version:  version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}

	if startErr := server.Start(ctx); startErr != nil {
		return fmt.Errorf("starting API server: %w", startErr)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()

	// Verify infrastructure is healthy
	if err := healthCheck(ctx, db, mqttClient); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	log.Info("initialisation complete, waiting for shutdown signal")

	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")
	log.Info("Plain Automation stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses PLAINAUTO_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("PLAINAUTO_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// healthCheck verifies infrastructure connections are healthy.
func healthCheck(ctx context.Context, db *database.DB, mqttClient *mqtt.Client) error {
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	if mqttClient != nil {
		if err := mqttClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("mqtt: %w", err)
		}
	}

	return nil
}
