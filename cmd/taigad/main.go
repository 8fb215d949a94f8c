// Taiga Daemon - long-lived host for the shielded execution core: it owns
// the process-wide proving parameters and the persistent ledger state.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/anoma/taiga-core/internal/compliance"
	"github.com/anoma/taiga-core/internal/ledger"
)

const (
	version = "0.1.0"
	banner  = `
  _____     _
 |_   _|_ _(_) __ _  __ _
   | |/ _' | |/ _' |/ _' |
   | | (_| | | (_| | (_| |
   |_|\__,_|_|\__, |\__,_|
              |___/
  Taiga Daemon v%s
  Shielded Execution Core
`
)

// Config holds daemon configuration
type Config struct {
	// Database
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string

	// Proving parameters
	ParamsDir string

	// Logging
	LogLevel string
	LogFile  string
}

func main() {
	cfg := parseFlags()

	fmt.Printf(banner, version)

	log := newLogger(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info("shutting down")
		cancel()
	}()

	if err := run(ctx, cfg, log); err != nil {
		log.WithError(err).Error("daemon exited with error")
		os.Exit(1)
	}
}

func parseFlags() *Config {
	cfg := &Config{}

	// Database flags
	flag.StringVar(&cfg.DBHost, "db-host", "localhost", "PostgreSQL host")
	flag.IntVar(&cfg.DBPort, "db-port", 5432, "PostgreSQL port")
	flag.StringVar(&cfg.DBUser, "db-user", "taiga", "PostgreSQL user")
	flag.StringVar(&cfg.DBPassword, "db-password", "", "PostgreSQL password")
	flag.StringVar(&cfg.DBName, "db-name", "taiga", "PostgreSQL database name")

	// Proving-parameter flags
	flag.StringVar(&cfg.ParamsDir, "params-dir", "./params", "Directory for cached proving parameters")

	// Logging flags
	flag.StringVar(&cfg.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.StringVar(&cfg.LogFile, "log-file", "", "Log file path (empty for stdout)")

	flag.Parse()

	return cfg
}

func newLogger(cfg *Config) *logrus.Logger {
	log := logrus.New()
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err == nil {
			log.SetOutput(f)
		}
	}
	return log
}

func run(ctx context.Context, cfg *Config, log *logrus.Logger) error {
	log.Info("initializing taiga node")

	if err := os.MkdirAll(cfg.ParamsDir, 0755); err != nil {
		return fmt.Errorf("failed to create params directory: %w", err)
	}

	log.Info("connecting to database")
	dbCfg := &ledger.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		Database: cfg.DBName,
		SSLMode:  "disable",
		MaxConns: 20,
	}
	store, err := ledger.NewPostgresLedger(ctx, dbCfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer store.Close()
	log.Info("database connected")

	if _, err := loadOrGenerateParams(cfg.ParamsDir, log); err != nil {
		return err
	}

	root, err := store.CurrentRoot(ctx)
	if err != nil {
		return err
	}
	log.WithField("anchor", root.String()).Info("taiga node started")

	<-ctx.Done()

	log.Info("node stopped")
	return nil
}

func paramPaths(dir string) (string, string, string) {
	return filepath.Join(dir, "compliance.ccs"),
		filepath.Join(dir, "compliance.pk"),
		filepath.Join(dir, "compliance.vk")
}

// loadOrGenerateParams reloads cached compliance-circuit parameters from
// disk, or runs the full setup and caches the result when no parameters
// exist yet. Setup takes seconds to minutes, which is why the daemon pays
// that cost once here rather than per transaction.
func loadOrGenerateParams(dir string, log *logrus.Logger) (*compliance.Builder, error) {
	ccsPath, pkPath, vkPath := paramPaths(dir)

	if ccsF, err := os.Open(ccsPath); err == nil {
		defer ccsF.Close()
		pkF, err := os.Open(pkPath)
		if err != nil {
			return nil, err
		}
		defer pkF.Close()
		vkF, err := os.Open(vkPath)
		if err != nil {
			return nil, err
		}
		defer vkF.Close()

		log.Info("loading cached proving parameters")
		return compliance.ReadBuilder(ccsF, pkF, vkF)
	}

	log.Info("generating proving parameters (this can take a while)")
	cb, err := compliance.Setup()
	if err != nil {
		return nil, err
	}

	ccsF, err := os.Create(ccsPath)
	if err != nil {
		return nil, err
	}
	defer ccsF.Close()
	pkF, err := os.Create(pkPath)
	if err != nil {
		return nil, err
	}
	defer pkF.Close()
	vkF, err := os.Create(vkPath)
	if err != nil {
		return nil, err
	}
	defer vkF.Close()

	if err := cb.WriteTo(ccsF, pkF, vkF); err != nil {
		return nil, err
	}
	log.Info("proving parameters cached")
	return cb, nil
}
