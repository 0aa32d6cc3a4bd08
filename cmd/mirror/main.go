package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vitos/ig_account_mirror/internal/infrastructure/backend"
	"github.com/vitos/ig_account_mirror/internal/infrastructure/logger"
	"github.com/vitos/ig_account_mirror/internal/infrastructure/storage"
	"github.com/vitos/ig_account_mirror/internal/usecase"
	"github.com/vitos/ig_account_mirror/internal/web"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Backend struct {
		RESTEndpoint string `yaml:"rest_endpoint"`
		WSEndpoint   string `yaml:"ws_endpoint"`
		APIKey       string `yaml:"api_key"`
	} `yaml:"backend"`
	Stream struct {
		ReconnectDelayMs int `yaml:"reconnect_delay_ms"`
	} `yaml:"stream"`
	Storage struct {
		Path string `yaml:"path"`
	} `yaml:"storage"`
	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
}

func loadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func main() {
	// 1. Load Config
	cfg, err := loadConfig("config/config.yaml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Init Logger
	log, err := logger.NewLogger(cfg.Logging.Level)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// 3. Init Storage (harvest baselines only; the mirror is in-memory)
	dbPath := cfg.Storage.Path
	if dbPath == "" {
		dbPath = "mirror.db"
	}
	store, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		log.Fatal("Failed to init sqlite", zap.Error(err))
	}
	defer store.Close()

	// 4. Init Backend clients
	rest := backend.NewRestClient(cfg.Backend.RESTEndpoint, cfg.Backend.APIKey)
	stream := backend.NewStreamClient(
		cfg.Backend.WSEndpoint,
		time.Duration(cfg.Stream.ReconnectDelayMs)*time.Millisecond,
		log,
	)

	// 5. Wire the mirror
	mirror := usecase.NewMirrorStore()
	dispatcher := usecase.NewDispatcher(mirror, log)
	snapshots := usecase.NewSnapshotService(rest, mirror, log)
	harvest := usecase.NewHarvestService(store)
	session := usecase.NewSession(stream, dispatcher, snapshots, mirror, log)

	if err := session.Start(context.Background()); err != nil {
		log.Fatal("Failed to start session", zap.Error(err))
	}

	// 6. Init Web Server
	port := cfg.Server.Port
	if port == 0 {
		port = 8080
	}
	server := web.NewServer(port, mirror, snapshots, rest, harvest, log)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	// 7. Wait for Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("Shutting down...")
	session.Stop()
	server.Shutdown(context.Background())
}
