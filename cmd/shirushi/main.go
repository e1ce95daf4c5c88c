// Package main is the Shirushi CLI entry point.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/shirushi/internal/config"
	"github.com/hyperjump/shirushi/internal/importer"
	"github.com/hyperjump/shirushi/internal/keyword"
	"github.com/hyperjump/shirushi/internal/server"
	"github.com/hyperjump/shirushi/internal/storage"
	"github.com/hyperjump/shirushi/internal/watcher"
	"github.com/hyperjump/shirushi/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/shirushi/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used, so that "shirushi server" from the project dir picks up the
// project's config.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "import":
		runImport()
	case "list":
		runList()
	case "version", "--version", "-v":
		fmt.Printf("shirushi version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// Components holds the initialized backends shared by the subcommands.
type Components struct {
	Storage storage.Storage
	Index   *keyword.Index
}

func (c *Components) Close() {
	if c.Index != nil {
		_ = c.Index.Close()
	}
	if c.Storage != nil {
		_ = c.Storage.Close()
	}
}

func initializeComponents(cfg *config.Config) (*Components, error) {
	store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	index, err := keyword.NewIndex(cfg.Storage.IndexPath)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to open keyword index: %w", err)
	}
	return &Components{Storage: store, Index: index}, nil
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (watcher events, import progress)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	components, err := initializeComponents(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	imp := importer.NewImporter(components.Storage, components.Index, logger)

	var watchSvc *watcher.Watcher
	if len(cfg.Import.Directories) > 0 {
		watchOpts := []watcher.Option{}
		if debugMode {
			watchOpts = append(watchOpts, watcher.WithLogger(logger))
		}
		watchSvc = watcher.NewWatcher(
			cfg.Import.Directories,
			cfg.Import.Extensions,
			cfg.Import.RecursiveOrDefault(),
			imp.HandleFile,
			watchOpts...,
		)
		if err := watchSvc.Start(); err != nil {
			logger.Fatal("Failed to start watcher", zap.Error(err))
		}
		defer watchSvc.Stop()
		watchSvc.SyncExistingFiles()
	}

	srv := server.NewServer(components.Storage, components.Index, cfg, logger)
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func runImport() {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])

	paths := fs.Args()
	if len(paths) == 0 {
		fmt.Println("Usage: shirushi import [flags] <file.json> [file.json ...]")
		os.Exit(1)
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	imp := importer.NewImporter(components.Storage, components.Index, logger)
	imported := imp.ImportFiles(context.Background(), paths)
	fmt.Printf("Imported %d of %d files\n", imported, len(paths))
	if imported < len(paths) {
		os.Exit(1)
	}
}

func runList() {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		fmt.Printf("Failed to open storage: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	summaries, err := store.ListDocuments(context.Background())
	if err != nil {
		fmt.Printf("Failed to list documents: %v\n", err)
		os.Exit(1)
	}
	if len(summaries) == 0 {
		fmt.Println("No documents.")
		return
	}
	for _, s := range summaries {
		fmt.Printf("%-40s %s\n", s.ID, utils.Truncate(s.Title, 80))
	}
}

func printUsage() {
	fmt.Println(`Shirushi - annotated document viewer backend

Usage:
  shirushi <command> [flags]

Commands:
  server     Start the HTTP API server (watches import directories)
  import     Import analyzer output files
  list       List stored documents
  version    Print version
  help       Show this help

Flags (server, import, list):
  -config string   Config file path (default ` + defaultConfigPath + `)

Flags (server):
  -debug           Enable debug logging`)
}
