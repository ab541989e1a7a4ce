package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/blackfile/blackfile-cli/internal/client/api"
	"github.com/blackfile/blackfile-cli/internal/client/auth"
	"github.com/blackfile/blackfile-cli/internal/client/cli"
	"github.com/blackfile/blackfile-cli/internal/client/config"
	"github.com/blackfile/blackfile-cli/internal/client/files"
	"github.com/blackfile/blackfile-cli/internal/client/iocli"
	"github.com/blackfile/blackfile-cli/internal/client/storage/boltdb"
	"github.com/blackfile/blackfile-cli/internal/client/storage/sqlite"
	"github.com/blackfile/blackfile-cli/internal/client/upload"
	"github.com/blackfile/blackfile-cli/internal/validation"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, rest, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		return 1
	}
	if cfg.ShowVersion {
		printVersion()
		return 0
	}
	if len(rest) == 0 {
		cli.PrintUsage()
		return 1
	}
	command, args := rest[0], rest[1:]

	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	boltStorage, err := boltdb.New(ctx, cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		return 1
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	cache, err := sqlite.New(ctx, cfg.CachePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open cache: %v\n", err)
		return 1
	}
	defer func() {
		if err := cache.Close(); err != nil {
			logger.Error("failed to close cache", "error", err)
		}
	}()

	apiClient := api.NewClient(cfg.ServerURL, boltStorage, logger)
	session := auth.NewSession(apiClient, boltStorage, logger)

	policy := validation.DefaultUploadPolicy()
	policy.MaxFileSizeMB = cfg.MaxUploadSizeMB
	uploads := upload.NewManager(apiClient, policy)

	stdio := iocli.NewStdio()
	fileCtrl := files.NewController(apiClient, cache, cli.NewNotifier(stdio), cfg.PublicBaseURL, logger)
	app := cli.New(stdio, apiClient, session, fileCtrl, uploads)

	if err := app.Run(ctx, command, args); err != nil {
		switch {
		case errors.Is(err, api.ErrAuthRequired):
			fmt.Fprintln(os.Stderr, "You are not logged in. Run 'blackfile login' first.")
		case errors.Is(err, api.ErrAuthExpired):
			fmt.Fprintln(os.Stderr, "Your session has expired. Run 'blackfile login' again.")
		default:
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func printVersion() {
	fmt.Printf("blackfile client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
