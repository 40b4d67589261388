package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ersonp/plenum/internal/application/handlers"
	"github.com/ersonp/plenum/internal/domain/ports"
	"github.com/ersonp/plenum/internal/domain/services"
	"github.com/ersonp/plenum/internal/infrastructure/config"
	"github.com/ersonp/plenum/internal/infrastructure/dates"
	"github.com/ersonp/plenum/internal/infrastructure/logger"
	"github.com/ersonp/plenum/internal/infrastructure/relationaldb/sqlite"
	"github.com/ersonp/plenum/internal/infrastructure/resourcestore/filesystem"
	"github.com/ersonp/plenum/internal/infrastructure/resourcestore/s3store"
)

// Deps holds high-level dependencies for commands.
// Only handlers are exposed - services and repositories are internal.
type Deps struct {
	Config        *config.Config
	Logger        *slog.Logger
	ImportHandler *handlers.ImportHandler
	MemberHandler *handlers.MemberHandler
}

// internalDeps holds all dependencies including low-level components.
type internalDeps struct {
	Deps
	basePath string
	registry *services.RegistryService
}

// withDeps loads config and builds dependencies, then calls the provided function.
// It handles cleanup automatically.
func withDeps(ctx context.Context, fn func(*Deps) error) error {
	return withInternalDeps(ctx, func(d *internalDeps) error {
		return fn(&d.Deps)
	})
}

// withInternalDeps provides access to all dependencies including low-level components.
func withInternalDeps(ctx context.Context, fn func(*internalDeps) error) error {
	basePath, err := projectDir()
	if err != nil {
		return err
	}

	cfg, err := config.Load(basePath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(os.Stderr, cfg.Log)

	repo, err := sqlite.NewRepository(config.SQLiteConfig{Path: cfg.SQLitePath(basePath)})
	if err != nil {
		return fmt.Errorf("creating sqlite repository: %w", err)
	}
	defer repo.Close()

	if err := repo.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensuring sqlite schema: %w", err)
	}

	registry := services.NewRegistryService(repo, log)
	importService := services.NewImportService(registry, dates.NewParser(), log)

	deps := &internalDeps{
		Deps: Deps{
			Config:        cfg,
			Logger:        log,
			ImportHandler: handlers.NewImportHandler(importService),
			MemberHandler: handlers.NewMemberHandler(registry),
		},
		basePath: basePath,
		registry: registry,
	}

	return fn(deps)
}

// withExportHandler passes fn an export handler bound to the selected target
// and a printable location of that target.
func withExportHandler(ctx context.Context, flags exportFlags, fn func(*handlers.ExportHandler, *Deps, string) error) error {
	return withInternalDeps(ctx, func(d *internalDeps) error {
		writer, location, err := newResourceWriter(ctx, d.Config, d.basePath, flags)
		if err != nil {
			return err
		}

		exportService := services.NewExportService(writer, d.Logger)
		return fn(handlers.NewExportHandler(d.registry, exportService), &d.Deps, location)
	})
}

// newResourceWriter selects the export target. Flags override the config file.
func newResourceWriter(ctx context.Context, cfg *config.Config, basePath string, flags exportFlags) (ports.ResourceWriter, string, error) {
	target := cfg.Export.Target
	if flags.target != "" {
		target = flags.target
	}

	switch target {
	case config.TargetFilesystem:
		dir := cfg.ExportDir(basePath)
		if flags.out != "" {
			dir = flags.out
		}
		writer, err := filesystem.NewWriter(dir)
		if err != nil {
			return nil, "", err
		}
		return writer, writer.Root(), nil
	case config.TargetS3:
		writer, err := s3store.NewWriter(ctx, cfg.S3)
		if err != nil {
			return nil, "", fmt.Errorf("creating s3 writer: %w", err)
		}
		return writer, writer.Location(), nil
	default:
		return nil, "", fmt.Errorf("invalid target %q, valid targets: %v", target, validTargets)
	}
}

// projectDir returns the directory holding .plenum.
func projectDir() (string, error) {
	if globalDir != "" {
		return globalDir, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}
	return cwd, nil
}
