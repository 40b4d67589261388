// Package handlers contains application use case handlers.
package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/plenum/internal/domain/ports"
	"github.com/ersonp/plenum/internal/infrastructure/config"
)

// RegistryOpener opens the member registry stored at path.
type RegistryOpener func(path string) (ports.MemberRegistry, error)

// InitHandler handles project initialization.
type InitHandler struct {
	open RegistryOpener
}

// NewInitHandler creates a new init handler.
func NewInitHandler(open RegistryOpener) *InitHandler {
	return &InitHandler{
		open: open,
	}
}

// InitOptions overrides default configuration values at init time.
type InitOptions struct {
	BaseURI  string
	Target   string
	S3Bucket string
}

func (o InitOptions) empty() bool {
	return o == InitOptions{}
}

// InitResult contains the result of initialization.
type InitResult struct {
	ConfigPath   string
	DatabasePath string
}

// Handle writes the configuration and creates the registry schema. Without
// overrides the commented default file is written.
func (h *InitHandler) Handle(ctx context.Context, basePath string, opts InitOptions) (*InitResult, error) {
	if config.Exists(basePath) {
		return nil, fmt.Errorf("plenum already initialized in %s", basePath)
	}

	if err := writeConfig(basePath, opts); err != nil {
		return nil, err
	}

	cfg, err := config.Load(basePath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	dbPath := cfg.SQLitePath(basePath)
	registry, err := h.open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening registry: %w", err)
	}
	defer registry.Close()

	if err := registry.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("creating registry schema: %w", err)
	}

	return &InitResult{
		ConfigPath:   config.ConfigFilePath(basePath),
		DatabasePath: dbPath,
	}, nil
}

func writeConfig(basePath string, opts InitOptions) error {
	if opts.empty() {
		if err := config.WriteDefault(basePath); err != nil {
			return fmt.Errorf("writing default config: %w", err)
		}
		return nil
	}

	cfg := config.Default()
	if opts.BaseURI != "" {
		cfg.Export.BaseURI = opts.BaseURI
	}
	if opts.Target != "" {
		cfg.Export.Target = opts.Target
	}
	if opts.S3Bucket != "" {
		cfg.S3.Bucket = opts.S3Bucket
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := config.Write(basePath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
