package handlers

import (
	"context"

	"github.com/ersonp/plenum/internal/domain/entities"
	"github.com/ersonp/plenum/internal/domain/services"
	"github.com/ersonp/plenum/internal/infrastructure/resourcestore/filesystem"
)

// ExportHandler handles exporting the registry as a static resource tree.
type ExportHandler struct {
	registry *services.RegistryService
	export   *services.ExportService
}

// NewExportHandler creates a new export handler.
func NewExportHandler(registry *services.RegistryService, export *services.ExportService) *ExportHandler {
	return &ExportHandler{
		registry: registry,
		export:   export,
	}
}

// ExportOptions controls export behavior.
type ExportOptions struct {
	BaseURI string
}

// Handle exports every registered member.
func (h *ExportHandler) Handle(ctx context.Context, opts ExportOptions) (*services.ExportResult, error) {
	return h.export.ExportAll(ctx, h.registry, opts.BaseURI)
}

// DumpToDir exports a sealed member into the directory tree rooted at basePath.
func DumpToDir(ctx context.Context, member *entities.Member, basePath, baseURI string) (string, error) {
	writer, err := filesystem.NewWriter(basePath)
	if err != nil {
		return "", err
	}
	return services.NewExportService(writer, nil).Dump(ctx, member, baseURI)
}
