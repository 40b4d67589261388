package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/ersonp/plenum/internal/domain/services"
	"github.com/ersonp/plenum/internal/infrastructure/parsers"
)

// RecordKind names the kind of records held by an import file.
type RecordKind string

const (
	KindMembers      RecordKind = "members"
	KindActivities   RecordKind = "activities"
	KindReplacements RecordKind = "replacements"
)

// ImportHandler handles importing records from files.
type ImportHandler struct {
	service *services.ImportService
}

// NewImportHandler creates a new import handler.
func NewImportHandler(service *services.ImportService) *ImportHandler {
	return &ImportHandler{
		service: service,
	}
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	Format string // "json", "csv", or "auto"
	DryRun bool   // Validate without saving
}

// Handle imports records of the given kind from a file.
func (h *ImportHandler) Handle(ctx context.Context, kind RecordKind, filePath string, opts ImportOptions) (*services.ImportResult, error) {
	var parser parsers.Parser
	if opts.Format == "" || opts.Format == "auto" {
		parser = parsers.ForFile(filePath)
	} else {
		parser = parsers.ForFormat(opts.Format)
	}

	if parser == nil {
		return nil, fmt.Errorf("unsupported format for file: %s", filePath)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	serviceOpts := services.ImportOptions{DryRun: opts.DryRun}

	switch kind {
	case KindMembers:
		raws, err := parser.ParseMembers(file)
		if err != nil {
			return nil, fmt.Errorf("parsing file: %w", err)
		}
		return h.service.ImportMembers(ctx, raws, serviceOpts)
	case KindActivities:
		raws, err := parser.ParseActivities(file)
		if err != nil {
			return nil, fmt.Errorf("parsing file: %w", err)
		}
		return h.service.ImportActivities(ctx, raws, serviceOpts)
	case KindReplacements:
		raws, err := parser.ParseReplacements(file)
		if err != nil {
			return nil, fmt.Errorf("parsing file: %w", err)
		}
		return h.service.ImportReplacements(ctx, raws, serviceOpts)
	default:
		return nil, fmt.Errorf("unknown record kind %q (valid: members, activities, replacements)", kind)
	}
}
