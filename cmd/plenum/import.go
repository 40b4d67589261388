package main

import (
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/ersonp/plenum/internal/application/handlers"
	"github.com/ersonp/plenum/internal/domain/services"
)

type importFlags struct {
	format string
	dryRun bool
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import members, activities or replacements",
		Long:  "Imports records from a JSON or CSV file into the member registry.",
	}

	cmd.AddCommand(
		newImportKindCmd(handlers.KindMembers, "Import static member records"),
		newImportKindCmd(handlers.KindActivities, "Import activities, matched to members by ID or name"),
		newImportKindCmd(handlers.KindReplacements, "Import replacement periods between members"),
	)

	return cmd
}

func newImportKindCmd(kind handlers.RecordKind, short string) *cobra.Command {
	var flags importFlags

	cmd := &cobra.Command{
		Use:   string(kind) + " <file>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, kind, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "auto", "File format (json, csv, auto)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Validate without saving")

	return cmd
}

func runImport(cmd *cobra.Command, kind handlers.RecordKind, filePath string, flags importFlags) error {
	if !slices.Contains(validFormats, flags.format) {
		return fmt.Errorf("invalid format %q, valid formats: %v", flags.format, validFormats)
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	return withDeps(ctx, func(d *Deps) error {
		opts := handlers.ImportOptions{
			Format: flags.format,
			DryRun: flags.dryRun,
		}

		fmt.Fprintf(out, "Importing %s from %s...\n", kind, filePath)

		result, err := d.ImportHandler.Handle(ctx, kind, filePath, opts)
		if err != nil {
			return fmt.Errorf("importing file: %w", err)
		}

		displayImportResult(out, kind, result, flags.dryRun)
		return nil
	})
}

func displayImportResult(w io.Writer, kind handlers.RecordKind, result *services.ImportResult, dryRun bool) {
	if len(result.Errors) > 0 {
		fmt.Fprintf(w, "\nValidation errors (%d):\n", len(result.Errors))
		for _, e := range result.Errors {
			fmt.Fprintf(w, "  %s\n", e.Error())
		}
	}

	fmt.Fprintln(w)
	if dryRun {
		fmt.Fprintf(w, "Dry run: %d %s would be imported", result.Imported, kind)
	} else {
		fmt.Fprintf(w, "Imported: %d %s", result.Imported, kind)
	}

	if result.Skipped > 0 {
		fmt.Fprintf(w, ", %d skipped", result.Skipped)
	}

	if len(result.Errors) > 0 {
		fmt.Fprintf(w, ", %d errors", len(result.Errors))
	}

	fmt.Fprintln(w)
}
