package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/ersonp/plenum/internal/application/handlers"
)

type exportFlags struct {
	out     string
	baseURI string
	target  string
}

func newExportCmd() *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the registry as a static JSON tree",
		Long: "Writes members/{id}.json and members/{id}/{year}.json for every registered member, " +
			"either into a local directory or to an S3 bucket.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.out, "out", "o", "", "Output directory for the fs target (default: export.dir)")
	cmd.Flags().StringVar(&flags.baseURI, "base-uri", "", "Prefix of every URI in the tree (default: export.base_uri)")
	cmd.Flags().StringVarP(&flags.target, "target", "t", "", "Export target (fs, s3)")

	return cmd
}

func runExport(cmd *cobra.Command, flags exportFlags) error {
	if flags.target != "" && !slices.Contains(validTargets, flags.target) {
		return fmt.Errorf("invalid target %q, valid targets: %v", flags.target, validTargets)
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	return withExportHandler(ctx, flags, func(handler *handlers.ExportHandler, d *Deps, location string) error {
		baseURI := d.Config.Export.BaseURI
		if flags.baseURI != "" {
			baseURI = flags.baseURI
		}

		result, err := handler.Handle(ctx, handlers.ExportOptions{BaseURI: baseURI})
		if err != nil {
			return fmt.Errorf("exporting: %w", err)
		}

		fmt.Fprintf(out, "Exported %d members to %s\n", len(result.URIs), location)
		return nil
	})
}
