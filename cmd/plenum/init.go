package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersonp/plenum/internal/application/handlers"
	"github.com/ersonp/plenum/internal/domain/ports"
	"github.com/ersonp/plenum/internal/infrastructure/config"
	"github.com/ersonp/plenum/internal/infrastructure/relationaldb/sqlite"
)

func newInitCmd() *cobra.Command {
	var opts handlers.InitOptions

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new plenum project",
		Long:  "Creates a .plenum directory with default configuration and an empty member registry.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.BaseURI, "base-uri", "", "Base URI written to the config")
	cmd.Flags().StringVar(&opts.Target, "target", "", "Export target written to the config: fs or s3")
	cmd.Flags().StringVar(&opts.S3Bucket, "bucket", "", "S3 bucket written to the config")

	return cmd
}

func runInit(cmd *cobra.Command, opts handlers.InitOptions) error {
	if opts.Target != "" && !slices.Contains(validTargets, opts.Target) {
		return fmt.Errorf("invalid target %q (valid: %s)", opts.Target, strings.Join(validTargets, ", "))
	}

	basePath, err := projectDir()
	if err != nil {
		return err
	}

	handler := handlers.NewInitHandler(openRegistry)
	result, err := handler.Handle(cmd.Context(), basePath, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created %s\n", result.ConfigPath)
	fmt.Fprintf(out, "Created registry: %s\n", result.DatabasePath)
	fmt.Fprintln(out, "Plenum initialized successfully!")

	return nil
}

func openRegistry(path string) (ports.MemberRegistry, error) {
	repo, err := sqlite.NewRepository(config.SQLiteConfig{Path: path})
	if err != nil {
		return nil, err
	}
	return repo, nil
}
