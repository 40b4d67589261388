package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "match <name>",
		Short: "Find members answering to a free-text name",
		Long: "Matches a name as it appears in parliamentary documents against every registered member. " +
			"Case, diacritics and extra whitespace are ignored.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(cmd, args[0])
		},
	}
}

func runMatch(cmd *cobra.Command, name string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	return withDeps(ctx, func(d *Deps) error {
		matches, err := d.MemberHandler.Match(ctx, name)
		if err != nil {
			return fmt.Errorf("matching %q: %w", name, err)
		}

		if len(matches) == 0 {
			fmt.Fprintf(out, "No member matches %q.\n", name)
			return nil
		}

		for _, m := range matches {
			displayMemberLine(out, m)
		}
		return nil
	})
}
