package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersonp/plenum/internal/domain/entities"
)

func newMembersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "members",
		Short: "Inspect registered members",
	}

	cmd.AddCommand(newMembersListCmd(), newMembersShowCmd())

	return cmd
}

func newMembersListCmd() *cobra.Command {
	var (
		limit  int
		offset int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered members",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMembersList(cmd, limit, offset)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", DefaultListLimit, "Maximum number of members to display")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of members to skip")

	return cmd
}

func runMembersList(cmd *cobra.Command, limit, offset int) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	return withDeps(ctx, func(d *Deps) error {
		list, err := d.MemberHandler.List(ctx, limit, offset)
		if err != nil {
			return fmt.Errorf("listing members: %w", err)
		}

		if len(list.Members) == 0 {
			fmt.Fprintln(out, "No members found.")
			return nil
		}

		fmt.Fprintf(out, "Showing %d of %d members:\n\n", len(list.Members), list.Total)
		for _, m := range list.Members {
			displayMemberLine(out, m)
		}
		return nil
	})
}

func newMembersShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a member with replacements and activities",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMembersShow(cmd, args[0])
		},
	}
}

func runMembersShow(cmd *cobra.Command, id string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	return withDeps(ctx, func(d *Deps) error {
		member, err := d.MemberHandler.Show(ctx, id)
		if err != nil {
			return err
		}

		displayMember(out, member)
		return nil
	})
}

func displayMemberLine(w io.Writer, m *entities.Member) {
	fmt.Fprintf(w, "%s  %-30s %-12s %s\n", m.ID(), m.String(), m.Party, m.Province)
}

func displayMember(w io.Writer, m *entities.Member) {
	fmt.Fprintf(w, "ID: %s\n", m.ID())
	fmt.Fprintf(w, "  Name: %s\n", m.String())
	fmt.Fprintf(w, "  Party: %s\n", m.Party)
	fmt.Fprintf(w, "  Province: %s\n", m.Province)
	fmt.Fprintf(w, "  Born: %s\n", m.DateOfBirth.Format(entities.DateLayout))
	if len(m.AlternativeNames) > 0 {
		fmt.Fprintf(w, "  Also known as: %s\n", strings.Join(m.AlternativeNames, "; "))
	}
	if m.Wiki != "" {
		fmt.Fprintf(w, "  Wiki: %s\n", m.Wiki)
	}

	for _, r := range m.Replaces() {
		end := "ongoing"
		if r.Dates.End != nil {
			end = r.Dates.End.Format(entities.DateLayout)
		}
		fmt.Fprintf(w, "  Replaced %s: %s to %s\n", r.MemberRef, r.Dates.Start.Format(entities.DateLayout), end)
	}

	fmt.Fprintf(w, "  Activities: %d\n", len(m.Activities()))
}
