// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"text/tabwriter"

	"llm-sanitizer/internal/profiles"
	"llm-sanitizer/internal/sanitizer"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newTermsCommand(a *app) *cobra.Command {
	var profile string

	cmd := &cobra.Command{
		Use:   "terms",
		Short: "Manage the terms of a profile",
	}
	cmd.PersistentFlags().StringVarP(&profile, "profile", "p", "", "Profile id or name (default: the active profile)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the terms of a profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			vault, err := a.vaultStore().Load()
			if err != nil {
				return err
			}
			selected, err := findProfile(vault, profile)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(selected.Terms) == 0 {
				fmt.Fprintf(out, "Profile %q has no terms.\n", selected.Name)
				return nil
			}
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tACTIVE\tORIGINAL\tPLACEHOLDER")
			for _, term := range selected.Terms {
				active := color.GreenString("yes")
				if !term.IsActive {
					active = color.YellowString("no")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", term.ID, active, term.Original, term.Placeholder)
			}
			return w.Flush()
		},
	}

	var placeholder string
	addCmd := &cobra.Command{
		Use:   "add <original>",
		Short: "Register a term; a {{SEC_XXXXXXXX}} placeholder is generated unless given",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			term := a.engine.NewTerm(args[0])
			if placeholder != "" {
				term = sanitizer.Term{ID: uuid.New().String(), Original: args[0], Placeholder: placeholder, IsActive: true}
			}

			var profileName string
			_, err := a.vaultStore().Update(func(vault *profiles.Vault) error {
				selected, err := findProfile(vault, profile)
				if err != nil {
					return err
				}
				profileName = selected.Name
				return vault.AddTerm(selected.ID, term)
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %q as %s to %q (id %s)\n", term.Original, term.Placeholder, profileName, term.ID)
			return nil
		},
	}
	addCmd.Flags().StringVar(&placeholder, "placeholder", "", "Use this placeholder instead of a generated one")

	removeCmd := &cobra.Command{
		Use:   "remove <term-id>",
		Short: "Delete a term",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := a.vaultStore().Update(func(vault *profiles.Vault) error {
				selected, err := findProfile(vault, profile)
				if err != nil {
					return err
				}
				return vault.RemoveTerm(selected.ID, args[0])
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed term %s\n", args[0])
			return nil
		},
	}

	toggleCmd := &cobra.Command{
		Use:   "toggle <term-id>",
		Short: "Switch a term between active and inactive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var active bool
			_, err := a.vaultStore().Update(func(vault *profiles.Vault) error {
				selected, err := findProfile(vault, profile)
				if err != nil {
					return err
				}
				active, err = vault.ToggleTerm(selected.ID, args[0])
				return err
			})
			if err != nil {
				return err
			}
			state := "inactive"
			if active {
				state = "active"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Term %s is now %s\n", args[0], state)
			return nil
		},
	}

	cmd.AddCommand(listCmd, addCmd, removeCmd, toggleCmd)
	return cmd
}
