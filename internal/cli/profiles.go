// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"llm-sanitizer/internal/paths"
	"llm-sanitizer/internal/profiles"
	"llm-sanitizer/internal/security"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// findProfile resolves ref as a profile id, then as a case-insensitive name.
// An empty ref selects the active profile.
func findProfile(vault *profiles.Vault, ref string) (*profiles.Profile, error) {
	if ref == "" {
		return vault.Resolve("")
	}
	if p := vault.Profile(ref); p != nil {
		return p, nil
	}
	for i := range vault.Profiles {
		if strings.EqualFold(vault.Profiles[i].Name, ref) {
			return &vault.Profiles[i], nil
		}
	}
	return vault.Resolve(ref)
}

func newProfilesCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "profiles",
		Aliases: []string{"profile"},
		Short:   "Manage term profiles",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List profiles; the active one is marked with *",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			vault, err := a.vaultStore().Load()
			if err != nil {
				return err
			}
			active := vault.Active()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "\tID\tNAME\tTERMS")
			for _, p := range vault.Profiles {
				marker := ""
				if active != nil && p.ID == active.ID {
					marker = color.GreenString("*")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d/%d active\n", marker, p.ID, p.Name, p.ActiveTerms(), len(p.Terms))
			}
			return w.Flush()
		},
	}

	createCmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create an empty profile and make it active",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var created profiles.Profile
			_, err := a.vaultStore().Update(func(vault *profiles.Vault) error {
				p, err := vault.CreateProfile(strings.Join(args, " "))
				if err != nil {
					return err
				}
				created = *p
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created profile %q (id %s); it is now active\n", created.Name, created.ID)
			return nil
		},
	}

	useCmd := &cobra.Command{
		Use:   "use <id|name>",
		Short: "Make a profile the active one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			_, err := a.vaultStore().Update(func(vault *profiles.Vault) error {
				selected, err := findProfile(vault, args[0])
				if err != nil {
					return err
				}
				name = selected.Name
				return vault.SetActive(selected.ID)
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Active profile: %s\n", name)
			return nil
		},
	}

	var (
		exportOutput string
		force        bool
	)
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write every profile to a JSON backup file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			vault, err := a.vaultStore().Load()
			if err != nil {
				return err
			}
			now := time.Now()
			data, err := profiles.Export(vault.Profiles, now)
			if err != nil {
				return err
			}

			if exportOutput == "-" {
				_, err := cmd.OutOrStdout().Write(append(data, '\n'))
				return err
			}
			target := exportOutput
			if target == "" {
				target = profiles.BackupFilename(now)
			}
			if fileExists(target) && !force {
				return fmt.Errorf("%s already exists; use --force to overwrite", target)
			}
			if err := paths.WriteFilePrivate(target, data); err != nil {
				return profiles.NewError(profiles.ErrorFileSystem, "failed to write backup", "backup", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d profiles to %s\n", len(vault.Profiles), target)
			return nil
		},
	}
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Backup file, or - for stdout (default llm-sanitizer-backup-<time>.json)")
	exportCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing backup file")

	importCmd := &cobra.Command{
		Use:   "import <backup.json>",
		Short: "Merge profiles from a backup; profiles with the same id are replaced",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(filepath.Clean(args[0]))
			if err != nil {
				return profiles.NewError(profiles.ErrorFileSystem, "failed to read backup", "backup", err)
			}
			var imported []profiles.Profile
			err = security.WipeAfter(data, func(raw []byte) error {
				var importErr error
				imported, importErr = profiles.Import(raw)
				return importErr
			})
			if err != nil {
				return err
			}

			var replaced, added int
			_, err = a.vaultStore().Update(func(vault *profiles.Vault) error {
				replaced, added = vault.MergeImported(imported)
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d profiles (%d replaced, %d added)\n", len(imported), replaced, added)
			return nil
		},
	}

	cmd.AddCommand(listCmd, createCmd, useCmd, exportCmd, importCmd)
	return cmd
}
