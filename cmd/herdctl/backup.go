package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/herdbook/herdbook/internal/app"
	"github.com/herdbook/herdbook/internal/config"
	"github.com/herdbook/herdbook/internal/repo"
)

func (c *cli) backupCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Write every collection as JSON",
		Long:  `Write every collection as one JSON document, the same one GET /backup serves.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withApp(cmd, func(a *app.App, _ config.Config) error {
				w := cmd.OutOrStdout()
				if out != "" {
					f, err := os.Create(out)
					if err != nil {
						return fmt.Errorf("backup: %w", err)
					}
					defer f.Close()
					w = f
				}
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(a.Services.Export.Backup(cmd.Context()))
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to this file instead of stdout")
	return cmd
}

func (c *cli) restoreCmd() *cobra.Command {
	var in string
	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Replace every collection from a backup",
		Long:  `Replace every collection with the contents of a backup document. Reads stdin unless --in is given.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var r io.Reader = cmd.InOrStdin()
			if in != "" {
				f, err := os.Open(in)
				if err != nil {
					return fmt.Errorf("restore: %w", err)
				}
				defer f.Close()
				r = f
			}
			var snap repo.Snapshot
			if err := json.NewDecoder(r).Decode(&snap); err != nil {
				return fmt.Errorf("restore: decode backup: %w", err)
			}
			return c.withApp(cmd, func(a *app.App, _ config.Config) error {
				if err := a.Services.Export.Restore(cmd.Context(), snap); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "restored %d goats\n", len(snap.Goats))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&in, "in", "i", "", "read the backup from this file")
	return cmd
}
