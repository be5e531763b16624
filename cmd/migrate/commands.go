package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"hotel_api/internal/storage/sqlstore"
)

func upCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			return withMigrator(cmd, func(m *sqlstore.Migrator) error {
				if dryRun {
					st, err := m.Status(cmd.Context())
					if err != nil {
						return err
					}
					pending := 0
					for _, s := range st {
						if !s.Applied {
							fmt.Fprintf(cmd.OutOrStdout(), "pending: %s (%s)\n", s.Name, s.Version)
							pending++
						}
					}
					if pending == 0 {
						fmt.Fprintln(cmd.OutOrStdout(), "No pending migrations.")
					}
					return nil
				}

				applied, err := m.Up(cmd.Context())
				if err != nil {
					return err
				}
				if len(applied) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No pending migrations.")
					return nil
				}
				for _, v := range applied {
					fmt.Fprintf(cmd.OutOrStdout(), "applied %s\n", v)
				}
				return nil
			})
		},
	}
	cmd.Flags().Bool("dry-run", false, "list pending migrations without applying them")
	return cmd
}

func downCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "Revert the last applied migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd, func(m *sqlstore.Migrator) error {
				v, err := m.Down(cmd.Context())
				if err != nil {
					return err
				}
				if v == "" {
					fmt.Fprintln(cmd.OutOrStdout(), "No migrations to revert.")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "reverted %s\n", v)
				return nil
			})
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show applied and pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd, func(m *sqlstore.Migrator) error {
				st, err := m.Status(cmd.Context())
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "VERSION\tNAME\tSTATUS\tAPPLIED AT")
				for _, s := range st {
					status, at := "pending", "-"
					if s.Applied {
						status, at = "applied", s.AppliedAt.UTC().Format("2006-01-02 15:04:05")
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.Version, s.Name, status, at)
				}
				return w.Flush()
			})
		},
	}
}

func withMigrator(cmd *cobra.Command, fn func(*sqlstore.Migrator) error) error {
	driver, _ := cmd.Flags().GetString("driver")
	dsn, _ := cmd.Flags().GetString("dsn")

	db, err := sqlstore.Open(cmd.Context(), sqlstore.Options{Driver: driver, DSN: dsn})
	if err != nil {
		return err
	}
	defer closeDB(db)
	return fn(sqlstore.NewMigrator(db))
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
