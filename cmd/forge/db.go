package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zulandar/teamforge/internal/db"
)

func newDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database management commands",
	}

	cmd.AddCommand(newDBInitCmd())
	return cmd
}

func newDBInitCmd() *cobra.Command {
	var configPath string
	var org string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the Teamforge database",
		Long:  "Migrates all tables and seeds the default tech stacks and an initial platform configuration.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDBInit(cmd, configPath, org)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Teamforge config file")
	cmd.Flags().StringVar(&org, "org", "", "GitHub organization for the seeded platform config")
	return cmd
}

func runDBInit(cmd *cobra.Command, configPath, org string) error {
	out := cmd.OutOrStdout()

	cfg, gdb, err := openDB(configPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Connected to %s:%d/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.Database)

	if err := db.AutoMigrate(gdb); err != nil {
		return err
	}
	fmt.Fprintf(out, "Migrated %d tables\n", len(db.AllModels()))

	if err := db.SeedTechStacks(gdb, db.DefaultTechStacks); err != nil {
		return err
	}
	fmt.Fprintf(out, "Seeded %d tech stacks\n", len(db.DefaultTechStacks))

	if err := db.SeedPlatformConfig(gdb, org); err != nil {
		return err
	}
	fmt.Fprintln(out, "Database initialized")
	return nil
}
