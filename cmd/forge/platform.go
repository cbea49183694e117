package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zulandar/teamforge/internal/store"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Platform configuration commands",
	}

	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigSetCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the active platform configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gdb, err := openDB(configPath)
			if err != nil {
				return err
			}
			cfg, err := store.PlatformConfig(gdb)
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("no platform configuration yet (run 'forge config set')")
			}
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			token := "(not set)"
			if cfg.GitHubToken != "" {
				token = "(set)"
			}
			fmt.Fprintf(out, "GitHub token:     %s\n", token)
			fmt.Fprintf(out, "Organization:     %s\n", cfg.OrganizationName)
			fmt.Fprintf(out, "Registration:     open=%t\n", cfg.RegistrationOpen)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Teamforge config file")
	return cmd
}

func newConfigSetCmd() *cobra.Command {
	var configPath string
	var token, org string
	var open bool

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Write a new platform configuration",
		Long:  "Writes a new configuration row; the latest row is the active one. Unset flags fall back to the current values.",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gdb, err := openDB(configPath)
			if err != nil {
				return err
			}

			// Carry over current values for flags the caller left out.
			current, err := store.PlatformConfig(gdb)
			if err != nil && !errors.Is(err, store.ErrNotFound) {
				return err
			}
			if current != nil {
				if !cmd.Flags().Changed("token") {
					token = current.GitHubToken
				}
				if !cmd.Flags().Changed("org") {
					org = current.OrganizationName
				}
				if !cmd.Flags().Changed("open") {
					open = current.RegistrationOpen
				}
			}

			if _, err := store.SavePlatformConfig(gdb, token, org, open); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Platform configuration updated")
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Teamforge config file")
	cmd.Flags().StringVar(&token, "token", "", "GitHub provisioning token")
	cmd.Flags().StringVar(&org, "org", "", "GitHub organization name")
	cmd.Flags().BoolVar(&open, "open", true, "whether registration is open")
	return cmd
}
