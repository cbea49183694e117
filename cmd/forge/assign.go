package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zulandar/teamforge/internal/assign"
)

func newAssignCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Mentor assignment commands",
	}

	cmd.AddCommand(newAssignRunCmd())
	cmd.AddCommand(newAssignStatusCmd())
	return cmd
}

func newAssignRunCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a full assignment pass",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gdb, err := openDB(configPath)
			if err != nil {
				return err
			}
			engine, err := assign.New(gdb)
			if err != nil {
				return err
			}
			if err := engine.Pass(cmd.Context()); err != nil {
				return err
			}
			status, err := engine.Status(cmd.Context())
			if err != nil {
				return err
			}
			printStatus(cmd, status)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Teamforge config file")
	return cmd
}

func newAssignStatusCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the assignment status aggregate",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gdb, err := openDB(configPath)
			if err != nil {
				return err
			}
			engine, err := assign.New(gdb)
			if err != nil {
				return err
			}
			status, err := engine.Status(cmd.Context())
			if err != nil {
				return err
			}
			printStatus(cmd, status)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Teamforge config file")
	return cmd
}

func printStatus(cmd *cobra.Command, status *assign.Status) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Teams:      %d total, %d unassigned\n", status.TotalTeams, status.UnassignedTeams)
	fmt.Fprintf(out, "Mentors:    %d\n", status.TotalMentors)
	fmt.Fprintf(out, "Capacity:   %d\n", status.TotalCapacity)
}
