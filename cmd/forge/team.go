package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zulandar/teamforge/internal/store"
)

func newTeamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Team management commands",
	}

	cmd.AddCommand(newTeamListCmd())
	cmd.AddCommand(newTeamDeleteCmd())
	return cmd
}

func newTeamListCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered teams",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gdb, err := openDB(configPath)
			if err != nil {
				return err
			}
			teams, err := store.ListTeams(gdb)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-6s %-24s %-16s %-24s %s\n", "ID", "TEAM", "STACK", "LEADER", "MENTOR")
			for _, t := range teams {
				mentorName := "-"
				if t.Mentor != nil {
					mentorName = t.Mentor.FullName
				}
				fmt.Fprintf(out, "%-6d %-24s %-16s %-24s %s\n",
					t.ID, t.TeamName, t.TechStack, t.LeaderName, mentorName)
			}
			if len(teams) == 0 {
				fmt.Fprintln(out, "  (no teams)")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Teamforge config file")
	return cmd
}

func newTeamDeleteCmd() *cobra.Command {
	var configPath string
	var id uint

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a team",
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == 0 {
				return fmt.Errorf("--id is required")
			}
			_, gdb, err := openDB(configPath)
			if err != nil {
				return err
			}
			if err := store.DeleteTeam(gdb, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted team %d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Teamforge config file")
	cmd.Flags().UintVar(&id, "id", 0, "team id")
	return cmd
}
