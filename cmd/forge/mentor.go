package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/zulandar/teamforge/internal/mentor"
	"github.com/zulandar/teamforge/internal/models"
	"github.com/zulandar/teamforge/internal/store"
)

func newMentorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mentor",
		Short: "Mentor management commands",
	}

	cmd.AddCommand(newMentorAddCmd())
	cmd.AddCommand(newMentorListCmd())
	cmd.AddCommand(newMentorImportCmd())
	cmd.AddCommand(newMentorUpdateCmd())
	cmd.AddCommand(newMentorDeleteCmd())
	return cmd
}

func newMentorAddCmd() *cobra.Command {
	var configPath string
	var m models.Mentor

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a mentor",
		RunE: func(cmd *cobra.Command, args []string) error {
			if m.FullName == "" || m.TechStack == "" || m.GitHubUsername == "" {
				return fmt.Errorf("--name, --stack, and --github are required")
			}
			_, gdb, err := openDB(configPath)
			if err != nil {
				return err
			}
			if err := store.CreateMentor(gdb, &m); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added mentor %s (%s, capacity %d)\n", m.FullName, m.TechStack, m.MaxTeamCapacity)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Teamforge config file")
	cmd.Flags().StringVar(&m.FullName, "name", "", "mentor full name")
	cmd.Flags().StringVar(&m.TechStack, "stack", "", "mentor tech stack tag")
	cmd.Flags().StringVar(&m.GitHubUsername, "github", "", "mentor GitHub username")
	cmd.Flags().StringVar(&m.LinkedInURL, "linkedin", "", "mentor LinkedIn URL")
	cmd.Flags().IntVar(&m.MaxTeamCapacity, "capacity", 3, "maximum concurrent teams")
	return cmd
}

func newMentorListCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List mentors with their current load",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gdb, err := openDB(configPath)
			if err != nil {
				return err
			}
			loads, err := store.MentorLoads(gdb)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-6s %-24s %-16s %-20s %s\n", "ID", "NAME", "STACK", "GITHUB", "LOAD")
			for _, l := range loads {
				fmt.Fprintf(out, "%-6d %-24s %-16s %-20s %d/%d\n",
					l.ID, l.FullName, l.TechStack, l.GitHubUsername, l.TeamCount, l.MaxTeamCapacity)
			}
			if len(loads) == 0 {
				fmt.Fprintln(out, "  (no mentors)")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Teamforge config file")
	return cmd
}

func newMentorImportCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import mentors from a CSV file",
		Long:  "Expects columns: Full Name, Tech Stack, GitHub Username, LinkedIn URL, Max Team Capacity.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gdb, err := openDB(configPath)
			if err != nil {
				return err
			}
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			defer f.Close()

			added, err := mentor.ImportCSV(gdb, f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d mentors\n", added)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Teamforge config file")
	return cmd
}

func newMentorUpdateCmd() *cobra.Command {
	var configPath string
	var id uint

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update a mentor's details",
		Long:  "Rewrites the given fields on an existing mentor. Unset flags keep their current values.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == 0 {
				return fmt.Errorf("--id is required")
			}
			_, gdb, err := openDB(configPath)
			if err != nil {
				return err
			}
			m, err := store.MentorByID(gdb, id)
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("mentor %d not found", id)
			}
			if err != nil {
				return err
			}

			flagString := func(flag string, dst *string) {
				if cmd.Flags().Changed(flag) {
					*dst, _ = cmd.Flags().GetString(flag)
				}
			}
			flagString("name", &m.FullName)
			flagString("stack", &m.TechStack)
			flagString("github", &m.GitHubUsername)
			flagString("linkedin", &m.LinkedInURL)
			if cmd.Flags().Changed("capacity") {
				m.MaxTeamCapacity, _ = cmd.Flags().GetInt("capacity")
			}

			if err := store.UpdateMentor(gdb, m); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated mentor %d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Teamforge config file")
	cmd.Flags().UintVar(&id, "id", 0, "mentor id")
	cmd.Flags().String("name", "", "mentor full name")
	cmd.Flags().String("stack", "", "mentor tech stack tag")
	cmd.Flags().String("github", "", "mentor GitHub username")
	cmd.Flags().String("linkedin", "", "mentor LinkedIn URL")
	cmd.Flags().Int("capacity", 0, "maximum concurrent teams")
	return cmd
}

func newMentorDeleteCmd() *cobra.Command {
	var configPath string
	var id uint

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a mentor without assigned teams",
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == 0 {
				return fmt.Errorf("--id is required")
			}
			_, gdb, err := openDB(configPath)
			if err != nil {
				return err
			}
			err = store.DeleteMentor(gdb, id)
			if errors.Is(err, store.ErrMentorHasTeams) {
				return fmt.Errorf("mentor %d still has assigned teams", id)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted mentor %d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Teamforge config file")
	cmd.Flags().UintVar(&id, "id", 0, "mentor id")
	return cmd
}
