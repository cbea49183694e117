package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"github.com/zulandar/teamforge/internal/assign"
	"github.com/zulandar/teamforge/internal/config"
	"github.com/zulandar/teamforge/internal/notify"
	"github.com/zulandar/teamforge/internal/provision"
	"github.com/zulandar/teamforge/internal/register"
	"github.com/zulandar/teamforge/internal/server"
	"go.uber.org/zap"
)

func newServeCmd() *cobra.Command {
	var configPath string
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the Teamforge API server",
		Long:  "Serves the registration and assignment API and runs assignment passes on the configured schedule.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, configPath, port)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Teamforge config file")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "HTTP port (overrides config)")
	return cmd
}

func runServe(cmd *cobra.Command, configPath string, port int) error {
	cfg, gdb, err := openDB(configPath)
	if err != nil {
		return err
	}
	if port <= 0 {
		port = cfg.Server.Port
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	engine, err := assign.New(gdb)
	if err != nil {
		return err
	}

	prov := provision.New(provision.Opts{Logger: logger})

	notifier, err := buildNotifier(cfg.Notify)
	if err != nil {
		return err
	}

	orch, err := register.New(register.Opts{
		DB:          gdb,
		Engine:      engine,
		Provisioner: prov,
		Notifier:    notifier,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Background assignment routine: a full pass on the configured cron
	// schedule, so teams left unassigned (new mentors, freed capacity)
	// get picked up without an administrator action.
	if cfg.Assignment.Schedule != "" {
		runner := cron.New()
		_, err := runner.AddFunc(cfg.Assignment.Schedule, func() {
			if err := engine.Pass(ctx); err != nil {
				logger.Error("scheduled assignment pass failed", zap.Error(err))
			}
		})
		if err != nil {
			return fmt.Errorf("schedule assignment passes: %w", err)
		}
		runner.Start()
		defer runner.Stop()
		logger.Info("assignment passes scheduled", zap.String("schedule", cfg.Assignment.Schedule))
	}

	return server.Start(ctx, server.StartOpts{
		DB:           gdb,
		Engine:       engine,
		Orchestrator: orch,
		Port:         port,
		Logger:       logger,
		Out:          cmd.OutOrStdout(),
	})
}

// buildNotifier assembles the configured chat notifiers. Returns nil when
// none is configured.
func buildNotifier(nc config.NotifyConfig) (notify.Notifier, error) {
	var all notify.Multi
	if nc.Slack.BotToken != "" && nc.Slack.Channel != "" {
		s, err := notify.NewSlack(notify.SlackOpts{
			BotToken:  nc.Slack.BotToken,
			ChannelID: nc.Slack.Channel,
		})
		if err != nil {
			return nil, err
		}
		all = append(all, s)
	}
	if nc.Discord.BotToken != "" && nc.Discord.Channel != "" {
		d, err := notify.NewDiscord(notify.DiscordOpts{
			BotToken:  nc.Discord.BotToken,
			ChannelID: nc.Discord.Channel,
		})
		if err != nil {
			return nil, err
		}
		all = append(all, d)
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all, nil
}
