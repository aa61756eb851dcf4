package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"github.com/zulandar/attendant/internal/alert"
	"github.com/zulandar/attendant/internal/config"
	"github.com/zulandar/attendant/internal/db"
	"github.com/zulandar/attendant/internal/dialogue"
	"github.com/zulandar/attendant/internal/httpapi"
	"github.com/zulandar/attendant/internal/oracle"
	"github.com/zulandar/attendant/internal/store"
)

func newServeCmd() *cobra.Command {
	var (
		configPath string
		port       int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the webhook and admin API server",
		Long:  "Runs the inbound message webhook, the admin query API, and the periodic session sweep.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, configPath, port)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Attendant config file")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (overrides config)")
	return cmd
}

func runServe(cmd *cobra.Command, configPath string, port int) error {
	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}
	if err := db.AutoMigrate(gormDB); err != nil {
		return err
	}

	st := store.New(gormDB, cfg.Inactivity())

	apiKey := os.Getenv(cfg.Oracle.APIKeyEnv)
	if apiKey == "" {
		return fmt.Errorf("environment variable %s is not set", cfg.Oracle.APIKeyEnv)
	}
	completer, err := oracle.NewClient(oracle.ClientOpts{
		BaseURL:     cfg.Oracle.BaseURL,
		Model:       cfg.Oracle.Model,
		Temperature: cfg.Oracle.Temperature,
		APIKey:      apiKey,
	})
	if err != nil {
		return err
	}

	notifier, err := buildNotifier(cfg)
	if err != nil {
		return err
	}

	engine := dialogue.New(st, completer, notifier)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Fprintf(cmd.OutOrStdout(), "\nReceived %s, shutting down...\n", sig)
		cancel()
	}()

	// Periodic inactivity sweep.
	sweeper := cron.New()
	if _, err := sweeper.AddFunc(cfg.Session.SweepSchedule, func() {
		if _, err := st.CloseInactive(); err != nil {
			log.Printf("serve: inactivity sweep: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("schedule sweep %q: %w", cfg.Session.SweepSchedule, err)
	}
	sweeper.Start()
	defer sweeper.Stop()

	if port <= 0 {
		port = cfg.Server.Port
	}
	return httpapi.Start(ctx, httpapi.StartOpts{
		Store:    st,
		Dialogue: engine,
		Port:     port,
		Out:      cmd.OutOrStdout(),
	})
}

// buildNotifier assembles the escalation alert chain from the config. With no
// chat platform configured, alerts go to the process log.
func buildNotifier(cfg *config.Config) (alert.Notifier, error) {
	var chain alert.Multi

	if cfg.Alerts.Slack.BotToken != "" {
		n, err := alert.NewSlack(alert.SlackOpts{
			BotToken:  cfg.Alerts.Slack.BotToken,
			ChannelID: cfg.Alerts.Slack.ChannelID,
		})
		if err != nil {
			return nil, err
		}
		chain = append(chain, n)
	}
	if cfg.Alerts.Discord.BotToken != "" {
		n, err := alert.NewDiscord(alert.DiscordOpts{
			BotToken:  cfg.Alerts.Discord.BotToken,
			ChannelID: cfg.Alerts.Discord.ChannelID,
		})
		if err != nil {
			return nil, err
		}
		chain = append(chain, n)
	}

	if len(chain) == 0 {
		return alert.LogNotifier{}, nil
	}
	return chain, nil
}
