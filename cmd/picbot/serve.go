package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/picbot"
	"github.com/aretw0/picbot/internal/adapters/httpapi"
	"github.com/aretw0/picbot/internal/adapters/webhook"
	"github.com/aretw0/picbot/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the bot's HTTP server",
	Long:  `Starts the bot behind an HTTP endpoint: inbound activities on POST /api/messages, outbound replies delivered to the configured webhook.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger := newLogger(cfg)

		if cfg.Channel.WebhookURL == "" {
			return fmt.Errorf("serve requires channel.webhook_url (or PICBOT_CHANNEL_WEBHOOK_URL)")
		}

		store, locker, cleanup, err := buildStore(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		m := metrics.New(prometheus.DefaultRegisterer)

		opts := []picbot.Option{
			picbot.WithStore(store),
			picbot.WithChannel(webhook.New(cfg.Channel.WebhookURL)),
			picbot.WithClassifier(buildClassifier(cfg)),
			picbot.WithSearcher(buildSearcher(cfg)),
			picbot.WithLogger(logger),
			picbot.WithMetrics(m),
		}
		if locker != nil {
			opts = append(opts, picbot.WithLocker(locker))
		}

		bot, err := picbot.New(opts...)
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:    cfg.Server.Addr,
			Handler: httpapi.NewHandler(bot, logger),
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("starting picbot server", "addr", srv.Addr, "store", cfg.Store.Backend)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			logger.Info("shutdown started", "signal", sig.String())

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				_ = srv.Close()
				return fmt.Errorf("could not stop server gracefully: %w", err)
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
