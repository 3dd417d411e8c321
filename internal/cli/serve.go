package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"congregate/internal/config"
	"congregate/internal/store"
	"congregate/internal/web"
)

const shutdownTimeout = 10 * time.Second

// sessionPurgeSchedule is how often expired sessions are swept from the
// database. Expired sessions are already rejected on lookup; the sweep just
// keeps the table from growing.
const sessionPurgeSchedule = "@hourly"

func newServeCmd(configPath *string) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the congregation web server",
		Long:  `Serve the public site and the admin area until interrupted. The listen address comes from the config file unless overridden with --listen.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Listen = listen
			}

			st, err := store.Open(cfg.DatabasePath)
			if err != nil {
				return err
			}
			defer st.Close()

			srv, err := web.New(cfg, st, logger)
			if err != nil {
				return err
			}

			httpServer := &http.Server{
				Addr:         cfg.Listen,
				Handler:      srv.Routes(),
				ReadTimeout:  15 * time.Second,
				WriteTimeout: 15 * time.Second,
			}

			sweeper := cron.New()
			if _, err := sweeper.AddFunc(sessionPurgeSchedule, func() {
				n, err := st.CleanupSessions(context.Background(), time.Now().Unix())
				if err != nil {
					logger.Error("session sweep failed", "err", err)
					return
				}
				if n > 0 {
					logger.Debug("purged expired sessions", "count", n)
				}
			}); err != nil {
				return err
			}
			sweeper.Start()
			defer sweeper.Stop()

			errCh := make(chan error, 1)
			go func() {
				logger.Info("listening", "addr", cfg.Listen, "database", cfg.DatabasePath)
				errCh <- httpServer.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				return err
			case <-cmd.Context().Done():
				logger.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := httpServer.Shutdown(shutdownCtx); err != nil {
					return err
				}
				if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return cmd.Context().Err()
			}
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address override (host:port)")
	return cmd
}
