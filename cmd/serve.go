package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cvvishnuu/portfolio/internal/config"
	"github.com/cvvishnuu/portfolio/internal/portfolio"
	"github.com/cvvishnuu/portfolio/internal/relay"
	"github.com/cvvishnuu/portfolio/internal/store"
	"github.com/cvvishnuu/portfolio/internal/web"
)

var (
	servePort string
	noStore   bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the portfolio over HTTP",
	Long: `Starts the web server: the portfolio page, the HTMX contact form, the
privacy page and, when an admin password is set, the visitor statistics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if servePort != "" {
			cfg.Port = servePort
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		content, err := portfolio.Load()
		if err != nil {
			return fmt.Errorf("loading portfolio: %w", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		var st *store.Store
		if !noStore {
			st, err = store.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer st.Close()

			removed, err := st.PurgeVisitors(ctx, store.RetentionPeriod)
			if err != nil {
				logger.Warn("error purging visitor data", "error", err)
			} else if removed > 0 {
				logger.Info("purged old visitor records", "removed", removed)
			}
		}

		r, settings := relay.FromConfig(cfg, content.Personal.Email, logger)
		if !settings.Enabled {
			logger.Warn("email relay not configured, contact form sends are simulated",
				"provider", cfg.Relay.Provider)
		}

		srv, err := web.New(web.Deps{
			Config:    cfg,
			Portfolio: content,
			Store:     st,
			Relay:     r,
			Settings:  settings,
			Logger:    logger,
		})
		if err != nil {
			return err
		}
		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "listen port (overrides config)")
	serveCmd.Flags().BoolVar(&noStore, "no-store", false, "disable visitor tracking and submission logging")
	rootCmd.AddCommand(serveCmd)
}
