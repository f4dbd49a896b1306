package cmd

import (
	"context"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/cvvishnuu/portfolio/internal/config"
	"github.com/cvvishnuu/portfolio/internal/contact"
	"github.com/cvvishnuu/portfolio/internal/portfolio"
	"github.com/cvvishnuu/portfolio/internal/relay"
	"github.com/cvvishnuu/portfolio/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse the portfolio in the terminal",
	Long: `Opens the portfolio in a full-screen terminal view. Sections are
tracked as you scroll, and the contact form sends through the same relay
as the web server.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		content, err := portfolio.Load()
		if err != nil {
			return fmt.Errorf("loading portfolio: %w", err)
		}

		// Log records go to the status bar; writing to stderr would
		// corrupt the alternate screen.
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelInfo
		}
		handler := tui.NewLogHandler(level)
		logger := slog.New(handler)

		r, settings := relay.FromConfig(cfg, content.Personal.Email, logger)
		controller := contact.NewController(r, settings,
			contact.WithLogger(logger.With("component", "contact")))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		model := tui.New(tui.Config{
			Portfolio:  content,
			Controller: controller,
			Context:    ctx,
		})
		program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
		handler.SetProgram(program)

		_, err = program.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
