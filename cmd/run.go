package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/learnbuddy/learnbuddy/internal/app"
)

// runApp connects to the backend and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	mode, _ := cfg.ConversationMode()

	logger := newLogger(cmd, cfg, false)
	defer logger.Sync() //nolint:errcheck

	be, err := connect(cmd, cfg, logger)
	if err != nil {
		return fmt.Errorf("connect to backend: %w", err)
	}
	defer be.close()

	skipSplash, _ := cmd.Flags().GetBool("no-splash")
	logger.Info("starting tui", zap.String("server", be.BaseURL()), zap.String("mode", string(mode)))

	return app.Run(cmd.Context(), app.Options{
		Chat:       be,
		Recs:       be,
		Reporter:   be,
		Mode:       mode,
		Timeout:    cfg.Timeout,
		User:       cfg.User,
		SkipSplash: skipSplash,
		Logger:     logger,
	})
}
