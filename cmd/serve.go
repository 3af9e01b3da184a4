package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the tutor backend",
	Long: "Serve the chat, recommendations and report endpoints backed by an LLM provider,\n" +
		"a local SQLite database and optional Slack reporting.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if v, _ := cmd.Flags().GetString("addr"); v != "" {
			cfg.Addr = v
		}
		if err := cfg.ValidateServer(); err != nil {
			return err
		}

		logger := newLogger(cmd, cfg, true)
		defer logger.Sync() //nolint:errcheck

		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		srv := newServer(ctx, cfg, st, logger)
		if err := srv.Run(ctx, cfg.Addr); err != nil {
			logger.Error("server stopped", zap.Error(err))
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides LEARNBUDDY_ADDR)")
}
