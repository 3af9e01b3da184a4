package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/learnbuddy/learnbuddy/internal/buddyapi"
	"github.com/learnbuddy/learnbuddy/internal/config"
	"github.com/learnbuddy/learnbuddy/internal/llm"
	"github.com/learnbuddy/learnbuddy/internal/logging"
	"github.com/learnbuddy/learnbuddy/internal/server"
	"github.com/learnbuddy/learnbuddy/internal/slack"
	"github.com/learnbuddy/learnbuddy/internal/store"
	"github.com/learnbuddy/learnbuddy/internal/tutor"
)

var warn = color.New(color.FgYellow).FprintlnFunc()

// loadConfig reads .env and the environment, then applies flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if v, _ := flags.GetString("server"); v != "" {
		cfg.Server = v
	}
	if v, _ := flags.GetString("db"); v != "" {
		cfg.DBPath = v
	}
	if v, _ := flags.GetString("log-file"); v != "" {
		cfg.LogFile = v
	}
	if flags.Changed("timeout") {
		cfg.Timeout, _ = flags.GetDuration("timeout")
	}
	if flags.Lookup("mode") != nil {
		if v, _ := flags.GetString("mode"); v != "" {
			cfg.Mode = v
		}
	}
	return cfg, nil
}

// newLogger builds the file logger. console also echoes to stderr, which
// only non-interactive commands may do.
func newLogger(cmd *cobra.Command, cfg config.Config, console bool) *zap.Logger {
	debug, _ := cmd.Flags().GetBool("debug")
	logger, err := logging.New(logging.Options{File: cfg.LogFile, Console: console, Debug: debug})
	if err != nil {
		warn(os.Stderr, "Logging disabled:", err)
		return zap.NewNop()
	}
	return logger
}

func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

func openStore(cfg config.Config) (*store.Store, error) {
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}

// newServer builds the tutor backend on st. A missing LLM provider is a
// warning: grading, recommendations and reports still work.
func newServer(ctx context.Context, cfg config.Config, st *store.Store, logger *zap.Logger) *server.Server {
	var provider llm.Provider
	llmCfg, err := llm.ResolveConfig()
	if err == nil {
		provider, err = llm.NewProvider(ctx, llmCfg, st.EventRepo(), logger)
	}
	if err != nil {
		if errors.Is(err, llm.ErrNoProvider) {
			warn(os.Stderr, "No LLM API key found; questions and new quizzes are unavailable.")
		} else {
			warn(os.Stderr, "LLM provider not configured:", err)
		}
		provider = nil
	} else {
		logger.Info("llm provider ready", zap.String("provider", llmCfg.Provider), zap.String("model", provider.ModelID()))
	}

	tcfg := tutor.DefaultConfig()
	tcfg.Timeout = llmCfg.Timeout
	t := tutor.New(provider, st.QuizRepo(), tcfg, logger.Named("tutor"))

	reporter := slack.NewReporter(slack.Options{
		WebhookURL:     cfg.Slack.WebhookURL,
		BotToken:       cfg.Slack.BotToken,
		DefaultChannel: cfg.Slack.DefaultChannel,
		Logger:         logger.Named("slack"),
	})
	if !reporter.Configured() {
		logger.Info("slack reporting disabled")
	}

	return server.New(t, st.QuizRepo(), reporter, logger.Named("http"))
}

// backend is what the commands talk to: a remote server, or one started
// in-process on a loopback port with --local.
type backend struct {
	*buddyapi.Client
	close func()
}

func connect(cmd *cobra.Command, cfg config.Config, logger *zap.Logger) (*backend, error) {
	local, _ := cmd.Flags().GetBool("local")
	if !local {
		client, err := buddyapi.NewClient(cfg.Server, buddyapi.WithLogger(logger.Named("client")))
		if err != nil {
			return nil, err
		}
		return &backend{Client: client, close: func() {}}, nil
	}

	st, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("listen: %w", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	srv := newServer(ctx, cfg, st, logger)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := srv.Serve(ctx, ln); err != nil {
			logger.Error("local tutor stopped", zap.Error(err))
		}
	}()

	client, err := buddyapi.NewClient("http://"+ln.Addr().String(), buddyapi.WithLogger(logger.Named("client")))
	if err != nil {
		cancel()
		<-done
		st.Close()
		return nil, err
	}
	return &backend{Client: client, close: func() {
		cancel()
		<-done
		st.Close()
	}}, nil
}
