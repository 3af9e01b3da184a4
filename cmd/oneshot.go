package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/learnbuddy/learnbuddy/internal/buddyapi"
	"github.com/learnbuddy/learnbuddy/internal/config"
	"github.com/learnbuddy/learnbuddy/internal/convo"
	"github.com/learnbuddy/learnbuddy/internal/quiz"
)

var (
	heading = color.New(color.FgCyan, color.Bold)
	dim     = color.New(color.Faint)
	good    = color.New(color.FgGreen, color.Bold)
	bad     = color.New(color.FgRed, color.Bold)
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask the tutor a single question",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBackend(cmd, func(be *backend, _ config.Config) error {
			env := convo.Frame(strings.Join(args, " "), convo.ModeAsk, "")
			resp, err := be.Chat(cmd.Context(), buddyapi.ChatRequest{Message: env.Text})
			if err != nil {
				return chatError(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), resp.Response)
			return nil
		})
	},
}

var practiceCmd = &cobra.Command{
	Use:   "practice <topic>",
	Short: "Generate a practice quiz and print its first question",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBackend(cmd, func(be *backend, _ config.Config) error {
			env := convo.Frame(strings.Join(args, " "), convo.ModePractice, "")
			resp, err := be.Chat(cmd.Context(), buddyapi.ChatRequest{Message: env.Text})
			if err != nil {
				return chatError(err)
			}
			printUnit(cmd, quiz.Parse(resp.Response))
			if resp.SessionID != "" {
				dim.Fprintf(cmd.OutOrStdout(), "\nSession %s. Answer in the TUI with --mode practice.\n", resp.SessionID)
			}
			return nil
		})
	},
}

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "List topics to review, weakest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBackend(cmd, func(be *backend, _ config.Config) error {
			topics, err := be.Recommendations(cmd.Context())
			if err != nil {
				return chatError(err)
			}
			out := cmd.OutOrStdout()
			if len(topics) == 0 {
				fmt.Fprintln(out, "No quiz results yet. Take a practice quiz to get recommendations.")
				return nil
			}
			heading.Fprintln(out, "Topics to review")
			fmt.Fprintln(out, strings.Repeat("─", 56))
			for _, t := range topics {
				c := good
				if t.Accuracy < 50 {
					c = bad
				}
				fmt.Fprintf(out, "%-30s  %s  %s\n",
					truncate(t.Topic, 30),
					c.Sprintf("%5.1f%%", t.Accuracy),
					dim.Sprintf("%d correct, %d incorrect", t.CorrectCount, t.IncorrectCount))
			}
			return nil
		})
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Send a session report to Slack",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, _ := cmd.Flags().GetString("session")
		user, _ := cmd.Flags().GetString("user")
		channel, _ := cmd.Flags().GetString("channel")

		return withBackend(cmd, func(be *backend, cfg config.Config) error {
			if user == "" {
				user = cfg.User
			}
			resp, err := be.Report(cmd.Context(), buddyapi.ReportRequest{
				SessionID: session,
				UserName:  user,
				Channel:   channel,
			})
			if err != nil {
				return chatError(err)
			}
			if !resp.Success {
				return fmt.Errorf("report not sent: %s", resp.Message)
			}
			good.Fprintln(cmd.OutOrStdout(), "✓ "+resp.Message)
			return nil
		})
	},
}

func init() {
	reportCmd.Flags().String("session", "", "Quiz session to report on (default: everything today)")
	reportCmd.Flags().String("user", "", "Name shown in the report (overrides LEARNBUDDY_USER)")
	reportCmd.Flags().String("channel", "", "Slack channel (default: SLACK_DEFAULT_CHANNEL on the server)")
}

// withBackend runs fn against the configured backend.
func withBackend(cmd *cobra.Command, fn func(*backend, config.Config) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := newLogger(cmd, cfg, false)
	defer logger.Sync() //nolint:errcheck

	be, err := connect(cmd, cfg, logger)
	if err != nil {
		return err
	}
	defer be.close()

	if cfg.Timeout > 0 {
		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
		defer cancel()
		cmd.SetContext(ctx)
	}
	return fn(be, cfg)
}

func chatError(err error) error {
	return errors.New(buddyapi.UserMessage(err))
}

func printUnit(cmd *cobra.Command, u quiz.Unit) {
	out := cmd.OutOrStdout()
	switch u := u.(type) {
	case *quiz.Question:
		dim.Fprintf(out, "Question %d of %d\n", u.Number, u.Total)
		heading.Fprintln(out, u.Body)
		for _, o := range u.Options {
			fmt.Fprintf(out, "  %c) %s\n", o.Letter, o.Text)
		}
	case *quiz.Feedback:
		if u.Correct {
			good.Fprint(out, "Correct! ")
		} else {
			bad.Fprint(out, "Incorrect. ")
		}
		fmt.Fprintln(out, u.Explanation)
		if u.Next != nil {
			fmt.Fprintln(out)
			printUnit(cmd, u.Next)
		}
	case *quiz.Passthrough:
		fmt.Fprintln(out, u.Text)
	}
}
