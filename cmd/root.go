package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "learnbuddy",
	Short: "Terminal chat client for the Learning Buddy tutor",
	Long: "Learning Buddy: ask questions, practice with multiple-choice quizzes and see\n" +
		"which topics to review, all from the terminal.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	f := rootCmd.PersistentFlags()
	f.String("server", "", "Backend base URL (overrides LEARNBUDDY_SERVER)")
	f.Bool("local", false, "Run the tutor backend in-process instead of connecting to --server")
	f.String("db", "", "Path to SQLite database file (overrides LEARNBUDDY_DB)")
	f.String("log-file", "", "Log file path (overrides LEARNBUDDY_LOG_FILE)")
	f.Duration("timeout", 0, "Per-request timeout, e.g. 30s (overrides LEARNBUDDY_TIMEOUT)")
	f.Bool("debug", false, "Log at debug level")

	rootCmd.Flags().String("mode", "", "Initial mode: ask, practice or recommendations")
	rootCmd.Flags().Bool("no-splash", false, "Skip the welcome animation")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}
