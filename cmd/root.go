package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cjtool/cj/internal/logging"
)

var (
	verbose    bool
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "cj",
	Short: "Run Claude Code in an isolated container",
	Long: `cj provisions an isolated container for Claude Code.

The current directory is mounted as the container workspace, credentials
persist across sessions in .cj/claude, and a loopback browser bridge with
an SSH reverse tunnel lets the container open URLs in the host browser.

Run without a subcommand to start a Claude Code session.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose, jsonOutput, os.Stderr)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runClaude,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil && err.Error() != "" {
		logging.UserError("%s", err.Error())
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
)
