// Command logtriage analyzes review-automation logs and prints a stability
// report with remediation advice.
//
// Usage:
//
//	logtriage <log-file> [flags]
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/vaultops/logtriage/pkg/analyzer"
	"github.com/vaultops/logtriage/pkg/report"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "logtriage <log-file>",
	Short: "Analyze review-automation logs and print a stability report",
	Long: `logtriage scans a review-automation log for recurring failure
signatures (validator oscillation, missing backticks, control character
crashes, recursion limit hits, metadata warnings) and prints a prioritized
report with concrete remediation advice.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runTriage,
}

func init() {
	rootCmd.Version = version
	rootCmd.Flags().String("rules", "", "YAML file with additional custom pattern rules")
	rootCmd.Flags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.Flags().Bool("verbose", false, "include aggregate scan counters in the report")
	rootCmd.Flags().Bool("debug", false, "log every detector match to stderr")
}

func runTriage(cmd *cobra.Command, args []string) error {
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	if err := setupColor(colorMode); err != nil {
		return err
	}

	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}

	var opts []analyzer.Option

	debug, err := cmd.Flags().GetBool("debug")
	if err != nil {
		return fmt.Errorf("failed to get debug flag: %w", err)
	}
	if debug {
		log, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("failed to set up debug logging: %w", err)
		}
		defer func() { _ = log.Sync() }()
		opts = append(opts, analyzer.WithLogger(log))
	}

	rulesPath, err := cmd.Flags().GetString("rules")
	if err != nil {
		return fmt.Errorf("failed to get rules flag: %w", err)
	}
	if rulesPath != "" {
		rs, err := analyzer.LoadRules(rulesPath)
		if err != nil {
			return err
		}
		opts = append(opts, analyzer.WithRules(rs))
	}

	sum, err := analyzer.New(opts...).AnalyzeFile(args[0])
	if err != nil {
		return err
	}

	report.Render(cmd.OutOrStdout(), sum, report.Options{Verbose: verbose})
	return nil
}

func setupColor(mode string) error {
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto":
		color.NoColor = !term.IsTerminal(int(os.Stdout.Fd()))
	default:
		return fmt.Errorf("invalid --color value %q (want auto, on, or off)", mode)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
