package cmd

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oy3o/bsor/internal/config"
)

var (
	cfg    = config.DefaultConfig()
	logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bsor",
	Short: "Convert BSOR replays to and from JSON",
	Long: `bsor reads and writes BSOR replay files, the binary recordings of a
VR rhythm game session, and keeps them in a local archive.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		if configPath != "" {
			loaded, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			cfg = loaded
		}
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
			Level: cfg.Logging.SlogLevel(),
		}))
		logger.Debug("configuration loaded", "path", configPath, "strict", cfg.Decode.Strict)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "YAML configuration file")
}

// argsOrPrompt returns args, asking on the command's input for each missing
// one, one line per question. An empty answer is an error.
func argsOrPrompt(cmd *cobra.Command, args []string, questions ...string) ([]string, error) {
	if len(args) >= len(questions) {
		return args, nil
	}
	in := bufio.NewScanner(cmd.InOrStdin())
	for _, q := range questions[len(args):] {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ", q)
		if !in.Scan() {
			if err := in.Err(); err != nil {
				return nil, err
			}
			return nil, fmt.Errorf("no answer to %q", q)
		}
		answer := strings.TrimSpace(in.Text())
		if answer == "" {
			return nil, fmt.Errorf("no answer to %q", q)
		}
		args = append(args, answer)
	}
	return args, nil
}
