// Package cli provides the nativ command-line interface: translation and
// localization management from the terminal, over the nativ client.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/usenativ/nativ-go/internal/config"
	"github.com/usenativ/nativ-go/internal/observability"
	"github.com/usenativ/nativ-go/pkg/nativ"
)

// Exit codes
const (
	ExitSuccess     = 0
	ExitFailure     = 1
	ExitInterrupted = 130
)

// errSilentFailure exits with ExitFailure after the command has already
// reported the problem itself.
var errSilentFailure = errors.New("command failed")

// CLI holds the command-line interface state.
type CLI struct {
	rootCmd *cobra.Command
	cfg     *config.Config
	logger  zerolog.Logger

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	// Global flags
	configPath string
	envFile    string
	apiKey     string
	baseURL    string
	timeout    time.Duration
	jsonOutput bool
	debug      bool
}

// New creates a CLI bound to the process standard streams.
func New() *CLI {
	return NewWithIO(os.Stdin, os.Stdout, os.Stderr)
}

// NewWithIO creates a CLI bound to the given streams.
func NewWithIO(stdin io.Reader, stdout, stderr io.Writer) *CLI {
	cli := &CLI{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		logger: zerolog.Nop(),
	}
	cli.rootCmd = cli.newRootCmd()
	return cli
}

// Execute runs the CLI with args and returns the process exit code.
// Cancelling ctx, as an interrupt does, yields ExitInterrupted.
func (c *CLI) Execute(ctx context.Context, args []string) int {
	c.rootCmd.SetArgs(args)
	err := c.rootCmd.ExecuteContext(ctx)

	if ctx.Err() != nil {
		c.errorf("\nInterrupted.\n")
		return ExitInterrupted
	}
	if errors.Is(err, errSilentFailure) {
		return ExitFailure
	}
	if err != nil {
		c.errorf("Error: %v\n", err)
		return ExitFailure
	}
	return ExitSuccess
}

func (c *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nativ",
		Short: "Nativ CLI - AI-powered localization from your terminal",
		Long: `Translate and manage localization from your terminal.

Examples:
  nativ translate "Hello world" --to French
  nativ batch "Sign up" "Log in" --to German
  nativ languages
  nativ tm search "hello" --target-lang fr
  echo "Hello" | nativ translate --to French`,
		Version:       nativ.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.initConfig()
		},
	}
	cmd.SetIn(c.stdin)
	cmd.SetOut(c.stdout)
	cmd.SetErr(c.stderr)
	cmd.SetVersionTemplate("nativ {{.Version}}\n")

	// Global flags
	cmd.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: ~/.nativ/config.yaml)")
	cmd.PersistentFlags().StringVar(&c.envFile, "env-file", "", "load environment variables from this file (default: ./.env if present)")
	cmd.PersistentFlags().StringVar(&c.apiKey, "api-key", "", "API key (overrides NATIV_API_KEY and config)")
	cmd.PersistentFlags().StringVar(&c.baseURL, "base-url", "", "API base URL (overrides NATIV_API_URL and config)")
	cmd.PersistentFlags().DurationVar(&c.timeout, "timeout", 0, "per-request timeout (default 2m0s)")
	cmd.PersistentFlags().BoolVar(&c.jsonOutput, "json", false, "output as JSON")
	cmd.PersistentFlags().BoolVar(&c.debug, "debug", false, "verbose request logs on stderr")

	cmd.AddCommand(c.newTranslateCmd())
	cmd.AddCommand(c.newBatchCmd())
	cmd.AddCommand(c.newFeedbackCmd())
	cmd.AddCommand(c.newLanguagesCmd())
	cmd.AddCommand(c.newTMCmd())
	cmd.AddCommand(c.newStyleGuidesCmd())
	cmd.AddCommand(c.newBrandVoiceCmd())
	cmd.AddCommand(c.newExtractCmd())
	cmd.AddCommand(c.newInspectCmd())
	cmd.AddCommand(c.newCulturalizeCmd())
	cmd.AddCommand(c.newConfigCmd())
	cmd.AddCommand(c.newVersionCmd())

	return cmd
}

func (c *CLI) initConfig() error {
	if err := config.LoadEnvFile(c.envFile); err != nil {
		return err
	}

	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	// Override with flags
	if c.apiKey != "" {
		c.cfg.APIKey = c.apiKey
	}
	if c.baseURL != "" {
		c.cfg.BaseURL = c.baseURL
	}
	if c.timeout > 0 {
		c.cfg.Timeout = c.timeout
	}
	if c.debug {
		c.cfg.Logging.Level = "debug"
	}

	logger, err := observability.New(c.stderr, c.cfg.Logging.Level, c.cfg.Logging.Format)
	if err != nil {
		return err
	}
	c.logger = logger.With().Str("component", "cli").Logger()
	return nil
}

// newClient creates a client from the resolved configuration.
func (c *CLI) newClient() (*nativ.Client, error) {
	opts := nativ.Options{Logger: &c.logger}
	if c.cfg != nil {
		opts.APIKey = c.cfg.APIKey
		opts.BaseURL = c.cfg.BaseURL
		opts.Timeout = c.cfg.Timeout
	}
	return nativ.New(opts)
}

// withClient runs fn with a client that is closed on every exit path.
func (c *CLI) withClient(fn func(*nativ.Client) error) error {
	client, err := c.newClient()
	if err != nil {
		return err
	}
	defer client.Close()
	return fn(client)
}

// readStdin returns piped standard input, trimmed. It returns "" when
// stdin is a terminal.
func (c *CLI) readStdin() (string, error) {
	if f, ok := c.stdin.(*os.File); ok {
		info, err := f.Stat()
		if err != nil || info.Mode()&os.ModeCharDevice != 0 {
			return "", nil
		}
	}
	if c.stdin == nil {
		return "", nil
	}
	data, err := io.ReadAll(c.stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Helper functions for output

func (c *CLI) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.stdout, format, args...)
}

func (c *CLI) println(args ...interface{}) {
	fmt.Fprintln(c.stdout, args...)
}

func (c *CLI) errorf(format string, args ...interface{}) {
	fmt.Fprintf(c.stderr, format, args...)
}

func (c *CLI) outputJSON(v interface{}) error {
	enc := json.NewEncoder(c.stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
