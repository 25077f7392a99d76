package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/personagni/internal/config"
	"github.com/KaramelBytes/personagni/internal/logging"
)

var (
	// Global flags, applied over the loaded config when set
	cfgFile             string
	debug               bool
	flagPersonalityFile string
	flagGNIFile         string
	flagCountries       []string
	flagMatch           string

	// Loaded configuration
	cfg *cfgpkg.Global
	// Logger built from cfg; nil until a command runs
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "personagni",
	Short: "Compare personality-type distributions with GNI per capita",
	Long: `personagni reads a per-country personality-type dataset and a per-country GNI per capita
dataset, reports average GNI and the most and least common personality types for each
country, draws bar charts, and fits a regression of GNI on the top personality percentage.

Running it without a subcommand performs the full analysis.`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline(cmd, runOptions{Format: "text", Charts: cfg.RenderCharts})
	},
}

// Execute is the entry point called by main.main()
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := executeRoot(ctx, os.Stderr)
	stop()
	if code != 0 {
		os.Exit(code)
	}
}

// executeRoot runs the root command and prints a failure once to stderr.
func executeRoot(ctx context.Context, stderr io.Writer) int {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		color.New(color.FgRed).Fprintln(stderr, "✗ Error:", err)
		return 1
	}
	return 0
}

func init() {
	// Persistent global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.personagni/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagPersonalityFile, "personality-file", "", "personality dataset (.csv, .tsv or .xlsx; overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagGNIFile, "gni-file", "", "GNI per capita dataset (.csv, .tsv or .xlsx; overrides config)")
	rootCmd.PersistentFlags().StringSliceVar(&flagCountries, "countries", nil, "countries to analyse, comma-separated (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagMatch, "match", "", "row match mode: exact|substring (overrides config)")
}

// setup loads config, applies flag overrides and installs the logger on the
// command context.
func setup(cmd *cobra.Command, args []string) error {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return err
	}
	cfg = c

	f := cmd.Flags()
	if f.Changed("personality-file") {
		cfg.PersonalityFile = flagPersonalityFile
	}
	if f.Changed("gni-file") {
		cfg.GNIFile = flagGNIFile
	}
	if f.Changed("countries") {
		if err := cfg.Set("countries", strings.Join(flagCountries, ",")); err != nil {
			return err
		}
	}
	if f.Changed("match") {
		if err := cfg.Set("match_mode", flagMatch); err != nil {
			return err
		}
	}
	if debug {
		cfg.LogLevel = "debug"
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(cfg.LogFormat)
	if err != nil {
		return err
	}
	logger = logging.New(cmd.ErrOrStderr(), level, format)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.WithLogger(ctx, logger))
	logger.Debug("config loaded",
		slog.String("personality_file", cfg.PersonalityFile),
		slog.String("gni_file", cfg.GNIFile),
		slog.Int("countries", len(cfg.Countries)),
		slog.String("match_mode", cfg.MatchMode))
	return nil
}

func success(cmd *cobra.Command, format string, a ...any) {
	color.New(color.FgGreen).Fprintf(cmd.ErrOrStderr(), "✓ "+format+"\n", a...)
}

func warn(cmd *cobra.Command, format string, a ...any) {
	color.New(color.FgYellow).Fprintf(cmd.ErrOrStderr(), "⚠ Warning: "+format+"\n", a...)
}

func requireConfig() error {
	if cfg == nil {
		return fmt.Errorf("configuration not loaded")
	}
	return nil
}
