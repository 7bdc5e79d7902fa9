// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the proposal-engine CLI. The root
// command turns one client request document into a proposal PDF; the
// subcommands expose the intermediate stages.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/proposal-engine/internal/generate"
	"github.com/pdiddy/proposal-engine/internal/pipeline"
	"github.com/pdiddy/proposal-engine/internal/secrets"
	"github.com/pdiddy/proposal-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// logger is configured in PersistentPreRunE from --verbose.
	logger = slog.Default()

	// loadedSecrets holds credentials read from .secrets/ at startup.
	loadedSecrets secrets.Store
)

// rootCmd runs the full pipeline for one client request file.
var rootCmd = &cobra.Command{
	Use:   "proposal-engine <client_request_file>",
	Short: "Generate a project proposal PDF from a client request",
	Long: `proposal-engine reads a client request (.docx, .pdf or .txt), asks a locally
hosted language model for a five-section project proposal and writes the answer
to a PDF named after the keywords found in the request.

The model is reached through Ollama's /api/generate endpoint by default, or
through any OpenAI-compatible server with --backend openai.`,
	Args:          cobra.ExactArgs(1),
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		logger = newLogger(cmd.ErrOrStderr(), verbose)
		slog.SetDefault(logger)

		if err := initConfig(cmd); err != nil {
			return err
		}

		s, err := secrets.Load(secrets.DefaultDir, logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
	RunE: runProposal,
}

func init() {
	def := types.DefaultConfig()
	flags := rootCmd.PersistentFlags()

	flags.String("config", "", "config file (default: ./proposal-engine.yaml or ~/.config/proposal-engine/proposal-engine.yaml)")
	flags.BoolP("verbose", "v", false, "enable debug logging")

	flags.String("backend", string(def.Generation.Backend), "generation backend: ollama or openai")
	flags.String("endpoint", def.Generation.Endpoint, "Ollama generate endpoint")
	flags.String("base-url", def.Generation.BaseURL, "OpenAI-compatible API root for --backend openai")
	flags.String("model", def.Generation.Model, "model identifier")
	flags.Duration("timeout", def.Generation.Timeout, "timeout for the generation call (0 waits indefinitely)")
	flags.String("font", def.Render.FontPath, "TrueType font for body text")
	flags.String("bold-font", def.Render.BoldFontPath, "TrueType font for section headings")
	flags.String("output-dir", def.Output.Dir, "directory for the proposal PDF")

	bindFlag("generation.backend", "backend")
	bindFlag("generation.endpoint", "endpoint")
	bindFlag("generation.base_url", "base-url")
	bindFlag("generation.model", "model")
	bindFlag("generation.timeout", "timeout")
	bindFlag("render.font_path", "font")
	bindFlag("render.bold_font_path", "bold-font")
	bindFlag("output.dir", "output-dir")

	setDefaults(def)
}

func bindFlag(key, flag string) {
	if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(fmt.Sprintf("binding flag %s: %v", flag, err))
	}
}

// setDefaults registers every config key so environment variables and
// config files can override it.
func setDefaults(def types.Config) {
	viper.SetDefault("generation.backend", string(def.Generation.Backend))
	viper.SetDefault("generation.endpoint", def.Generation.Endpoint)
	viper.SetDefault("generation.base_url", def.Generation.BaseURL)
	viper.SetDefault("generation.model", def.Generation.Model)
	viper.SetDefault("generation.api_key", def.Generation.APIKey)
	viper.SetDefault("generation.timeout", def.Generation.Timeout)

	viper.SetDefault("render.font_path", def.Render.FontPath)
	viper.SetDefault("render.bold_font_path", def.Render.BoldFontPath)
	viper.SetDefault("render.font_size", def.Render.FontSize)
	viper.SetDefault("render.spacing", def.Render.Spacing)
	viper.SetDefault("render.page_size", def.Render.PageSize)

	viper.SetDefault("output.dir", def.Output.Dir)
}

// initConfig points viper at the config file named by cmd's --config flag,
// or the default locations, and at the environment.
func initConfig(cmd *cobra.Command) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("proposal-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "proposal-engine"))
		}
	}

	viper.SetEnvPrefix("PROPOSAL_ENGINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Without --config the file is optional.
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && cfgFile == "" {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	logger.Debug("using config file", "path", viper.ConfigFileUsed())
	return nil
}

// loadConfig decodes the merged configuration. The openai API key falls
// back to .secrets/openai-api-key.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	cfg.Generation.APIKey = loadedSecrets.Get(secrets.OpenAIAPIKey, cfg.Generation.APIKey)
	return cfg, nil
}

// newLogger returns a text logger on w without timestamps.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}

func runProposal(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	gen, err := generate.New(cfg.Generation, logger)
	if err != nil {
		return err
	}

	res, err := pipeline.Run(cmd.Context(), gen, cfg, args[0], cmd.ErrOrStderr(), logger)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(
		fmt.Sprintf("Detailed proposal has been saved to '%s'", res.OutputPath)))
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error:"), err)
		os.Exit(1)
	}
}
