/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/moamenhredeen/oastester/internal/auth"
	"github.com/moamenhredeen/oastester/internal/config"
	"github.com/moamenhredeen/oastester/internal/generator"
	"github.com/moamenhredeen/oastester/internal/logger"
	"github.com/moamenhredeen/oastester/internal/models"
	"github.com/moamenhredeen/oastester/internal/parser"
	"github.com/moamenhredeen/oastester/internal/store"
	"github.com/moamenhredeen/oastester/internal/tester"
)

var (
	v   = config.New()
	cfg config.Config

	cfgFile    string
	debug      bool
	verbose    bool
	restoreLog func()

	isTTY = term.IsTerminal(int(os.Stdout.Fd()))

	// Color helpers
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	cyan   = color.New(color.FgCyan, color.Bold).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	white  = color.New(color.FgWhite, color.Bold).SprintFunc()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "oastester",
	Short: "Rest API Testing Tool based on OpenAPI Specification",
	Long: `oastester turns an OpenAPI document into runnable API test cases.

It lists the endpoints of a spec, synthesizes request bodies from their schemas,
executes the resulting test cases against a live server one at a time and
reports which responses matched the expected status.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Read(v, cfgFile); err != nil {
			return err
		}
		if debug {
			v.Set(config.KeyLogLevel, "debug")
		}

		var err error
		cfg, err = config.FromViper(v)
		if err != nil {
			return err
		}

		restoreLog, err = logger.Setup(logger.Config{
			Level:  cfg.Log.Level,
			Format: cfg.Log.Format,
		})
		if err != nil {
			return err
		}
		logger.L().Debug("config.loaded", "file", v.ConfigFileUsed(), "store_dir", cfg.StoreDir)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if restoreLog != nil {
			restoreLog()
		}
	},
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Config file (default: ./config.toml or $XDG_CONFIG_HOME/oastester/config.toml)")
	flags.String("base-url", "", "Base URL requests are sent to (default: first server in the spec)")
	flags.Duration("timeout", 0, "Request timeout (default 30s)")
	flags.Float64("rate", 0, "Max requests per second (0 = unlimited)")
	flags.String("store-dir", "", "Directory holding imported specs and tokens")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.String("log-format", "", "Log format: text, json")
	flags.BoolVar(&debug, "debug", false, "Enable debug logging")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Show detailed output")

	bindFlag(config.KeyBaseURL, "base-url")
	bindFlag(config.KeyTimeout, "timeout")
	bindFlag(config.KeyRate, "rate")
	bindFlag(config.KeyStoreDir, "store-dir")
	bindFlag(config.KeyLogLevel, "log-level")
	bindFlag(config.KeyLogFormat, "log-format")
}

// bindFlag binds a persistent flag to a viper key. Unset flags keep the config value.
func bindFlag(key, name string) {
	if err := v.BindPFlag(key, rootCmd.PersistentFlags().Lookup(name)); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", name, err))
	}
}

// exitf prints an error and exits with status 1
func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func openStore() *store.FileStore {
	return store.NewFileStore(cfg.StoreDir)
}

// loadSpec parses a spec given as a file path, or as the id of an imported spec
func loadSpec(ref string) (*parser.Parser, error) {
	if _, err := os.Stat(ref); err == nil {
		return parser.ParseFile(ref)
	}

	data, err := openStore().Get(store.KindSpec, ref)
	if err != nil {
		return nil, fmt.Errorf("no spec file or imported spec named '%s': %w", ref, err)
	}
	return parser.Parse(data)
}

// specID derives the store id of a spec file from its name
func specID(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		default:
			return '-'
		}
	}, name)
}

func newSynthesizer() *generator.Synthesizer {
	return generator.NewSynthesizer(
		generator.WithFormats(cfg.Sample.Formats),
		generator.WithRequiredOnly(cfg.Sample.RequiredOnly),
		generator.WithMaxDepth(cfg.Sample.MaxDepth),
	)
}

func newEngine() *tester.Engine {
	return tester.NewEngine(
		tester.WithTimeout(cfg.Timeout),
		tester.WithRate(cfg.Rate),
	)
}

// resolveBaseURL prefers the configured base URL over the spec's first server
func resolveBaseURL(p *parser.Parser) string {
	if cfg.BaseURL != "" {
		return strings.TrimRight(cfg.BaseURL, "/")
	}
	if p != nil {
		return p.BaseURL()
	}
	return ""
}

// resolveToken looks up the stored token with the given id. An empty id selects no token.
func resolveToken(id string) (*models.AuthToken, error) {
	if id == "" {
		return nil, nil
	}
	tok, err := auth.NewTokenStore(openStore()).Get(id)
	if err != nil {
		return nil, err
	}
	return &tok, nil
}
