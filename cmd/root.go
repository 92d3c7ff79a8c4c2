package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/meysamhadeli/codesense/code_analyzer"
	"github.com/meysamhadeli/codesense/code_analyzer/contracts"
	"github.com/meysamhadeli/codesense/config"
	"github.com/meysamhadeli/codesense/constants/lipgloss"
	"github.com/meysamhadeli/codesense/token_management"
	contracts_token "github.com/meysamhadeli/codesense/token_management/contracts"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// RootDependencies is what every subcommand needs, built once per invocation.
type RootDependencies struct {
	Cwd             string
	Config          *config.Config
	Analyzer        contracts.ICodeAnalyzer
	TokenManagement contracts_token.ITokenManagement
	Logger          *pterm.Logger
}

var rootCmd = &cobra.Command{
	Use:   "codesense",
	Short: "Heuristic language detection, validation and summaries for code snippets",
	Long: `codesense classifies arbitrary code snippets without a parser: it detects the
language, runs lightweight structural checks and extracts a summary (purpose,
complexity, key functions, control structures, variables and operations).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if version, _ := cmd.Flags().GetBool("version"); version {
			fmt.Fprintln(cmd.OutOrStdout(), config.DefaultConfig.Version)
			return nil
		}
		return cmd.Help()
	},
}

var logLevels = map[string]pterm.LogLevel{
	"disabled": pterm.LogLevelDisabled,
	"trace":    pterm.LogLevelTrace,
	"debug":    pterm.LogLevelDebug,
	"info":     pterm.LogLevelInfo,
	"warn":     pterm.LogLevelWarn,
	"error":    pterm.LogLevelError,
}

func init() {
	config.InitFlags(rootCmd)
}

// Execute runs the root command until completion or SIGINT/SIGTERM.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, lipgloss.Red.Render(fmt.Sprintf("🚫 %v", err)))
		cancel()
		os.Exit(1)
	}
}

func handleRootCommand(cmd *cobra.Command) (*RootDependencies, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get the current working directory: %w", err)
	}

	cfg, err := config.LoadConfigs(cmd.Root(), cwd)
	if err != nil {
		return nil, err
	}

	logger := newLogger(cfg.LogLevel)
	if cfg.ConfigFile != "" {
		logger.Debug("configuration loaded", logger.Args("file", cfg.ConfigFile))
	}

	options := []code_analyzer.Option{
		code_analyzer.WithLogger(logger),
		code_analyzer.WithMaxFileSize(cfg.MaxFileSize),
	}

	if cfg.EnableCache {
		cacheManager, err := code_analyzer.NewCacheManager(code_analyzer.CacheOptions{
			Dir:           cfg.CacheDir,
			MemoryEntries: cfg.MemoryCacheSize,
			AutoCleanup:   true,
		})
		if err != nil {
			// Fallback to no caching if cache initialization fails
			logger.Warn("failed to initialize cache manager", logger.Args("error", err))
		} else {
			options = append(options, code_analyzer.WithCacheManager(cacheManager))
		}
	}

	return &RootDependencies{
		Cwd:             cwd,
		Config:          cfg,
		Analyzer:        code_analyzer.NewCodeAnalyzer(options...),
		TokenManagement: token_management.NewTokenManager(cfg.MaxPromptTokens),
		Logger:          logger,
	}, nil
}

func newLogger(level string) *pterm.Logger {
	logLevel, ok := logLevels[level]
	if !ok {
		logLevel = pterm.LogLevelWarn
	}
	return pterm.DefaultLogger.WithLevel(logLevel).WithWriter(os.Stderr)
}
