package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/meysamhadeli/codesense/utils"
	"github.com/spf13/cobra"
)

var errInvalidSnippet = errors.New("snippet is not valid")

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file|-]",
	Short: "Detect, validate and summarize a code snippet",
	Long: `The 'analyze' command reads a snippet from a file, or from stdin when no file or '-'
is given, and prints its detected language, validation warnings and summary.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleAnalyzeCommand(cmd, args)
	},
}

func init() {
	analyzeCmd.Flags().StringP("language", "l", "", "Language hint (e.g. 'python', 'go'); 'auto' detects it")
	analyzeCmd.Flags().Bool("no-highlight", false, "Print the summary without the highlighted snippet")

	rootCmd.AddCommand(analyzeCmd)
}

func handleAnalyzeCommand(cmd *cobra.Command, args []string) error {
	rootDependencies, err := handleRootCommand(cmd)
	if err != nil {
		return err
	}
	cfg := rootDependencies.Config

	snippet, err := utils.ReadSnippet(firstArg(args), cmd.InOrStdin(), cfg.MaxFileSize)
	if err != nil {
		return err
	}

	result, err := rootDependencies.Analyzer.Analyze(cmd.Context(), snippet, languageHint(cmd, cfg.Language))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	structured, err := writeStructured(out, cfg.OutputFormat, result)
	if err != nil {
		return err
	}
	if !structured {
		noHighlight, _ := cmd.Flags().GetBool("no-highlight")
		report := textReport{w: out, theme: cfg.Theme, highlight: !noHighlight}
		if err := report.renderAnalysis(result, snippet); err != nil {
			return err
		}
	}

	if !result.Validation.IsValid {
		return fmt.Errorf("%w: %s", errInvalidSnippet, strings.Join(result.Validation.Errors, "; "))
	}
	return nil
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// languageHint prefers the --language flag over the configured language.
func languageHint(cmd *cobra.Command, configured string) string {
	if flag := cmd.Flags().Lookup("language"); flag != nil && flag.Changed {
		return flag.Value.String()
	}
	return configured
}
