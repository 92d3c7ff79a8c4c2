package cmd

import (
	"fmt"

	"github.com/meysamhadeli/codesense/code_analyzer/models"
	"github.com/meysamhadeli/codesense/config"
	"github.com/meysamhadeli/codesense/utils"
	"github.com/spf13/cobra"
)

type promptOutput struct {
	Language        models.LanguageTag      `json:"language" yaml:"language"`
	Level           models.ExplanationLevel `json:"level" yaml:"level"`
	EstimatedTokens int                     `json:"estimated_tokens" yaml:"estimated_tokens"`
	Prompt          string                  `json:"prompt" yaml:"prompt"`
}

var promptCmd = &cobra.Command{
	Use:   "prompt [file|-]",
	Short: "Build the explanation prompt for a snippet",
	Long: `The 'prompt' command analyzes a snippet and renders the instruction prompt an
explanation generator would receive, tuned to the audience level, together with an
estimate of its token count.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return handlePromptCommand(cmd, args)
	},
}

func init() {
	promptCmd.Flags().StringP("language", "l", "", "Language hint (e.g. 'python', 'go'); 'auto' detects it")
	promptCmd.Flags().String("level", "", "Audience level: 'beginner', 'intermediate' or 'advanced'")
	promptCmd.Flags().Bool("no-highlight", false, "Print the prompt as plain text")

	rootCmd.AddCommand(promptCmd)
}

func handlePromptCommand(cmd *cobra.Command, args []string) error {
	rootDependencies, err := handleRootCommand(cmd)
	if err != nil {
		return err
	}
	cfg := rootDependencies.Config
	logger := rootDependencies.Logger
	tokens := rootDependencies.TokenManagement

	levelName := cfg.ExplanationLevel
	if flagLevel, _ := cmd.Flags().GetString("level"); flagLevel != "" {
		levelName = flagLevel
	}
	level, ok := models.ParseExplanationLevel(levelName)
	if !ok {
		return fmt.Errorf("%w: %q", config.ErrInvalidLevel, levelName)
	}

	snippet, err := utils.ReadSnippet(firstArg(args), cmd.InOrStdin(), cfg.MaxFileSize)
	if err != nil {
		return err
	}

	result, err := rootDependencies.Analyzer.Analyze(cmd.Context(), snippet, languageHint(cmd, cfg.Language))
	if err != nil {
		return err
	}

	prompt, err := rootDependencies.Analyzer.GeneratePrompt(result, snippet, level)
	if err != nil {
		return err
	}

	estimate := tokens.EstimateTokens(prompt)
	tokens.UsedTokens(estimate, 0)
	if tokens.ExceedsBudget(estimate) {
		logger.Warn("prompt exceeds the token budget", logger.Args("tokens", estimate, "budget", cfg.MaxPromptTokens))
	}

	out := cmd.OutOrStdout()
	output := promptOutput{Language: result.Language, Level: level, EstimatedTokens: estimate, Prompt: prompt}
	if structured, err := writeStructured(out, cfg.OutputFormat, output); structured || err != nil {
		return err
	}

	if noHighlight, _ := cmd.Flags().GetBool("no-highlight"); noHighlight {
		fmt.Fprint(out, prompt)
	} else if err := utils.RenderMarkdown(cmd.Context(), out, prompt, cfg.Theme); err != nil {
		return err
	}

	tokens.DisplayTokens(out, "Prompt")
	return nil
}
