package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/meysamhadeli/codesense/code_analyzer/models"
	"github.com/meysamhadeli/codesense/utils"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

type detection struct {
	Language models.LanguageTag     `json:"language" yaml:"language"`
	Scores   []models.LanguageScore `json:"scores,omitempty" yaml:"scores,omitempty"`
}

var detectCmd = &cobra.Command{
	Use:   "detect [file|-]",
	Short: "Print the detected language of a snippet",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleDetectCommand(cmd, args)
	},
}

func init() {
	detectCmd.Flags().StringP("language", "l", "", "Language hint; a recognized hint is returned unchanged")
	detectCmd.Flags().Bool("scores", false, "Show the weighted pattern score of every language with evidence")

	rootCmd.AddCommand(detectCmd)
}

func handleDetectCommand(cmd *cobra.Command, args []string) error {
	rootDependencies, err := handleRootCommand(cmd)
	if err != nil {
		return err
	}
	cfg := rootDependencies.Config
	analyzer := rootDependencies.Analyzer

	snippet, err := utils.ReadSnippet(firstArg(args), cmd.InOrStdin(), cfg.MaxFileSize)
	if err != nil {
		return err
	}

	result := detection{Language: analyzer.DetectLanguage(snippet, languageHint(cmd, cfg.Language))}
	showScores, _ := cmd.Flags().GetBool("scores")
	if showScores {
		result.Scores = analyzer.ScoreLanguages(snippet)
	}

	out := cmd.OutOrStdout()
	if structured, err := writeStructured(out, cfg.OutputFormat, result); structured || err != nil {
		return err
	}

	fmt.Fprintln(out, result.Language)
	if showScores {
		renderScores(out, result)
	}
	return nil
}

func renderScores(w io.Writer, result detection) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Language", "Score", ""})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT})

	for _, score := range result.Scores {
		marker := ""
		if score.Language == result.Language {
			marker = "✓"
		}
		table.Append([]string{score.Language.DisplayName(), strconv.Itoa(score.Score), marker})
	}

	table.Render()
}
