package code_analyzer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/meysamhadeli/codesense/code_analyzer/models"
)

var ErrInvalidSnippet = errors.New("cannot build a prompt for an invalid snippet")

var levelGuidelines = map[models.ExplanationLevel]string{
	models.Beginner:     "Explain in plain words suitable for newcomers. Break complex ideas down step by step.",
	models.Intermediate: "Give detailed explanations with best practices and the reasoning behind them.",
	models.Advanced:     "Include optimization tips, alternative approaches and advanced concepts.",
}

// GeneratePrompt renders the instruction prompt for an explanation generator,
// conditioned on the audience level and the facts extracted by Analyze.
func (analyzer *CodeAnalyzer) GeneratePrompt(result *models.AnalysisResult, snippet string, level models.ExplanationLevel) (string, error) {
	if result == nil || !result.Validation.IsValid || result.Summary == nil {
		return "", ErrInvalidSnippet
	}

	guideline, ok := levelGuidelines[level]
	if !ok {
		level = models.Intermediate
		guideline = levelGuidelines[level]
	}

	language := result.Language
	var prompt strings.Builder

	fmt.Fprintf(&prompt, "## Role\n\nYou are an experienced programming instructor. Explain the following %s code in clear, instructive language.\n\n", language.DisplayName())

	prompt.WriteString("## Guidelines\n\n")
	fmt.Fprintf(&prompt, "- Target audience: %s level\n", level)
	fmt.Fprintf(&prompt, "- %s\n", guideline)
	prompt.WriteString("- Add line-by-line comments where useful\n")
	prompt.WriteString("- Point out best practices and possible improvements\n")
	prompt.WriteString("- Use proper markdown formatting\n\n")

	prompt.WriteString("## What static analysis found\n\n")
	writeFacts(&prompt, result)

	fmt.Fprintf(&prompt, "## Code to explain\n\n```%s\n%s\n```\n\n", language, strings.TrimSpace(snippet))
	prompt.WriteString("Give a thorough explanation.\n")

	return prompt.String(), nil
}

func writeFacts(prompt *strings.Builder, result *models.AnalysisResult) {
	summary := result.Summary

	fmt.Fprintf(prompt, "- Purpose: %s\n", summary.Purpose)
	fmt.Fprintf(prompt, "- Complexity: %s (%d lines)\n", summary.Complexity, result.Validation.Stats.LineCount)

	facts := []struct {
		label string
		items []string
	}{
		{"Key functions", summary.KeyFunctions},
		{"Control structures", summary.ControlStructures},
		{"Key variables", summary.KeyVariables},
		{"Operations", summary.Operations},
		{"Patterns", summary.Patterns},
		{"Validation warnings", result.Validation.Warnings},
	}
	for _, fact := range facts {
		if len(fact.items) == 0 {
			continue
		}
		fmt.Fprintf(prompt, "- %s: %s\n", fact.label, strings.Join(fact.items, "; "))
	}
	prompt.WriteString("\n")
}
