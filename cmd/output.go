package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/meysamhadeli/codesense/code_analyzer/models"
	"github.com/meysamhadeli/codesense/constants/lipgloss"
	"github.com/meysamhadeli/codesense/utils"
	"gopkg.in/yaml.v3"
)

// writeStructured encodes v as json or yaml; it reports false for text output.
func writeStructured(w io.Writer, format string, v interface{}) (bool, error) {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return true, encoder.Encode(v)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return true, err
		}
		return true, encoder.Close()
	}
	return false, nil
}

type textReport struct {
	w         io.Writer
	theme     string
	highlight bool
}

func (r textReport) renderAnalysis(result *models.AnalysisResult, snippet string) error {
	header := fmt.Sprintf("%s %s", lipgloss.Label.Render("Language:"), result.Language.DisplayName())
	if result.Summary != nil {
		header += fmt.Sprintf("  %s %s  %s %s",
			lipgloss.Label.Render("Complexity:"), result.Summary.Complexity,
			lipgloss.Label.Render("Purpose:"), result.Summary.Purpose)
	}
	fmt.Fprintln(r.w, lipgloss.BoxStyle.Render(header))

	if r.highlight && strings.TrimSpace(snippet) != "" {
		if err := utils.HighlightSnippet(r.w, strings.TrimSpace(snippet), result.Language.Lexer(), r.theme); err != nil {
			return err
		}
		fmt.Fprintln(r.w)
	}

	for _, message := range result.Validation.Errors {
		fmt.Fprintln(r.w, lipgloss.Red.Render("✗ "+message))
	}

	if summary := result.Summary; summary != nil {
		r.section("Key functions", summary.KeyFunctions)
		r.section("Control structures", summary.ControlStructures)
		r.section("Key variables", summary.KeyVariables)
		r.section("Operations", summary.Operations)
		r.section("Patterns", summary.Patterns)
	}

	for _, warning := range result.Validation.Warnings {
		fmt.Fprintln(r.w, lipgloss.Yellow.Render("⚠ "+warning))
	}

	stats := result.Validation.Stats
	fmt.Fprintln(r.w, lipgloss.Gray.Render(fmt.Sprintf("%d lines (%d non-empty, %d comments), %d characters",
		stats.LineCount, stats.NonEmptyLineCount, stats.CommentLineCount, stats.CharacterCount)))

	return nil
}

func (r textReport) section(label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(r.w, "%s %s\n", lipgloss.Label.Render(label+":"), strings.Join(items, ", "))
}
