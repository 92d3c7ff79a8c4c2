package models

import (
	"strings"
	"time"
)

// Complexity is the coarse size/branching tier of a snippet.
type Complexity string

const (
	Simple  Complexity = "Simple"
	Medium  Complexity = "Medium"
	Complex Complexity = "Complex"
)

// UnknownPurpose is the purpose label used when no heuristic matched.
const UnknownPurpose = "Unknown functionality"

// ValidationStats holds line-oriented counters for a snippet.
type ValidationStats struct {
	LineCount         int `json:"line_count" yaml:"line_count"`
	CharacterCount    int `json:"character_count" yaml:"character_count"`
	NonEmptyLineCount int `json:"non_empty_line_count" yaml:"non_empty_line_count"`
	CommentLineCount  int `json:"comment_line_count" yaml:"comment_line_count"`
}

// ValidationResult is advisory: only an empty snippet is invalid.
type ValidationResult struct {
	IsValid  bool            `json:"is_valid" yaml:"is_valid"`
	Errors   []string        `json:"errors" yaml:"errors"`
	Warnings []string        `json:"warnings" yaml:"warnings"`
	Stats    ValidationStats `json:"stats" yaml:"stats"`
}

// CodeSummary describes what a snippet appears to do.
type CodeSummary struct {
	Purpose           string     `json:"purpose" yaml:"purpose"`
	Complexity        Complexity `json:"complexity" yaml:"complexity"`
	KeyFunctions      []string   `json:"key_functions" yaml:"key_functions"`
	ControlStructures []string   `json:"control_structures" yaml:"control_structures"`
	KeyVariables      []string   `json:"key_variables" yaml:"key_variables"`
	Operations        []string   `json:"operations" yaml:"operations"`
	Patterns          []string   `json:"patterns" yaml:"patterns"`
}

// AnalysisResult bundles the output of all three stages for one snippet.
type AnalysisResult struct {
	ID         string           `json:"id" yaml:"id"`
	Language   LanguageTag      `json:"language" yaml:"language"`
	Validation ValidationResult `json:"validation" yaml:"validation"`
	Summary    *CodeSummary     `json:"summary,omitempty" yaml:"summary,omitempty"`
	AnalyzedAt time.Time        `json:"analyzed_at" yaml:"analyzed_at"`
}

// LanguageScore is the accumulated detection evidence for one language.
type LanguageScore struct {
	Language LanguageTag `json:"language" yaml:"language"`
	Score    int         `json:"score" yaml:"score"`
}

// ExplanationLevel selects the audience of a generated explanation prompt.
type ExplanationLevel string

const (
	Beginner     ExplanationLevel = "beginner"
	Intermediate ExplanationLevel = "intermediate"
	Advanced     ExplanationLevel = "advanced"
)

// ParseExplanationLevel accepts a level name case-insensitively.
func ParseExplanationLevel(value string) (ExplanationLevel, bool) {
	switch level := ExplanationLevel(strings.ToLower(strings.TrimSpace(value))); level {
	case Beginner, Intermediate, Advanced:
		return level, true
	}
	return "", false
}

// FileAnalysis is the outcome of analyzing one file during a directory scan.
type FileAnalysis struct {
	RelativePath string          `json:"path" yaml:"path"`
	Result       *AnalysisResult `json:"result,omitempty" yaml:"result,omitempty"`
	Error        string          `json:"error,omitempty" yaml:"error,omitempty"`
}
