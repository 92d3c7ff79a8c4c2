package code_analyzer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/meysamhadeli/codesense/code_analyzer/models"
)

const (
	// EmptySnippetMessage is the only error that invalidates a snippet.
	EmptySnippetMessage = "snippet is empty"

	largeSnippetLines = 100

	warnLargeSnippet = "large snippet may take longer to process"
	warnNoComments   = "consider adding comments to the code"
)

var (
	wordPattern          = mustCompile(`\w`)
	pythonBlockHeader    = mustCompile(`^\s*(if|elif|for|while|def|class)(?:[^\p{L}\p{N}_]|$)`)
	jsDeclarationPattern = mustCompile(`(function|=>|const|let|var)\s+\w*`)
	javaClassPattern     = mustCompile(`class\s+\w+`)
	javaMethodPattern    = mustCompile(`(public|private|protected)?\s*\w+\s+\w+\s*\(`)
)

var (
	// jsSafeTerminators end a line that needs no semicolon.
	jsSafeTerminators = []string{";", "{", "}", ")", "(", "[", "]", ","}
	jsCommentPrefixes = []string{"//", "/*", "*"}
)

// ValidateCode runs the advisory structural checks for the given language.
// Only an empty or whitespace-only snippet is reported as invalid.
func ValidateCode(snippet string, language models.LanguageTag) models.ValidationResult {
	result := models.ValidationResult{
		IsValid:  true,
		Errors:   []string{},
		Warnings: []string{},
	}

	code := strings.TrimSpace(snippet)
	if code == "" {
		result.IsValid = false
		result.Errors = append(result.Errors, EmptySnippetMessage)
		return result
	}

	lines := strings.Split(code, "\n")
	result.Stats = computeStats(code, lines)

	if profile, ok := languageProfiles[language]; ok && profile.validate != nil {
		result.Warnings = append(result.Warnings, profile.validate(code, lines)...)
	}

	if result.Stats.LineCount > largeSnippetLines {
		result.Warnings = append(result.Warnings, warnLargeSnippet)
	}
	if result.Stats.CommentLineCount == 0 {
		result.Warnings = append(result.Warnings, warnNoComments)
	}

	return result
}

func computeStats(code string, lines []string) models.ValidationStats {
	stats := models.ValidationStats{
		LineCount:      len(lines),
		CharacterCount: utf8.RuneCountInString(code),
	}
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		stats.NonEmptyLineCount++
		if isCommentLine(trimmed) {
			stats.CommentLineCount++
		}
	}
	return stats
}

func validatePython(code string, lines []string) []string {
	var warnings []string

	if !wordPattern.MatchString(code) {
		warnings = append(warnings, "no recognizable Python code found")
	}

	for i, line := range lines {
		match := pythonBlockHeader.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		if strings.Contains(stripPythonComment(line), ":") {
			continue
		}
		warnings = append(warnings, fmt.Sprintf("line %d: possible missing colon after '%s'", i+1, match[1]))
	}

	return warnings
}

// stripPythonComment drops a trailing # comment, ignoring # inside string literals.
func stripPythonComment(line string) string {
	var quote rune
	escaped := false
	for i, r := range line {
		switch {
		case escaped:
			escaped = false
		case quote != 0 && r == '\\':
			escaped = true
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '#':
			return line[:i]
		}
	}
	return line
}

func validateJavaScript(code string, lines []string) []string {
	var warnings []string

	if !jsDeclarationPattern.MatchString(code) {
		warnings = append(warnings, "no functions or variable declarations found")
	}

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || hasAnyPrefix(trimmed, jsCommentPrefixes) || strings.Contains(trimmed, "=>") {
			continue
		}
		if hasAnySuffix(trimmed, jsSafeTerminators) {
			continue
		}
		warnings = append(warnings, fmt.Sprintf("line %d: consider adding a semicolon", i+1))
	}

	return warnings
}

func validateJava(code string, _ []string) []string {
	var warnings []string

	if !javaClassPattern.MatchString(code) {
		warnings = append(warnings, "no class declaration found")
	}
	if !javaMethodPattern.MatchString(code) {
		warnings = append(warnings, "no method declarations found")
	}

	return warnings
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}
