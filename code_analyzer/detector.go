package code_analyzer

import (
	"strings"

	"github.com/meysamhadeli/codesense/code_analyzer/models"
)

// DetectLanguage resolves the language of a snippet. An explicit, recognized
// hint always wins; then a `// ext` marker on the first line; then weighted
// pattern scoring. Python is returned when nothing points anywhere.
func DetectLanguage(snippet string, hint string) models.LanguageTag {
	snippet = strings.TrimSpace(snippet)

	if hint != "" && !isAutoHint(hint) {
		if tag, ok := models.ParseLanguageTag(hint); ok {
			return tag
		}
	}

	firstLine, _, _ := strings.Cut(snippet, "\n")
	if match := extensionCommentPattern.FindStringSubmatch(firstLine); match != nil {
		if tag, ok := models.LanguageForExtension(match[1]); ok {
			return tag
		}
	}

	best := models.LanguageScore{}
	for _, score := range ScoreLanguages(snippet) {
		// strict comparison keeps the first declared language on ties
		if score.Score > best.Score {
			best = score
		}
	}
	if best.Score == 0 {
		return models.DefaultLanguage
	}
	return best.Language
}

// ScoreLanguages returns the non-zero detection scores in rule declaration order.
func ScoreLanguages(snippet string) []models.LanguageScore {
	snippet = strings.TrimSpace(snippet)

	var scores []models.LanguageScore
	for _, rules := range detectionRules {
		total := 0
		for _, pattern := range rules.patterns {
			matches := pattern.re.FindAllStringIndex(snippet, -1)
			total += len(matches) * pattern.weight
		}
		if total > 0 {
			scores = append(scores, models.LanguageScore{Language: rules.language, Score: total})
		}
	}
	return scores
}

func isAutoHint(hint string) bool {
	switch strings.ToLower(hint) {
	case "auto", "auto-detect":
		return true
	}
	return false
}
