package contracts

import (
	"context"
	"time"

	"github.com/meysamhadeli/codesense/code_analyzer/models"
)

type ICodeAnalyzer interface {
	Analyze(ctx context.Context, snippet string, hint string) (*models.AnalysisResult, error)
	DetectLanguage(snippet string, hint string) models.LanguageTag
	ScoreLanguages(snippet string) []models.LanguageScore
	ValidateCode(snippet string, language models.LanguageTag) models.ValidationResult
	ExtractCodeSummary(snippet string, language models.LanguageTag) models.CodeSummary
	GeneratePrompt(result *models.AnalysisResult, snippet string, level models.ExplanationLevel) (string, error)
	ScanDirectory(ctx context.Context, rootDir string, workers int) ([]models.FileAnalysis, error)
	ClearCache() error
	CleanExpiredCache(maxAge time.Duration) error
	GetCacheStats() (map[string]interface{}, error)
}
