package code_analyzer

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/meysamhadeli/codesense/code_analyzer/contracts"
	"github.com/meysamhadeli/codesense/code_analyzer/models"
	"github.com/pterm/pterm"
	"golang.org/x/sync/errgroup"
)

// CodeAnalyzer runs the detection, validation and summary stages over snippets.
type CodeAnalyzer struct {
	cacheManager *CacheManager
	logger       *pterm.Logger
	maxFileSize  int64
}

// Option configures a CodeAnalyzer.
type Option func(*CodeAnalyzer)

// WithCacheManager enables result caching.
func WithCacheManager(cacheManager *CacheManager) Option {
	return func(analyzer *CodeAnalyzer) {
		analyzer.cacheManager = cacheManager
	}
}

// WithLogger replaces the default (silent) logger.
func WithLogger(logger *pterm.Logger) Option {
	return func(analyzer *CodeAnalyzer) {
		if logger != nil {
			analyzer.logger = logger
		}
	}
}

// WithMaxFileSize bounds the files ScanDirectory reads, in bytes.
func WithMaxFileSize(size int64) Option {
	return func(analyzer *CodeAnalyzer) {
		analyzer.maxFileSize = size
	}
}

// NewCodeAnalyzer initializes a new CodeAnalyzer.
func NewCodeAnalyzer(opts ...Option) contracts.ICodeAnalyzer {
	analyzer := &CodeAnalyzer{
		logger:      pterm.DefaultLogger.WithLevel(pterm.LogLevelDisabled),
		maxFileSize: DefaultMaxFileSize,
	}
	for _, opt := range opts {
		opt(analyzer)
	}
	return analyzer
}

// Analyze detects the language of snippet, then validates and summarizes it.
// Summary is nil when the snippet is invalid.
func (analyzer *CodeAnalyzer) Analyze(ctx context.Context, snippet string, hint string) (*models.AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := CacheKey(snippet, hint)
	if analyzer.cacheManager != nil {
		if cached, found := analyzer.cacheManager.GetAnalysis(key); found {
			result := reissue(cached)
			analyzer.logger.Debug("analysis served from cache", analyzer.logger.Args("key", key, "id", result.ID, "language", result.Language))
			return result, nil
		}
	}

	language := DetectLanguage(snippet, hint)
	result := &models.AnalysisResult{
		ID:         uuid.New().String(),
		Language:   language,
		AnalyzedAt: time.Now().UTC(),
	}

	if strings.TrimSpace(snippet) == "" {
		result.Validation = ValidateCode(snippet, language)
		analyzer.logger.Debug("empty snippet rejected", analyzer.logger.Args("id", result.ID))
		return result, nil
	}

	var summary models.CodeSummary
	var group errgroup.Group
	group.Go(func() error {
		result.Validation = ValidateCode(snippet, language)
		return nil
	})
	group.Go(func() error {
		summary = ExtractCodeSummary(snippet, language)
		return nil
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result.Summary = &summary

	analyzer.logger.Debug("snippet analyzed", analyzer.logger.Args(
		"id", result.ID,
		"language", language,
		"complexity", summary.Complexity,
		"warnings", len(result.Validation.Warnings),
	))

	if analyzer.cacheManager != nil {
		if err := analyzer.cacheManager.SetAnalysis(key, snapshot(result)); err != nil {
			analyzer.logger.Warn("failed to cache analysis", analyzer.logger.Args("error", err))
		}
	}

	return result, nil
}

// snapshot copies a result so the cached value and the caller's never alias.
func snapshot(source *models.AnalysisResult) *models.AnalysisResult {
	result := *source
	if source.Summary != nil {
		summary := *source.Summary
		result.Summary = &summary
	}
	return &result
}

// reissue copies a cached result under a fresh ID and timestamp.
func reissue(cached *models.AnalysisResult) *models.AnalysisResult {
	result := snapshot(cached)
	result.ID = uuid.New().String()
	result.AnalyzedAt = time.Now().UTC()
	return result
}

func (analyzer *CodeAnalyzer) DetectLanguage(snippet string, hint string) models.LanguageTag {
	return DetectLanguage(snippet, hint)
}

func (analyzer *CodeAnalyzer) ScoreLanguages(snippet string) []models.LanguageScore {
	return ScoreLanguages(snippet)
}

func (analyzer *CodeAnalyzer) ValidateCode(snippet string, language models.LanguageTag) models.ValidationResult {
	return ValidateCode(snippet, language)
}

func (analyzer *CodeAnalyzer) ExtractCodeSummary(snippet string, language models.LanguageTag) models.CodeSummary {
	return ExtractCodeSummary(snippet, language)
}

// ClearCache drops every cached analysis. It is a no-op without a cache.
func (analyzer *CodeAnalyzer) ClearCache() error {
	if analyzer.cacheManager == nil {
		return nil
	}
	return analyzer.cacheManager.ClearCache()
}

// CleanExpiredCache drops disk entries older than maxAge. It is a no-op without a cache.
func (analyzer *CodeAnalyzer) CleanExpiredCache(maxAge time.Duration) error {
	if analyzer.cacheManager == nil {
		return nil
	}
	return analyzer.cacheManager.CleanExpiredCache(maxAge)
}

// GetCacheStats reports cache statistics, or cache_enabled=false without a cache.
func (analyzer *CodeAnalyzer) GetCacheStats() (map[string]interface{}, error) {
	if analyzer.cacheManager == nil {
		return map[string]interface{}{"cache_enabled": false}, nil
	}
	return analyzer.cacheManager.GetCacheStats()
}
