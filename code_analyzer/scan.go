package code_analyzer

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/meysamhadeli/codesense/code_analyzer/models"
	"github.com/meysamhadeli/codesense/utils"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxFileSize is the largest file a directory scan will analyze.
const DefaultMaxFileSize = 100 * 1024

type scanCandidate struct {
	path         string
	relativePath string
	language     models.LanguageTag
}

// ScanDirectory analyzes every file under rootDir whose extension maps to a
// known language, skipping default ignores, .codesense-ignore patterns and
// files above the size limit. Results follow walk order.
func (analyzer *CodeAnalyzer) ScanDirectory(ctx context.Context, rootDir string, workers int) ([]models.FileAnalysis, error) {
	ignorePatterns, err := utils.GetIgnorePatterns(rootDir)
	if err != nil {
		return nil, err
	}

	candidates, err := analyzer.collectCandidates(rootDir, ignorePatterns)
	if err != nil {
		return nil, err
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]models.FileAnalysis, len(candidates))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for i, candidate := range candidates {
		group.Go(func() error {
			results[i] = analyzer.analyzeFile(groupCtx, candidate)
			return groupCtx.Err()
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	analyzer.logger.Info("directory scanned", analyzer.logger.Args("root", rootDir, "files", len(results), "workers", workers))
	return results, nil
}

func (analyzer *CodeAnalyzer) collectCandidates(rootDir string, ignorePatterns []string) ([]scanCandidate, error) {
	maxFileSize := analyzer.maxFileSize
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}

	var candidates []scanCandidate
	err := filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relativePath, err := filepath.Rel(rootDir, path)
		if err != nil {
			return err
		}
		if relativePath == "." {
			return nil
		}
		relativePath = filepath.ToSlash(relativePath)

		if utils.IsDefaultIgnored(relativePath) || utils.IsIgnored(relativePath, ignorePatterns) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}

		language, ok := models.LanguageForExtension(filepath.Ext(path))
		if !ok {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("failed to get file info: %s, error: %w", relativePath, err)
		}
		if info.Size() > maxFileSize {
			analyzer.logger.Debug("skipping large file", analyzer.logger.Args("path", relativePath, "size", info.Size()))
			return nil
		}

		candidates = append(candidates, scanCandidate{path: path, relativePath: relativePath, language: language})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", rootDir, err)
	}

	return candidates, nil
}

// analyzeFile never fails the scan; per-file problems are reported in the entry.
func (analyzer *CodeAnalyzer) analyzeFile(ctx context.Context, candidate scanCandidate) models.FileAnalysis {
	entry := models.FileAnalysis{RelativePath: candidate.relativePath}

	content, err := os.ReadFile(candidate.path)
	if err != nil {
		entry.Error = fmt.Sprintf("failed to read file: %v", err)
		return entry
	}

	result, err := analyzer.Analyze(ctx, string(content), string(candidate.language))
	if err != nil {
		entry.Error = err.Error()
		return entry
	}
	if !result.Validation.IsValid {
		entry.Error = strings.Join(result.Validation.Errors, "; ")
	}
	entry.Result = result

	return entry
}
