package code_analyzer

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/meysamhadeli/codesense/code_analyzer/models"
	"github.com/zeebo/xxh3"
)

const (
	cacheFileSuffix          = ".cache"
	defaultMemoryCacheSize   = 512
	defaultCacheCleanupAge   = 7 * 24 * time.Hour
	defaultCacheCleanupFiles = 5000
)

// CacheEntry represents a cached analysis with metadata
type CacheEntry struct {
	Data      *models.AnalysisResult
	Timestamp time.Time
	Hash      string
}

// FileCache stores zstd-compressed gob entries, one file per key
type FileCache struct {
	cacheDir string
	mutex    sync.RWMutex
	encoder  *zstd.Encoder
	decoder  *zstd.Decoder
}

// CacheStats tracks cache performance metrics
type CacheStats struct {
	TotalRequests int64
	MemoryHits    int64
	DiskHits      int64
	CacheMisses   int64
	LastResetTime time.Time
	mutex         sync.RWMutex
}

// CacheOptions configures the cache tiers
type CacheOptions struct {
	// Dir enables the disk tier when non-empty
	Dir string
	// MemoryEntries bounds the in-memory tier
	MemoryEntries int
	// AutoCleanup prunes old disk entries in the background on startup
	AutoCleanup bool
}

// CacheManager provides a memory tier in front of an optional disk tier
type CacheManager struct {
	memory    *lru.Cache[string, *models.AnalysisResult]
	fileCache *FileCache
	stats     *CacheStats
}

// NewCacheManager creates a new cache manager instance
func NewCacheManager(options CacheOptions) (*CacheManager, error) {
	size := options.MemoryEntries
	if size <= 0 {
		size = defaultMemoryCacheSize
	}

	memory, err := lru.New[string, *models.AnalysisResult](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create memory cache: %w", err)
	}

	cacheManager := &CacheManager{
		memory: memory,
		stats: &CacheStats{
			LastResetTime: time.Now(),
		},
	}

	if options.Dir == "" {
		return cacheManager, nil
	}

	fileCache, err := newFileCache(options.Dir)
	if err != nil {
		return nil, err
	}
	cacheManager.fileCache = fileCache

	if options.AutoCleanup {
		go cacheManager.performAutoCleanup()
	}

	return cacheManager, nil
}

func newFileCache(cacheDir string) (*FileCache, error) {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache decoder: %w", err)
	}

	return &FileCache{
		cacheDir: cacheDir,
		encoder:  encoder,
		decoder:  decoder,
	}, nil
}

// CacheKey identifies the analysis of snippet under hint with the current rules.
func CacheKey(snippet string, hint string) string {
	hash := xxh3.HashString(RulesVersion + "\x00" + strings.ToLower(hint) + "\x00" + snippet)
	return fmt.Sprintf("%016x", hash)
}

// getCachePath returns the full path to a cache file
func (fc *FileCache) getCachePath(key string) string {
	return filepath.Join(fc.cacheDir, key+cacheFileSuffix)
}

// Get retrieves an entry from disk. A missing entry yields an error matching fs.ErrNotExist.
func (fc *FileCache) Get(key string) (*CacheEntry, error) {
	fc.mutex.RLock()
	defer fc.mutex.RUnlock()

	return fc.readEntry(fc.getCachePath(key))
}

// Set stores an entry on disk
func (fc *FileCache) Set(key string, result *models.AnalysisResult) error {
	fc.mutex.Lock()
	defer fc.mutex.Unlock()

	entry := CacheEntry{
		Data:      result,
		Timestamp: time.Now(),
		Hash:      key,
	}

	var buffer bytes.Buffer
	if err := gob.NewEncoder(&buffer).Encode(entry); err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	compressed := fc.encoder.EncodeAll(buffer.Bytes(), nil)
	if err := os.WriteFile(fc.getCachePath(key), compressed, 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}

	return nil
}

// Delete removes a cache entry
func (fc *FileCache) Delete(key string) error {
	fc.mutex.Lock()
	defer fc.mutex.Unlock()

	if err := os.Remove(fc.getCachePath(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete cache file: %w", err)
	}
	return nil
}

func (fc *FileCache) readEntry(path string) (*CacheEntry, error) {
	compressed, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	data, err := fc.decoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress cache entry: %w", err)
	}

	var entry CacheEntry
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&entry); err != nil {
		return nil, fmt.Errorf("failed to decode cache entry: %w", err)
	}
	if entry.Data == nil {
		return nil, fmt.Errorf("cache entry %s has no data", path)
	}
	normalizeResult(entry.Data)

	return &entry, nil
}

// cacheFiles lists the cache entry files in the cache directory
func (fc *FileCache) cacheFiles() ([]os.DirEntry, error) {
	entries, err := os.ReadDir(fc.cacheDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache directory: %w", err)
	}

	files := entries[:0]
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), cacheFileSuffix) {
			files = append(files, entry)
		}
	}
	return files, nil
}

// GetAnalysis looks up a result in memory first, then on disk
func (cm *CacheManager) GetAnalysis(key string) (*models.AnalysisResult, bool) {
	if result, ok := cm.memory.Get(key); ok {
		cm.recordMemoryHit()
		return result, true
	}

	if cm.fileCache != nil {
		entry, err := cm.fileCache.Get(key)
		if err == nil {
			cm.memory.Add(key, entry.Data)
			cm.recordDiskHit()
			return entry.Data, true
		}
		// Unreadable entries are evicted so the next store can replace them
		if !errors.Is(err, fs.ErrNotExist) {
			_ = cm.fileCache.Delete(key)
		}
	}

	cm.recordCacheMiss()
	return nil, false
}

// SetAnalysis stores a result in every enabled tier
func (cm *CacheManager) SetAnalysis(key string, result *models.AnalysisResult) error {
	cm.memory.Add(key, result)

	if cm.fileCache == nil {
		return nil
	}
	return cm.fileCache.Set(key, result)
}

// GetCacheStats returns storage and performance statistics
func (cm *CacheManager) GetCacheStats() (map[string]interface{}, error) {
	stats := cm.GetPerformanceStats()
	stats["cache_enabled"] = true
	stats["memory_entries"] = cm.memory.Len()
	stats["disk_enabled"] = cm.fileCache != nil

	if cm.fileCache == nil {
		return stats, nil
	}

	cm.fileCache.mutex.RLock()
	defer cm.fileCache.mutex.RUnlock()

	files, err := cm.fileCache.cacheFiles()
	if err != nil {
		return nil, err
	}

	var totalSize int64
	for _, file := range files {
		if info, err := file.Info(); err == nil {
			totalSize += info.Size()
		}
	}

	stats["cache_dir"] = cm.fileCache.cacheDir
	stats["cache_files"] = len(files)
	stats["total_size"] = totalSize

	return stats, nil
}

// CacheCleanupOptions defines options for cache cleanup
type CacheCleanupOptions struct {
	MaxAge   time.Duration // Remove entries older than this
	MaxFiles int           // Remove oldest entries if cache exceeds this number of files
	DryRun   bool          // If true, only report what would be cleaned without actual deletion
}

// SmartCleanupCache prunes disk entries by age, then by count (oldest first)
func (cm *CacheManager) SmartCleanupCache(options CacheCleanupOptions) (map[string]interface{}, error) {
	if cm.fileCache == nil {
		return map[string]interface{}{"files_before_cleanup": 0, "files_actually_deleted": 0}, nil
	}

	cm.fileCache.mutex.Lock()
	defer cm.fileCache.mutex.Unlock()

	files, err := cm.fileCache.cacheFiles()
	if err != nil {
		return nil, err
	}

	type fileInfo struct {
		path     string
		entryAge time.Time
	}

	fileInfos := make([]fileInfo, 0, len(files))
	for _, file := range files {
		path := filepath.Join(cm.fileCache.cacheDir, file.Name())

		// Fallback to file modification time when the entry cannot be decoded
		var entryAge time.Time
		if info, err := file.Info(); err == nil {
			entryAge = info.ModTime()
		}
		if entry, err := cm.fileCache.readEntry(path); err == nil {
			entryAge = entry.Timestamp
		}

		fileInfos = append(fileInfos, fileInfo{path: path, entryAge: entryAge})
	}

	sort.Slice(fileInfos, func(i, j int) bool {
		return fileInfos[i].entryAge.Before(fileInfos[j].entryAge)
	})

	var toDelete []fileInfo
	var deletedByAge, deletedByCount int

	remaining := fileInfos
	if options.MaxAge > 0 {
		cutoff := time.Now().Add(-options.MaxAge)
		kept := make([]fileInfo, 0, len(remaining))
		for _, f := range remaining {
			if f.entryAge.Before(cutoff) {
				toDelete = append(toDelete, f)
				deletedByAge++
				continue
			}
			kept = append(kept, f)
		}
		remaining = kept
	}

	if options.MaxFiles > 0 && len(remaining) > options.MaxFiles {
		excess := len(remaining) - options.MaxFiles
		toDelete = append(toDelete, remaining[:excess]...)
		deletedByCount = excess
	}

	actuallyDeleted := len(toDelete)
	if !options.DryRun {
		actuallyDeleted = 0
		for _, f := range toDelete {
			if err := os.Remove(f.path); err == nil {
				actuallyDeleted++
			}
		}
	}

	return map[string]interface{}{
		"files_before_cleanup":    len(fileInfos),
		"files_marked_for_delete": len(toDelete),
		"files_actually_deleted":  actuallyDeleted,
		"deleted_by_age":          deletedByAge,
		"deleted_by_count":        deletedByCount,
		"dry_run":                 options.DryRun,
	}, nil
}

// performAutoCleanup performs background automatic cleanup with conservative defaults
func (cm *CacheManager) performAutoCleanup() {
	_, _ = cm.SmartCleanupCache(CacheCleanupOptions{
		MaxAge:   defaultCacheCleanupAge,
		MaxFiles: defaultCacheCleanupFiles,
	})
}

// CleanExpiredCache removes disk entries older than maxAge
func (cm *CacheManager) CleanExpiredCache(maxAge time.Duration) error {
	_, err := cm.SmartCleanupCache(CacheCleanupOptions{MaxAge: maxAge})
	return err
}

// ClearCache completely removes all cache entries
func (cm *CacheManager) ClearCache() error {
	cm.memory.Purge()

	if cm.fileCache == nil {
		return nil
	}

	cm.fileCache.mutex.Lock()
	defer cm.fileCache.mutex.Unlock()

	files, err := cm.fileCache.cacheFiles()
	if err != nil {
		return err
	}

	for _, file := range files {
		path := filepath.Join(cm.fileCache.cacheDir, file.Name())
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete cache file %s: %w", file.Name(), err)
		}
	}

	return nil
}

// normalizeResult restores the empty slices gob decodes as nil
func normalizeResult(result *models.AnalysisResult) {
	if result.Validation.Errors == nil {
		result.Validation.Errors = []string{}
	}
	if result.Validation.Warnings == nil {
		result.Validation.Warnings = []string{}
	}

	summary := result.Summary
	if summary == nil {
		return
	}
	for _, list := range []*[]string{
		&summary.KeyFunctions,
		&summary.ControlStructures,
		&summary.KeyVariables,
		&summary.Operations,
		&summary.Patterns,
	} {
		if *list == nil {
			*list = []string{}
		}
	}
}
