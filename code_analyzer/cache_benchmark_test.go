package code_analyzer

import (
	"context"
	"crypto/md5"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zeebo/xxh3"
)

func randomSnippets(n int) []string {
	charset := "abcdefghijklmnopqrstuvwxyz(){};=+ \n"
	snippets := make([]string, n)
	for i := range snippets {
		length := rand.Intn(2000) + 20
		var builder strings.Builder
		for j := 0; j < length; j++ {
			builder.WriteByte(charset[rand.Intn(len(charset))])
		}
		snippets[i] = builder.String()
	}
	return snippets
}

// BenchmarkCacheKeyGeneration compares snippet hashing strategies for cache keys
func BenchmarkCacheKeyGeneration(b *testing.B) {
	snippets := randomSnippets(1000)

	b.Run("MD5", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			hash := md5.Sum([]byte(snippets[i%len(snippets)]))
			_ = fmt.Sprintf("%x", hash)
		}
	})

	b.Run("XXH3", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = CacheKey(snippets[i%len(snippets)], "")
		}
	})

	b.Run("XXH3_Raw", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = xxh3.HashString(snippets[i%len(snippets)])
		}
	})
}

// BenchmarkAnalyze_WithVsWithoutCache measures the cost a cache hit saves
func BenchmarkAnalyze_WithVsWithoutCache(b *testing.B) {
	snippet := strings.Repeat("for (int i = 0; i < n; i++) {\n    total += values[i];\n}\n", 40)
	ctx := context.Background()

	b.Run("WithoutCache", func(b *testing.B) {
		analyzer := NewCodeAnalyzer()
		for i := 0; i < b.N; i++ {
			_, err := analyzer.Analyze(ctx, snippet, "")
			require.NoError(b, err)
		}
	})

	b.Run("MemoryCache", func(b *testing.B) {
		cacheManager, err := NewCacheManager(CacheOptions{})
		require.NoError(b, err)
		analyzer := NewCodeAnalyzer(WithCacheManager(cacheManager))
		for i := 0; i < b.N; i++ {
			_, err := analyzer.Analyze(ctx, snippet, "")
			require.NoError(b, err)
		}
	})

	b.Run("DiskCache", func(b *testing.B) {
		cacheManager, err := NewCacheManager(CacheOptions{Dir: b.TempDir(), MemoryEntries: 1})
		require.NoError(b, err)
		analyzer := NewCodeAnalyzer(WithCacheManager(cacheManager))
		for i := 0; i < b.N; i++ {
			// alternate keys so the single memory slot keeps missing
			_, err := analyzer.Analyze(ctx, snippet, []string{"", "cpp"}[i%2])
			require.NoError(b, err)
		}
	})
}
