package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLanguageTag(t *testing.T) {
	tag, ok := ParseLanguageTag("Python")
	assert.True(t, ok)
	assert.Equal(t, Python, tag)

	tag, ok = ParseLanguageTag("CSHARP")
	assert.True(t, ok)
	assert.Equal(t, CSharp, tag)

	for _, value := range []string{"", "auto", "cobol", "c++"} {
		_, ok := ParseLanguageTag(value)
		assert.False(t, ok, value)
	}
}

func TestLanguageForExtension(t *testing.T) {
	tests := map[string]LanguageTag{
		"py":   Python,
		".js":  JavaScript,
		"c++":  Cpp,
		"cpp":  Cpp,
		"CS":   CSharp,
		"rb":   Ruby,
		"rs":   Rust,
		"sh":   Bash,
		"bash": Bash,
		".ts":  TypeScript,
	}
	for ext, expected := range tests {
		tag, ok := LanguageForExtension(ext)
		assert.True(t, ok, ext)
		assert.Equal(t, expected, tag, ext)
	}

	_, ok := LanguageForExtension("md")
	assert.False(t, ok)
	assert.Len(t, ExtensionMapping, 17)
}

func TestLanguageTagMetadata(t *testing.T) {
	assert.Equal(t, "C++", Cpp.DisplayName())
	assert.Equal(t, "C#", CSharp.DisplayName())
	assert.Equal(t, "c++", Cpp.Lexer())
	assert.True(t, Go.IsSupported())
	assert.False(t, Auto.IsSupported())
	assert.Equal(t, "unknown", LanguageTag("unknown").DisplayName())
	assert.Len(t, SupportedLanguages, 15)
}

func TestParseExplanationLevel(t *testing.T) {
	level, ok := ParseExplanationLevel(" Beginner ")
	assert.True(t, ok)
	assert.Equal(t, Beginner, level)

	_, ok = ParseExplanationLevel("expert")
	assert.False(t, ok)
}
