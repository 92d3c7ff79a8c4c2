package models

import "strings"

// LanguageTag identifies one of the supported programming languages.
type LanguageTag string

const (
	Auto       LanguageTag = "auto"
	Python     LanguageTag = "python"
	JavaScript LanguageTag = "javascript"
	Java       LanguageTag = "java"
	Cpp        LanguageTag = "cpp"
	C          LanguageTag = "c"
	CSharp     LanguageTag = "csharp"
	PHP        LanguageTag = "php"
	Ruby       LanguageTag = "ruby"
	Go         LanguageTag = "go"
	Rust       LanguageTag = "rust"
	TypeScript LanguageTag = "typescript"
	HTML       LanguageTag = "html"
	CSS        LanguageTag = "css"
	SQL        LanguageTag = "sql"
	Bash       LanguageTag = "bash"
)

// DefaultLanguage is returned when no evidence points anywhere else.
const DefaultLanguage = Python

// LanguageInfo describes a supported language for listings and highlighting.
type LanguageInfo struct {
	Tag         LanguageTag `json:"value" yaml:"value"`
	DisplayName string      `json:"name" yaml:"name"`
	Extensions  []string    `json:"extensions" yaml:"extensions"`
	Lexer       string      `json:"-" yaml:"-"`
}

// SupportedLanguages lists the closed language set in display order.
var SupportedLanguages = []LanguageInfo{
	{Tag: Python, DisplayName: "Python", Extensions: []string{"py"}, Lexer: "python"},
	{Tag: JavaScript, DisplayName: "JavaScript", Extensions: []string{"js"}, Lexer: "javascript"},
	{Tag: Java, DisplayName: "Java", Extensions: []string{"java"}, Lexer: "java"},
	{Tag: Cpp, DisplayName: "C++", Extensions: []string{"cpp", "c++"}, Lexer: "c++"},
	{Tag: C, DisplayName: "C", Extensions: []string{"c"}, Lexer: "c"},
	{Tag: CSharp, DisplayName: "C#", Extensions: []string{"cs"}, Lexer: "c#"},
	{Tag: PHP, DisplayName: "PHP", Extensions: []string{"php"}, Lexer: "php"},
	{Tag: Ruby, DisplayName: "Ruby", Extensions: []string{"rb"}, Lexer: "ruby"},
	{Tag: Go, DisplayName: "Go", Extensions: []string{"go"}, Lexer: "go"},
	{Tag: Rust, DisplayName: "Rust", Extensions: []string{"rs"}, Lexer: "rust"},
	{Tag: TypeScript, DisplayName: "TypeScript", Extensions: []string{"ts"}, Lexer: "typescript"},
	{Tag: HTML, DisplayName: "HTML", Extensions: []string{"html"}, Lexer: "html"},
	{Tag: CSS, DisplayName: "CSS", Extensions: []string{"css"}, Lexer: "css"},
	{Tag: SQL, DisplayName: "SQL", Extensions: []string{"sql"}, Lexer: "sql"},
	{Tag: Bash, DisplayName: "Bash", Extensions: []string{"sh", "bash"}, Lexer: "bash"},
}

// ExtensionMapping maps a bare file extension (no dot) to its language.
var ExtensionMapping = buildExtensionMapping()

var languageIndex = buildLanguageIndex()

func buildExtensionMapping() map[string]LanguageTag {
	mapping := make(map[string]LanguageTag)
	for _, info := range SupportedLanguages {
		for _, ext := range info.Extensions {
			mapping[ext] = info.Tag
		}
	}
	return mapping
}

func buildLanguageIndex() map[LanguageTag]LanguageInfo {
	index := make(map[LanguageTag]LanguageInfo, len(SupportedLanguages))
	for _, info := range SupportedLanguages {
		index[info.Tag] = info
	}
	return index
}

// ParseLanguageTag resolves a case-insensitive language value. The second
// return is false for unknown values and for the auto sentinel.
func ParseLanguageTag(value string) (LanguageTag, bool) {
	tag := LanguageTag(strings.ToLower(value))
	if _, ok := languageIndex[tag]; !ok {
		return "", false
	}
	return tag, true
}

// LanguageForExtension returns the language mapped to ext, which may carry a leading dot.
func LanguageForExtension(ext string) (LanguageTag, bool) {
	tag, ok := ExtensionMapping[strings.ToLower(strings.TrimPrefix(ext, "."))]
	return tag, ok
}

// IsSupported reports whether tag belongs to the closed language set.
func (tag LanguageTag) IsSupported() bool {
	_, ok := languageIndex[tag]
	return ok
}

// DisplayName returns the human-readable name, falling back to the raw tag.
func (tag LanguageTag) DisplayName() string {
	if info, ok := languageIndex[tag]; ok {
		return info.DisplayName
	}
	return string(tag)
}

// Lexer returns the chroma lexer name used to highlight snippets of this language.
func (tag LanguageTag) Lexer() string {
	if info, ok := languageIndex[tag]; ok {
		return info.Lexer
	}
	return string(tag)
}

func (tag LanguageTag) String() string {
	return string(tag)
}
