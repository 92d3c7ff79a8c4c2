package code_analyzer

import (
	"regexp"
	"strings"

	"github.com/meysamhadeli/codesense/code_analyzer/models"
)

// RulesVersion changes whenever a rule table below changes, so cached results
// computed with older rules are never served.
const RulesVersion = "3"

// identifierClass is \w widened to letters and digits of every script.
const identifierClass = `[\p{L}\p{N}_]`

// mustCompile compiles a rule pattern in which \w matches identifier
// characters of any script, not only ASCII.
func mustCompile(source string) *regexp.Regexp {
	return regexp.MustCompile(strings.ReplaceAll(source, `\w`, identifierClass))
}

// patternRule is one piece of detection evidence for a language.
type patternRule struct {
	source string
	re     *regexp.Regexp
	weight int
}

// languageRules groups the detection evidence of a single language.
type languageRules struct {
	language models.LanguageTag
	patterns []patternRule
}

// detectionRules is ordered: on equal scores the language declared first wins.
var detectionRules = []languageRules{
	newLanguageRules(models.Python,
		`^\s*def\s+\w+\s*\(`,
		`^\s*import\s+\w+`,
		`^\s*from\s+\w+\s+import`,
		`^\s*#.*$`,
		`print\s*\(`,
		`^\s*if\s+__name__\s*==\s*["']__main__["']\s*:`,
	),
	newLanguageRules(models.JavaScript,
		`^\s*function\s+\w+\s*\(`,
		`^\s*const\s+\w+\s*=`,
		`^\s*let\s+\w+\s*=`,
		`^\s*var\s+\w+\s*=`,
		`console\.log\s*\(`,
		`^\s*//.*$`,
		`^\s*/\*.*\*/\s*$`,
	),
	newLanguageRules(models.Java,
		`^\s*public\s+class\s+\w+`,
		`^\s*public\s+static\s+void\s+main`,
		`^\s*import\s+java\.`,
		`^\s*System\.out\.println`,
		`^\s*//.*$`,
		`^\s*/\*.*\*/\s*$`,
	),
	newLanguageRules(models.Cpp,
		`^\s*#include\s+<`,
		`^\s*int\s+main\s*\(`,
		`^\s*std::cout\s*<<`,
		`^\s*using\s+namespace\s+std`,
		`^\s*\w+\*+\s*\w+`,
		`^\s*\w+\s*\w+\*+&`,
		`^\s*\w+\*+&\s*\w+`,
		`nullptr`,
		`^\s*void\s+\w+\s*\(`,
		`^\s*\w+::\w+`,
		`new\s+\w+\s*\(`,
		`delete\s+\w+`,
		`^\s*//.*$`,
	),
	newLanguageRules(models.Go,
		`^\s*package\s+\w+\s*$`,
		`^\s*func\s+(?:\(\w+\s+\*?\w+\)\s*)?\w+\s*\(`,
		`^\s*\w+(?:\s*,\s*\w+)*\s*:=`,
		`fmt\.\w+\(`,
	),
	newLanguageRules(models.Rust,
		`^\s*(?:pub\s+)?fn\s+\w+`,
		`^\s*let\s+mut\s+\w+`,
		`(?:println|print|format|vec|panic|assert_eq|assert)!\s*[\(\[]`,
		`^\s*use\s+\w+::`,
		`^\s*impl(?:<[^>]*>)?\s+\w+`,
	),
	newLanguageRules(models.PHP,
		`<\?php`,
		`^\s*\$\w+\s*=`,
		`^\s*echo\s+`,
		`function\s+\w+\s*\([^)]*\$\w+`,
	),
	newLanguageRules(models.SQL,
		`(?i)^\s*select\s+.+\s+from\s+\w+`,
		`(?i)^\s*insert\s+into\s+\w+`,
		`(?i)^\s*create\s+table\s+\w+`,
		`(?i)^\s*update\s+\w+\s+set\s+`,
		`(?i)^\s*delete\s+from\s+\w+`,
	),
}

func newLanguageRules(language models.LanguageTag, sources ...string) languageRules {
	rules := languageRules{language: language}
	for _, source := range sources {
		rules.patterns = append(rules.patterns, patternRule{
			source: source,
			re:     mustCompile(`(?m)` + source),
			weight: patternWeight(source),
		})
	}
	return rules
}

// patternWeight doubles the evidence of patterns whose source mentions scope
// resolution, pointer/repetition or hash tokens.
func patternWeight(source string) int {
	if strings.Contains(source, "::") || strings.ContainsAny(source, "*#") {
		return 2
	}
	return 1
}

// extensionCommentPattern matches a trailing `// ext` marker on the first line.
var extensionCommentPattern = mustCompile(`//\s*(\w+)\s*$`)

// commentPrefixes mark a trimmed line as a comment for stats and checks.
var commentPrefixes = []string{"#", "//", "/*", "*"}

func isCommentLine(trimmed string) bool {
	return hasAnyPrefix(trimmed, commentPrefixes)
}

// languageProfile holds the per-language extraction and validation hooks.
// Languages without a profile get no extra checks and empty extraction lists.
type languageProfile struct {
	functions []*regexp.Regexp
	classes   *regexp.Regexp
	variables *regexp.Regexp
	validate  func(code string, lines []string) []string
}

var (
	cFamilyFunctions = mustCompile(`(?:void|int|bool|string|char|float|double|\w+)\s+(\w+)\s*\(`)
	classDeclaration = mustCompile(`class\s+(\w+)`)
	jsDeclarations   = mustCompile(`(?:const|let|var)\s+(\w+)`)
	jsArrowFunctions = mustCompile(`(?:const|let|var)\s+(\w+)\s*=\s*(?:async\s+)?(?:\([^)]*\)|\w+)\s*=>`)
)

var languageProfiles = map[models.LanguageTag]*languageProfile{
	models.Python: {
		functions: []*regexp.Regexp{mustCompile(`def\s+(\w+)\s*\(`)},
		classes:   classDeclaration,
		variables: mustCompile(`(?:self\.)?(\w+)\s*=`),
		validate:  validatePython,
	},
	models.JavaScript: {
		functions: []*regexp.Regexp{mustCompile(`function\s+(\w+)\s*\(`), jsArrowFunctions},
		classes:   classDeclaration,
		variables: jsDeclarations,
		validate:  validateJavaScript,
	},
	models.TypeScript: {
		functions: []*regexp.Regexp{mustCompile(`function\s+(\w+)\s*[<(]`), jsArrowFunctions},
		classes:   mustCompile(`(?:class|interface)\s+(\w+)`),
		variables: jsDeclarations,
	},
	models.Java: {
		functions: []*regexp.Regexp{mustCompile(`(?:public|private|protected)?\s*\w+\s+(\w+)\s*\(`)},
		classes:   classDeclaration,
		variables: mustCompile(`(?:int|String|boolean|float|double)\s+(\w+)`),
		validate:  validateJava,
	},
	models.CSharp: {
		functions: []*regexp.Regexp{mustCompile(`(?:public|private|protected|internal)?\s*(?:static\s+)?\w+\s+(\w+)\s*\(`)},
		classes:   mustCompile(`(?:class|interface|struct)\s+(\w+)`),
		variables: mustCompile(`(?:int|string|bool|float|double|var)\s+(\w+)`),
	},
	models.Cpp: {
		functions: []*regexp.Regexp{cFamilyFunctions},
		classes:   classDeclaration,
		variables: mustCompile(`(?:int|string|bool|float|double|char)\s+(\w+)`),
	},
	models.C: {
		functions: []*regexp.Regexp{cFamilyFunctions},
		classes:   mustCompile(`struct\s+(\w+)\s*\{`),
		variables: mustCompile(`(?:int|bool|float|double|char|long)\s+(\w+)`),
	},
	models.Go: {
		functions: []*regexp.Regexp{mustCompile(`func\s+(?:\([^)]*\)\s*)?(\w+)\s*[\[(]`)},
		classes:   mustCompile(`type\s+(\w+)\s+(?:struct|interface)\b`),
		variables: mustCompile(`(?:var\s+(\w+)|(\w+)\s*:=)`),
	},
	models.Rust: {
		functions: []*regexp.Regexp{mustCompile(`fn\s+(\w+)`)},
		classes:   mustCompile(`(?:struct|enum|trait)\s+(\w+)`),
		variables: mustCompile(`let\s+(?:mut\s+)?(\w+)`),
	},
	models.PHP: {
		functions: []*regexp.Regexp{mustCompile(`function\s+(\w+)\s*\(`)},
		classes:   classDeclaration,
		variables: mustCompile(`\$(\w+)\s*=`),
	},
}

// captureAll returns, for every match of re in s, the first non-empty capture group.
func captureAll(re *regexp.Regexp, s string) []string {
	var captures []string
	for _, match := range re.FindAllStringSubmatch(s, -1) {
		for _, group := range match[1:] {
			if group != "" {
				captures = append(captures, group)
				break
			}
		}
	}
	return captures
}
