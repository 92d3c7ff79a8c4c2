package code_analyzer

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/meysamhadeli/codesense/code_analyzer/models"
)

const (
	maxKeyFunctions = 5
	maxKeyVariables = 8
)

// controlStructure counts one keyword category; order is the output order.
type controlStructure struct {
	name    string
	pattern *regexp.Regexp
}

var controlStructures = []controlStructure{
	{"if", mustCompile(`(?i)\bif\s*\(`)},
	{"for", mustCompile(`(?i)\bfor\s*\(`)},
	{"while", mustCompile(`(?i)\bwhile\s*\(`)},
	{"switch", mustCompile(`(?i)\bswitch\s*\(`)},
	{"try", mustCompile(`(?i)\btry\s*\{`)},
}

// operationProbe appends its label when the pattern matches anywhere.
type operationProbe struct {
	label   string
	pattern *regexp.Regexp
}

var operationProbes = []operationProbe{
	{"arithmetic operations", mustCompile(`\+\+|--|[+\-*/%=]`)},
	{"comparison operations", mustCompile(`==|!=|<=|>=|<|>|&&|\|\|`)},
	{"data structure operations", mustCompile(`(?i)\.(?:add|remove|push|pop|insert|delete|find|get|set)`)},
	{"memory allocation", mustCompile(`new\s+\w+|malloc|calloc`)},
	{"memory deallocation", mustCompile(`delete|free`)},
}

var variableStoplist = map[string]bool{
	"if": true, "for": true, "while": true, "return": true,
	"def": true, "class": true, "import": true, "from": true,
}

var loopPattern = mustCompile(`\bfor\s*\(|\bwhile\s*\(`)

// purposeRule is one entry of an ordered decision list: the first rule whose
// predicate holds decides the purpose label.
type purposeRule struct {
	label   string
	matches func(code, lower string) bool
}

var purposeRules = []purposeRule{
	{"Memory management and cleanup", containsAnyWord("delete", "free", "clear", "release", "nullptr")},
	{"Memory allocation", containsAnyWord("new", "malloc", "allocate")},
	{"Sorting or ordering data", containsAnyWord("sort", "order", "arrange", "sorted")},
	{"Searching for elements", containsAnyWord("search", "find", "lookup", "contains")},
	{"Adding elements to data structures", containsAnyWord("insert", "add", "push", "append")},
	{"Removing elements from data structures", containsAnyWord("remove", "delete", "pop")},
	{"Mathematical computation", containsAnyWord("calculate", "compute", "sum", "count", "total")},
	{"Recursive algorithm implementation", containsAnyWord("fibonacci", "factorial", "recursive")},
	{"Input/output operations", containsAnyWord("input", "output", "read", "write", "print", "cout", "cin")},
	{"Iterative processing with loops", func(code, _ string) bool {
		return len(loopPattern.FindAllStringIndex(code, -1)) > 1
	}},
}

// functionPurposeRules run against the joined function names when the
// snippet-level rules found nothing.
var functionPurposeRules = []purposeRule{
	{"Data retrieval", containsAnyWord("get", "fetch", "retrieve")},
	{"Data modification", containsAnyWord("set", "update", "modify")},
	{"Resetting or clearing data", containsAnyWord("clear", "clean", "reset")},
}

func containsAnyWord(words ...string) func(code, lower string) bool {
	return func(_, lower string) bool {
		for _, word := range words {
			if strings.Contains(lower, word) {
				return true
			}
		}
		return false
	}
}

// ExtractCodeSummary mines the snippet for functions, classes, control flow,
// variables and operations, then derives a complexity tier and purpose label.
func ExtractCodeSummary(snippet string, language models.LanguageTag) models.CodeSummary {
	code := strings.TrimSpace(snippet)
	lines := strings.Split(code, "\n")

	summary := models.CodeSummary{
		Purpose:           models.UnknownPurpose,
		Complexity:        models.Simple,
		KeyFunctions:      []string{},
		ControlStructures: []string{},
		KeyVariables:      []string{},
		Operations:        []string{},
		Patterns:          []string{},
	}

	var functions []string
	if profile, ok := languageProfiles[language]; ok {
		for _, re := range profile.functions {
			functions = append(functions, captureAll(re, code)...)
		}
		summary.KeyFunctions = firstN(functions, maxKeyFunctions)

		if classes := captureAll(profile.classes, code); len(classes) > 0 {
			summary.Patterns = append(summary.Patterns,
				fmt.Sprintf("Defines %d class(es): %s", len(classes), strings.Join(classes, ", ")))
		}

		summary.KeyVariables = keyVariables(captureAll(profile.variables, code))
	}

	for _, structure := range controlStructures {
		if count := len(structure.pattern.FindAllStringIndex(code, -1)); count > 0 {
			summary.ControlStructures = append(summary.ControlStructures, fmt.Sprintf("%d %s", count, structure.name))
		}
	}

	for _, probe := range operationProbes {
		if probe.pattern.MatchString(code) {
			summary.Operations = append(summary.Operations, probe.label)
		}
	}

	summary.Complexity = complexityTier(len(lines), len(summary.KeyFunctions), len(summary.ControlStructures))
	summary.Purpose = inferPurpose(code, summary.KeyFunctions)

	return summary
}

func complexityTier(lineCount, functionCount, controlCount int) models.Complexity {
	switch {
	case lineCount > 100 || functionCount > 5:
		return models.Complex
	case lineCount > 30 || functionCount > 2 || controlCount > 3:
		return models.Medium
	default:
		return models.Simple
	}
}

func inferPurpose(code string, functions []string) string {
	lower := strings.ToLower(code)
	if label, ok := firstMatchingRule(purposeRules, code, lower); ok {
		return label
	}

	if len(functions) > 0 {
		names := strings.ToLower(strings.Join(functions, " "))
		if label, ok := firstMatchingRule(functionPurposeRules, names, names); ok {
			return label
		}
	}

	return models.UnknownPurpose
}

func firstMatchingRule(rules []purposeRule, code, lower string) (string, bool) {
	for _, rule := range rules {
		if rule.matches(code, lower) {
			return rule.label, true
		}
	}
	return "", false
}

// keyVariables keeps repeated assignments; each one is a separate candidate.
func keyVariables(candidates []string) []string {
	variables := []string{}
	for _, name := range candidates {
		if variableStoplist[name] || utf8.RuneCountInString(name) <= 2 {
			continue
		}
		variables = append(variables, name)
		if len(variables) == maxKeyVariables {
			break
		}
	}
	return variables
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		items = items[:n]
	}
	return append([]string{}, items...)
}
