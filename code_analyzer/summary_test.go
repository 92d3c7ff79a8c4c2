package code_analyzer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/meysamhadeli/codesense/code_analyzer/models"
	"github.com/stretchr/testify/assert"
)

func repeatLines(line string, n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

func TestExtractCodeSummary_KeyFunctionsCapped(t *testing.T) {
	var defs []string
	for i := 1; i <= 9; i++ {
		defs = append(defs, fmt.Sprintf("def f%d():\n    pass", i))
	}

	summary := ExtractCodeSummary(strings.Join(defs, "\n"), models.Python)

	assert.Equal(t, []string{"f1", "f2", "f3", "f4", "f5"}, summary.KeyFunctions)
	// complexity counts the listed functions, so the cap keeps this at Medium
	assert.Equal(t, models.Medium, summary.Complexity)
}

func TestExtractCodeSummary_SixFunctionsStayMedium(t *testing.T) {
	var defs []string
	for i := 1; i <= 6; i++ {
		defs = append(defs, fmt.Sprintf("def f%d():\n    pass", i))
	}

	summary := ExtractCodeSummary(strings.Join(defs, "\n"), models.Python)

	assert.Len(t, summary.KeyFunctions, 5)
	assert.Equal(t, models.Medium, summary.Complexity)
}

func TestExtractCodeSummary_ComplexityTiers(t *testing.T) {
	tests := []struct {
		name     string
		snippet  string
		expected models.Complexity
	}{
		{"101 lines", repeatLines("x1 = 1", 101), models.Complex},
		{"100 lines", repeatLines("x1 = 1", 100), models.Medium},
		{"30 lines", repeatLines("x1 = 1", 30), models.Simple},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractCodeSummary(tt.snippet, models.Ruby).Complexity)
		})
	}

	threeFunctions := "def a():\n    pass\ndef b():\n    pass\ndef c():\n    pass"
	assert.Equal(t, models.Medium, ExtractCodeSummary(threeFunctions, models.Python).Complexity)
}

func TestExtractCodeSummary_ControlStructures(t *testing.T) {
	snippet := "if (a) { x++; }\nIF (b) { y--; }\nfor (;;) {}\ntry { z(); } catch (e) {}"

	summary := ExtractCodeSummary(snippet, models.JavaScript)

	assert.Equal(t, []string{"2 if", "1 for", "1 try"}, summary.ControlStructures)
	assert.Equal(t, models.Simple, summary.Complexity)
}

func TestExtractCodeSummary_Purpose(t *testing.T) {
	tests := []struct {
		name     string
		snippet  string
		language models.LanguageTag
		expected string
	}{
		{"release wins over sorting", "int* p = new int(5);\ndelete p;\nstd::sort(v.begin(), v.end());", models.Cpp, "Memory management and cleanup"},
		{"insertion", "class Stack:\n    def push_item(self, item):\n        self.items = item", models.Python, "Adding elements to data structures"},
		{"loops", "int i = 0;\nwhile (i < 10) { i++; }\nwhile (i > 0) { i--; }", models.Cpp, "Iterative processing with loops"},
		{"function name fallback", "def get_user():\n    pass", models.Python, "Data retrieval"},
		{"nothing matches", "x = 1", models.Python, models.UnknownPurpose},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractCodeSummary(tt.snippet, tt.language).Purpose)
		})
	}
}

func TestExtractCodeSummary_ClassesAndVariables(t *testing.T) {
	snippet := "class Stack:\n    def push_item(self, item):\n        self.items = item\n        self.items = item\n        n = 0"

	summary := ExtractCodeSummary(snippet, models.Python)

	assert.Equal(t, []string{"Defines 1 class(es): Stack"}, summary.Patterns)
	assert.Equal(t, []string{"push_item"}, summary.KeyFunctions)
	// repeated assignments are kept; names of two characters or fewer are dropped
	assert.Equal(t, []string{"items", "items"}, summary.KeyVariables)
}

func TestExtractCodeSummary_VariablesCapped(t *testing.T) {
	var lines []string
	for i := 0; i < 12; i++ {
		lines = append(lines, fmt.Sprintf("value%d = %d", i, i))
	}

	summary := ExtractCodeSummary(strings.Join(lines, "\n"), models.Python)

	assert.Len(t, summary.KeyVariables, 8)
	assert.Equal(t, "value0", summary.KeyVariables[0])
}

func TestExtractCodeSummary_Operations(t *testing.T) {
	summary := ExtractCodeSummary("int* p = new int(5);\ndelete p;", models.Cpp)
	assert.Equal(t, []string{"arithmetic operations", "memory allocation", "memory deallocation"}, summary.Operations)

	summary = ExtractCodeSummary("items.push(a);\nif (a >= b) {}", models.JavaScript)
	assert.Equal(t, []string{"arithmetic operations", "comparison operations", "data structure operations"}, summary.Operations)
}

func TestExtractCodeSummary_ArrowFunctions(t *testing.T) {
	snippet := "function fetchData(url) {\n  return null;\n}\nconst handler = async (event) => {\n  return 1;\n};"

	summary := ExtractCodeSummary(snippet, models.JavaScript)

	assert.Equal(t, []string{"fetchData", "handler"}, summary.KeyFunctions)
	assert.Equal(t, "Data retrieval", summary.Purpose)
}

func TestExtractCodeSummary_GoProfile(t *testing.T) {
	snippet := "package main\n\ntype Server struct{}\n\nfunc (s *Server) Start(port int) error {\n\tconn := dial(port)\n\treturn nil\n}"

	summary := ExtractCodeSummary(snippet, models.Go)

	assert.Equal(t, []string{"Start"}, summary.KeyFunctions)
	assert.Equal(t, []string{"conn"}, summary.KeyVariables)
	assert.Equal(t, []string{"Defines 1 class(es): Server"}, summary.Patterns)
}

func TestExtractCodeSummary_UnprofiledLanguage(t *testing.T) {
	summary := ExtractCodeSummary("def foo():\n    pass", models.Ruby)

	assert.NotNil(t, summary.KeyFunctions)
	assert.Empty(t, summary.KeyFunctions)
	assert.Empty(t, summary.KeyVariables)
	assert.Empty(t, summary.Patterns)
}

func TestExtractCodeSummary_Idempotent(t *testing.T) {
	snippet := "for (int i = 0; i < n; i++) {\n    total += values[i];\n}"
	assert.Equal(t, ExtractCodeSummary(snippet, models.Cpp), ExtractCodeSummary(snippet, models.Cpp))
}

func TestExtractCodeSummary_UnicodeIdentifiers(t *testing.T) {
	summary := ExtractCodeSummary("def посчитать():\n    итог = 1\n    ит = 2", models.Python)

	assert.Equal(t, []string{"посчитать"}, summary.KeyFunctions)
	// length is measured in characters, not bytes
	assert.Equal(t, []string{"итог"}, summary.KeyVariables)

	summary = ExtractCodeSummary("class Корзина:\n    pass", models.Python)
	assert.Equal(t, []string{"Defines 1 class(es): Корзина"}, summary.Patterns)
}
