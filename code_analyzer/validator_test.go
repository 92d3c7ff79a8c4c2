package code_analyzer

import (
	"strings"
	"testing"

	"github.com/meysamhadeli/codesense/code_analyzer/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCode_Empty(t *testing.T) {
	for _, snippet := range []string{"", "   ", "\n\t\n"} {
		result := ValidateCode(snippet, models.Python)

		assert.False(t, result.IsValid)
		assert.Equal(t, []string{EmptySnippetMessage}, result.Errors)
		assert.Empty(t, result.Warnings)
		assert.Equal(t, models.ValidationStats{}, result.Stats)
	}
}

func TestValidateCode_Stats(t *testing.T) {
	snippet := "  # add two numbers\ndef add(a, b):\n\n    return a + b  \n"

	result := ValidateCode(snippet, models.Python)

	require.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	assert.Equal(t, models.ValidationStats{
		LineCount:         4,
		CharacterCount:    len("# add two numbers\ndef add(a, b):\n\n    return a + b"),
		NonEmptyLineCount: 3,
		CommentLineCount:  1,
	}, result.Stats)
	assert.Empty(t, result.Warnings)
}

func TestValidateCode_CharacterCountIsRunes(t *testing.T) {
	result := ValidateCode("s = 'héllo'", models.Python)
	assert.Equal(t, 11, result.Stats.CharacterCount)
}

func TestValidateCode_CommentWarning(t *testing.T) {
	result := ValidateCode("x = 1", models.Ruby)

	assert.True(t, result.IsValid)
	assert.Equal(t, []string{warnNoComments}, result.Warnings)
}

func TestValidateCode_LargeSnippetWarning(t *testing.T) {
	lines := make([]string, 101)
	for i := range lines {
		lines[i] = "// line"
	}

	result := ValidateCode(strings.Join(lines, "\n"), models.Cpp)
	assert.Contains(t, result.Warnings, warnLargeSnippet)
	assert.NotContains(t, result.Warnings, warnNoComments)

	result = ValidateCode(strings.Join(lines[:100], "\n"), models.Cpp)
	assert.NotContains(t, result.Warnings, warnLargeSnippet)
}

func TestValidateCode_JavaScriptSemicolons(t *testing.T) {
	snippet := "// greet\nlet x = 1\nconst f = (a) => a * 2\nif (x) {\n  console.log(x)\n}\nlet y = 2"

	result := ValidateCode(snippet, models.JavaScript)

	assert.True(t, result.IsValid)
	assert.Equal(t, []string{
		"line 2: consider adding a semicolon",
		"line 7: consider adding a semicolon",
	}, result.Warnings)
}

func TestValidateCode_JavaScriptNoDeclarations(t *testing.T) {
	result := ValidateCode("// nothing here;", models.JavaScript)
	assert.Equal(t, []string{"no functions or variable declarations found"}, result.Warnings)
}

func TestValidateCode_PythonMissingColon(t *testing.T) {
	snippet := "# loop\nfor i in range(3)\n    print(i)\nif i > 1:  # done\n    pass\ndef broken()  # no colon: here"

	result := ValidateCode(snippet, models.Python)

	assert.Equal(t, []string{
		"line 2: possible missing colon after 'for'",
		"line 6: possible missing colon after 'def'",
	}, result.Warnings)
}

func TestValidateCode_PythonNoWords(t *testing.T) {
	result := ValidateCode("# ...", models.Python)
	assert.Contains(t, result.Warnings, "no recognizable Python code found")
}

func TestValidateCode_Java(t *testing.T) {
	result := ValidateCode("// just a statement\nx++;", models.Java)
	assert.Equal(t, []string{"no class declaration found", "no method declarations found"}, result.Warnings)

	result = ValidateCode("// entry\npublic class Main {\n    public static void main(String[] args) {}\n}", models.Java)
	assert.Empty(t, result.Warnings)
}

func TestValidateCode_Deterministic(t *testing.T) {
	snippet := "let a = 1\nlet b = 2"
	assert.Equal(t, ValidateCode(snippet, models.JavaScript), ValidateCode(snippet, models.JavaScript))
}

func TestValidateCode_PythonHashInString(t *testing.T) {
	snippet := "# parse\nif line == \"#\":\n    pass\nif tag == '#' or ok  # note: here\n    pass"

	result := ValidateCode(snippet, models.Python)

	assert.Equal(t, []string{"line 4: possible missing colon after 'if'"}, result.Warnings)
}

func TestValidateCode_PythonUnicode(t *testing.T) {
	result := ValidateCode("# сумма\nитог = 1\nесли_истина = итог", models.Python)
	assert.Empty(t, result.Warnings)

	result = ValidateCode("# цикл\nforм = 1", models.Python)
	assert.Empty(t, result.Warnings)
}

func TestStripPythonComment(t *testing.T) {
	tests := []struct {
		line     string
		expected string
	}{
		{"x = 1  # set x", "x = 1  "},
		{`if s == "#":`, `if s == "#":`},
		{`print('a # b')  # c`, `print('a # b')  `},
		{`s = "say \"#\"" # q`, `s = "say \"#\"" `},
		{"no comment", "no comment"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.expected, stripPythonComment(tt.line))
		})
	}
}
