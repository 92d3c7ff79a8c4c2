package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/meysamhadeli/codesense/code_analyzer/models"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// executeCommand runs the root command in-process and restores every flag afterwards.
func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CODESENSE_ENABLE_CACHE", "false")
	t.Setenv("CODESENSE_LOG_LEVEL", "disabled")

	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { resetFlags(rootCmd) })

	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(flag *pflag.Flag) {
		_ = flag.Value.Set(flag.DefValue)
		flag.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}

func TestAnalyzeCommand_JSON(t *testing.T) {
	output, err := executeCommand(t, "print(\"hello\")\n", "analyze", "--format", "json")
	require.NoError(t, err)

	var result models.AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(output), &result))
	assert.Equal(t, models.Python, result.Language)
	assert.True(t, result.Validation.IsValid)
	require.NotNil(t, result.Summary)
	assert.Equal(t, "Input/output operations", result.Summary.Purpose)
}

func TestAnalyzeCommand_TextWithHint(t *testing.T) {
	output, err := executeCommand(t, "x := 1\n", "analyze", "-l", "go", "--no-highlight")
	require.NoError(t, err)

	assert.Contains(t, output, "Go")
	assert.Contains(t, output, "Simple")
	assert.Contains(t, output, "consider adding comments to the code")
}

func TestAnalyzeCommand_EmptyInputFails(t *testing.T) {
	_, err := executeCommand(t, "   \n", "analyze", "--no-highlight")
	assert.ErrorIs(t, err, errInvalidSnippet)
}

func TestDetectCommand(t *testing.T) {
	output, err := executeCommand(t, "// hello\n", "detect", "--scores")
	require.NoError(t, err)

	lines := strings.Split(output, "\n")
	assert.Equal(t, "javascript", lines[0])
	assert.Contains(t, output, "JavaScript")
	assert.Contains(t, output, "C++")
}

func TestDetectCommand_YAML(t *testing.T) {
	output, err := executeCommand(t, "#include <stdio.h>\nint main() { return 0; }\n", "detect", "--format", "yaml")
	require.NoError(t, err)

	var result detection
	require.NoError(t, yaml.Unmarshal([]byte(output), &result))
	assert.Equal(t, models.Cpp, result.Language)
	assert.Empty(t, result.Scores)
}

func TestLanguagesCommand(t *testing.T) {
	output, err := executeCommand(t, "", "languages", "--format", "json")
	require.NoError(t, err)

	var entries []languageEntry
	require.NoError(t, json.Unmarshal([]byte(output), &entries))
	assert.Len(t, entries, len(models.SupportedLanguages))
	assert.Equal(t, models.Python, entries[0].Tag)
	assert.Equal(t, "Python", entries[0].Name)
}

func TestPromptCommand(t *testing.T) {
	output, err := executeCommand(t, "def get_user(users, key):\n    return users[key]\n", "prompt", "--level", "advanced", "--format", "json")
	require.NoError(t, err)

	var result promptOutput
	require.NoError(t, json.Unmarshal([]byte(output), &result))
	assert.Equal(t, models.Advanced, result.Level)
	assert.Equal(t, models.Python, result.Language)
	assert.Greater(t, result.EstimatedTokens, 0)
	assert.Contains(t, result.Prompt, "optimization tips")
}

func TestPromptCommand_InvalidLevel(t *testing.T) {
	_, err := executeCommand(t, "print(1)\n", "prompt", "--level", "expert")
	assert.Error(t, err)
}

func TestScanCommand(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "main.py", "print('hi')\n")
	writeTestFile(t, root, "lib/util.js", "const x = 1;\n")

	output, err := executeCommand(t, "", "scan", root, "--format", "json", "--workers", "2")
	require.NoError(t, err)

	var report scanReport
	require.NoError(t, json.Unmarshal([]byte(output), &report))
	assert.NotEmpty(t, report.ScanID)
	require.Len(t, report.Files, 2)
	assert.Equal(t, "lib/util.js", report.Files[0].RelativePath)
	assert.Equal(t, "main.py", report.Files[1].RelativePath)
}

func TestResetCacheCommand_Disabled(t *testing.T) {
	output, err := executeCommand(t, "", "reset-cache", "--force")
	require.NoError(t, err)
	assert.Contains(t, output, "Cache is disabled")
}

func writeTestFile(t *testing.T, root, relativePath, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(relativePath))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}
