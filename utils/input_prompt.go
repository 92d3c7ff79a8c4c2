package utils

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/meysamhadeli/codesense/constants/lipgloss"
)

// ErrSnippetTooLarge is returned when an input exceeds the configured size limit.
var ErrSnippetTooLarge = errors.New("snippet exceeds the maximum size")

// ReadSnippet reads a snippet from path, or from stdin when path is empty or "-".
// A maxSize of zero or less disables the limit.
func ReadSnippet(path string, stdin io.Reader, maxSize int64) (string, error) {
	var source io.Reader = stdin
	name := "stdin"

	if path != "" && path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer file.Close()
		source = file
		name = path
	}

	if maxSize > 0 {
		// one extra byte tells an exact fit apart from an overflow
		source = io.LimitReader(source, maxSize+1)
	}

	content, err := io.ReadAll(source)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}
	if maxSize > 0 && int64(len(content)) > maxSize {
		return "", fmt.Errorf("%w: %s is larger than %d bytes", ErrSnippetTooLarge, name, maxSize)
	}

	return string(content), nil
}

// InputPrompt prints a styled prompt and reads one trimmed line.
// End of input yields an empty answer.
func InputPrompt(reader *bufio.Reader, message string) (string, error) {
	fmt.Print(lipgloss.BlueSky.Render(message))

	userInput, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("error reading input: %w", err)
	}

	return strings.TrimSpace(userInput), nil
}

// Confirm asks a yes/no question; anything but y or yes is a no.
func Confirm(reader *bufio.Reader, question string) (bool, error) {
	answer, err := InputPrompt(reader, question+" (y/N): ")
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}
