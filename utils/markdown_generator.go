package utils

import (
	"context"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
)

const highlightFormatter = "terminal256"

// HighlightSnippet writes source highlighted with the given chroma lexer and theme.
// Unknown lexers fall back to chroma's own content analysis.
func HighlightSnippet(w io.Writer, source string, lexer string, theme string) error {
	if !strings.HasSuffix(source, "\n") {
		source += "\n"
	}
	return quick.Highlight(w, source, lexer, highlightFormatter, theme)
}

// RenderMarkdown highlights markdown content line by line so a cancelled
// context interrupts long output.
func RenderMarkdown(ctx context.Context, w io.Writer, content string, theme string) error {
	for _, line := range strings.Split(content, "\n") {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := quick.Highlight(w, line+"\n", "markdown", highlightFormatter, theme); err != nil {
			return err
		}
	}

	return nil
}
