package token_management

import (
	"fmt"
	"io"
	"sync"
	"unicode/utf8"

	"github.com/meysamhadeli/codesense/constants/lipgloss"
	"github.com/meysamhadeli/codesense/token_management/contracts"
)

// charsPerToken is the usual rule of thumb for English text and source code.
const charsPerToken = 4

// TokenManager implementation
type tokenManager struct {
	mutex           sync.Mutex
	budget          int
	usedToken       int
	usedInputToken  int
	usedOutputToken int
}

// NewTokenManager creates a new token manager. A budget of zero or less is unlimited.
func NewTokenManager(budget int) contracts.ITokenManagement {
	return &tokenManager{budget: budget}
}

// EstimateTokens approximates the token count of text without a tokenizer.
func (tm *tokenManager) EstimateTokens(text string) int {
	runes := utf8.RuneCountInString(text)
	return (runes + charsPerToken - 1) / charsPerToken
}

// UsedTokens accumulates the token count for the session.
func (tm *tokenManager) UsedTokens(inputToken int, outputToken int) {
	tm.mutex.Lock()
	defer tm.mutex.Unlock()

	tm.usedInputToken += inputToken
	tm.usedOutputToken += outputToken
	tm.usedToken += inputToken + outputToken
}

func (tm *tokenManager) GetCurrentTokenUsage() (total int, input int, output int) {
	tm.mutex.Lock()
	defer tm.mutex.Unlock()

	return tm.usedToken, tm.usedInputToken, tm.usedOutputToken
}

func (tm *tokenManager) ExceedsBudget(tokens int) bool {
	return tm.budget > 0 && tokens > tm.budget
}

func (tm *tokenManager) RenderTokens(label string) string {
	total, input, output := tm.GetCurrentTokenUsage()

	tokenInfo := fmt.Sprintf("%s: ~%d tokens (input %d, output %d)", label, total, input, output)
	if tm.budget > 0 {
		tokenInfo += fmt.Sprintf(" - budget %d", tm.budget)
	}
	return tokenInfo
}

func (tm *tokenManager) DisplayTokens(w io.Writer, label string) {
	style := lipgloss.BoxStyle
	if total, _, _ := tm.GetCurrentTokenUsage(); tm.ExceedsBudget(total) {
		style = style.BorderForeground(lipgloss.Red.GetForeground())
	}
	fmt.Fprintln(w, style.Render(tm.RenderTokens(label)))
}

func (tm *tokenManager) ClearToken() {
	tm.mutex.Lock()
	defer tm.mutex.Unlock()

	tm.usedToken = 0
	tm.usedInputToken = 0
	tm.usedOutputToken = 0
}
