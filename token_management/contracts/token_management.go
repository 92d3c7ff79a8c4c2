package contracts

import "io"

type ITokenManagement interface {
	EstimateTokens(text string) int
	UsedTokens(inputToken int, outputToken int)
	GetCurrentTokenUsage() (total int, input int, output int)
	ExceedsBudget(tokens int) bool
	RenderTokens(label string) string
	DisplayTokens(w io.Writer, label string)
	ClearToken()
}
