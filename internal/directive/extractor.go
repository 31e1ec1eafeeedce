package directive

import (
	"regexp"
	"strings"
)

var (
	defineDirective    = regexp.MustCompile(`(?i)^\s*#define\s+(\w+)`)
	conditionDirective = regexp.MustCompile(`(?i)#(if|elseif|ifdef|ifndef)\s+(.+)`)
	notOperator        = regexp.MustCompile(`(?i)\bnot\b`)
	binaryOperator     = regexp.MustCompile(`(?i)\b(?:and|or)\b`)
	operatorToken      = regexp.MustCompile(`(?i)^(and|or|not)$`)

	parens = strings.NewReplacer("(", "", ")", "")
)

// Definition is the symbol introduced by a #define line.
type Definition struct {
	Name string
	// Column is the offset where the matched #define statement starts.
	Column int
}

// ExtractDefinition returns the symbol defined by a "#define NAME" line.
// Only the first word token after #define is captured.
func ExtractDefinition(line string) (Definition, bool) {
	m := defineDirective.FindStringSubmatchIndex(line)
	if m == nil {
		return Definition{}, false
	}
	return Definition{
		Name:   line[m[2]:m[3]],
		Column: m[0],
	}, true
}

// ExtractUsedSymbols returns the symbol names referenced by an #if, #elseif,
// #ifdef or #ifndef line, left to right, duplicates retained.
//
// Tokenizing is lexical: "not" is dropped, the rest is split on "and"/"or",
// parentheses are stripped. No precedence or grouping is evaluated.
func ExtractUsedSymbols(line string) []string {
	m := conditionDirective.FindStringSubmatch(line)
	if m == nil {
		return nil
	}

	expression := notOperator.ReplaceAllString(m[2], "")
	parts := binaryOperator.Split(expression, -1)

	symbols := make([]string, 0, len(parts))
	for _, part := range parts {
		token := strings.TrimSpace(parens.Replace(part))
		if token == "" || operatorToken.MatchString(token) {
			continue
		}
		symbols = append(symbols, token)
	}
	return symbols
}

// SymbolColumn returns the offset of the first occurrence of symbol in line.
// If the same text appears earlier in the line (for example inside a longer
// identifier) that earlier offset is returned.
func SymbolColumn(line, symbol string) int {
	return strings.Index(line, symbol)
}
