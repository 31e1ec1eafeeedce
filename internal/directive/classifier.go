// Package directive recognizes AL preprocessor directives on a single line of
// source text: whether the line is commented out, which symbol a #define
// introduces, and which symbols a conditional directive references.
package directive

import (
	"regexp"
	"strings"
)

// lineComment is the AL single-line comment marker.
const lineComment = "//"

var directiveKeyword = regexp.MustCompile(`(?i)#(if|elseif|define|ifdef|ifndef)`)

// IsCommented reports whether a directive on the line is disabled by a line
// comment. A line is commented when its trimmed text starts with "//", or when
// a "//" appears before the first directive keyword.
//
// A line with an inline comment but no directive keyword is NOT reported as
// commented: the directive index is -1 and no comment index is smaller. The
// function exists to suppress commented-out directives, not to detect comments
// in general.
func IsCommented(line string) bool {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, lineComment) {
		return true
	}

	commentIndex := strings.Index(trimmed, lineComment)
	directiveIndex := -1
	if loc := directiveKeyword.FindStringIndex(trimmed); loc != nil {
		directiveIndex = loc[0]
	}

	return commentIndex != -1 && commentIndex < directiveIndex
}
