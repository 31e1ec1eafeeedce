// Package object guesses the AL object type declared by a source file.
//
// Detection is a single regular expression applied to the whole file; the
// first declaration-like match wins. It is not a parser.
package object

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Type is the coarse object classification of a file.
type Type string

const (
	TypeTable     Type = "Table"
	TypePage      Type = "Page"
	TypeCodeunit  Type = "Codeunit"
	TypeReport    Type = "Report"
	TypeQuery     Type = "Query"
	TypeEnum      Type = "Enum"
	TypeInterface Type = "Interface"
	TypeOther     Type = "Other"
)

// Types lists every known object type, Other last.
var Types = []Type{
	TypeTable, TypePage, TypeCodeunit, TypeReport,
	TypeQuery, TypeEnum, TypeInterface, TypeOther,
}

var declaration = regexp.MustCompile(`(?i)(table|page|codeunit|report|query|enum|interface)\s+(\d+)?\s*(".*?"|\w+)`)

// Info is the classification result for one file.
type Info struct {
	Type     Type
	FileName string
}

// Classify returns the object type of the first declaration found in text,
// or TypeOther. FileName is always the last element of path.
func Classify(text, path string) Info {
	info := Info{
		Type:     TypeOther,
		FileName: filepath.Base(path),
	}
	if m := declaration.FindStringSubmatch(text); m != nil {
		info.Type = Type(capitalize(m[1]))
	}
	return info
}

// ParseType maps a name to a Type case-insensitively. Unknown names map to
// TypeOther.
func ParseType(s string) Type {
	for _, t := range Types {
		if strings.EqualFold(string(t), s) {
			return t
		}
	}
	return TypeOther
}

// Icon returns the presentation icon hint for the type.
func (t Type) Icon() string {
	switch t {
	case TypeTable:
		return "database"
	case TypePage:
		return "symbol-structure"
	case TypeCodeunit:
		return "symbol-method"
	case TypeReport:
		return "book"
	case TypeQuery:
		return "search"
	case TypeEnum:
		return "symbol-enum"
	case TypeInterface:
		return "symbol-interface"
	default:
		return "symbol-misc"
	}
}

func (t Type) String() string {
	return string(t)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
