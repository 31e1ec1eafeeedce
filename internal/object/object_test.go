package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test Plan for object:
// - Classify detects each keyword with id and quoted name
// - Classify detects declarations without an id and with a bare name
// - Classify capitalizes mixed-case keywords
// - Classify uses only the first match in the file
// - Classify falls back to Other and still reports the file name
// - ParseType is case-insensitive and maps unknown names to Other
// - Icon returns a hint for every type

func TestClassify_Keywords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want Type
	}{
		{`table 50100 "My Table"`, TypeTable},
		{`page 50101 "Customer Card Ext"`, TypePage},
		{`codeunit 50102 MyCodeunit`, TypeCodeunit},
		{`report 50103 "Sales Report"`, TypeReport},
		{`query 50104 TopCustomers`, TypeQuery},
		{`enum 50105 Status`, TypeEnum},
		{`interface IShipping`, TypeInterface},
		{`CODEUNIT 50106 Upper`, TypeCodeunit},
		{`TaBlE 1 T`, TypeTable},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			info := Classify(tt.text+"\n{\n}\n", "/src/app/Object.al")
			assert.Equal(t, tt.want, info.Type)
			assert.Equal(t, "Object.al", info.FileName)
		})
	}
}

func TestClassify_FirstMatchWins(t *testing.T) {
	t.Parallel()

	text := "codeunit 50101 MyCodeunit\n{\n    var Rec: Record \"Customer\";\n    procedure Run() // table 18 Customer\n}\n"
	info := Classify(text, "MyCodeunit.Codeunit.al")
	assert.Equal(t, TypeCodeunit, info.Type)
}

func TestClassify_Other(t *testing.T) {
	t.Parallel()

	info := Classify("#define DEBUG\n", "/work/app/src/Defines.al")
	assert.Equal(t, TypeOther, info.Type)
	assert.Equal(t, "Defines.al", info.FileName)

	info = Classify("", "empty.al")
	assert.Equal(t, TypeOther, info.Type)
	assert.Equal(t, "empty.al", info.FileName)
}

func TestParseType(t *testing.T) {
	t.Parallel()

	assert.Equal(t, TypeTable, ParseType("table"))
	assert.Equal(t, TypeInterface, ParseType("INTERFACE"))
	assert.Equal(t, TypeOther, ParseType("xmlport"))
	assert.Equal(t, TypeOther, ParseType(""))
}

func TestType_Icon(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "database", TypeTable.Icon())
	assert.Equal(t, "symbol-method", TypeCodeunit.Icon())
	assert.Equal(t, "symbol-misc", TypeOther.Icon())
	for _, typ := range Types {
		assert.NotEmpty(t, typ.Icon(), typ.String())
	}
}
