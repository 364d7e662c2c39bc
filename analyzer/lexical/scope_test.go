package lexical

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScope_Lookup(t *testing.T) {
	file := NewScope(nil, "app.ts", "file")
	fn := NewScope(file, "app.ts.function@10", "function")
	block := NewScope(fn, "app.ts.block@20", "block")

	file.Declare(&Binding{Name: "actions", Kind: Import})
	param := fn.Declare(&Binding{Name: "actions", Kind: Parameter})
	block.Declare(&Binding{Name: "store", Kind: Variable})

	assert.Equal(t, param, block.Lookup("actions"))
	assert.Equal(t, fn, block.Lookup("actions").Scope)
	assert.Equal(t, Import, file.Lookup("actions").Kind)
	assert.Nil(t, fn.Lookup("store"))
	assert.Nil(t, block.Lookup("missing"))
	assert.Equal(t, "function", block.Parent.Kind)
}

func TestScope_Declare(t *testing.T) {
	scope := NewScope(nil, "app.ts", "file")
	first := scope.Declare(&Binding{Name: "x", Kind: Function})
	second := scope.Declare(&Binding{Name: "x", Kind: Variable})
	assert.Same(t, first, second)
	assert.Equal(t, Function, scope.Lookup("x").Kind)
	assert.False(t, first.Typed())
}

func TestScope_LookupType(t *testing.T) {
	file := NewScope(nil, "app.ts", "file")
	fn := NewScope(file, "fn", "function")
	file.DeclareType("AppActions", nil)
	_, ok := file.Types["AppActions"]
	assert.True(t, ok)
	assert.Nil(t, fn.LookupType("Missing"))
}
