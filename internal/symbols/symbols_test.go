package symbols

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGlobalInsertAndLookup(t *testing.T) {
	table := NewTable()

	assert.True(t, table.Insert("Point", "class"))
	entry := table.Lookup("Point")
	assert.NotNil(t, entry)
	assert.Equal(t, "class", entry.DeclaredType)
	assert.Equal(t, 0, entry.ScopeID)
}

func TestSameScopeDuplicateRejected(t *testing.T) {
	table := NewTable()

	assert.True(t, table.Insert("x", "int"))
	assert.False(t, table.Insert("x", "float"), "second declaration in the same scope must fail")

	// The original entry survives.
	assert.Equal(t, "int", table.Lookup("x").DeclaredType)
}

func TestInnerScopeShadowsOuter(t *testing.T) {
	table := NewTable()
	table.Insert("x", "int")

	table.EnterScope("method f")
	assert.True(t, table.Insert("x", "float"), "shadowing an outer scope is allowed")
	assert.Equal(t, "float", table.Lookup("x").DeclaredType)

	table.ExitScope()
	assert.Equal(t, "int", table.Lookup("x").DeclaredType)
}

func TestLookupFallsBackToGlobal(t *testing.T) {
	table := NewTable()
	table.Insert("Config", "class")

	table.EnterScope("class App")
	table.EnterScope("method run")
	assert.NotNil(t, table.Lookup("Config"))
	assert.Nil(t, table.LookupLocal("Config"))
}

func TestExitScopeDropsEntries(t *testing.T) {
	table := NewTable()

	table.EnterScope("method f")
	table.Insert("local", "int")
	table.ExitScope()

	assert.Nil(t, table.Lookup("local"), "method locals vanish when the scope closes")
}

func TestGlobalScopeNeverPops(t *testing.T) {
	table := NewTable()
	table.ExitScope()
	table.ExitScope()

	assert.Equal(t, 1, table.Depth())
	assert.Equal(t, "global", table.CurrentScope())
	assert.True(t, table.Insert("still", "works"))
}

func TestScopeIDsAreUnique(t *testing.T) {
	table := NewTable()

	table.EnterScope("a")
	table.Insert("x", "int")
	first := table.Lookup("x").ScopeID
	table.ExitScope()

	table.EnterScope("b")
	table.Insert("x", "int")
	second := table.Lookup("x").ScopeID

	assert.NotEqual(t, first, second, "a reopened scope level still gets a fresh ID")
}

func TestDepthAndCurrentScope(t *testing.T) {
	table := NewTable()
	assert.Equal(t, 1, table.Depth())

	table.EnterScope("class A")
	table.EnterScope("method m")
	assert.Equal(t, 3, table.Depth())
	assert.Equal(t, "method m", table.CurrentScope())
}
