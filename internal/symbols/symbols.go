package symbols

// Entry is one declared name, keyed by (scope, name).
type Entry struct {
	Name         string
	DeclaredType string
	ScopeID      int
}

type scope struct {
	id      int
	name    string
	entries map[string]*Entry
}

// Table is a stack of named scopes with a global scope at the bottom.
// The parser is its only writer: entering a class or method pushes a
// scope, exiting pops it, and declarations insert into the innermost
// scope. Lookup walks innermost to outermost.
type Table struct {
	stack  []*scope
	nextID int
}

func NewTable() *Table {
	t := &Table{}
	t.stack = append(t.stack, &scope{id: 0, name: "global", entries: make(map[string]*Entry)})
	t.nextID = 1
	return t
}

func (t *Table) EnterScope(name string) {
	t.stack = append(t.stack, &scope{
		id:      t.nextID,
		name:    name,
		entries: make(map[string]*Entry),
	})
	t.nextID++
}

// ExitScope pops the innermost scope. The global scope is never popped.
func (t *Table) ExitScope() {
	if len(t.stack) > 1 {
		t.stack = t.stack[:len(t.stack)-1]
	}
}

// Insert declares a name in the innermost scope. Returns false when the
// name is already declared in that same scope; outer-scope shadowing is
// allowed.
func (t *Table) Insert(name, declaredType string) bool {
	current := t.stack[len(t.stack)-1]
	if _, exists := current.entries[name]; exists {
		return false
	}
	current.entries[name] = &Entry{
		Name:         name,
		DeclaredType: declaredType,
		ScopeID:      current.id,
	}
	return true
}

// Lookup resolves a name from the innermost scope outwards, falling back
// to the global scope. Returns nil when the name is not visible.
func (t *Table) Lookup(name string) *Entry {
	for i := len(t.stack) - 1; i >= 0; i-- {
		if entry, ok := t.stack[i].entries[name]; ok {
			return entry
		}
	}
	return nil
}

// LookupLocal resolves a name in the innermost scope only.
func (t *Table) LookupLocal(name string) *Entry {
	current := t.stack[len(t.stack)-1]
	return current.entries[name]
}

// CurrentScope returns the innermost scope's name.
func (t *Table) CurrentScope() string {
	return t.stack[len(t.stack)-1].name
}

// Depth returns the number of open scopes including global.
func (t *Table) Depth() int {
	return len(t.stack)
}
