package lang

// SymbolTable is one lexical scope in a parent chain. Function calls get
// a fresh child table; imported scripts share the importer's table.
type SymbolTable struct {
	symbols map[string]*Value
	parent  *SymbolTable
}

// NewSymbolTable builds a scope chained to parent, which may be nil.
func NewSymbolTable(parent *SymbolTable) *SymbolTable {
	return &SymbolTable{symbols: map[string]*Value{}, parent: parent}
}

// Get resolves name in this scope or any enclosing one. The boolean
// distinguishes "bound to a zero value" from "not bound at all".
func (st *SymbolTable) Get(name string) (*Value, bool) {
	if v, ok := st.symbols[name]; ok {
		return v, true
	}
	if st.parent != nil {
		return st.parent.Get(name)
	}
	return nil, false
}

// Set binds name in this scope.
func (st *SymbolTable) Set(name string, v *Value) {
	st.symbols[name] = v
}

// Remove unbinds name from this scope.
func (st *SymbolTable) Remove(name string) {
	delete(st.symbols, name)
}
