package lang

import "testing"

func TestSymbolTableGetSet(t *testing.T) {
	st := NewSymbolTable(nil)
	if _, ok := st.Get("x"); ok {
		t.Fatalf("empty table should not resolve 'x'")
	}

	st.Set("x", NewInt(1))
	v, ok := st.Get("x")
	if !ok || v.Num() != 1 {
		t.Fatalf("Get after Set: got (%v, %v)", v, ok)
	}

	st.Set("x", NewInt(2))
	v, _ = st.Get("x")
	if v.Num() != 2 {
		t.Fatalf("Set must overwrite: got %v", v.Num())
	}
}

func TestSymbolTableParentLookup(t *testing.T) {
	parent := NewSymbolTable(nil)
	parent.Set("x", NewInt(1))
	child := NewSymbolTable(parent)

	v, ok := child.Get("x")
	if !ok || v.Num() != 1 {
		t.Fatalf("child should resolve through parent, got (%v, %v)", v, ok)
	}

	child.Set("x", NewInt(2))
	v, _ = child.Get("x")
	if v.Num() != 2 {
		t.Fatalf("child binding should shadow the parent")
	}
	v, _ = parent.Get("x")
	if v.Num() != 1 {
		t.Fatalf("shadowing must not touch the parent binding")
	}
}

func TestSymbolTableRemove(t *testing.T) {
	st := NewSymbolTable(nil)
	st.Set("x", NewInt(1))
	st.Remove("x")
	if _, ok := st.Get("x"); ok {
		t.Fatalf("'x' should be gone after Remove")
	}
}
