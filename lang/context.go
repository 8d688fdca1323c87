package lang

import "github.com/vkuzmin/basil/source"

// Context is one call frame. It hosts the frame's scope and supplies the
// display name and call-site position used to render tracebacks.
type Context struct {
	DisplayName    string
	Parent         *Context
	ParentEntryPos *source.Position
	SymbolTable    *SymbolTable
}

// NewContext builds a frame under parent. entry is the call-site
// position in the parent's source, nil for the root frame.
func NewContext(displayName string, parent *Context, entry *source.Position) *Context {
	return &Context{DisplayName: displayName, Parent: parent, ParentEntryPos: entry}
}
