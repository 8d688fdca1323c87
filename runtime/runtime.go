package runtime

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vkuzmin/basil/lang"
	"github.com/vkuzmin/basil/parser"
	"github.com/vkuzmin/basil/source"
)

// Runtime owns the process-wide global scope and runs scripts against
// it. Every root script gets its own "<program>" frame over the shared
// globals; imported scripts share the importer's scope.
type Runtime struct {
	console Console
	globals *lang.SymbolTable
}

// New builds a Runtime whose interactive built-ins talk to console.
func New(console Console) *Runtime {
	rt := &Runtime{console: console}
	rt.globals = rt.newGlobals()
	return rt
}

// Globals exposes the shared global scope.
func (rt *Runtime) Globals() *lang.SymbolTable {
	return rt.globals
}

// Run lexes, parses and evaluates a script, returning the program's
// value or the first lexical, syntax or runtime error.
func (rt *Runtime) Run(filename, text string) (*lang.Value, error) {
	res, err := rt.run(filename, text, nil, nil)
	if err != nil {
		return nil, err
	}
	if res.Err != nil {
		return nil, res.Err
	}
	if res.Value == nil {
		// A BREAK or CONTINUE evaluated in a loop's header expression
		// escapes every consumer and leaves the result valueless.
		return lang.NumberNone, nil
	}
	return res.Value, nil
}

// RunFile reads path and runs it as a root script.
func (rt *Runtime) RunFile(path string) (*lang.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load script %q: %w", path, err)
	}
	return rt.Run(path, string(data))
}

// run is the full-result pipeline shared by Run, IMPORT and the
// deprecated RUN built-in. A nil parent makes a root frame over the
// globals; otherwise the new frame reuses the parent's symbol table.
func (rt *Runtime) run(filename, text string, parent *lang.Context, entry *source.Position) (*lang.RTResult, error) {
	ast, err := parser.Parse(filename, text)
	if err != nil {
		return nil, err
	}

	ctx := lang.NewContext("<program>", parent, entry)
	if parent == nil {
		ctx.SymbolTable = rt.globals
	} else {
		ctx.SymbolTable = parent.SymbolTable
	}

	interp := &lang.Interpreter{Import: rt.importScript}
	return interp.Visit(ast, ctx), nil
}

func readScript(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// importScript loads an imported file and runs it against the
// importer's scope. Errors come back as the user-facing details the
// evaluator reports at the import site.
func (rt *Runtime) importScript(path string, ctx *lang.Context, entry source.Position) (*lang.RTResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("Can't find file '%s'", path)
	}

	name := filepath.Base(path)
	res, err := rt.run(name, string(data), ctx, &entry)
	if err != nil {
		return nil, fmt.Errorf("Failed to IMPORT script \"%s\"\n%s", name, err)
	}
	return res, nil
}
