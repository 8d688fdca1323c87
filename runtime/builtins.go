package runtime

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vkuzmin/basil/lang"
	"github.com/vkuzmin/basil/source"
)

// newGlobals builds the global scope: the shared constants plus the
// built-in function table. CLEAR and CLS name the same built-in.
func (rt *Runtime) newGlobals() *lang.SymbolTable {
	globals := lang.NewSymbolTable(nil)

	globals.Set("NONE", lang.NumberNone)
	globals.Set("FALSE", lang.NumberFalse)
	globals.Set("TRUE", lang.NumberTrue)
	globals.Set("MATH_PI", lang.NumberPi)

	clear := lang.NewBuiltin("clear", nil, rt.builtinClear)

	globals.Set("PRINT", lang.NewBuiltin("print", []string{"value"}, rt.builtinPrint))
	globals.Set("PRINT_RET", lang.NewBuiltin("print_ret", []string{"value"}, rt.builtinPrintRet))
	globals.Set("INPUT", lang.NewBuiltin("input", nil, rt.builtinInput))
	globals.Set("INPUT_INT", lang.NewBuiltin("input_int", nil, rt.builtinInputInt))
	globals.Set("CLEAR", clear)
	globals.Set("CLS", clear)
	globals.Set("IS_NUM", lang.NewBuiltin("is_number", []string{"value"}, isType(lang.NumberType)))
	globals.Set("IS_STR", lang.NewBuiltin("is_string", []string{"value"}, isType(lang.StringType)))
	globals.Set("IS_LIST", lang.NewBuiltin("is_list", []string{"value"}, isType(lang.ListType)))
	globals.Set("IS_FUN", lang.NewBuiltin("is_function", []string{"value"}, rt.builtinIsFunction))
	globals.Set("APPEND", lang.NewBuiltin("append", []string{"list", "value"}, rt.builtinAppend))
	globals.Set("POP", lang.NewBuiltin("pop", []string{"list", "index"}, rt.builtinPop))
	globals.Set("EXTEND", lang.NewBuiltin("extend", []string{"listA", "listB"}, rt.builtinExtend))
	globals.Set("LEN", lang.NewBuiltin("len", []string{"list"}, rt.builtinLen))
	globals.Set("RUN", lang.NewBuiltin("run", []string{"filename"}, rt.builtinRun))

	return globals
}

func argError(self *lang.Value, exec *lang.Context, details string) *lang.RTResult {
	return (&lang.RTResult{}).Failure(lang.NewRuntimeError(
		self.Span().Start, self.Span().End, details, exec))
}

func (rt *Runtime) builtinPrint(self *lang.Value, exec *lang.Context) *lang.RTResult {
	value, _ := exec.SymbolTable.Get("value")
	rt.console.Print(value.String())
	return (&lang.RTResult{}).Success(lang.NumberNone)
}

func (rt *Runtime) builtinPrintRet(self *lang.Value, exec *lang.Context) *lang.RTResult {
	value, _ := exec.SymbolTable.Get("value")
	return (&lang.RTResult{}).Success(lang.NewString(value.String()))
}

func (rt *Runtime) builtinInput(self *lang.Value, exec *lang.Context) *lang.RTResult {
	text, err := rt.console.ReadLine()
	if err != nil {
		return argError(self, exec, fmt.Sprintf("Failed to read input\n%s", err))
	}
	return (&lang.RTResult{}).Success(lang.NewString(text))
}

// builtinInputInt re-prompts until a line parses as an integer.
func (rt *Runtime) builtinInputInt(self *lang.Value, exec *lang.Context) *lang.RTResult {
	for {
		text, err := rt.console.ReadLine()
		if err != nil {
			return argError(self, exec, fmt.Sprintf("Failed to read input\n%s", err))
		}
		if n, convErr := strconv.Atoi(strings.TrimSpace(text)); convErr == nil {
			return (&lang.RTResult{}).Success(lang.NewInt(n))
		}
		rt.console.Print(fmt.Sprintf("'%s' must be an integer. Try again!", text))
	}
}

func (rt *Runtime) builtinClear(self *lang.Value, exec *lang.Context) *lang.RTResult {
	rt.console.Clear()
	return (&lang.RTResult{}).Success(lang.NumberNone)
}

func isType(want lang.ValueType) lang.BuiltinHandler {
	return func(self *lang.Value, exec *lang.Context) *lang.RTResult {
		value, _ := exec.SymbolTable.Get("value")
		if value.Type == want {
			return (&lang.RTResult{}).Success(lang.NumberTrue)
		}
		return (&lang.RTResult{}).Success(lang.NumberFalse)
	}
}

func (rt *Runtime) builtinIsFunction(self *lang.Value, exec *lang.Context) *lang.RTResult {
	value, _ := exec.SymbolTable.Get("value")
	if value.Type == lang.FunctionType || value.Type == lang.BuiltinType {
		return (&lang.RTResult{}).Success(lang.NumberTrue)
	}
	return (&lang.RTResult{}).Success(lang.NumberFalse)
}

// builtinAppend mutates the list argument in place.
func (rt *Runtime) builtinAppend(self *lang.Value, exec *lang.Context) *lang.RTResult {
	list, _ := exec.SymbolTable.Get("list")
	value, _ := exec.SymbolTable.Get("value")

	if list.Type != lang.ListType {
		return argError(self, exec, source.MsgArg1ListExpected)
	}
	list.ListAppend(value)
	return (&lang.RTResult{}).Success(lang.NumberNone)
}

// builtinPop removes and returns the element at the given index.
func (rt *Runtime) builtinPop(self *lang.Value, exec *lang.Context) *lang.RTResult {
	list, _ := exec.SymbolTable.Get("list")
	index, _ := exec.SymbolTable.Get("index")

	if list.Type != lang.ListType {
		return argError(self, exec, source.MsgArg1ListExpected)
	}
	if index.Type != lang.NumberType {
		return argError(self, exec, source.MsgArg2NumberExpected)
	}

	element, ok := list.ListPop(int(index.Num()))
	if !ok {
		return argError(self, exec, source.MsgListIndexError)
	}
	return (&lang.RTResult{}).Success(element)
}

// builtinExtend appends every element of the second list to the first,
// in place.
func (rt *Runtime) builtinExtend(self *lang.Value, exec *lang.Context) *lang.RTResult {
	listA, _ := exec.SymbolTable.Get("listA")
	listB, _ := exec.SymbolTable.Get("listB")

	if listA.Type != lang.ListType {
		return argError(self, exec, source.MsgArg1ListExpected)
	}
	if listB.Type != lang.ListType {
		return argError(self, exec, source.MsgArg2ListExpected)
	}

	listA.ListExtend(listB)
	return (&lang.RTResult{}).Success(lang.NumberNone)
}

func (rt *Runtime) builtinLen(self *lang.Value, exec *lang.Context) *lang.RTResult {
	list, _ := exec.SymbolTable.Get("list")

	if list.Type != lang.ListType {
		return argError(self, exec, source.MsgArgListExpected)
	}
	return (&lang.RTResult{}).Success(lang.NewInt(list.ListLen()))
}

// builtinRun loads and runs a whole script as a fresh root program.
// Deprecated in favor of the IMPORT statement, which shares the
// importer's scope instead of starting from the bare globals.
func (rt *Runtime) builtinRun(self *lang.Value, exec *lang.Context) *lang.RTResult {
	filename, _ := exec.SymbolTable.Get("filename")

	if filename.Type != lang.StringType {
		return argError(self, exec, source.MsgArgStringExpected)
	}

	rt.console.Print("WARNING: run() is deprecated. Use 'IMPORT' instead")

	path := filename.Text()
	data, err := readScript(path)
	if err != nil {
		return argError(self, exec, fmt.Sprintf("Failed to load script \"%s\"\n%s", path, err))
	}

	if _, err := rt.Run(path, data); err != nil {
		return argError(self, exec,
			fmt.Sprintf("Failed to finish executing script \"%s\"\n%s", path, err))
	}
	return (&lang.RTResult{}).Success(lang.NumberNone)
}
