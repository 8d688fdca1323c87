package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"golang.org/x/term"

	"github.com/vkuzmin/basil/lang"
	"github.com/vkuzmin/basil/runtime"
)

func main() {
	rt := runtime.New(runtime.NewStdConsole())

	args := os.Args[1:]
	if len(args) > 0 {
		script := args[0]
		var err error
		if script == "-" {
			err = runStdin(rt)
		} else {
			_, err = rt.RunFile(script)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		return
	}

	if !isInteractive() {
		if err := runStdin(rt); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		return
	}

	runREPL(rt)
}

func runStdin(rt *runtime.Runtime) error {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return err
	}
	_, err = rt.Run("<stdin>", string(data))
	return err
}

func runREPL(rt *runtime.Runtime) {
	state := liner.NewLiner()
	defer state.Close()
	state.SetCtrlCAborts(true)

	historyPath := replHistoryPath()
	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			state.ReadHistory(f)
			f.Close()
		}
		defer func() {
			if f, err := os.Create(historyPath); err == nil {
				state.WriteHistory(f)
				f.Close()
			}
		}()
	}

	for {
		input, err := state.Prompt("basil> ")
		if err != nil {
			switch {
			case errors.Is(err, liner.ErrPromptAborted):
				fmt.Println()
				continue
			case errors.Is(err, io.EOF):
				fmt.Println()
				return
			default:
				fmt.Fprintf(os.Stderr, "read error: %v\n", err)
				return
			}
		}

		if strings.TrimSpace(input) == "" {
			continue
		}
		state.AppendHistory(input)

		value, err := rt.Run("<stdin>", input)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		fmt.Println(echo(value))
	}
}

// echo renders a REPL result. The program value is the list of its
// statements' values; a single-statement line echoes just that value.
func echo(value *lang.Value) string {
	if value.Type == lang.ListType && value.ListLen() == 1 {
		return value.Elements()[0].Repr()
	}
	return value.Repr()
}

func replHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".basil_history")
}

func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
