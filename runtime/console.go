package runtime

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	goruntime "runtime"
	"strings"
)

// Console is the OS-facing boundary used by the interactive built-ins.
// Tests substitute a scripted implementation.
type Console interface {
	// Print writes one line of program output.
	Print(text string)
	// ReadLine blocks for one line of input, without the trailing newline.
	ReadLine() (string, error)
	// Clear wipes the screen.
	Clear()
}

// StdConsole is the real terminal: stdout, stdin and the platform's
// clear-screen command.
type StdConsole struct {
	out io.Writer
	in  *bufio.Reader
}

// NewStdConsole builds a console over the process's stdin and stdout.
func NewStdConsole() *StdConsole {
	return &StdConsole{out: os.Stdout, in: bufio.NewReader(os.Stdin)}
}

func (c *StdConsole) Print(text string) {
	fmt.Fprintln(c.out, text)
}

func (c *StdConsole) ReadLine() (string, error) {
	line, err := c.in.ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if err != nil && line == "" {
		return "", err
	}
	return line, nil
}

func (c *StdConsole) Clear() {
	name := "clear"
	if goruntime.GOOS == "windows" {
		name = "cls"
	}
	cmd := exec.Command(name)
	cmd.Stdout = os.Stdout
	cmd.Run()
}
