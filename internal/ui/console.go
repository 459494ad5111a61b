package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/common-nighthawk/go-figure"
	"github.com/fatih/color"
)

// Console prints user facing messages with consistent colors. It is safe
// for concurrent use.
type Console struct {
	Out io.Writer
	Err io.Writer

	mu sync.Mutex
}

// Stdout is the console used by the CLI.
func Stdout() *Console {
	return &Console{Out: color.Output, Err: color.Error}
}

// Discard drops everything; useful in tests.
func Discard() *Console {
	return &Console{Out: io.Discard, Err: io.Discard}
}

func (c *Console) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Console) err() io.Writer {
	if c.Err == nil {
		return os.Stderr
	}
	return c.Err
}

// Banner prints the program name in large letters.
func (c *Console) Banner(name string) {
	fig := figure.NewFigure(name, "isometric1", true)
	c.print(c.out(), color.FgCyan, "%s\n", fig.String())
}

func (c *Console) print(w io.Writer, attr color.Attribute, format string, a ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if attr == color.Reset {
		fmt.Fprintf(w, format, a...)
		return
	}
	color.New(attr).Fprintf(w, format, a...)
}

func (c *Console) Info(format string, a ...interface{}) {
	c.print(c.out(), color.FgBlue, format+"\n", a...)
}

func (c *Console) Progress(format string, a ...interface{}) {
	c.print(c.out(), color.Reset, format+"\n", a...)
}

func (c *Console) Warning(format string, a ...interface{}) {
	c.print(c.err(), color.FgYellow, "Warning: "+format+"\n", a...)
}

func (c *Console) Error(format string, a ...interface{}) {
	c.print(c.err(), color.FgRed, "Error: "+format+"\n", a...)
}

func (c *Console) Success(format string, a ...interface{}) {
	c.print(c.out(), color.FgGreen, format+"\n", a...)
}
