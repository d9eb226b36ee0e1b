// Package console prints the framed notices shared by the guard and the
// deployment engine.
package console

import (
	"fmt"
	"io"
	"strings"
)

// Border symbols.
const (
	Dash     = '-'
	Asterisk = '*'
)

// Printer writes framed text to an output stream.
type Printer struct {
	out   io.Writer
	width int
}

// New returns a Printer writing to out with borders width symbols wide.
func New(out io.Writer, width int) *Printer {
	if out == nil {
		out = io.Discard
	}
	if width <= 0 {
		width = 60
	}
	return &Printer{out: out, width: width}
}

// Border prints a line of width symbols.
func (p *Printer) Border(symbol rune) {
	fmt.Fprintln(p.out, strings.Repeat(string(symbol), p.width))
}

// Framed prints lines between two borders.
func (p *Printer) Framed(symbol rune, lines ...string) {
	p.Border(symbol)
	for _, line := range lines {
		fmt.Fprintln(p.out, line)
	}
	p.Border(symbol)
}

// Banner announces that an operation is about to run on dfrom and dto.
func (p *Printer) Banner(msg, dfrom, dto string) {
	p.Framed(Dash,
		msg,
		fmt.Sprintf("From: [%s]", dfrom),
		fmt.Sprintf("To:   [%s]", dto),
	)
}

// Printf writes a formatted line.
func (p *Printer) Printf(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}
