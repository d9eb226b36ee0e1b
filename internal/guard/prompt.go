package guard

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Prompter asks a yes/no question.
type Prompter interface {
	Confirm(msg string) (bool, error)
}

// An answer letter must be followed by the end of the line or by something
// that is not a letter, digit or underscore in any script.
var (
	yesPattern = regexp.MustCompile(`^[yY](?:$|[^\pL\pN_])`)
	noPattern  = regexp.MustCompile(`^[nN](?:$|[^\pL\pN_])`)
)

// ParseAnswer classifies a line of input. decided is false when the line is
// neither a y nor an n answer.
func ParseAnswer(line string) (yes, decided bool) {
	line = strings.TrimRight(line, "\r\n")
	switch {
	case yesPattern.MatchString(line):
		return true, true
	case noPattern.MatchString(line):
		return false, true
	}
	return false, false
}

// LinePrompter reads answers line by line and asks again until it gets a
// y or n.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter creates a LinePrompter reading from in and writing prompts
// to out.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

// Confirm prompts with msg until the answer is y/Y or n/N. Running out of
// input counts as n.
func (p *LinePrompter) Confirm(msg string) (bool, error) {
	for {
		fmt.Fprint(p.out, msg)
		line, err := p.in.ReadString('\n')
		if yes, decided := ParseAnswer(line); decided {
			return yes, nil
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(p.out)
				return false, nil
			}
			return false, fmt.Errorf("failed to read answer: %w", err)
		}
	}
}

// Pause waits for a line of input, announcing it with msg.
func (p *LinePrompter) Pause(msg string) error {
	fmt.Fprint(p.out, msg)
	if _, err := p.in.ReadString('\n'); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}

// FixedPrompter answers every question the same way without reading input.
type FixedPrompter bool

// Confirm returns the fixed answer.
func (f FixedPrompter) Confirm(string) (bool, error) {
	return bool(f), nil
}
