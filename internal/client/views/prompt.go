package views

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter handles line-based terminal input and output for the views.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a prompter reading from in and writing to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Printf writes a formatted message.
func (p *Prompter) Printf(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format, args...)
}

// ReadLine prompts with a label and returns the trimmed input line.
func (p *Prompter) ReadLine(label string) string {
	fmt.Fprintf(p.out, "%s: ", label)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimSpace(line)
}

// ReadRequired prompts until a non-empty value is entered, offering the
// current value as default when one exists.
func (p *Prompter) ReadRequired(label, current string) string {
	for {
		display := label
		if current != "" {
			display = fmt.Sprintf("%s [%s]", label, current)
		}

		value := p.ReadLine(display)
		if value == "" {
			value = current
		}
		if value != "" {
			return value
		}

		fmt.Fprintln(p.out, "Campo obrigatório.")
	}
}

// Confirm asks a yes/no question. Anything other than "s"/"sim" declines.
func (p *Prompter) Confirm(prompt string) bool {
	answer := strings.ToLower(p.ReadLine(prompt + " (s/n)"))
	return answer == "s" || answer == "sim"
}
