package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"golang.org/x/term"

	"github.com/plainsight/plainsight-go/internal/imageio"
)

// ErrAborted is returned when input ends before an acceptable answer.
var ErrAborted = errors.New("prompt: input closed")

// Prompter reads answers from in and writes questions to out.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer

	// fd is the terminal descriptor of in, or -1.
	fd int
}

// New creates a prompter. Hidden input is used only when in is a terminal.
func New(in io.Reader, out io.Writer) *Prompter {
	fd := -1
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd = int(f.Fd())
	}
	return &Prompter{in: bufio.NewReader(in), out: out, fd: fd}
}

// Interactive reports whether the prompter reads from a terminal.
func (p *Prompter) Interactive() bool {
	return p.fd >= 0
}

// IsNonEmpty reports whether s holds anything besides whitespace.
func IsNonEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

// Line asks once and returns the answer without its line ending.
func (p *Prompter) Line(question string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", question)
	line, err := p.in.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		if errors.Is(err, io.EOF) {
			return "", ErrAborted
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Ask asks until validate accepts the answer. Rejections are reported on
// out before asking again.
func (p *Prompter) Ask(question string, validate func(string) error) (string, error) {
	for {
		answer, err := p.Line(question)
		if err != nil {
			return "", err
		}
		if validate == nil {
			return answer, nil
		}
		if err := validate(answer); err != nil {
			fmt.Fprintf(p.out, "  %v\n", err)
			continue
		}
		return answer, nil
	}
}

// NonEmpty asks until the answer is not blank. The answer is returned as
// typed.
func (p *Prompter) NonEmpty(question string) (string, error) {
	return p.Ask(question, nonEmpty)
}

// ImagePath asks until the answer names a readable image file.
func (p *Prompter) ImagePath(question string) (string, error) {
	answer, err := p.Ask(question, func(s string) error {
		return imageio.ValidImagePath(strings.TrimSpace(s))
	})
	return strings.TrimSpace(answer), err
}

// Choice asks until the answer is one of choices, case-insensitively.
func (p *Prompter) Choice(question string, choices ...string) (string, error) {
	q := fmt.Sprintf("%s (%s)", question, strings.Join(choices, "/"))
	answer, err := p.Ask(q, func(s string) error {
		if slices.Contains(choices, strings.ToLower(strings.TrimSpace(s))) {
			return nil
		}
		return fmt.Errorf("please choose one of: %s", strings.Join(choices, ", "))
	})
	return strings.ToLower(strings.TrimSpace(answer)), err
}

// Secret asks for a non-empty secret. On a terminal the answer is not
// echoed.
func (p *Prompter) Secret(question string) (string, error) {
	if !p.Interactive() {
		return p.NonEmpty(question)
	}
	for {
		fmt.Fprintf(p.out, "%s: ", question)
		b, err := term.ReadPassword(p.fd)
		fmt.Fprintln(p.out)
		if err != nil {
			return "", err
		}
		if err := nonEmpty(string(b)); err != nil {
			fmt.Fprintf(p.out, "  %v\n", err)
			continue
		}
		return string(b), nil
	}
}

func nonEmpty(s string) error {
	if !IsNonEmpty(s) {
		return errors.New("a value is required")
	}
	return nil
}
