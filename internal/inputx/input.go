// Package inputx reads line-oriented input for the command-line tools. When
// stdin is a terminal the user is prompted and secrets are read without
// echo; otherwise lines are consumed silently so the tools work in pipes.
package inputx

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrTrailingInput is returned by End when input continues past the
// expected lines.
var ErrTrailingInput = errors.New("unexpected input after the last expected line")

// Test seams for the terminal calls.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// Reader prompts on w when in is a terminal.
type Reader struct {
	in  *bufio.Reader
	w   io.Writer
	fd  int
	tty bool
}

func NewReader(in io.Reader, w io.Writer) *Reader {
	r := &Reader{in: bufio.NewReader(in), w: w, fd: -1}
	if f, ok := in.(*os.File); ok {
		r.fd = int(f.Fd())
		r.tty = isTerminal(r.fd)
	}
	return r
}

// Interactive reports whether input comes from a terminal.
func (r *Reader) Interactive() bool {
	return r.tty
}

// Line reads one line, prompting first on a terminal. The line terminator
// is stripped; other whitespace is kept. A final line without terminator is
// returned as is; io.EOF is returned only when nothing was read.
func (r *Reader) Line(prompt string) (string, error) {
	if r.tty {
		if _, err := fmt.Fprint(r.w, prompt); err != nil {
			return "", err
		}
	}
	line, err := r.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Secret is Line without echo on a terminal.
func (r *Reader) Secret(prompt string) (string, error) {
	if !r.tty {
		return r.Line(prompt)
	}
	if _, err := fmt.Fprint(r.w, prompt); err != nil {
		return "", err
	}
	b, err := readPassword(r.fd)
	fmt.Fprintln(r.w)
	if err != nil {
		return "", err
	}
	defer Wipe(b)
	return string(b), nil
}

// End reports ErrTrailingInput when piped input has anything left. On a
// terminal it returns nil without reading.
func (r *Reader) End() error {
	if r.tty {
		return nil
	}
	_, err := r.in.Peek(1)
	switch {
	case errors.Is(err, io.EOF):
		return nil
	case err != nil:
		return err
	}
	return ErrTrailingInput
}

// Wipe overwrites b with zeros.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
