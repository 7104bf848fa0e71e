package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"

	"github.com/trezcool/mahudhurio/core"
)

var errInputClosed = core.NewShutdownError("input closed")

type prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{scanner: bufio.NewScanner(in), out: out}
}

// ask prints `question` and reads one line of input.
func (p *prompter) ask(question string) (string, error) {
	fmt.Fprint(p.out, question)
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", errors.Wrap(err, "reading input")
		}
		return "", errInputClosed
	}
	return p.scanner.Text(), nil
}

// askCount asks `question` until the answer is a whole number of 0 or more.
func (p *prompter) askCount(question string) (int, error) {
	for {
		answer, err := p.ask(question)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(core.CleanString(answer))
		switch {
		case err != nil:
			fmt.Fprintln(p.out, "Please enter a whole number.")
		case n < 0:
			fmt.Fprintln(p.out, "Please enter a number of 0 or more.")
		default:
			return n, nil
		}
	}
}
