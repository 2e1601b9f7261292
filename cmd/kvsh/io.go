package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// printPrompt writes the REPL's prompt to stdout.
func printPrompt() {
	fmt.Print("db > ")
}

// readInput reads one line from reader, trimming the trailing
// newline and any surrounding whitespace. The error it returns on
// EOF is what drives the REPL's EOF-behaves-like-.exit handling in
// main.
func readInput(reader *bufio.Reader) (string, error) {
	input, err := reader.ReadString('\n')
	if err != nil {
		return "", errors.Wrap(err, "kvsh: read input")
	}
	return strings.TrimSpace(input), nil
}
