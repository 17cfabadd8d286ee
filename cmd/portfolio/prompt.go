package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

var stdin = bufio.NewReader(os.Stdin)

// promptSecret reads without echo when stdin is a terminal, else a plain line.
func promptSecret(label string) (string, error) {
	fmt.Fprintf(os.Stderr, "%s: ", label)
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		line, _ := stdin.ReadString('\n')
		return strings.TrimSpace(line), nil
	}

	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("secret input failed: %w", err)
	}
	s := strings.TrimSpace(string(b))
	for i := range b {
		b[i] = 0
	}
	return s, nil
}
