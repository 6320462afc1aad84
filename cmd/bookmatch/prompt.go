package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// stdinTerminal returns the file descriptor of stdin when it is a terminal.
func stdinTerminal(cmd *cobra.Command) (int, bool) {
	f, ok := cmd.InOrStdin().(*os.File)
	if !ok {
		return 0, false
	}
	fd := int(f.Fd())
	return fd, term.IsTerminal(fd)
}

// readLine prints prompt on stderr and reads one line from stdin.
func readLine(cmd *cobra.Command, opts *rootOptions, prompt string) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), prompt)
	line, err := opts.reader(cmd).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readPassword prompts for a password without echo on a terminal, or reads a
// plain line when stdin is redirected.
func readPassword(cmd *cobra.Command, opts *rootOptions, prompt string) (string, error) {
	fd, isTerm := stdinTerminal(cmd)
	if !isTerm {
		return readLine(cmd, opts, prompt)
	}

	fmt.Fprint(cmd.ErrOrStderr(), prompt)
	password, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", err
	}
	return string(password), nil
}

// readNewPassword asks for a password, and on a terminal for its confirmation.
func readNewPassword(cmd *cobra.Command, opts *rootOptions) (string, error) {
	password, err := readPassword(cmd, opts, "Create a password: ")
	if err != nil {
		return "", err
	}

	if _, isTerm := stdinTerminal(cmd); isTerm {
		confirmation, err := readPassword(cmd, opts, "Confirm password: ")
		if err != nil {
			return "", err
		}
		if confirmation != password {
			return "", errors.New("passwords do not match")
		}
	}
	return password, nil
}

// confirm asks a yes/no question that defaults to no.
func confirm(cmd *cobra.Command, opts *rootOptions, message string) (bool, error) {
	answer, err := readLine(cmd, opts, message+" (y/N) ")
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, err
	}
	answer = strings.TrimSpace(strings.ToLower(answer))
	return answer == "y" || answer == "yes", nil
}
