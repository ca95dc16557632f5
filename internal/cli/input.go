package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"kontaktvault/internal/passx"
)

// readPassword is a test seam for term.ReadPassword.
// In tests you can replace it with a stub to avoid touching the terminal.
var readPassword = term.ReadPassword

// stdin is a test seam for confirmation prompts.
var stdin io.Reader = os.Stdin

// promptPassword prints a prompt and reads a password without echo.
func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	b, err := readPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}

// promptNewPassword asks for a new master password twice, enforcing the
// policy and showing the strength rating in between.
func promptNewPassword() (string, error) {
	password, err := promptPassword("New password: ")
	if err != nil {
		return "", err
	}
	if err := passx.Validate(password); err != nil {
		return "", err
	}

	st := passx.AnalyzeStrength(password)
	fmt.Printf("Strength: %s\n", strengthLine(st))
	for _, f := range st.Feedback {
		fmt.Println("  - " + f)
	}

	confirm, err := promptPassword("Repeat password: ")
	if err != nil {
		return "", err
	}
	if confirm != password {
		return "", errors.New("passwords do not match")
	}
	return password, nil
}

// promptLine reads one trimmed line of input, returning the partial line
// when EOF arrives after some input.
func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
