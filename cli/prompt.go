package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/term"

	"library-client/api"
)

// readPassword securely reads a password with masking.
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	fmt.Println() // Add newline after password input
	return strings.TrimSpace(string(bytePassword)), nil
}

// promptLine prints a prompt and reads one trimmed line. ok is false when
// input is exhausted.
func promptLine(sc *bufio.Scanner, prompt string) (string, bool) {
	fmt.Print(prompt)
	if !sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(sc.Text()), true
}

// promptID reads a positive numeric id.
func promptID(sc *bufio.Scanner, prompt string) (int64, bool) {
	text, ok := promptLine(sc, prompt)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(text, 10, 64)
	if err != nil || id <= 0 {
		fmt.Printf("Invalid ID: %s\n", text)
		return 0, false
	}
	return id, true
}

// promptInt reads a non-negative integer, defaulting to 0 on empty input.
func promptInt(sc *bufio.Scanner, prompt string) (int, bool) {
	text, ok := promptLine(sc, prompt)
	if !ok {
		return 0, false
	}
	if text == "" {
		return 0, true
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		fmt.Printf("Invalid number: %s\n", text)
		return 0, false
	}
	return n, true
}

// confirm asks a yes/no question; only "y"/"yes" proceeds.
func confirm(sc *bufio.Scanner, question string) bool {
	answer, ok := promptLine(sc, question+" (y/n): ")
	if !ok {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}

// printFieldErrors renders a validation error list inline, one field per line.
func printFieldErrors(errs api.FieldErrors) {
	for _, fe := range errs {
		fmt.Printf("  %s: %s\n", fe.Field, fe.Message)
	}
}

func truncateString(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}
	return s[:maxLength-3] + "..."
}

// orDash substitutes "-" for empty display strings.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// terminalIndicator is the shared busy indicator: a transient loading note
// on stderr, cleared when the last in-flight call settles.
type terminalIndicator struct {
	w io.Writer
}

func (t terminalIndicator) Show() {
	fmt.Fprint(t.w, "⏳ loading...")
}

func (t terminalIndicator) Hide() {
	fmt.Fprint(t.w, "\r\033[K")
}
