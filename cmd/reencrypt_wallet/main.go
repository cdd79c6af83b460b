// Maintenance tool: re-encrypt a wallet ciphertext under a new PIN.
// Reads the base64 ciphertext as the single argument, prompts for both
// PINs, prints the new ciphertext to stdout.
// Usage: go run ./cmd/reencrypt_wallet <ciphertext>
package main

import (
	"fmt"
	"os"
	"syscall"

	"golang.org/x/term"

	"medialane/internal/crypto"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: reencrypt_wallet <ciphertext>")
		os.Exit(1)
	}
	ciphertext := os.Args[1]

	oldPin, err := promptPin("Current PIN: ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	newPin, err := promptPin("New PIN: ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	confirm, err := promptPin("Confirm new PIN: ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if newPin != confirm {
		fmt.Fprintln(os.Stderr, "PINs do not match")
		os.Exit(1)
	}

	key, err := crypto.DecryptKey(ciphertext, oldPin)
	if err != nil {
		fmt.Fprintln(os.Stderr, "decrypt failed:", err)
		os.Exit(1)
	}
	defer clear(key)

	out, err := crypto.EncryptKey(key, newPin)
	if err != nil {
		fmt.Fprintln(os.Stderr, "encrypt failed:", err)
		os.Exit(1)
	}
	fmt.Print(out)
}

func promptPin(label string) (string, error) {
	fmt.Fprint(os.Stderr, label)
	pin, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read PIN: %w", err)
	}
	if len(pin) == 0 {
		return "", fmt.Errorf("empty PIN")
	}
	return string(pin), nil
}
