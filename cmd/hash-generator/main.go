// Command hash-generator prints bcrypt hashes for passwords, for inserting
// accounts by hand. Passwords come from the arguments, or one per line on
// stdin when there are none.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/phrazzld/quill-api/internal/service/auth"
)

func main() {
	cost := flag.Int("cost", auth.DefaultBcryptCost, "bcrypt cost (4-31)")
	flag.Parse()

	if err := run(flag.Args(), os.Stdin, os.Stdout, *cost); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(passwords []string, in io.Reader, out io.Writer, cost int) error {
	if len(passwords) == 0 {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			if line := scanner.Text(); line != "" {
				passwords = append(passwords, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("failed to read passwords: %w", err)
		}
	}

	hasher := auth.NewBcryptHasher(cost)
	for _, password := range passwords {
		hash, err := hasher.Hash(password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		fmt.Fprintf(out, "%s\n", hash)
		if !auth.IsValidPassword(password) {
			fmt.Fprintf(out, "  warning: password would be rejected at registration\n")
		}
	}
	return nil
}
