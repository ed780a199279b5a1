// Package main generates API keys for the /v1 routes. agapay stores only the
// bcrypt hash of its key (auth.api_key_hash), never the key itself.
//
//	hash          generate a new key and print it with its hash
//	hash <key>    print the hash of an existing key
//
// The last line of output is an environment assignment ready to paste into a
// deployment's secrets.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/chariot-giving/agapay/internal/auth"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, auth.BcryptCost); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, w io.Writer, cost int) error {
	switch len(args) {
	case 0:
		key, hash, prefix, err := auth.GenerateAPIKey(auth.KeyPrefix)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "API key (shown once): %s\n", key)
		fmt.Fprintf(w, "Display prefix:       %s\n", prefix)
		fmt.Fprintf(w, "AGAPAY_AUTH_API_KEY_HASH='%s'\n", hash)
		return nil
	case 1:
		hash, err := auth.HashAPIKey(args[0], cost)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "AGAPAY_AUTH_API_KEY_HASH='%s'\n", hash)
		return nil
	default:
		return fmt.Errorf("usage: hash [key]")
	}
}
