// Package main provides a one-shot utility for session token key generation.
//
// It emits the asymmetric keypair used to sign and verify access and refresh
// tokens.
package main

import (
	"os"

	"github.com/louisbranch/taskhub/internal/platform/config"
	"github.com/louisbranch/taskhub/internal/tools/signingkey"
)

func main() {
	if err := signingkey.Run(os.Stdout, nil); err != nil {
		config.Exitf("generate signing key: %v", err)
	}
}
