// Package main provides the notecrypt command: it encrypts notes read from
// stdin into envelopes and back, using the secret phrase from the
// environment or a phrase file.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/awnumar/memguard"

	"github.com/ai8future/notecrypt"
	"github.com/ai8future/notecrypt/internal/config"
	"github.com/ai8future/notecrypt/internal/logger"
)

func main() {
	// Wipe enclaves and locked buffers on Ctrl-C.
	memguard.CatchInterrupt()
	defer memguard.Purge()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		memguard.SafeExit(2)
	}

	log, err := logger.New(os.Stderr, "cli", cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		memguard.SafeExit(2)
	}

	cmd := newCommand(cfg, log, os.Stdin, os.Stdout)
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Error().Err(err).Msg("command failed")
		fmt.Fprintln(os.Stderr, notecrypt.UserMessage(err))
		memguard.SafeExit(1)
	}
}
