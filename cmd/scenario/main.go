// Package main provides a CLI for running Lua hero scenarios.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	scenariocmd "github.com/louisbranch/herosheet/internal/cmd/scenario"
	"github.com/louisbranch/herosheet/internal/platform/config"
	"github.com/louisbranch/herosheet/internal/tools/scenario"
)

func main() {
	cfg, err := scenariocmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	log.SetPrefix("[SCENARIO] ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := scenariocmd.Run(ctx, cfg, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, scenario.ErrAssertion) {
			config.ExitCodef(config.ExitAssertion, "Assertion failed: %v", err)
		}
		config.Exitf("Error: %v", err)
	}
}
