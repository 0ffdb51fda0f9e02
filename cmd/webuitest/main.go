// Package main provides the webuitest CLI, which runs browser test
// scenarios written in the command DSL.
//
// # Basic Usage
//
// Run a scenario against a headless Chromium:
//
//	webuitest run login.yaml --config webuitest.yaml
//
// Check a scenario without starting a browser:
//
//	webuitest check login.yaml
//
// A scenario lists commands either as templates or as records:
//
//	name: login
//	actions:
//	  - go_to <<https://example.com/login>> waitUntil <<load>>
//	  - input_to <<#user>> value <<demo>>
//	  - name: click_on
//	    meta:
//	      selector: "#submit"
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// Build information, set with -ldflags "-X main.version=...".
var (
	version = "dev"
	commit  = "none"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := buildRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		// The console already reported the failed run.
		if !errors.Is(err, errScenarioFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
