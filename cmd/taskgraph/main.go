// Package main is the entry point for the taskgraph CLI.
package main

import (
	"fmt"
	"os"

	"github.com/runoshun/taskgraph/internal/app"
	"github.com/runoshun/taskgraph/internal/cli"
)

// version is set at build time using -ldflags.
var version = "dev"

// newRootCommand is a variable so tests can observe which root command is built.
var newRootCommand = cli.NewRootCommand

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	// Get current working directory
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	// Create dependency injection container
	container, err := app.New(cwd, os.Stdin)
	if err != nil {
		// A broken config file must not block help and version output
		if canRunWithoutContainer(args) {
			return runWithoutContainer(args)
		}
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer func() {
		if err := container.Close(); err != nil {
			container.Logger.Warn("close log files", "error", err)
		}
	}()

	// Create and execute root command
	rootCmd := newRootCommand(container, version)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

// runWithoutContainer runs commands that need no configuration.
func runWithoutContainer(args []string) error {
	rootCmd := newRootCommand(nil, version)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func canRunWithoutContainer(args []string) bool {
	if len(args) == 0 {
		return true
	}
	if args[0] == "help" {
		return true
	}
	for _, arg := range args {
		if arg == "--version" || arg == "--help" || arg == "-h" {
			return true
		}
	}
	return false
}
