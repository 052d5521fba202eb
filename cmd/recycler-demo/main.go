// Package main provides a terminal demo of the recycler list view.
//
// Usage:
//
//	recycler-demo run [options]        Scroll a generated feed interactively
//	recycler-demo snapshot [options]   Print one frame to stdout
//	recycler-demo help                 Show help
//
// Examples:
//
//	recycler-demo run -items 5000 -grid
//	recycler-demo run -state /tmp/feed.db   Resume where the last run stopped
//	recycler-demo snapshot -config demo.toml
package main

import (
	"fmt"
	"os"
)

const version = "0.1.0"

const usage = `recycler-demo - terminal demo for go-recycler list views

Usage:
  recycler-demo <command> [options]

Commands:
  run         Scroll a generated feed interactively
  snapshot    Render one frame to stdout and exit
  version     Print version information
  help        Show this help message

Options:
  -config file    Read settings from a TOML file
  -items n        Number of generated items (default 200)
  -grid           Start in grid layout
  -columns n      Grid columns (default 3)
  -ahead n        Render-ahead offset in lines (default 10)
  -state file     Persist the scroll position in a bbolt file
  -debug file     Write engine diagnostics to file

Keys (run):
  up/down j/k     Scroll one line
  pgup/pgdown     Scroll one page
  home/end        Jump to the top or bottom
  g               Toggle list and grid layout
  a               Append a page of items
  s               Shuffle items
  q               Quit
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "run":
		if err := runInteractive(args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "snapshot":
		if err := runSnapshot(args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("recycler-demo version %s\n", version)
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", command)
		fmt.Print(usage)
		os.Exit(1)
	}
}
