// Package main is the entry point for the kubesh CLI.
package main

import (
	"fmt"
	"os"

	"github.com/runger/kubesh/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "kubesh:", err)
		os.Exit(1)
	}
}
