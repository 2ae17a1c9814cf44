package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/modlist/cmd/modlist"
	"github.com/arthur-debert/modlist/pkg/style"
)

func main() {
	rootCmd := modlist.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		format := style.DetectFormat(os.Stderr)
		fmt.Fprintln(os.Stderr, style.Render(format, "Error", fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
