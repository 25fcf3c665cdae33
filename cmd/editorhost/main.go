package main

import (
	"fmt"
	"os"

	_ "github.com/justyntemme/editorhost/pkg/plugins/gain"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCommand(version, commit, date).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "editorhost: %v\n", err)
		os.Exit(1)
	}
}
