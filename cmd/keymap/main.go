package main

import (
	"fmt"
	"os"

	"github.com/suparena/couchstore"
	"github.com/suparena/couchstore/processor"
)

func main() {
	// Version flags are checked before processor.Main installs its own
	// flag set.
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			info := couchstore.GetVersionInfo()
			fmt.Printf("CouchStore keymap-gen version %s\n", info.Version)
			fmt.Printf("Git commit: %s\n", info.GitCommit)
			fmt.Printf("Build date: %s\n", info.BuildDate)
			fmt.Printf("Go version: %s\n", info.GoVersion)
			os.Exit(0)
		}
	}

	processor.Main()
}
