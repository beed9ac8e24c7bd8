package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spirit-dao/algebra-deploy/internal/cli"
	"github.com/spirit-dao/algebra-deploy/internal/config"
)

// Set by -ldflags at release time
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	config.SetBuildFlags(version, commit, date)

	if err := cli.Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
