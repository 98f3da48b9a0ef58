package main

import (
	"fmt"
	"os"

	"github.com/themobileprof/portfolio-concierge/internal/cli"
)

var version = "dev"

func main() {
	if err := cli.NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
