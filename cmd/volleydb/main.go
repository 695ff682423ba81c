package main

import (
	"context"
	"fmt"
	"os"

	"github.com/riskibarqy/volleyball-stats/internal/cli"
)

var version = "dev"

func main() {
	rootCmd := cli.NewRootCmd(version, cli.Options{})
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
