package main

import (
	"os"

	"github.com/Johnobhoy88/loki-interceptor-sub004/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(cli.GetExitCode(err))
	}
}
