package main

import (
	"os"
	"time"

	"github.com/zjoart/paises/internal/cli"
)

func main() {
	// set timezone to utc
	time.Local = time.UTC

	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
